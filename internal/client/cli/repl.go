package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/attendo/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Dashboard(ctx context.Context) error
	CheckIn(ctx context.Context) error
	CheckOut(ctx context.Context) error
	Refresh(ctx context.Context) error
	History(ctx context.Context, period models.Period) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Privileges(ctx context.Context, userID, role string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Attendo CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - dashboard      — today's status and weekly summary
//	  - checkin        — submit a check-in at the current location
//	  - checkout       — submit a check-out
//	  - refresh        — re-acquire the current position
//	  - history [week|month|year] — attendance history
//	  - profile        — show the cached profile
//	  - profile edit   — edit the profile (also: edit)
//	  - privileges <user-id> <user|admin> — change an account's role (admin)
//	  - delete         — delete the account after confirmation
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("att> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, checkin, checkout, refresh, history [week|month|year], profile, edit, privileges, delete, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "checkin":
			_ = a.CheckIn(ctx)

		case "checkout":
			_ = a.CheckOut(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "history":
			period := models.PeriodWeek
			if len(args) > 0 {
				period = models.Period(args[0])
			}
			_ = a.History(ctx, period)

		case "profile":
			if len(args) > 0 && args[0] == "edit" {
				_ = a.EditProfile(ctx)
				continue
			}
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "privileges":
			if len(args) < 2 {
				printlnFn("Usage: privileges <user-id> <user|admin>")
				continue
			}
			_ = a.Privileges(ctx, args[0], args[1])

		case "delete":
			_ = a.DeleteAccount(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
