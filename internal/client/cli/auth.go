package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/attendo/internal/client/api"
	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/common"
)

// getSimpleText, getTextOrDefault and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getTextOrDefault = GetTextOrDefault
var getPassword = GetPassword

// Login prompts for a role, an email and a password and tries to
// authenticate. On success the session is persisted locally, so the next
// start of the program restores it without asking again.
//
// The password is securely wiped before returning. Any error from the
// underlying auth call is returned after being reported to the user.
func (a *App) Login(ctx context.Context) error {
	role, err := getTextOrDefault(a.reader, "Role (user/admin)", string(models.RoleUser), os.Stdout)
	if err != nil {
		return err
	}
	if role != string(models.RoleUser) && role != string(models.RoleAdmin) {
		log.Printf("Unknown role: %s", role)
		return fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}

	userName, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, models.Role(role), userName, password); err != nil {
		log.Printf("Login unsuccessfull: %s", err.Error())
		return err
	}

	log.Printf("Login successfull")
	return nil
}

// Register collects the registration form interactively and creates an
// account. Registering as a user logs the new account straight in.
//
// Both password copies are securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	role, err := getTextOrDefault(a.reader, "Role (user/admin)", string(models.RoleUser), os.Stdout)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getTextOrDefault(a.reader, "Phone (+15551234567)", "", os.Stdout)
	if err != nil {
		return err
	}
	department, err := getTextOrDefault(a.reader, "Department", "", os.Stdout)
	if err != nil {
		return err
	}
	position, err := getTextOrDefault(a.reader, "Position", "", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	form := api.RegistrationForm{
		Name:       name,
		Email:      email,
		Password:   string(password),
		Phone:      phone,
		Department: department,
		Position:   position,
	}

	if err := a.authService.Register(ctx, models.Role(role), form, string(confirm)); err != nil {
		log.Printf("Registration unsuccessfull: %s", err.Error())
		return err
	}

	fmt.Println("Success!")
	return nil
}

// DeleteAccount asks for confirmation and removes the signed-in account.
// Anything other than "yes" aborts without touching the backend.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getTextOrDefault(a.reader, "Delete your account? This cannot be undone (yes/no)", "no", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Println("Aborted")
		return nil
	}

	if err := a.authService.DeleteAccount(ctx); err != nil {
		log.Printf("Account deletion unsuccessfull: %s", err.Error())
		return err
	}

	fmt.Println("Account deleted")
	return nil
}

// Privileges grants or revokes the admin role on another account.
func (a *App) Privileges(ctx context.Context, userID, role string) error {
	if role != string(models.RoleUser) && role != string(models.RoleAdmin) {
		log.Printf("Unknown role: %s", role)
		return fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}

	if err := a.authService.UpdateAdminPrivileges(ctx, userID, models.Role(role)); err != nil {
		log.Printf("Privileges update unsuccessfull: %s", err.Error())
		return err
	}

	fmt.Println("Privileges updated")
	return nil
}

// Logout invalidates the refresh token on the backend when reachable and
// clears the local session regardless.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		log.Printf("Logout error: %s", err.Error())
		return err
	}
	fmt.Println("Logged out")
	return nil
}
