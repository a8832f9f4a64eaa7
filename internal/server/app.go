// Package server initializes and runs the attendance backend. It wires the
// PostgreSQL repositories, the domain services and the HTTP API, and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/attendo/internal/logging"
	"github.com/dmitrijs2005/attendo/internal/server/attendance"
	"github.com/dmitrijs2005/attendo/internal/server/config"
	"github.com/dmitrijs2005/attendo/internal/server/httpapi"
	"github.com/dmitrijs2005/attendo/internal/server/shared/db"
	"github.com/dmitrijs2005/attendo/internal/server/users"
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	userService       *users.Service
	attendanceService *attendance.Service
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := users.NewService(rm.Users(), rm.RefreshTokens(), c)
	as := attendance.NewService(rm.Attendance(), c)

	return &App{config: c, logger: logger, userService: us, attendanceService: as}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.attendanceService, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
