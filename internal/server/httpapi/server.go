// Package httpapi exposes the attendance backend over JSON/HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/attendo/internal/logging"
	"github.com/dmitrijs2005/attendo/internal/server/attendance"
	"github.com/dmitrijs2005/attendo/internal/server/users"
	"github.com/go-playground/validator/v10"
)

type Server struct {
	logger            logging.Logger
	userService       *users.Service
	attendanceService *attendance.Service
	secretKey         []byte
	validate          *validator.Validate

	httpServer *http.Server
}

func NewServer(addr string, logger logging.Logger, us *users.Service, as *attendance.Service, secretKey string) (*Server, error) {
	s := &Server{
		logger:            logger,
		userService:       us,
		attendanceService: as,
		secretKey:         []byte(secretKey),
		validate:          validator.New(),
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info(shutdownCtx, "http server shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}
