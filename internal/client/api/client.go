// Package api abstracts the attendance backend. One interface, two
// implementations: the live JSON-over-HTTP client and an in-memory mock.
// Which one the CLI uses is a configuration decision.
package api

import (
	"context"
	"time"

	"github.com/dmitrijs2005/attendo/internal/client/models"
)

// TokenSource supplies the bearer token for authenticated calls and accepts
// the invalidation signal when the backend answers 401. The session manager
// satisfies this interface.
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	Invalidate(ctx context.Context)
}

// LoginResult carries what the auth endpoint returns: a token pair plus the
// minimal identity the client derives a cached user record from.
type LoginResult struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	UserID       string      `json:"userId"`
	Role         models.Role `json:"role"`
}

// RegistrationForm is the payload for account creation. Validation happens
// client-side before any network call.
type RegistrationForm struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Phone      string `json:"phone" validate:"omitempty,e164"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// Client is the backend contract consumed by the services layer.
//
// All operations are single-attempt: no retry, no backoff. Authenticated
// operations fail with common.ErrAuthRequired when no token is present
// locally (no network call is made) and with common.ErrSessionExpired after
// a 401, which also invalidates the local session.
type Client interface {
	// Login exchanges credentials for a token pair. A non-2xx response maps
	// to common.ErrInvalidCredentials.
	Login(ctx context.Context, role models.Role, identifier, password string) (*LoginResult, error)

	// Register creates an account. Admin registration is dispatched to the
	// admin endpoint and requires an authenticated admin session.
	Register(ctx context.Context, role models.Role, form RegistrationForm) error

	// Logout asks the backend to invalidate the refresh token. Best-effort:
	// callers clear local state regardless of the outcome.
	Logout(ctx context.Context, refreshToken string) error

	GetProfile(ctx context.Context) (*models.UserRecord, error)
	UpdateProfile(ctx context.Context, u models.UserRecord) (*models.UserRecord, error)

	// DeleteAccount removes the authenticated account. Like login, the call
	// is dispatched to the role-specific endpoint.
	DeleteAccount(ctx context.Context, role models.Role) error

	// UpdateAdminPrivileges grants or revokes the admin role on another
	// account. The backend rejects callers that are not admins.
	UpdateAdminPrivileges(ctx context.Context, userID string, role models.Role) (*models.UserRecord, error)

	// AttendanceHistory returns the ordered day records for the period.
	AttendanceHistory(ctx context.Context, period models.Period) ([]models.AttendanceRecord, error)

	// MarkAttendance submits a check-in or check-out bundled with the
	// location sample, resolved address and an ISO-8601 timestamp.
	MarkAttendance(ctx context.Context, kind models.MarkKind, sample models.LocationSample, address string, at time.Time) (*models.Receipt, error)

	// Ping checks backend liveness.
	Ping(ctx context.Context) error

	Close() error
}
