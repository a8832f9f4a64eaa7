// Package services contains application services for the Attendo client.
// This file defines the authentication service: login, registration,
// logout, and the startup session check.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/attendo/internal/client/api"
	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/client/session"
	"github.com/dmitrijs2005/attendo/internal/common"
	"github.com/go-playground/validator/v10"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the backend and persist the session.
//   - Register: create an account; user-role registration chains into Login.
//   - Logout: best-effort remote invalidation, unconditional local clear.
//   - DeleteAccount: remove the account on the backend, then clear the local
//     session.
//   - UpdateAdminPrivileges: change another account's role; admin only.
//   - CheckAuthStatus: bootstrap check against the local store only; no
//     network validation of token freshness.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, role models.Role, identifier string, password []byte) error
	Register(ctx context.Context, role models.Role, form api.RegistrationForm, confirmPassword string) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	UpdateAdminPrivileges(ctx context.Context, userID string, role models.Role) error
	CheckAuthStatus(ctx context.Context) bool
	Close(ctx context.Context) error
}

type authService struct {
	client   api.Client
	session  *session.Manager
	validate *validator.Validate
}

// NewAuthService constructs an AuthService bound to the given API client and
// session manager.
func NewAuthService(client api.Client, sm *session.Manager) AuthService {
	return &authService{
		client:   client,
		session:  sm,
		validate: validator.New(),
	}
}

// Login authenticates, then persists both tokens and the derived user record
// together. On failure nothing is written and any prior session state stays
// untouched.
func (a *authService) Login(ctx context.Context, role models.Role, identifier string, password []byte) error {
	if identifier == "" || len(password) == 0 {
		return fmt.Errorf("%w: identifier and password are required", common.ErrorValidation)
	}

	res, err := a.client.Login(ctx, role, identifier, string(password))
	if err != nil {
		return err
	}

	user := &models.UserRecord{
		ID:    res.UserID,
		Name:  identifier,
		Email: identifier,
		Role:  res.Role,
	}

	err = a.session.Set(ctx, models.Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		User:         user,
	})
	if err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}

	// Best-effort enrichment of the cached record with the full profile.
	if full, err := a.client.GetProfile(ctx); err == nil {
		_ = a.session.UpdateUser(ctx, full)
	}

	return nil
}

// Register validates the form client-side, creates the account, and for the
// user role chains straight into Login to establish a session.
func (a *authService) Register(ctx context.Context, role models.Role, form api.RegistrationForm, confirmPassword string) error {
	if form.Password != confirmPassword {
		return fmt.Errorf("%w: passwords do not match", common.ErrorValidation)
	}
	if err := a.validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	if err := a.client.Register(ctx, role, form); err != nil {
		return err
	}

	if role == models.RoleUser {
		return a.Login(ctx, role, form.Email, []byte(form.Password))
	}
	return nil
}

// Logout invalidates the refresh token remotely when possible and clears the
// local session regardless: the user-visible contract is "logged out on this
// device".
func (a *authService) Logout(ctx context.Context) error {
	_ = a.client.Logout(ctx, a.session.RefreshToken())
	return a.session.Clear(ctx)
}

// DeleteAccount removes the account through the role-specific endpoint and,
// only when the backend confirms, clears the local session.
func (a *authService) DeleteAccount(ctx context.Context) error {
	u := a.session.Current().User
	if u == nil {
		return common.ErrAuthRequired
	}

	if err := a.client.DeleteAccount(ctx, u.Role); err != nil {
		return err
	}
	return a.session.Clear(ctx)
}

// UpdateAdminPrivileges changes another account's role. The local role is
// checked first to fail fast; the backend enforces it regardless.
func (a *authService) UpdateAdminPrivileges(ctx context.Context, userID string, role models.Role) error {
	u := a.session.Current().User
	if u == nil || u.Role != models.RoleAdmin {
		return fmt.Errorf("%w: admin privileges required", common.ErrPermissionDenied)
	}

	_, err := a.client.UpdateAdminPrivileges(ctx, userID, role)
	return err
}

// CheckAuthStatus re-reads the persisted session and reports whether both a
// token and a user record are present.
func (a *authService) CheckAuthStatus(ctx context.Context) bool {
	if err := a.session.Load(ctx); err != nil {
		return false
	}
	return a.session.Authenticated()
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
