package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/attendo/internal/common"
	"github.com/dmitrijs2005/attendo/internal/server/auth"
	"github.com/dmitrijs2005/attendo/internal/server/config"
	"github.com/dmitrijs2005/attendo/internal/server/refreshtokens"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegistrationInput is the validated payload for account creation.
type RegistrationInput struct {
	Name       string
	Email      string
	Password   string
	Phone      string
	Department string
	Position   string
}

type Service struct {
	repo                         Repository
	refreshTokenRepo             refreshtokens.Repository
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

func NewService(repo Repository, refreshTokenRepo refreshtokens.Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                         repo,
		refreshTokenRepo:             refreshTokenRepo,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

// Register hashes the password and creates the account. The employee ID is
// assigned server-side and never accepted from the client.
func (s *Service) Register(ctx context.Context, role string, in RegistrationInput) (*User, error) {

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", common.ErrorValidation)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	employeeID, err := s.generateEmployeeID()
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Department:   in.Department,
		Position:     in.Position,
		EmployeeID:   employeeID,
		JoinDate:     s.now(),
		WorkSchedule: "9:00 AM - 5:00 PM",
		Role:         role,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return user, nil
}

// Login verifies the password against the stored bcrypt hash and, on
// success, issues an access/refresh token pair. The role asked for has to
// match the account's role: a user cannot log in through the admin endpoint.
func (s *Service) Login(ctx context.Context, role, email, password string) (*User, *TokenPair, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if user.Role != role {
		return nil, nil, common.ErrorUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	accessToken, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	err = s.refreshTokenRepo.Create(ctx, user.ID, refreshToken, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	return user, &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout removes the refresh token. Unknown tokens are not an error: the
// outcome the client cares about is that the token no longer works.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.refreshTokenRepo.Delete(ctx, refreshToken)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile applies the editable fields only. Employee ID, role and
// join date never change through this path.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in *User) (*User, error) {
	current, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	current.Name = in.Name
	current.Email = in.Email
	current.Phone = in.Phone
	current.Department = in.Department
	current.Position = in.Position
	if in.WorkSchedule != "" {
		current.WorkSchedule = in.WorkSchedule
	}

	return s.repo.Update(ctx, current)
}

// DeleteAccount removes the user and every refresh token issued to them, so
// no session outlives the account.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.refreshTokenRepo.DeleteForUser(ctx, userID); err != nil {
		return common.ErrorInternal
	}
	return s.repo.Delete(ctx, userID)
}

// UpdateAdminPrivileges sets the account's role. Callers are expected to
// have verified the requester is an admin.
func (s *Service) UpdateAdminPrivileges(ctx context.Context, userID, role string) (*User, error) {
	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}

	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) generateEmployeeID() (string, error) {
	suffix, err := common.MakeRandHexString(3)
	if err != nil {
		return "", err
	}
	return "EMP" + strings.ToUpper(suffix), nil
}
