package users

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/dmitrijs2005/attendo/internal/common"
	"github.com/dmitrijs2005/attendo/internal/server/auth"
	"github.com/dmitrijs2005/attendo/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*User{}, byEmail: map[string]*User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *User) (*User, error) {
	r.nextID++
	user.ID = strconv.Itoa(r.nextID)
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *User) (*User, error) {
	if _, ok := r.byID[user.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return user, nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id string, role string) error {
	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

type fakeTokenRepo struct {
	created map[string]string // token -> userID
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{created: map[string]string{}}
}

func (r *fakeTokenRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	r.created[token] = userID
	return nil
}

func (r *fakeTokenRepo) Delete(ctx context.Context, token string) error {
	delete(r.created, token)
	return nil
}

func (r *fakeTokenRepo) DeleteForUser(ctx context.Context, userID string) error {
	for t, u := range r.created {
		if u == userID {
			delete(r.created, t)
		}
	}
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func registration() RegistrationInput {
	return RegistrationInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "password123",
	}
}

func TestService_RegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewService(repo, newFakeTokenRepo(), testConfig())

	user, err := svc.Register(ctx, RoleUser, registration())
	require.NoError(t, err)

	assert.NotEqual(t, []byte("password123"), user.PasswordHash)
	assert.NotEmpty(t, user.EmployeeID)
	assert.Equal(t, RoleUser, user.Role)
	assert.False(t, user.JoinDate.IsZero())
}

func TestService_RegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewService(repo, newFakeTokenRepo(), testConfig())

	_, err := svc.Register(ctx, RoleUser, registration())
	require.NoError(t, err)

	_, err = svc.Register(ctx, RoleUser, registration())
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestService_LoginIssuesTokenPair(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	cfg := testConfig()
	svc := NewService(repo, tokens, cfg)

	_, err := svc.Register(ctx, RoleUser, registration())
	require.NoError(t, err)

	user, pair, err := svc.Login(ctx, RoleUser, "john@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", user.Email)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Contains(t, tokens.created, pair.RefreshToken)

	claims, err := auth.ParseToken(pair.AccessToken, []byte(cfg.SecretKey))
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestService_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserRepo(), newFakeTokenRepo(), testConfig())

	_, err := svc.Register(ctx, RoleUser, registration())
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, RoleUser, "john@example.com", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_LoginUnknownUser(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeTokenRepo(), testConfig())

	_, _, err := svc.Login(context.Background(), RoleUser, "nobody@example.com", "password123")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_LoginRoleMismatch(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserRepo(), newFakeTokenRepo(), testConfig())

	_, err := svc.Register(ctx, RoleUser, registration())
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, RoleAdmin, "john@example.com", "password123")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_LogoutRemovesToken(t *testing.T) {
	ctx := context.Background()
	tokens := newFakeTokenRepo()
	svc := NewService(newFakeUserRepo(), tokens, testConfig())

	_, err := svc.Register(ctx, RoleUser, registration())
	require.NoError(t, err)
	_, pair, err := svc.Login(ctx, RoleUser, "john@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
	assert.NotContains(t, tokens.created, pair.RefreshToken)

	// Unknown tokens are a no-op.
	require.NoError(t, svc.Logout(ctx, "never-issued"))
	require.NoError(t, svc.Logout(ctx, ""))
}

func TestService_DeleteAccountRemovesUserAndTokens(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	svc := NewService(repo, tokens, testConfig())

	created, err := svc.Register(ctx, RoleUser, registration())
	require.NoError(t, err)
	_, pair, err := svc.Login(ctx, RoleUser, "john@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NotContains(t, tokens.created, pair.RefreshToken)

	// The email is free for registration again.
	_, err = svc.Register(ctx, RoleUser, registration())
	assert.NoError(t, err)
}

func TestService_DeleteAccountUnknownUser(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeTokenRepo(), testConfig())

	err := svc.DeleteAccount(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestService_UpdateAdminPrivileges(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewService(repo, newFakeTokenRepo(), testConfig())

	created, err := svc.Register(ctx, RoleUser, registration())
	require.NoError(t, err)

	t.Run("promotes to admin", func(t *testing.T) {
		updated, err := svc.UpdateAdminPrivileges(ctx, created.ID, RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, updated.Role)

		// The new role takes effect at the login endpoint dispatch.
		_, _, err = svc.Login(ctx, RoleAdmin, "john@example.com", "password123")
		assert.NoError(t, err)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		_, err := svc.UpdateAdminPrivileges(ctx, created.ID, "superuser")
		require.ErrorIs(t, err, common.ErrorValidation)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateAdminPrivileges(ctx, "missing", RoleAdmin)
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestService_UpdateProfileKeepsImmutableFields(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewService(repo, newFakeTokenRepo(), testConfig())

	created, err := svc.Register(ctx, RoleUser, registration())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, created.ID, &User{
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "+12025550147",
		Department: "Engineering",
		Position:   "Developer",
		EmployeeID: "HACKED",
		Role:       RoleAdmin,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", updated.Name)
	assert.Equal(t, created.EmployeeID, updated.EmployeeID)
	assert.Equal(t, RoleUser, updated.Role)
	assert.Equal(t, created.JoinDate, updated.JoinDate)
}
