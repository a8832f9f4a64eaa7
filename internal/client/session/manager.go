package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/dbx"
)

// Manager owns the authoritative Session. It loads persisted state at
// startup, keeps an in-memory copy guarded by a mutex, and notifies
// subscribers on every change so commands can react to auth-state
// transitions without threading callbacks through each other.
type Manager struct {
	db *sql.DB

	mu      sync.Mutex
	current models.Session
	subs    []func(models.Session)
}

func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

func (m *Manager) repo(db dbx.DBTX) Repository {
	return NewSQLiteRepository(db)
}

// Load reads the persisted session into memory. A missing or partial
// session (token without user, or vice versa) loads as unauthenticated.
func (m *Manager) Load(ctx context.Context) error {
	repo := m.repo(m.db)

	access, err := repo.Get(ctx, KeyAccessToken)
	if err != nil {
		return err
	}
	refresh, err := repo.Get(ctx, KeyRefreshToken)
	if err != nil {
		return err
	}
	userData, err := repo.Get(ctx, KeyUserData)
	if err != nil {
		return err
	}

	s := models.Session{AccessToken: string(access), RefreshToken: string(refresh)}
	if len(userData) > 0 {
		var u models.UserRecord
		if err := json.Unmarshal(userData, &u); err != nil {
			return fmt.Errorf("corrupt cached user record: %w", err)
		}
		s.User = &u
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return nil
}

// Current returns a copy of the in-memory session.
func (m *Manager) Current() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Authenticated reports whether both a token and a user record are present.
func (m *Manager) Authenticated() bool {
	return m.Current().Authenticated()
}

// Set persists the session atomically: both tokens and the user record are
// written in a single transaction, then the in-memory copy is replaced and
// subscribers are notified.
func (m *Manager) Set(ctx context.Context, s models.Session) error {
	userData, err := json.Marshal(s.User)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := m.repo(tx)
		if err := repo.Set(ctx, KeyAccessToken, []byte(s.AccessToken)); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyRefreshToken, []byte(s.RefreshToken)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUserData, userData)
	})
	if err != nil {
		return err
	}

	m.swap(s)
	return nil
}

// UpdateUser replaces only the cached user record, keeping tokens intact.
// Used after a successful profile update.
func (m *Manager) UpdateUser(ctx context.Context, u *models.UserRecord) error {
	userData, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := m.repo(m.db).Set(ctx, KeyUserData, userData); err != nil {
		return err
	}

	m.mu.Lock()
	s := m.current
	s.User = u
	m.current = s
	subs := append([]func(models.Session){}, m.subs...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
	return nil
}

// Clear wipes the persisted session and the in-memory copy. All three keys
// are removed in one transaction.
func (m *Manager) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return m.repo(tx).Clear(ctx)
	})
	if err != nil {
		return err
	}

	m.swap(models.Session{})
	return nil
}

// Subscribe registers fn to run after every session change. Subscribers are
// called synchronously from the mutating goroutine.
func (m *Manager) Subscribe(fn func(models.Session)) {
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	m.mu.Unlock()
}

// AccessToken returns the current bearer token ("" when logged out). It lets
// the API client consume the manager as a token source.
func (m *Manager) AccessToken() string {
	return m.Current().AccessToken
}

// RefreshToken returns the current refresh token ("" when logged out).
func (m *Manager) RefreshToken() string {
	return m.Current().RefreshToken
}

// Invalidate clears the session in response to a 401. Failing to clear the
// local store is not fatal for the caller: the in-memory state demotes to
// unauthenticated regardless.
func (m *Manager) Invalidate(ctx context.Context) {
	if err := m.Clear(ctx); err != nil {
		m.swap(models.Session{})
	}
}

func (m *Manager) swap(s models.Session) {
	m.mu.Lock()
	m.current = s
	subs := append([]func(models.Session){}, m.subs...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}
