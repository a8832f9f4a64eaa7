package api

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/common"
	"github.com/google/uuid"
)

// MockClient is the backend stand-in for development and tests: in-memory
// accounts plus a deterministic attendance-history generator. It honors the
// same error contract as the live client.
type MockClient struct {
	tokens TokenSource
	now    func() time.Time

	mu        sync.Mutex
	accounts  map[string]mockAccount
	profiles  map[string]models.UserRecord
	currentID string
}

type mockAccount struct {
	password string
	userID   string
	role     models.Role
}

// userSource is satisfied by token sources that also cache the signed-in
// user's record. The session manager does, which lets the mock resolve who
// the token belongs to after a process restart.
type userSource interface {
	Current() models.Session
}

// demoUserID identifies the account seeded by NewMockClient.
const demoUserID = "1"

func NewMockClient(tokens TokenSource) *MockClient {
	c := &MockClient{
		tokens:   tokens,
		now:      time.Now,
		accounts: make(map[string]mockAccount),
		profiles: make(map[string]models.UserRecord),
	}

	// Seed demo account so the CLI works out of the box in mock mode.
	demo := models.UserRecord{
		ID:           demoUserID,
		Name:         "John Doe",
		Email:        "john@example.com",
		Department:   "Engineering",
		Position:     "Software Developer",
		EmployeeID:   "EMP001",
		JoinDate:     "2023-01-15",
		WorkSchedule: "9:00 AM - 5:00 PM",
		Phone:        "+1234567890",
		Role:         models.RoleUser,
	}
	c.accounts[demo.Email] = mockAccount{password: "password123", userID: demo.ID, role: demo.Role}
	c.profiles[demo.ID] = demo

	return c
}

func (c *MockClient) Login(ctx context.Context, role models.Role, identifier, password string) (*LoginResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	acc, ok := c.accounts[identifier]
	if !ok || acc.password != password || acc.role != role {
		return nil, common.ErrInvalidCredentials
	}

	c.currentID = acc.userID
	return &LoginResult{
		AccessToken:  "mock_access_" + uuid.NewString(),
		RefreshToken: "mock_refresh_" + uuid.NewString(),
		UserID:       acc.userID,
		Role:         acc.role,
	}, nil
}

func (c *MockClient) Register(ctx context.Context, role models.Role, form RegistrationForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.accounts[form.Email]; exists {
		return &common.RequestError{Status: 409}
	}

	id := uuid.NewString()
	c.accounts[form.Email] = mockAccount{password: form.Password, userID: id, role: role}
	c.profiles[id] = models.UserRecord{
		ID:           id,
		Name:         form.Name,
		Email:        form.Email,
		Department:   orDefault(form.Department, "Engineering"),
		Position:     orDefault(form.Position, "Software Developer"),
		EmployeeID:   fmt.Sprintf("EMP%03d", len(c.accounts)),
		JoinDate:     c.now().Format("2006-01-02"),
		WorkSchedule: "9:00 AM - 5:00 PM",
		Phone:        form.Phone,
		Role:         role,
	}
	return nil
}

func (c *MockClient) Logout(ctx context.Context, refreshToken string) error {
	return nil
}

// resolveCurrentID names the account behind the current token. Mock tokens
// are opaque, so the most recent in-process login wins; after a restart the
// user record cached alongside the persisted token identifies the account,
// and a bare token falls back to the seeded demo account. Callers hold c.mu.
func (c *MockClient) resolveCurrentID() string {
	if c.currentID != "" {
		return c.currentID
	}

	if src, ok := c.tokens.(userSource); ok {
		if u := src.Current().User; u != nil && u.ID != "" {
			if _, known := c.profiles[u.ID]; !known {
				c.profiles[u.ID] = *u
			}
			c.currentID = u.ID
			return c.currentID
		}
	}

	c.currentID = demoUserID
	return c.currentID
}

func (c *MockClient) GetProfile(ctx context.Context) (*models.UserRecord, error) {
	if c.tokens.AccessToken() == "" {
		return nil, common.ErrAuthRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.profiles[c.resolveCurrentID()]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := p
	return &u, nil
}

func (c *MockClient) UpdateProfile(ctx context.Context, u models.UserRecord) (*models.UserRecord, error) {
	if c.tokens.AccessToken() == "" {
		return nil, common.ErrAuthRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Resolving first also restores the cached record after a restart, so
	// the lookup below finds it.
	id := c.resolveCurrentID()
	if u.ID == "" {
		u.ID = id
	}
	cur, ok := c.profiles[u.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	// ID, employee id, role and join date are immutable.
	u.EmployeeID = cur.EmployeeID
	u.Role = cur.Role
	u.JoinDate = cur.JoinDate
	c.profiles[u.ID] = u

	updated := u
	return &updated, nil
}

func (c *MockClient) DeleteAccount(ctx context.Context, role models.Role) error {
	if c.tokens.AccessToken() == "" {
		return common.ErrAuthRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.resolveCurrentID()
	p, ok := c.profiles[id]
	if !ok {
		return common.ErrorNotFound
	}

	delete(c.accounts, p.Email)
	delete(c.profiles, id)
	c.currentID = ""
	return nil
}

func (c *MockClient) UpdateAdminPrivileges(ctx context.Context, userID string, role models.Role) (*models.UserRecord, error) {
	if c.tokens.AccessToken() == "" {
		return nil, common.ErrAuthRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	caller, ok := c.profiles[c.resolveCurrentID()]
	if !ok || caller.Role != models.RoleAdmin {
		return nil, &common.RequestError{Status: 403}
	}

	target, ok := c.profiles[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	target.Role = role
	c.profiles[userID] = target
	if acc, ok := c.accounts[target.Email]; ok {
		acc.role = role
		c.accounts[target.Email] = acc
	}

	updated := target
	return &updated, nil
}

func (c *MockClient) AttendanceHistory(ctx context.Context, period models.Period) ([]models.AttendanceRecord, error) {
	if c.tokens.AccessToken() == "" {
		return nil, common.ErrAuthRequired
	}
	if !models.ValidPeriod(period) {
		return nil, &common.RequestError{Status: 400}
	}
	return GenerateHistory(c.now(), period), nil
}

func (c *MockClient) MarkAttendance(ctx context.Context, kind models.MarkKind, sample models.LocationSample, address string, at time.Time) (*models.Receipt, error) {
	if c.tokens.AccessToken() == "" {
		return nil, common.ErrAuthRequired
	}
	if address == "" {
		address = "Unknown location"
	}
	return &models.Receipt{Kind: kind, Address: address, Timestamp: at.UTC(), Sample: sample}, nil
}

func (c *MockClient) Ping(ctx context.Context) error { return nil }

func (c *MockClient) Close() error { return nil }

// periodDays maps a history period to the number of trailing calendar days.
func periodDays(p models.Period) int {
	switch p {
	case models.PeriodMonth:
		return 30
	case models.PeriodYear:
		return 365
	default:
		return 7
	}
}

// GenerateHistory produces the deterministic mock history: one record per
// weekday in the trailing window, newest first. Each day's status is drawn
// from a generator seeded by the date, so repeated calls agree. Present days
// carry check-in, check-out and worked hours; absent days carry nothing.
func GenerateHistory(now time.Time, period models.Period) []models.AttendanceRecord {
	days := periodDays(period)
	records := make([]models.AttendanceRecord, 0, days)

	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -i)
		wd := date.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}

		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		rnd := rand.New(rand.NewSource(day.Unix()))

		rec := models.AttendanceRecord{
			ID:     day.Format("2006-01-02"),
			Date:   day.Format("2006-01-02"),
			Day:    day.Format("Monday"),
			Status: models.StatusAbsent,
		}

		if rnd.Float64() >= 0.1 {
			inMinute := rnd.Intn(30)
			outMinute := rnd.Intn(30)
			checkIn := time.Date(day.Year(), day.Month(), day.Day(), 9, inMinute, 0, 0, time.UTC)
			checkOut := time.Date(day.Year(), day.Month(), day.Day(), 17, outMinute, 0, 0, time.UTC)

			rec.Status = models.StatusPresent
			rec.CheckIn = checkIn.Format("3:04 PM")
			rec.CheckOut = checkOut.Format("3:04 PM")
			rec.Hours = math.Round(checkOut.Sub(checkIn).Hours()*10) / 10
			rec.Location = "Office Building"
		}

		records = append(records, rec)
	}

	return records
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
