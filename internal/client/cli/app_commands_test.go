package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/attendo/internal/client/api"
	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/client/session"
	"github.com/dmitrijs2005/attendo/internal/client/services"
	"github.com/dmitrijs2005/attendo/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := getPassword
	getPassword = func(io.Writer, string) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = old })
}

type fakeAuth struct {
	loginRole  models.Role
	loginID    string
	loginPw    string
	loginErr   error
	regRole    models.Role
	regForm    api.RegistrationForm
	regConfirm string
	regErr     error
	loggedOut  bool

	deleted       bool
	deleteErr     error
	privilegeID   string
	privilegeRole models.Role
}

func (f *fakeAuth) Login(ctx context.Context, role models.Role, identifier string, password []byte) error {
	f.loginRole, f.loginID, f.loginPw = role, identifier, string(password)
	return f.loginErr
}
func (f *fakeAuth) Register(ctx context.Context, role models.Role, form api.RegistrationForm, confirm string) error {
	f.regRole, f.regForm, f.regConfirm = role, form, confirm
	return f.regErr
}
func (f *fakeAuth) Logout(ctx context.Context) error { f.loggedOut = true; return nil }
func (f *fakeAuth) DeleteAccount(ctx context.Context) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = true
	return nil
}
func (f *fakeAuth) UpdateAdminPrivileges(ctx context.Context, userID string, role models.Role) error {
	f.privilegeID, f.privilegeRole = userID, role
	return nil
}
func (f *fakeAuth) CheckAuthStatus(ctx context.Context) bool { return false }
func (f *fakeAuth) Close(ctx context.Context) error          { return nil }

type fakeAttendance struct {
	period  models.Period
	records []models.AttendanceRecord
	err     error
}

func (f *fakeAttendance) History(ctx context.Context, period models.Period) ([]models.AttendanceRecord, error) {
	f.period = period
	return f.records, f.err
}
func (f *fakeAttendance) Summarize(records []models.AttendanceRecord) services.Summary {
	return services.NewAttendanceService(nil).Summarize(records)
}

type fakeProfiles struct {
	current   *models.UserRecord
	updated   *models.UserRecord
	updateErr error
}

func (f *fakeProfiles) Get(ctx context.Context) (*models.UserRecord, error) {
	return f.current, nil
}
func (f *fakeProfiles) Update(ctx context.Context, u models.UserRecord) (*models.UserRecord, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	out := u
	f.updated = &out
	return &out, nil
}

type fakeMarker struct {
	sample     models.LocationSample
	acquireErr error
	within     bool
	distKm     float64
	markKind   models.MarkKind
	markErr    error
	marked     int
}

func (f *fakeMarker) Acquire(ctx context.Context) (models.LocationSample, error) {
	return f.sample, f.acquireErr
}
func (f *fakeMarker) WithinOffice(sample models.LocationSample) (bool, float64) {
	return f.within, f.distKm
}
func (f *fakeMarker) Mark(ctx context.Context, kind models.MarkKind, sample models.LocationSample) (*models.Receipt, error) {
	f.marked++
	f.markKind = kind
	if f.markErr != nil {
		return nil, f.markErr
	}
	return &models.Receipt{Kind: kind, Address: "Office", Sample: sample}, nil
}

func newTestApp(reader *bufio.Reader) (*App, *fakeAuth, *fakeAttendance, *fakeProfiles, *fakeMarker) {
	auth := &fakeAuth{}
	att := &fakeAttendance{}
	prof := &fakeProfiles{}
	mk := &fakeMarker{}
	a := &App{
		session:     session.NewManager(nil),
		authService: auth,
		attendance:  att,
		profiles:    prof,
		location:    mk,
		reader:      reader,
	}
	return a, auth, att, prof, mk
}

// ------------ tests ------------

func TestApp_Login_Delegates(t *testing.T) {
	a, auth, _, _, _ := newTestApp(readerFromLines(
		"",                 // role, default user
		"john@example.com", // email
	))
	stubPassword(t, "password123")

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, models.RoleUser, auth.loginRole)
	assert.Equal(t, "john@example.com", auth.loginID)
	assert.Equal(t, "password123", auth.loginPw)
}

func TestApp_Login_RejectsUnknownRole(t *testing.T) {
	a, auth, _, _, _ := newTestApp(readerFromLines("superuser"))

	err := a.Login(context.Background())
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, auth.loginID)
}

func TestApp_Register_CollectsForm(t *testing.T) {
	a, auth, _, _, _ := newTestApp(readerFromLines(
		"",                 // role
		"John Doe",         // name
		"john@example.com", // email
		"",                 // phone
		"Engineering",      // department
		"Developer",        // position
	))
	stubPassword(t, "password123")

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, models.RoleUser, auth.regRole)
	assert.Equal(t, "John Doe", auth.regForm.Name)
	assert.Equal(t, "john@example.com", auth.regForm.Email)
	assert.Equal(t, "Engineering", auth.regForm.Department)
	assert.Equal(t, "password123", auth.regForm.Password)
	assert.Equal(t, "password123", auth.regConfirm)
}

func TestApp_CheckIn_WithinRadius(t *testing.T) {
	a, _, _, _, mk := newTestApp(readerFromLines())
	mk.within = true
	mk.distKm = 0.1

	require.NoError(t, a.CheckIn(context.Background()))
	assert.Equal(t, 1, mk.marked)
	assert.Equal(t, models.MarkCheckIn, mk.markKind)
}

func TestApp_CheckIn_OutsideRadiusBlocks(t *testing.T) {
	a, _, _, _, mk := newTestApp(readerFromLines())
	mk.within = false
	mk.distKm = 12.5

	err := a.CheckIn(context.Background())
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Equal(t, 0, mk.marked)
}

func TestApp_CheckOut_PropagatesAcquireFailure(t *testing.T) {
	a, _, _, _, mk := newTestApp(readerFromLines())
	mk.acquireErr = common.ErrPermissionDenied

	err := a.CheckOut(context.Background())
	require.ErrorIs(t, err, common.ErrPermissionDenied)
	assert.Equal(t, 0, mk.marked)
}

func TestApp_History_PassesPeriod(t *testing.T) {
	a, _, att, _, _ := newTestApp(readerFromLines())
	att.records = []models.AttendanceRecord{
		{ID: "2026-08-28", Date: "2026-08-28", Day: "Friday", Status: models.StatusPresent, CheckIn: "9:05 AM", CheckOut: "5:10 PM", Hours: 8.1, Location: "Office Building"},
		{ID: "2026-08-27", Date: "2026-08-27", Day: "Thursday", Status: models.StatusAbsent},
	}

	require.NoError(t, a.History(context.Background(), models.PeriodMonth))
	assert.Equal(t, models.PeriodMonth, att.period)
}

func TestApp_History_PropagatesError(t *testing.T) {
	a, _, att, _, _ := newTestApp(readerFromLines())
	att.err = errors.New("backend down")

	require.Error(t, a.History(context.Background(), models.PeriodWeek))
}

func TestApp_EditProfile_EmptyAnswersKeepValues(t *testing.T) {
	a, _, _, prof, _ := newTestApp(readerFromLines("", "", "", "", ""))
	prof.current = &models.UserRecord{
		ID: "u-1", Name: "John Doe", Email: "john@example.com",
		Phone: "+12025550147", Department: "Engineering", Position: "Developer",
		EmployeeID: "EMP001",
	}

	require.NoError(t, a.EditProfile(context.Background()))

	require.NotNil(t, prof.updated)
	assert.Equal(t, "John Doe", prof.updated.Name)
	assert.Equal(t, "EMP001", prof.updated.EmployeeID)
}

func TestApp_EditProfile_ChangesName(t *testing.T) {
	a, _, _, prof, _ := newTestApp(readerFromLines("Jane Doe", "", "", "", ""))
	prof.current = &models.UserRecord{Name: "John Doe", Email: "john@example.com"}

	require.NoError(t, a.EditProfile(context.Background()))

	require.NotNil(t, prof.updated)
	assert.Equal(t, "Jane Doe", prof.updated.Name)
	assert.Equal(t, "john@example.com", prof.updated.Email)
}

func TestApp_DeleteAccount_Confirmed(t *testing.T) {
	a, auth, _, _, _ := newTestApp(readerFromLines("yes"))

	require.NoError(t, a.DeleteAccount(context.Background()))
	assert.True(t, auth.deleted)
}

func TestApp_DeleteAccount_DefaultAborts(t *testing.T) {
	a, auth, _, _, _ := newTestApp(readerFromLines(""))

	require.NoError(t, a.DeleteAccount(context.Background()))
	assert.False(t, auth.deleted)
}

func TestApp_Privileges_Delegates(t *testing.T) {
	a, auth, _, _, _ := newTestApp(readerFromLines())

	require.NoError(t, a.Privileges(context.Background(), "u-7", "admin"))
	assert.Equal(t, "u-7", auth.privilegeID)
	assert.Equal(t, models.RoleAdmin, auth.privilegeRole)
}

func TestApp_Privileges_RejectsUnknownRole(t *testing.T) {
	a, auth, _, _, _ := newTestApp(readerFromLines())

	err := a.Privileges(context.Background(), "u-7", "superuser")
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, auth.privilegeID)
}

func TestDayLabel(t *testing.T) {
	friday := time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", dayLabel("2026-08-28", friday))
	assert.Equal(t, "Last workday", dayLabel("2026-08-28", saturday))
}

func TestApp_Logout_Delegates(t *testing.T) {
	a, auth, _, _, _ := newTestApp(readerFromLines())

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, auth.loggedOut)
}
