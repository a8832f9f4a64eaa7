// Package models defines client-side data models used by the Attendo CLI.
package models

import "time"

// Role selects the account kind; role-specific registration payloads are
// dispatched through the same API interface.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserRecord is the cached profile of the authenticated user. The session
// store owns the authoritative copy; commands work on transient copies and
// reconcile through the profile update API.
type UserRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	EmployeeID   string `json:"employeeId"`
	JoinDate     string `json:"joinDate"`
	WorkSchedule string `json:"workSchedule"`
	Phone        string `json:"phone"`
	Role         Role   `json:"role"`
}

// Session is the locally persisted proof of authentication. Tokens and the
// user record are set and cleared together; a partial session counts as
// unauthenticated.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *UserRecord
}

// Authenticated reports whether the session carries both a token and a
// cached user record.
func (s Session) Authenticated() bool {
	return s.AccessToken != "" && s.User != nil
}

// LocationSample is a single position fix. Ephemeral: produced by the
// location provider, consumed by an attendance mark, never persisted.
type LocationSample struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

// MarkKind tags an attendance mark as a check-in or a check-out.
type MarkKind string

const (
	MarkCheckIn  MarkKind = "check-in"
	MarkCheckOut MarkKind = "check-out"
)

// AttendanceStatus classifies a day in the attendance history.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
)

// AttendanceRecord is one day of history as returned by the backend.
// History is generated per request; the client never stores it.
type AttendanceRecord struct {
	ID       string           `json:"id"`
	Date     string           `json:"date"`
	Day      string           `json:"day"`
	Status   AttendanceStatus `json:"status"`
	CheckIn  string           `json:"checkIn,omitempty"`
	CheckOut string           `json:"checkOut,omitempty"`
	Location string           `json:"location,omitempty"`
	Hours    float64          `json:"hours,omitempty"`
}

// Period bounds an attendance history query.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ValidPeriod reports whether p is one of the supported history periods.
func ValidPeriod(p Period) bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// Receipt acknowledges a submitted attendance mark.
type Receipt struct {
	Kind      MarkKind       `json:"type"`
	Address   string         `json:"address"`
	Timestamp time.Time      `json:"timestamp"`
	Sample    LocationSample `json:"location"`
}
