package attendance

import "time"

const (
	KindCheckIn  = "check-in"
	KindCheckOut = "check-out"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

// Mark is one raw attendance event. History is derived from marks per day:
// the first check-in and the last check-out decide the day record, so
// duplicate submissions are harmless.
type Mark struct {
	ID         string
	UserID     string
	Kind       string
	Latitude   float64
	Longitude  float64
	Accuracy   float64
	Address    string
	RecordedAt time.Time
}

// DayRecord is one derived day of attendance history.
type DayRecord struct {
	ID       string
	Date     string
	Day      string
	Status   string
	CheckIn  string
	CheckOut string
	Location string
	Hours    float64
}
