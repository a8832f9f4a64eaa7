package users

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Phone        string
	Department   string
	Position     string
	EmployeeID   string
	JoinDate     time.Time
	WorkSchedule string
	Role         string
	CreatedAt    time.Time
}
