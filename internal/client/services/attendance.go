package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/attendo/internal/client/api"
	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/common"
)

// Summary aggregates a history period for the dashboard.
type Summary struct {
	Present int
	Absent  int
	Late    int
}

// AttendanceService fetches history; the backend owns the records, the
// client only renders them.
type AttendanceService interface {
	History(ctx context.Context, period models.Period) ([]models.AttendanceRecord, error)
	Summarize(records []models.AttendanceRecord) Summary
}

type attendanceService struct {
	client api.Client
}

func NewAttendanceService(client api.Client) AttendanceService {
	return &attendanceService{client: client}
}

func (s *attendanceService) History(ctx context.Context, period models.Period) ([]models.AttendanceRecord, error) {
	if !models.ValidPeriod(period) {
		return nil, fmt.Errorf("%w: unknown period %q", common.ErrorValidation, period)
	}
	return s.client.AttendanceHistory(ctx, period)
}

func (s *attendanceService) Summarize(records []models.AttendanceRecord) Summary {
	var sum Summary
	for _, r := range records {
		switch r.Status {
		case models.StatusPresent:
			sum.Present++
		case models.StatusAbsent:
			sum.Absent++
		case models.StatusLate:
			sum.Late++
		}
	}
	return sum
}
