package attendance

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/attendo/internal/common"
	"github.com/dmitrijs2005/attendo/internal/geo"
	"github.com/dmitrijs2005/attendo/internal/server/config"
)

type Service struct {
	repo Repository

	officeLat    float64
	officeLon    float64
	radiusKm     float64
	workdayStart string
	lateGrace    time.Duration

	now func() time.Time
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:         repo,
		officeLat:    cfg.OfficeLatitude,
		officeLon:    cfg.OfficeLongitude,
		radiusKm:     cfg.OfficeRadiusKm,
		workdayStart: cfg.WorkdayStart,
		lateGrace:    cfg.LateGrace,
		now:          time.Now,
	}
}

// Mark validates the position against the office radius and stores the raw
// event. No dedup happens here: history derives a day from first-in and
// last-out, so repeated marks only widen the recorded span.
func (s *Service) Mark(ctx context.Context, userID, kind string, lat, lon, accuracy float64, address string, at time.Time) (*Mark, error) {
	if kind != KindCheckIn && kind != KindCheckOut {
		return nil, fmt.Errorf("%w: unknown mark kind %q", common.ErrorValidation, kind)
	}

	if !geo.WithinRadius(s.officeLat, s.officeLon, lat, lon, s.radiusKm) {
		return nil, fmt.Errorf("%w: position outside office radius", common.ErrorValidation)
	}

	if at.IsZero() {
		at = s.now()
	}

	mark := &Mark{
		UserID:     userID,
		Kind:       kind,
		Latitude:   lat,
		Longitude:  lon,
		Accuracy:   accuracy,
		Address:    address,
		RecordedAt: at.UTC(),
	}

	return s.repo.Create(ctx, mark)
}

func periodDays(period string) (int, error) {
	switch period {
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	case "year":
		return 365, nil
	}
	return 0, fmt.Errorf("%w: unknown period %q", common.ErrorValidation, period)
}

// History derives the per-day records for the trailing window ending today,
// newest first. Weekends are skipped. A weekday without a check-in is
// absent; a first check-in after workday start plus the grace interval is
// late; hours span from the first check-in to the last check-out, rounded
// to one decimal.
func (s *Service) History(ctx context.Context, userID, period string) ([]DayRecord, error) {
	days, err := periodDays(period)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := today.AddDate(0, 0, -(days - 1))

	marks, err := s.repo.ListRange(ctx, userID, from, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]Mark)
	for _, m := range marks {
		key := m.RecordedAt.In(now.Location()).Format("2006-01-02")
		byDate[key] = append(byDate[key], m)
	}

	var records []DayRecord
	for day := today; !day.Before(from); day = day.AddDate(0, 0, -1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		records = append(records, s.deriveDay(day, byDate[day.Format("2006-01-02")]))
	}

	return records, nil
}

func (s *Service) deriveDay(day time.Time, marks []Mark) DayRecord {
	rec := DayRecord{
		ID:   day.Format("2006-01-02"),
		Date: day.Format("2006-01-02"),
		Day:  day.Weekday().String(),
	}

	var firstIn, lastOut *Mark
	for i := range marks {
		m := &marks[i]
		switch m.Kind {
		case KindCheckIn:
			if firstIn == nil || m.RecordedAt.Before(firstIn.RecordedAt) {
				firstIn = m
			}
		case KindCheckOut:
			if lastOut == nil || m.RecordedAt.After(lastOut.RecordedAt) {
				lastOut = m
			}
		}
	}

	if firstIn == nil {
		rec.Status = StatusAbsent
		return rec
	}

	rec.Status = StatusPresent
	deadline := s.lateDeadline(day)
	if !deadline.IsZero() && firstIn.RecordedAt.In(day.Location()).After(deadline) {
		rec.Status = StatusLate
	}

	rec.CheckIn = firstIn.RecordedAt.In(day.Location()).Format("3:04 PM")
	rec.Location = firstIn.Address

	if lastOut != nil && lastOut.RecordedAt.After(firstIn.RecordedAt) {
		rec.CheckOut = lastOut.RecordedAt.In(day.Location()).Format("3:04 PM")
		rec.Hours = math.Round(lastOut.RecordedAt.Sub(firstIn.RecordedAt).Hours()*10) / 10
	}

	return rec
}

// lateDeadline resolves the configured "15:04" workday start against the
// given day and adds the grace interval. A malformed setting disables
// lateness detection instead of failing history.
func (s *Service) lateDeadline(day time.Time) time.Time {
	parts := strings.SplitN(s.workdayStart, ":", 2)
	if len(parts) != 2 {
		return time.Time{}
	}
	hour, err1 := strconv.Atoi(parts[0])
	min, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return time.Time{}
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
	return start.Add(s.lateGrace)
}
