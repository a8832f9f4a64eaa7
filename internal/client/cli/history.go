package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/attendo/internal/client/models"
)

// History prints the attendance records for the requested period, newest
// first, one line per day.
func (a *App) History(ctx context.Context, period models.Period) error {
	records, err := a.attendance.History(ctx, period)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, r := range records {
		line := fmt.Sprintf("%s %-9s %-7s", r.Date, r.Day, r.Status)
		if r.Status != models.StatusAbsent {
			line += fmt.Sprintf("  %s - %s  %.1fh  %s", r.CheckIn, r.CheckOut, r.Hours, r.Location)
		}
		fmt.Println(line)
	}

	sum := a.attendance.Summarize(records)
	fmt.Printf("%d days: %d present, %d late, %d absent\n", len(records), sum.Present, sum.Late, sum.Absent)
	return nil
}
