package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dmitrijs2005/attendo/internal/client/models"
)

// dayLabel names the newest history row. On a weekend the newest row is the
// previous workday, not today.
func dayLabel(date string, now time.Time) string {
	if date == now.Format("2006-01-02") {
		return "Today"
	}
	return "Last workday"
}

// Dashboard prints a greeting, today's attendance state and the weekly
// summary counters.
func (a *App) Dashboard(ctx context.Context) error {
	s := a.session.Current()
	if s.User != nil {
		fmt.Printf("Hello, %s (%s)\n", s.User.Name, s.User.Position)
	}

	records, err := a.attendance.History(ctx, models.PeriodWeek)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(records) > 0 {
		latest := records[0]
		fmt.Printf("%s (%s): %s", dayLabel(latest.Date, time.Now()), latest.Date, latest.Status)
		if latest.CheckIn != "" {
			fmt.Printf(", in %s", latest.CheckIn)
		}
		if latest.CheckOut != "" {
			fmt.Printf(", out %s", latest.CheckOut)
		}
		fmt.Println()
	}

	sum := a.attendance.Summarize(records)
	fmt.Printf("This week: %d present, %d late, %d absent\n", sum.Present, sum.Late, sum.Absent)
	return nil
}
