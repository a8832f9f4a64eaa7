package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/common"
)

// CheckIn acquires the current position, verifies it is inside the office
// radius and submits a check-in mark.
func (a *App) CheckIn(ctx context.Context) error {
	return a.mark(ctx, models.MarkCheckIn)
}

// CheckOut submits a check-out mark with the same location checks as CheckIn.
func (a *App) CheckOut(ctx context.Context) error {
	return a.mark(ctx, models.MarkCheckOut)
}

func (a *App) mark(ctx context.Context, kind models.MarkKind) error {
	sample, err := a.location.Acquire(ctx)
	if err != nil {
		reportLocationError(err)
		return err
	}

	ok, dist := a.location.WithinOffice(sample)
	if !ok {
		log.Printf("You are %.2f km from the office, outside the allowed radius", dist)
		return fmt.Errorf("%w: outside office radius", common.ErrorValidation)
	}

	receipt, err := a.location.Mark(ctx, kind, sample)
	if err != nil {
		log.Printf("Could not submit %s: %s", kind, err.Error())
		return err
	}

	fmt.Printf("%s recorded at %s (%s)\n", kind, receipt.Timestamp.Format("15:04"), receipt.Address)
	return nil
}

// Refresh re-acquires the position and reports distance to the office
// without submitting anything.
func (a *App) Refresh(ctx context.Context) error {
	sample, err := a.location.Acquire(ctx)
	if err != nil {
		reportLocationError(err)
		return err
	}

	ok, dist := a.location.WithinOffice(sample)
	fmt.Printf("Position: %.5f, %.5f (accuracy %.0f m)\n", sample.Latitude, sample.Longitude, sample.Accuracy)
	if ok {
		fmt.Printf("Within office radius (%.2f km away)\n", dist)
	} else {
		fmt.Printf("Outside office radius (%.2f km away)\n", dist)
	}
	return nil
}

func reportLocationError(err error) {
	switch {
	case errors.Is(err, common.ErrPermissionDenied):
		log.Printf("Location permission denied; enable it in the configuration")
	case errors.Is(err, common.ErrPositionTimeout):
		log.Printf("Timed out waiting for a position fix; try 'refresh'")
	default:
		log.Printf("Location error: %s", err.Error())
	}
}
