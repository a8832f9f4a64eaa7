// Package location wraps the position provider, reverse geocoding and the
// attendance-mark flow. The device geolocation source is an external
// collaborator hidden behind the Provider interface.
package location

import (
	"context"
	"time"

	"github.com/dmitrijs2005/attendo/internal/client/models"
)

// Provider is a one-shot position source.
//
// Contract:
//   - RequestPermission must precede any position fetch; denial returns
//     common.ErrPermissionDenied and is terminal for the attempt.
//   - CurrentPosition returns the freshest sample no older than maxAge, or
//     fails with common.ErrPositionTimeout once timeout elapses. A single
//     blocking call, not a stream.
type Provider interface {
	RequestPermission(ctx context.Context) error
	CurrentPosition(ctx context.Context, maxAge, timeout time.Duration) (models.LocationSample, error)
}
