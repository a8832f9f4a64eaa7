package location

import (
	"context"
	"math/rand"
	"time"

	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/common"
)

// StaticProvider reports a fixed position from configuration. It is the CLI
// stand-in for a device GPS: the permission switch and a little accuracy
// jitter let the rest of the flow behave as it would against real hardware.
type StaticProvider struct {
	Latitude   float64
	Longitude  float64
	AccuracyM  float64
	Permission bool

	now func() time.Time
}

func NewStaticProvider(lat, lon, accuracyM float64, permission bool) *StaticProvider {
	return &StaticProvider{
		Latitude:   lat,
		Longitude:  lon,
		AccuracyM:  accuracyM,
		Permission: permission,
		now:        time.Now,
	}
}

func (p *StaticProvider) RequestPermission(ctx context.Context) error {
	if !p.Permission {
		return common.ErrPermissionDenied
	}
	return nil
}

func (p *StaticProvider) CurrentPosition(ctx context.Context, maxAge, timeout time.Duration) (models.LocationSample, error) {
	if !p.Permission {
		return models.LocationSample{}, common.ErrPermissionDenied
	}
	select {
	case <-ctx.Done():
		return models.LocationSample{}, common.ErrPositionTimeout
	default:
	}

	accuracy := p.AccuracyM
	if accuracy > 0 {
		accuracy += rand.Float64() * 5
	}

	return models.LocationSample{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Accuracy:  accuracy,
		Timestamp: p.now(),
	}, nil
}
