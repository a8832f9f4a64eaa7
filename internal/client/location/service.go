package location

import (
	"context"
	"time"

	"github.com/dmitrijs2005/attendo/internal/client/api"
	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/geo"
)

// Office describes the allowed check-in area.
type Office struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// Service acquires positions and submits attendance marks. Permission
// denial, timeout and submission failure are all terminal for the attempt;
// a manual refresh re-runs the whole acquisition.
type Service struct {
	provider Provider
	geocoder Geocoder
	client   api.Client
	office   Office

	maxAge  time.Duration
	timeout time.Duration
	now     func() time.Time
}

func NewService(provider Provider, geocoder Geocoder, client api.Client, office Office, maxAge, timeout time.Duration) *Service {
	return &Service{
		provider: provider,
		geocoder: geocoder,
		client:   client,
		office:   office,
		maxAge:   maxAge,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Acquire requests permission and fetches a fresh position within the
// configured timeout.
func (s *Service) Acquire(ctx context.Context) (models.LocationSample, error) {
	if err := s.provider.RequestPermission(ctx); err != nil {
		return models.LocationSample{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.provider.CurrentPosition(ctx, s.maxAge, s.timeout)
}

// ResolveAddress reverse-geocodes the sample. Best-effort: any failure
// degrades to nil rather than aborting the flow.
func (s *Service) ResolveAddress(ctx context.Context, sample models.LocationSample) *Address {
	if s.geocoder == nil {
		return nil
	}
	addr, err := s.geocoder.Reverse(ctx, sample.Latitude, sample.Longitude)
	if err != nil {
		return nil
	}
	return addr
}

// WithinOffice reports whether the sample lies inside the configured
// check-in radius, and the distance in kilometers.
func (s *Service) WithinOffice(sample models.LocationSample) (bool, float64) {
	d := geo.DistanceKm(s.office.Latitude, s.office.Longitude, sample.Latitude, sample.Longitude)
	return d <= s.office.RadiusKm, d
}

// Mark bundles the sample with a resolved address and an ISO-8601 timestamp
// and submits the attendance event. Duplicate submissions are not filtered
// here; the backend derives history from first-in/last-out.
func (s *Service) Mark(ctx context.Context, kind models.MarkKind, sample models.LocationSample) (*models.Receipt, error) {
	address := "Unknown location"
	if addr := s.ResolveAddress(ctx, sample); addr != nil {
		if full := addr.Full(); full != "" {
			address = full
		}
	}

	return s.client.MarkAttendance(ctx, kind, sample, address, s.now())
}
