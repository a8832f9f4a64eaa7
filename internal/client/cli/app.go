package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/attendo/internal/client/api"
	"github.com/dmitrijs2005/attendo/internal/client/config"
	"github.com/dmitrijs2005/attendo/internal/client/location"
	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/client/services"
	"github.com/dmitrijs2005/attendo/internal/client/session"

	_ "modernc.org/sqlite"
)

// marker is the slice of the location service the commands consume.
type marker interface {
	Acquire(ctx context.Context) (models.LocationSample, error)
	WithinOffice(sample models.LocationSample) (bool, float64)
	Mark(ctx context.Context, kind models.MarkKind, sample models.LocationSample) (*models.Receipt, error)
}

type App struct {
	config      *config.Config
	session     *session.Manager
	authService services.AuthService
	profiles    services.ProfileService
	attendance  services.AttendanceService
	location    marker
	userName    string
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := session.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	sm := session.NewManager(db)
	if err := sm.Load(ctx); err != nil {
		log.Printf("error loading session: %s", err.Error())
		return nil, err
	}

	var apiClient api.Client
	if c.Backend == config.BackendMock {
		apiClient = api.NewMockClient(sm)
	} else {
		apiClient = api.NewHTTPClient(c.ServerBaseURL, sm)
	}

	var geocoder location.Geocoder
	if c.GeocoderBaseURL != "" {
		geocoder = location.NewHTTPGeocoder(c.GeocoderBaseURL)
	}
	provider := location.NewStaticProvider(c.ProviderLatitude, c.ProviderLongitude, c.ProviderAccuracyM, c.ProviderPermission)
	office := location.Office{
		Latitude:  c.OfficeLatitude,
		Longitude: c.OfficeLongitude,
		RadiusKm:  c.OfficeRadiusKm,
	}
	ls := location.NewService(provider, geocoder, apiClient, office, c.PositionMaxAge, c.PositionTimeout)

	a := &App{
		config:      c,
		session:     sm,
		authService: services.NewAuthService(apiClient, sm),
		profiles:    services.NewProfileService(apiClient, sm),
		attendance:  services.NewAttendanceService(apiClient),
		location:    ls,
		reader:      bufio.NewReader(os.Stdin),
	}

	// Keeps the prompt in step with auth-state transitions, including the
	// forced logout after a 401.
	sm.Subscribe(func(s models.Session) {
		if s.User != nil {
			a.userName = s.User.Name
		} else {
			a.userName = ""
		}
	})
	if u := sm.Current().User; u != nil {
		a.userName = u.Name
	}

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}
