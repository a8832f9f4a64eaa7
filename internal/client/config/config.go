// Package config handles configuration for the CLI client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Attendo CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - Backend: which API client to use, "live" or "mock".
//   - DatabasePath: path of the local sqlite session database.
//   - GeocoderBaseURL: reverse-geocoding endpoint; empty disables geocoding.
//   - OfficeLatitude/OfficeLongitude/OfficeRadiusKm: the allowed check-in area.
//   - ProviderLatitude/ProviderLongitude/ProviderAccuracyM: coordinates the
//     static location provider reports (the CLI stand-in for a device GPS).
//   - ProviderPermission: whether the simulated location permission is granted.
//   - PositionMaxAge / PositionTimeout: freshness and deadline knobs for a
//     position fetch.
type Config struct {
	ServerBaseURL      string
	Backend            string
	DatabasePath       string
	GeocoderBaseURL    string
	OfficeLatitude     float64
	OfficeLongitude    float64
	OfficeRadiusKm     float64
	ProviderLatitude   float64
	ProviderLongitude  float64
	ProviderAccuracyM  float64
	ProviderPermission bool
	PositionMaxAge     time.Duration
	PositionTimeout    time.Duration
}

// BackendMock selects the in-memory API client; BackendLive the HTTP one.
const (
	BackendMock = "mock"
	BackendLive = "live"
)

// LoadDefaults populates c with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.Backend = BackendLive
	c.DatabasePath = "session.db"
	c.GeocoderBaseURL = ""
	c.OfficeLatitude = 40.7128
	c.OfficeLongitude = -74.0060
	c.OfficeRadiusKm = 0.5
	c.ProviderLatitude = 40.7128
	c.ProviderLongitude = -74.0060
	c.ProviderAccuracyM = 15
	c.ProviderPermission = true
	c.PositionMaxAge = 10 * time.Second
	c.PositionTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
