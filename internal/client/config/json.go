package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/attendo/internal/flagx"
	"github.com/dmitrijs2005/attendo/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "15s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	ServerBaseURL      string         `json:"server_base_url"`
	Backend            string         `json:"backend"`
	DatabasePath       string         `json:"database_path"`
	GeocoderBaseURL    string         `json:"geocoder_base_url"`
	OfficeLatitude     float64        `json:"office_latitude"`
	OfficeLongitude    float64        `json:"office_longitude"`
	OfficeRadiusKm     float64        `json:"office_radius_km"`
	ProviderLatitude   float64        `json:"provider_latitude"`
	ProviderLongitude  float64        `json:"provider_longitude"`
	ProviderAccuracyM  float64        `json:"provider_accuracy_m"`
	ProviderPermission bool           `json:"provider_permission"`
	PositionMaxAge     timex.Duration `json:"position_max_age"`
	PositionTimeout    timex.Duration `json:"position_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags(); when no
// path is given, nothing is loaded. Read or unmarshal errors panic, matching
// the defaults -> json -> flags pipeline where a broken config file should
// stop startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerBaseURL = jc.ServerBaseURL
	cfg.Backend = jc.Backend
	cfg.DatabasePath = jc.DatabasePath
	cfg.GeocoderBaseURL = jc.GeocoderBaseURL
	cfg.OfficeLatitude = jc.OfficeLatitude
	cfg.OfficeLongitude = jc.OfficeLongitude
	cfg.OfficeRadiusKm = jc.OfficeRadiusKm
	cfg.ProviderLatitude = jc.ProviderLatitude
	cfg.ProviderLongitude = jc.ProviderLongitude
	cfg.ProviderAccuracyM = jc.ProviderAccuracyM
	cfg.ProviderPermission = jc.ProviderPermission
	cfg.PositionMaxAge = time.Duration(jc.PositionMaxAge.Duration)
	cfg.PositionTimeout = time.Duration(jc.PositionTimeout.Duration)
}
