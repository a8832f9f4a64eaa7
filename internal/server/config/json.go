package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/attendo/internal/flagx"
	"github.com/dmitrijs2005/attendo/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "15m"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	OfficeLatitude               float64        `json:"office_latitude"`
	OfficeLongitude              float64        `json:"office_longitude"`
	OfficeRadiusKm               float64        `json:"office_radius_km"`
	WorkdayStart                 string         `json:"workday_start"`
	LateGrace                    timex.Duration `json:"late_grace"`
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

	cfg.EndpointAddr = jc.EndpointAddr
	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.SecretKey = jc.SecretKey
	cfg.AccessTokenValidityDuration = time.Duration(jc.AccessTokenValidityDuration.Duration)
	cfg.RefreshTokenValidityDuration = time.Duration(jc.RefreshTokenValidityDuration.Duration)
	cfg.OfficeLatitude = jc.OfficeLatitude
	cfg.OfficeLongitude = jc.OfficeLongitude
	cfg.OfficeRadiusKm = jc.OfficeRadiusKm
	cfg.WorkdayStart = jc.WorkdayStart
	cfg.LateGrace = time.Duration(jc.LateGrace.Duration)
}
