package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/attendo/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend HTTP API
//	-b string   backend selection: "live" or "mock"
//	-f string   path of the local session database
//	-t int      position fetch timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "backend: live or mock")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "local session database path")
	positionTimeout := fs.Int("t", int(cfg.PositionTimeout.Seconds()), "position fetch timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PositionTimeout = time.Duration(*positionTimeout) * time.Second
}
