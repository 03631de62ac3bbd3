// Package config loads runtime configuration for the task manager CLI from
// built-in defaults, an optional JSON file (-c/-config) and command-line
// flags, in that order of precedence.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the task manager CLI.
//
//   - ServerURL: base URL of the REST API.
//   - SessionDBPath: SQLite file keeping the signed-in session between runs.
//   - RequestTimeout: upper bound for a single API request.
type Config struct {
	ServerURL      string
	SessionDBPath  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with defaults suitable for a local server.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.SessionDBPath = "session.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config from defaults, then JSON, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
