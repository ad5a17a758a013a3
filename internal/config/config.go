// Package config provides configuration options for the pocketbank binaries
// using command-line flags, environment variables, and an optional JSON file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the directory server's listening address (ip:port).
	Addr string

	// DatabaseDSN holds the directory server's Postgres connection string.
	DatabaseDSN string

	// LogLevel sets the zap log level ("debug", "info", "warn", "error").
	LogLevel string

	// APIBaseURL is the base URL of the directory API the app talks to.
	APIBaseURL string

	// StorePath is the path of the local credential store file.
	StorePath string

	// TimeoutSeconds bounds every remote call made by the session core.
	TimeoutSeconds int

	// Restore enables the relaxed saved-session restore on app start.
	// The default (false) is the always-re-authenticate policy.
	Restore bool

	// Config is the path to the JSON config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run directory server on ip:port")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.APIBaseURL, "url", "http://localhost:8080/api/v1", "directory API base URL")
	flag.StringVar(&options.StorePath, "store", "keystore.json", "path to the local credential store")
	flag.IntVar(&options.TimeoutSeconds, "timeout", 10, "remote call timeout in seconds")
	flag.BoolVar(&options.Restore, "restore", false, "restore a saved session on start")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if baseURL := os.Getenv("API_BASE_URL"); baseURL != "" {
		options.APIBaseURL = baseURL
	}

	return options
}
