// Package config loads application configuration from environment variables
// into tagged structs.
//
// It wraps github.com/joho/godotenv, which reads an optional .env file once
// per process, and github.com/caarlos0/env/v11, which parses the environment
// into struct fields using `env`, `envDefault` and `envSeparator` tags.
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// LoadFrom parses from an explicit map instead of the process environment,
// which keeps tests independent of each other and of the host.
//
// Parsing failures wrap ErrParsingConfig.
package config
