package main

import (
	"time"

	"github.com/dmitrymomot/drivecase/modules/casefolders"
	"github.com/dmitrymomot/drivecase/pkg/drive"
	"github.com/dmitrymomot/drivecase/pkg/httpserver"
	"github.com/dmitrymomot/drivecase/pkg/pg"
	"github.com/dmitrymomot/drivecase/svc/casetree"
	"github.com/dmitrymomot/drivecase/svc/portal"
	"github.com/dmitrymomot/drivecase/svc/registry"
)

// Config is the whole process configuration, read from the environment and
// an optional .env file.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	AppName  string `env:"APP_NAME" envDefault:"drivecase"`
	LogLevel string `env:"LOG_LEVEL"`

	// CORSAllowedOrigins is a comma separated list; "*" stands for one host
	// label, e.g. "https://*.example.com,http://localhost:*".
	CORSAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS"`
	ReadinessTimeout   time.Duration `env:"READINESS_TIMEOUT" envDefault:"3s"`

	HTTP     httpserver.Config
	Drive    drive.Config
	Files    casefolders.Config
	Portal   portal.Config
	Labels   casetree.Labels
	Registry registry.Config
	PG       pg.Config
}
