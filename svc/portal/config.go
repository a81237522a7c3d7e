package portal

import "time"

// Config holds token settings.
type Config struct {
	BaseURL        string        `env:"PORTAL_BASE_URL" envDefault:"http://localhost:8080/portal"`
	PortalSecret   string        `env:"PORTAL_TOKEN_SECRET"`
	PortalTTL      time.Duration `env:"PORTAL_TOKEN_TTL" envDefault:"168h"`
	ReviewerSecret string        `env:"REVIEWER_TOKEN_SECRET"`
	AccessTTL      time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	Issuer         string        `env:"PORTAL_TOKEN_ISSUER" envDefault:"drivecase"`
}
