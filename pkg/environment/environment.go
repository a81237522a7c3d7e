package environment

import "strings"

// Environment represents application environment.
type Environment string

const (
	// Development for development environment.
	Development Environment = "development"
	// Production for production environment.
	Production Environment = "production"
	// Staging for staging environment.
	Staging Environment = "staging"
)

// Parse normalises an APP_ENV value. Short aliases map to their full names;
// anything unrecognised is returned lowercased as is.
func Parse(s string) Environment {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "prod", string(Production):
		return Production
	case "stage", string(Staging):
		return Staging
	case "dev", "", string(Development):
		return Development
	default:
		return Environment(v)
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool { return e == Production }

// IsDevelopment reports whether e is the development environment.
func (e Environment) IsDevelopment() bool { return e == Development }

func (e Environment) String() string { return string(e) }
