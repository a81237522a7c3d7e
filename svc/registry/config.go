package registry

// Config holds registry settings.
type Config struct {
	PublicBaseURL string `env:"CASE_PUBLIC_BASE_URL" envDefault:"http://localhost:8080/api/public/cases"`
	// CreateAttempts bounds retries on public id collisions.
	CreateAttempts int `env:"CASE_CREATE_ATTEMPTS" envDefault:"3"`
}
