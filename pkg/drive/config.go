package drive

// Config selects and configures the storage backend.
type Config struct {
	Backend         string `env:"DRIVE_BACKEND" envDefault:"google"` // google or memory
	CredentialsJSON string `env:"GOOGLE_CREDENTIALS_JSON"`           // service account key JSON
	CredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE"`           // path to a service account key file
	DefaultParentID string `env:"DRIVE_DEFAULT_PARENT_ID"`           // parent for folders created without one
	ListLimit       int    `env:"DRIVE_LIST_LIMIT" envDefault:"1000"`
}

const (
	BackendGoogle = "google"
	BackendMemory = "memory"
)
