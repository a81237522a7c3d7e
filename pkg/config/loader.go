package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load reads the optional .env file in the working directory (once per
// process) and parses the environment into v using `env` field tags.
// Variables already set in the process environment win over .env values.
//
//	type DriveConfig struct {
//		CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
//		ParentFolderID  string `env:"DRIVE_PARENT_FOLDER_ID,required"`
//	}
//
//	var cfg DriveConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})
	return parse(v, env.Options{})
}

// LoadFrom parses v from the given variables only, ignoring the process
// environment. Used by tests and callers that assemble configuration
// themselves.
func LoadFrom[T any](v *T, vars map[string]string) error {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(v, env.Options{Environment: vars})
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func parse[T any](v *T, opts env.Options) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := env.ParseWithOptions(v, opts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
