package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads from ".env" in the current directory.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	return godotenv.Load(path)
}

// LoadConfig loads an optional .env file, then the environment. Variables
// already set in the environment win over the file.
func LoadConfig(envPath string) (EnvConfig, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return EnvConfig{}, err
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		return EnvConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}
