package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		TokenTTLSeconds int `yaml:"token_ttl_seconds"`
	} `yaml:"auth"`
	Storage struct {
		Backend    string `yaml:"backend"` // "local" or "s3"
		UploadsDir string `yaml:"uploads_dir"`
		S3         struct {
			Region    string `yaml:"region"`
			Bucket    string `yaml:"bucket"`
			Endpoint  string `yaml:"endpoint"`
			AccessKey string `yaml:"access_key"`
			SecretKey string `yaml:"secret_key"`
		} `yaml:"s3"`
	} `yaml:"storage"`
	CORS struct {
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"cors"`
}

// LoadConfig reads configuration from the specified YAML file. The
// DATABASE_URL environment variable overrides the file value.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		config.Database.URL = url
	}
	if config.Server.Port == "" {
		config.Server.Port = ":8080"
	}
	if config.Auth.TokenTTLSeconds <= 0 {
		config.Auth.TokenTTLSeconds = 3600
	}
	if config.Storage.Backend == "" {
		config.Storage.Backend = "local"
	}
	if config.Storage.UploadsDir == "" {
		config.Storage.UploadsDir = "uploads"
	}

	return config, nil
}

// JWTSecret returns the token signing secret from the environment. An empty
// or missing JWT_SECRET is a startup error, never a runtime one.
func JWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("missing or empty 'JWT_SECRET' environment variable")
	}
	return []byte(secret), nil
}
