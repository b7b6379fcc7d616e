// Package config loads runtime settings for roadmap-skill.
//
// Settings come from, in increasing precedence: built-in defaults,
// <dataDir>/config.yaml, and ROADMAP_* environment variables (a .env file
// in the working directory is loaded into the environment first).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the data directory.
const FileName = "config.yaml"

// Storage backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// DefaultWebPort is the port of the local web interface.
const DefaultWebPort = 7860

// Config holds every runtime setting.
type Config struct {
	DataDir      string        `yaml:"-"`
	Storage      StorageConfig `yaml:"storage"`
	Web          WebConfig     `yaml:"web"`
	TemplatesDir string        `yaml:"templates_dir,omitempty"`
}

// StorageConfig selects where project documents live.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn,omitempty"`
}

// WebConfig controls the local HTTP server.
type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DefaultDataDir returns ~/.roadmap-skill.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".roadmap-skill")
}

// Default returns the built-in settings rooted at dataDir.
func Default(dataDir string) *Config {
	return &Config{
		DataDir: dataDir,
		Storage: StorageConfig{Backend: BackendFile},
		Web:     WebConfig{Host: "127.0.0.1", Port: DefaultWebPort},
	}
}

// Load resolves the settings. An empty dataDir falls back to
// ROADMAP_DATA_DIR and then DefaultDataDir. A missing config file is not
// an error.
func Load(dataDir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if dataDir == "" {
		dataDir = getEnv("ROADMAP_DATA_DIR", DefaultDataDir())
	}
	cfg := Default(dataDir)

	data, err := os.ReadFile(filepath.Join(dataDir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.Storage.Backend = getEnv("ROADMAP_STORAGE", cfg.Storage.Backend)
	cfg.Storage.DSN = getEnv("ROADMAP_DSN", cfg.Storage.DSN)
	cfg.Web.Host = getEnv("ROADMAP_WEB_HOST", cfg.Web.Host)
	cfg.Web.Port = getEnvAsInt("ROADMAP_WEB_PORT", cfg.Web.Port)
	cfg.TemplatesDir = getEnv("ROADMAP_TEMPLATES_DIR", cfg.TemplatesDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the settings to <DataDir>/config.yaml.
func Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(filepath.Join(cfg.DataDir, FileName), data, 0o644)
}

// Validate checks the storage backend and web port.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	case BackendPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage backend postgres requires a dsn")
		}
	default:
		return fmt.Errorf("invalid storage backend %q: must be one of: file, sqlite, postgres", c.Storage.Backend)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web port %d", c.Web.Port)
	}
	return nil
}

// ProjectsDir is where the file backend keeps project documents.
func (c *Config) ProjectsDir() string {
	return filepath.Join(c.DataDir, roadmap.ProjectsDir)
}

// SQLiteDSN is the database path for the sqlite backend.
func (c *Config) SQLiteDSN() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}
	return filepath.Join(c.DataDir, "roadmap.db")
}

// TemplatesPath is the directory scanned for user templates.
func (c *Config) TemplatesPath() string {
	if c.TemplatesDir != "" {
		return c.TemplatesDir
	}
	return filepath.Join(c.DataDir, "templates")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
