package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	appDir = "prescribe"

	// DevConnectionString is used when DEV_MODE=true.
	DevConnectionString = "file:./local.db?cache=shared&mode=rwc"
)

type Config struct {
	DB     DBConfig     `toml:"database"`
	Engine EngineConfig `toml:"engine"`
	Log    LogConfig    `toml:"log"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // The entire DB connection string.
}

type EngineConfig struct {
	LoadIncrement          float64 `toml:"load_increment"`           // Smallest plate jump, kg.
	DefaultPercentage      float64 `toml:"default_percentage"`       // Main lifts without a percentage.
	DefaultWeeklyIncrement float64 `toml:"default_weekly_increment"` // Wave progression step.
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // Optional rotating log file.
}

func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			LoadIncrement:          2.5,
			DefaultPercentage:      0.75,
			DefaultWeeklyIncrement: 0.02,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Dir returns ~/.config/prescribe, creating it when needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", appDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the config file, then applies .env and environment
// overrides. A missing config file means defaults.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	// .env is optional.
	_ = godotenv.Load()
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if url := os.Getenv("PRESCRIBE_DATABASE_URL"); url != "" {
		cfg.DB.ConnectionString = url
	}
	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.DB.ConnectionString = DevConnectionString
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Engine.LoadIncrement <= 0 {
		return fmt.Errorf("engine.load_increment must be positive, got %v", c.Engine.LoadIncrement)
	}
	if c.Engine.DefaultPercentage <= 0 || c.Engine.DefaultPercentage > 1 {
		return fmt.Errorf("engine.default_percentage must be in (0, 1], got %v", c.Engine.DefaultPercentage)
	}
	if c.Engine.DefaultWeeklyIncrement < 0 {
		return fmt.Errorf("engine.default_weekly_increment must not be negative, got %v", c.Engine.DefaultWeeklyIncrement)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
