package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"cryptodash/internal/market"
	"cryptodash/internal/theme"
)

type Config struct {
	Env       string          `yaml:"env" env:"APP_ENV" env-default:"local"`
	Window    WindowConfig    `yaml:"window"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Generator GeneratorConfig `yaml:"generator"`
}

type WindowConfig struct {
	Width  int    `yaml:"width" env:"WINDOW_WIDTH" env-default:"1024"`
	Height int    `yaml:"height" env:"WINDOW_HEIGHT" env-default:"720"`
	Title  string `yaml:"title" env:"WINDOW_TITLE" env-default:"Crypto Dashboard"`
}

type DashboardConfig struct {
	Instrument string        `yaml:"instrument" env:"DASHBOARD_INSTRUMENT" env-default:"Bitcoin"`
	Range      string        `yaml:"range" env:"DASHBOARD_RANGE" env-default:"1M"`
	Theme      string        `yaml:"theme" env:"DASHBOARD_THEME" env-default:"dark"`
	Preload    time.Duration `yaml:"preload" env:"DASHBOARD_PRELOAD" env-default:"2500ms"`
}

type GeneratorConfig struct {
	// Seed fixes the random walk. Zero seeds from the clock.
	Seed int64 `yaml:"seed" env:"GENERATOR_SEED"`
}

// Selection is the validated startup state of the dashboard.
type Selection struct {
	Instrument market.Instrument
	Range      market.TimeRange
	Theme      theme.Theme
}

// Load reads the YAML file at path, then applies environment overrides and
// defaults. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}

// Path resolves the config file path from the -config flag value or
// CONFIG_PATH.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("CONFIG_PATH")
}

// LoadDotEnv loads variables from a .env file if one exists.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func (c *Config) Selection() (Selection, error) {
	inst, err := market.ParseInstrument(c.Dashboard.Instrument)
	if err != nil {
		return Selection{}, fmt.Errorf("dashboard.instrument: %w", err)
	}
	r, err := market.ParseTimeRange(c.Dashboard.Range)
	if err != nil {
		return Selection{}, fmt.Errorf("dashboard.range: %w", err)
	}
	th, err := theme.Parse(c.Dashboard.Theme)
	if err != nil {
		return Selection{}, fmt.Errorf("dashboard.theme: %w", err)
	}
	return Selection{Instrument: inst, Range: r, Theme: th}, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Dashboard.Preload < 0 {
		return fmt.Errorf("dashboard.preload must not be negative")
	}
	if _, err := c.Selection(); err != nil {
		return err
	}
	return nil
}
