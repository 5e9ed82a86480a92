// Package config loads and validates the scraper configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"classscout/internal/model"
)

// Configuration validation errors.
var (
	ErrNoSources          = errors.New("at least one usable source is required")
	ErrSourceMissingName  = errors.New("source name is required")
	ErrSourceMissingURL   = errors.New("source url is required")
	ErrSourceBadURL       = errors.New("source url must be absolute")
	ErrInvalidRender      = errors.New(`render must be "static", "js" or empty`)
	ErrSheetsIncomplete   = errors.New("sheets sink needs credentials_path and spreadsheet_id")
	ErrAirtableIncomplete = errors.New("airtable sink needs api_key, base_id and table")
)

// Config is the complete scraper configuration.
type Config struct {
	Sources []model.Source `yaml:"sources"`
	Fetch   FetchConfig    `yaml:"fetch"`
	Sinks   SinksConfig    `yaml:"sinks"`
	Workers int            `yaml:"workers"`
}

// FetchConfig tunes the fetcher.
type FetchConfig struct {
	UserAgent     string  `yaml:"user_agent"`
	TimeoutSec    int     `yaml:"timeout_sec"`
	MaxBytes      int64   `yaml:"max_bytes"`
	Rate          float64 `yaml:"rate"`
	Burst         int     `yaml:"burst"`
	CacheDir      string  `yaml:"cache_dir"`
	CacheTTLHours int     `yaml:"cache_ttl_hours"`
	// Render launches the headless browser even when no source asks
	// for it.
	Render     bool   `yaml:"render"`
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
}

// SinksConfig selects destinations. Absent sections stay disabled; a
// run with none configured previews to the terminal.
type SinksConfig struct {
	Sheets   *SheetsConfig   `yaml:"sheets,omitempty"`
	Airtable *AirtableConfig `yaml:"airtable,omitempty"`
	CSV      string          `yaml:"csv,omitempty"`
	ICS      string          `yaml:"ics,omitempty"`
}

// SheetsConfig points at one spreadsheet.
type SheetsConfig struct {
	CredentialsPath string `yaml:"credentials_path"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
}

// AirtableConfig points at one table.
type AirtableConfig struct {
	APIKey string `yaml:"api_key"`
	BaseID string `yaml:"base_id"`
	Table  string `yaml:"table"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Workers: 4,
		Fetch: FetchConfig{
			UserAgent:     "classscout/0.1 (+https://github.com/ppiankov/classscout)",
			TimeoutSec:    30,
			MaxBytes:      10 << 20,
			Rate:          1,
			Burst:         2,
			CacheTTLHours: 24,
		},
	}
}

// Read parses a configuration file over the built-in defaults without
// validating it.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate drops unusable source entries with a logged diagnostic and
// checks the rest of the configuration. A config that ends up with no
// usable sources is an error.
func (c *Config) Validate() error {
	kept := c.Sources[:0]
	for i, src := range c.Sources {
		if err := checkSource(src); err != nil {
			log.Warn().Err(err).Int("index", i).Str("name", src.Name).Msg("skipping source")
			continue
		}
		kept = append(kept, src)
	}
	c.Sources = kept

	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	if s := c.Sinks.Sheets; s != nil && (s.CredentialsPath == "" || s.SpreadsheetID == "") {
		return ErrSheetsIncomplete
	}
	if a := c.Sinks.Airtable; a != nil && (a.APIKey == "" || a.BaseID == "" || a.Table == "") {
		return ErrAirtableIncomplete
	}

	return nil
}

func checkSource(src model.Source) error {
	if src.Name == "" {
		return ErrSourceMissingName
	}
	if src.URL == "" {
		return ErrSourceMissingURL
	}
	if u, err := url.Parse(src.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrSourceBadURL, src.URL)
	}
	switch src.Render {
	case model.RenderAuto, model.RenderStatic, model.RenderJS:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRender, src.Render)
	}
	return nil
}
