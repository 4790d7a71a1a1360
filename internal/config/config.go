// Package config provides configuration management.
// Values come from defaults, then an optional JSON file, then a .env file
// and TRADECALC_* environment variables, each layer overriding the last.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tradecalc/internal/logging"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TRADECALC_"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// Directory receives report files when no explicit path is given
	Directory string `json:"directory"`

	// ShowNotes prints input sanitizing notes under each result
	ShowNotes bool `json:"show_notes"`

	// ReportTitle heads PDF and spreadsheet reports
	ReportTitle string `json:"report_title"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Address to listen on
	Address string `json:"address"`

	// ReadTimeout for requests
	ReadTimeout Duration `json:"read_timeout"`

	// WriteTimeout for responses
	WriteTimeout Duration `json:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout Duration `json:"shutdown_timeout"`

	// MaxBodySize limits request body size in bytes
	MaxBodySize int64 `json:"max_body_size"`

	// AllowedOrigins for CORS; empty disables CORS headers
	AllowedOrigins []string `json:"allowed_origins"`

	// RateLimit per client IP in requests per second; 0 disables limiting
	RateLimit float64 `json:"rate_limit"`

	// RateBurst is the token bucket size per client IP
	RateBurst int `json:"rate_burst"`
}

// Duration is a time.Duration that reads and writes as "30s" in JSON
type Duration struct {
	time.Duration
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "30s" strings or integer seconds
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		d.Duration = v
		return nil
	}

	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return err
	}
	d.Duration = time.Duration(secs * float64(time.Second))
	return nil
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat: "text",
			Directory:     ".",
			ShowNotes:     true,
			ReportTitle:   "Trade Estimate",
		},
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     Duration{10 * time.Second},
			WriteTimeout:    Duration{30 * time.Second},
			ShutdownTimeout: Duration{5 * time.Second},
			MaxBodySize:     1 << 20,
			AllowedOrigins:  []string{"*"},
			RateLimit:       10,
			RateBurst:       20,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath is $HOME/.tradecalc.json
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tradecalc.json"
	}
	return filepath.Join(home, ".tradecalc.json")
}

// Load loads configuration from a file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// LoadDotEnv reads KEY=VALUE pairs from the given .env files into the
// process environment without overriding variables already set. Missing
// files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// ApplyEnv overrides fields from TRADECALC_* variables looked up through
// lookup (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	str("OUTPUT_FORMAT", &c.Output.DefaultFormat)
	str("OUTPUT_DIR", &c.Output.Directory)
	str("REPORT_TITLE", &c.Output.ReportTitle)
	str("ADDR", &c.Server.Address)
	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FORMAT", &c.Logging.Format)
	str("LOG_OUTPUT", &c.Logging.Output)

	if v, ok := lookup(EnvPrefix + "ALLOWED_ORIGINS"); ok {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "SHOW_NOTES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError("SHOW_NOTES", err)
		}
		c.Output.ShowNotes = b
	}
	if v, ok := lookup(EnvPrefix + "RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError("RATE_LIMIT", err)
		}
		c.Server.RateLimit = f
	}
	if v, ok := lookup(EnvPrefix + "RATE_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("RATE_BURST", err)
		}
		c.Server.RateBurst = n
	}
	if v, ok := lookup(EnvPrefix + "MAX_BODY_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envError("MAX_BODY_SIZE", err)
		}
		c.Server.MaxBodySize = n
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
