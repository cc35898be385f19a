// Package config holds the service settings read from bazi.yaml.
package config

import "bazi/internal/bazi"

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Dataset    DatasetConfig    `yaml:"dataset"`
	Calculator CalculatorConfig `yaml:"calculator"`
	Logging    LoggingConfig    `yaml:"logging"`

	// BaseDir is the directory of the loaded file; relative paths resolve
	// against it. Empty when running on defaults.
	BaseDir string `yaml:"-"`
}

type ServerConfig struct {
	Host        string            `yaml:"host"`
	Port        int               `yaml:"port"`
	RateLimit   float64           `yaml:"rate_limit"` // requests per second per client, 0 disables
	CORSOrigins []string          `yaml:"cors_origins"`
	Compression CompressionConfig `yaml:"compression"`
}

type CompressionConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"` // fastest, default, best, none
	MinSize int    `yaml:"min_size"`
}

type DatasetConfig struct {
	Path    string `yaml:"path"`
	MinYear int    `yaml:"min_year"`
	MaxYear int    `yaml:"max_year"`
}

type CalculatorConfig struct {
	LateRatRollover bool `yaml:"late_rat_rollover"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "",
			Port:        8080,
			RateLimit:   20,
			CORSOrigins: []string{"*"},
			Compression: CompressionConfig{
				Enabled: true,
				Level:   "default",
				MinSize: 1024,
			},
		},
		Dataset: DatasetConfig{
			Path:    "data/mappings.json.zst",
			MinYear: bazi.DefaultMinYear,
			MaxYear: bazi.DefaultMaxYear,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
