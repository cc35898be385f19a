package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads configuration with ENV interpolation.
// Search order: explicit path > BAZI_CONFIG env > ./bazi.yaml. When none of
// them exists the defaults are returned.
func Load(configPath string, getenv func(string) string) (*Config, error) {
	path, err := resolveConfigPath(configPath, getenv)
	if err != nil {
		return nil, err
	}
	if path == "" {
		cfg := Defaults()
		return cfg, validate(cfg)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data, filepath.Dir(absPath), getenv)
}

// Parse applies data over the defaults. Relative dataset paths resolve
// against baseDir.
func Parse(data []byte, baseDir string, getenv func(string) string) (*Config, error) {
	data = interpolateEnv(data, getenv)

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.BaseDir = baseDir

	if baseDir != "" && cfg.Dataset.Path != "" && !filepath.IsAbs(cfg.Dataset.Path) {
		cfg.Dataset.Path = filepath.Join(baseDir, cfg.Dataset.Path)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveConfigPath(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if envPath := getenv("BAZI_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("BAZI_CONFIG file not found: %s", envPath)
		}
		return envPath, nil
	}

	if _, err := os.Stat("bazi.yaml"); err == nil {
		return "bazi.yaml", nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat bazi.yaml: %w", err)
	}
	return "", nil
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		value := getenv(string(parts[1]))
		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}
		return []byte(value)
	})
}

func validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port: %d (must be 1-65535)", cfg.Server.Port))
	}
	if cfg.Server.RateLimit < 0 {
		errs = append(errs, fmt.Sprintf("invalid rate_limit: %v (must be >= 0)", cfg.Server.RateLimit))
	}
	switch cfg.Server.Compression.Level {
	case "fastest", "default", "best", "none":
	default:
		errs = append(errs, fmt.Sprintf("invalid compression level: %q (must be fastest, default, best or none)", cfg.Server.Compression.Level))
	}

	if cfg.Dataset.Path == "" {
		errs = append(errs, "dataset.path is required")
	}
	if cfg.Dataset.MinYear < 1 || cfg.Dataset.MaxYear < cfg.Dataset.MinYear {
		errs = append(errs, fmt.Sprintf("invalid dataset years: %d-%d", cfg.Dataset.MinYear, cfg.Dataset.MaxYear))
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid logging level: %q", cfg.Logging.Level))
	}
	switch cfg.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("invalid logging format: %q (must be json or console)", cfg.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
