package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GRIDEVAL_"

// LoadConfig reads a YAML file over the defaults and validates the result.
// An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfigWithEnvOverrides loads path, then applies GRIDEVAL_* variables.
// Variables found in envFiles are added to the process environment first;
// missing env files are skipped and variables already set win.
//
// The loading sequence is:
// 1. Load YAML from file over the defaults
// 2. Load .env files
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string, envFiles ...string) (*Config, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to load env file %q: %w", f, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func readConfig(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}
	ApplyDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	var errs []error

	if v, ok := lookupEnv("GAMMA"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Evaluation.Gamma = f
		} else {
			errs = append(errs, fmt.Errorf("%sGAMMA: %w", EnvPrefix, err))
		}
	}
	if v, ok := lookupEnv("THRESHOLD"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Evaluation.Threshold = f
		} else {
			errs = append(errs, fmt.Errorf("%sTHRESHOLD: %w", EnvPrefix, err))
		}
	}
	if v, ok := lookupEnv("MAX_SWEEPS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Evaluation.MaxSweeps = n
		} else {
			errs = append(errs, fmt.Errorf("%sMAX_SWEEPS: %w", EnvPrefix, err))
		}
	}
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v, ok := lookupEnv("CHART"); ok {
		cfg.Output.Chart = v
	}
	if v, ok := lookupEnv("COLOR"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Output.Color = b
		} else {
			errs = append(errs, fmt.Errorf("%sCOLOR: %w", EnvPrefix, err))
		}
	}

	return errors.Join(errs...)
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}
