package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "GAMECAT_"

// Load reads the configuration from the first of paths that exists, then
// overlays environment variable overrides (GAMECAT_*). The document is JSON,
// which the YAML parser reads as-is. When no path exists the defaults are
// used, so a missing primary file falls back to the next one.
func Load(paths ...string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		cfg.Source = path
		break
	}

	// Overlay environment variables: GAMECAT_IMAGESRAWBASEURL -> imagesRawBaseUrl.
	keys := knownKeys()
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return keys[strings.ToLower(strings.TrimPrefix(s, EnvPrefix))]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// knownKeys maps lower-cased configuration keys to their canonical names.
// Unknown environment variables map to "" and are skipped by the provider.
func knownKeys() map[string]string {
	keys := make(map[string]string)
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("koanf")
		if tag == "" || tag == "-" {
			continue
		}
		keys[strings.ToLower(tag)] = tag
	}
	return keys
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.InfoPattern == "" {
		return fmt.Errorf("infoPattern is required")
	}
	if c.ImagesStart < 0 || c.ImagesEnd < 0 {
		return fmt.Errorf("imagesStart and imagesEnd must be non-negative")
	}
	if c.ImagesEnd < c.ImagesStart {
		return fmt.Errorf("imagesEnd (%d) is before imagesStart (%d)", c.ImagesEnd, c.ImagesStart)
	}
	if c.ImagesNumberPadding < 0 {
		return fmt.Errorf("imagesNumberPadding must be non-negative")
	}
	if c.SummaryLength < 0 {
		return fmt.Errorf("summaryLength must be non-negative")
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("maxConcurrency must be non-negative")
	}
	if c.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("httpTimeoutSeconds must be non-negative")
	}
	return nil
}
