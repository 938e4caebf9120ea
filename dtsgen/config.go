// Package dtsgen converts ExtendScript API XML plus the matching native
// library files into a TypeScript declaration file. The XML is trusted for
// structure; the library blobs carry the ground-truth strings used to repair
// the text the upstream generator corrupted.
package dtsgen

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config holds the conversion options.
type Config struct {
	// TypeMappings rewrites type names after normalization.
	// e.g. map[string]string{"Swatch": "SwatchGroup"}
	TypeMappings map[string]string `toml:"type_mappings" validate:"omitempty,dive,keys,required,endkeys,required"`

	// Header is content added to the top of the generated file.
	Header string `toml:"header"`

	// Indent is the indentation unit, spaces or a tab.
	Indent string `toml:"indent" validate:"omitempty,max=8"`
}

var validate = validator.New()

// Validate checks the configuration before a run.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig reads a TOML overrides file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyConfigDefaults fills zero-valued fields.
func applyConfigDefaults(cfg *Config) *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	result := *cfg
	if result.Indent == "" {
		result.Indent = "  "
	}
	return &result
}
