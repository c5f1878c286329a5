package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-curatorform/pkg/curator"
)

// LoadFormConfig reads a curator form configuration from a YAML file. An
// empty path returns the zero configuration.
func LoadFormConfig(path string) (curator.Config, error) {
	if path == "" {
		return curator.Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return curator.Config{}, fmt.Errorf("config: read form config: %w", err)
	}
	cfg, err := ParseFormConfig(data)
	if err != nil {
		return curator.Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseFormConfig decodes YAML strictly (unknown keys fail) and validates
// the result.
func ParseFormConfig(data []byte) (curator.Config, error) {
	var cfg curator.Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return curator.Config{}, fmt.Errorf("decode form config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return curator.Config{}, err
	}
	return cfg, nil
}
