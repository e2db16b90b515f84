package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "tetris.yaml"

// SourceDefault names the built-in configuration in Resolve's result.
const SourceDefault = "built-in defaults"

// Decode parses YAML on top of DefaultTetrisConfig and validates the
// result, so partial documents are allowed. In strict mode unknown keys
// are an error. An empty document yields the defaults.
func Decode(data []byte, strict bool) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: cannot parse: %w", err)
	}
	return cfg, cfg.Validate()
}

// SearchPaths lists the optional config files in priority order.
func SearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".tetris", "configs", configFile))
	}
	return append(paths, filepath.Join("configs", configFile))
}

// Resolve loads the configuration and reports where it came from.
//
// An explicit customPath must exist and decode strictly. Otherwise the
// first SearchPaths entry that decodes wins; broken optional files are
// skipped. The embedded default document is the last resort.
func Resolve(customPath string) (TetrisConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTetrisConfig(), customPath, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := Decode(data, true)
		if err != nil {
			return cfg, customPath, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	for _, path := range SearchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Decode(data, false); err == nil {
			return cfg, path, nil
		}
	}

	if cfg, err := Decode(defaultTetrisYAML, false); err == nil {
		return cfg, SourceDefault, nil
	}
	return DefaultTetrisConfig(), SourceDefault, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg TetrisConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}
