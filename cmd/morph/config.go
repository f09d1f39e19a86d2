// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-morpho/morpho"
)

// Config holds the defaults of the morph commands. Each field can be
// overridden by the matching flag.
type Config struct {
	Tile struct {
		// Width and Height of the output tiles, in pixels.
		Width  int `yaml:"width" toml:"width"`
		Height int `yaml:"height" toml:"height"`
	} `yaml:"tile" toml:"tile"`

	Execution struct {
		// Parallel dispatches the tiles of an image over a worker pool.
		Parallel bool `yaml:"parallel" toml:"parallel"`
		// Workers is the pool size; 0 uses GOMAXPROCS.
		Workers int `yaml:"workers" toml:"workers"`
		// Files is the number of input files processed concurrently.
		Files int `yaml:"files" toml:"files"`
	} `yaml:"execution" toml:"execution"`

	Padding struct {
		// Mode is one of identity, constant, mirror, clamp or wrap.
		Mode string `yaml:"mode" toml:"mode"`
		// Value is the fill value of the constant mode.
		Value float64 `yaml:"value" toml:"value"`
	} `yaml:"padding" toml:"padding"`

	// SE is the default structuring element, in the syntax of --se.
	SE string `yaml:"se" toml:"se"`

	// Decompose runs decomposable elements as chains of line filters.
	Decompose bool `yaml:"decompose" toml:"decompose"`

	// Depth is the working sample depth: auto, 8 or 16.
	Depth string `yaml:"depth" toml:"depth"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Tile.Width = morpho.DefaultTileSize
	cfg.Tile.Height = morpho.DefaultTileSize
	cfg.Execution.Parallel = true
	cfg.Execution.Files = 2
	cfg.Padding.Mode = morpho.PadIdentity.String()
	cfg.SE = "disc:3"
	cfg.Decompose = true
	cfg.Depth = "auto"
	return cfg
}

var errConfigFormat = errors.New("unsupported config format")

type configFormat int

const (
	formatYAML configFormat = iota
	formatTOML
)

func configFormatOf(path string) (configFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q (want .yaml, .yml or .toml)", errConfigFormat, path)
	}
}

// LoadConfig reads the config file at path over the defaults. An empty
// path or a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	format, err := configFormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	switch format {
	case formatTOML:
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path in the format implied by its extension.
func SaveConfig(cfg *Config, path string) error {
	format, err := configFormatOf(path)
	if err != nil {
		return err
	}
	data, err := cfg.marshal(format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func (cfg *Config) marshal(format configFormat) ([]byte, error) {
	if format == formatTOML {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("encoding config: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (cfg *Config) validate() error {
	if cfg.Tile.Width <= 0 || cfg.Tile.Height <= 0 {
		return fmt.Errorf("config: tile size %dx%d must be positive", cfg.Tile.Width, cfg.Tile.Height)
	}
	if cfg.Execution.Workers < 0 || cfg.Execution.Files < 0 {
		return fmt.Errorf("config: workers and files must not be negative")
	}
	if _, err := morpho.ParsePaddingMode(cfg.Padding.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := parseDepth(cfg.Depth); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
