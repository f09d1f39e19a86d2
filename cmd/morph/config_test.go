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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.validate())
	assert.Equal(t, 128, cfg.Tile.Width)
	assert.Equal(t, "identity", cfg.Padding.Mode)
	assert.True(t, cfg.Decompose)
}

func TestConfigRoundTrip(t *testing.T) {
	for _, name := range []string{"morph.yaml", "morph.yml", "nested/dir/morph.toml"} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Tile.Width = 64
			cfg.Tile.Height = 32
			cfg.Execution.Workers = 3
			cfg.Padding.Mode = "constant"
			cfg.Padding.Value = 12.5
			cfg.SE = "rect:9x3"
			cfg.Decompose = false
			cfg.Depth = "16"

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, SaveConfig(cfg, path))
			got, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "morph.toml")
	require.NoError(t, os.WriteFile(path, []byte("se = \"disc:9\"\n\n[padding]\nmode = \"mirror\"\n"), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "disc:9", cfg.SE)
	assert.Equal(t, "mirror", cfg.Padding.Mode)
	assert.Equal(t, DefaultConfig().Tile, cfg.Tile)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "morph.json"))
	require.ErrorIs(t, err, errConfigFormat)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("padding:\n  mode: reflect\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "reflect")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("tile: [1, 2\n"), 0o644))
	_, err = LoadConfig(broken)
	assert.Error(t, err)

	zero := filepath.Join(dir, "zero.yaml")
	require.NoError(t, os.WriteFile(zero, []byte("tile:\n  width: 0\n"), 0o644))
	_, err = LoadConfig(zero)
	assert.ErrorContains(t, err, "tile size")
}
