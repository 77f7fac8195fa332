// Package config holds the persisted defaults for a packing run: the
// rotation set tried at every placement, the collision oracle, and the
// output directory. It mirrors the teacher's AppConfig/CutSettings
// split — a small JSON-tagged struct, loaded and saved with
// encoding/json, that CLI flags may override for a single invocation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// PackConfig holds the defaults applied to a pack run before any
// command-line flag overrides are layered on top.
type PackConfig struct {
	Rotations     []float64 `json:"rotations"`
	PreserveOrder bool      `json:"preserve_order"`
	UseNFP        bool      `json:"use_nfp"`
	OutDir        string    `json:"out_dir"`
}

// DefaultPackConfig returns the configuration new installs and bare
// invocations fall back to: all four axis rotations, largest-area-first
// ordering, the precise polygon collision oracle, and an "out"
// subdirectory of the current working directory.
func DefaultPackConfig() PackConfig {
	return PackConfig{
		Rotations:     []float64{0, 90, 180, 270},
		PreserveOrder: false,
		UseNFP:        false,
		OutDir:        "out",
	}
}

// Load reads a PackConfig from a JSON file at path. A missing file is
// not an error: the caller gets DefaultPackConfig() back so a config
// flag is optional rather than required.
func Load(path string) (PackConfig, error) {
	cfg := DefaultPackConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON, creating or truncating the
// file as needed.
func Save(path string, cfg PackConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
