// Copyright 2025 Contriboss
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

// Package config loads settree settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of the settree command. Every field has a
// default; a config file only needs the fields it changes.
type Config struct {
	// StateFile is the persisted tree loaded on start and saved on change.
	StateFile string `yaml:"state_file"`
	// BackupSuffix is appended to StateFile when a rejected load is backed up.
	BackupSuffix string `yaml:"backup_suffix"`
	// HumanFile receives human-readable exports.
	HumanFile string `yaml:"human_file"`
	// LockTimeout bounds the wait for another settree process to release
	// the state file.
	LockTimeout time.Duration `yaml:"lock_timeout"`

	Log      LogConfig      `yaml:"log"`
	Recovery RecoveryConfig `yaml:"recovery"`
	Watch    WatchConfig    `yaml:"watch"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// RecoveryConfig holds the recovery used when no terminal is available to
// ask, or when prompting is disabled.
type RecoveryConfig struct {
	// OnMissing is drop, faux, abort or prompt.
	OnMissing string `yaml:"on_missing"`
	// OnUnavailable is continue, delete, abort or prompt.
	OnUnavailable string `yaml:"on_unavailable"`
}

// WatchConfig configures directory watching.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StateFile:    "managed-sets.txt",
		BackupSuffix: ".bak",
		HumanFile:    "human-readable-sets.txt",
		LockTimeout:  5 * time.Second,
		Log: LogConfig{
			Level: "warn",
		},
		Recovery: RecoveryConfig{
			OnMissing:     "prompt",
			OnUnavailable: "continue",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	switch c.Recovery.OnMissing {
	case "drop", "faux", "abort", "prompt":
	default:
		return fmt.Errorf("recovery.on_missing: unknown recovery %q", c.Recovery.OnMissing)
	}
	switch c.Recovery.OnUnavailable {
	case "continue", "delete", "abort", "prompt":
	default:
		return fmt.Errorf("recovery.on_unavailable: unknown recovery %q", c.Recovery.OnUnavailable)
	}
	if c.StateFile == "" {
		return errors.New("state_file cannot be empty")
	}
	if c.LockTimeout < 0 {
		return errors.New("lock_timeout cannot be negative")
	}
	if c.Watch.Debounce < 0 {
		return errors.New("watch.debounce cannot be negative")
	}
	return nil
}

// Write saves c as YAML to path.
func Write(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
