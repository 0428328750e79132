// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Keyfile configuration store with typed, defaulted accessors.

package config

import (
	"fmt"
	"log"
	"os"

	"github.com/mvo5/goconfigparser"
)

// Section and key names consumed by the supervision core.
const (
	SectionDaemon = "LightDM"

	KeyMinimumDisplayNumber = "minimum-display-number"
	KeyRunDirectory         = "run-directory"
	KeyLogDirectory         = "log-directory"
	KeyBackupLogs           = "backup-logs"
)

// Built-in fallbacks used when a key is absent from the keyfile.
const (
	DefaultRunDirectory = "/run/lightdm"
	DefaultLogDirectory = "/var/log/lightdm"
)

// Config is a read-mostly view over one parsed keyfile. It is threaded
// through constructors explicitly; there is no package-level instance.
type Config struct {
	parser *goconfigparser.ConfigParser
	path   string
}

// Load parses the keyfile at path. A missing file yields an empty store
// so every accessor falls back to its default, matching a first-boot
// system with no configuration written yet.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Config: no file at %s, using defaults", path)
			return &Config{parser: goconfigparser.New(), path: path}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := goconfigparser.New()
	if err := cfg.ReadString(string(data)); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &Config{parser: cfg, path: path}, nil
}

// LoadString parses configuration from an in-memory keyfile.
func LoadString(data string) (*Config, error) {
	cfg := goconfigparser.New()
	if err := cfg.ReadString(data); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &Config{parser: cfg}, nil
}

// Path returns the file this store was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// String returns the value of key in section, or def when absent.
func (c *Config) String(section, key, def string) string {
	v, err := c.parser.Get(section, key)
	if err != nil {
		return def
	}
	return v
}

// Integer returns the integer value of key in section, or def when the
// key is absent or not parseable.
func (c *Config) Integer(section, key string, def int) int {
	v, err := c.parser.Getint(section, key)
	if err != nil {
		return def
	}
	return v
}

// Boolean returns the boolean value of key in section, or def when the
// key is absent or not parseable.
func (c *Config) Boolean(section, key string, def bool) bool {
	v, err := c.parser.Getbool(section, key)
	if err != nil {
		return def
	}
	return v
}
