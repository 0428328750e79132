// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/daemon.go
// Summary: Named accessors for the [LightDM] daemon section and seat sections.

package config

// MinimumDisplayNumber is the floor for the display-number allocator.
func (c *Config) MinimumDisplayNumber() int {
	return c.Integer(SectionDaemon, KeyMinimumDisplayNumber, 0)
}

// RunDirectory is the root for runtime state (authority files, run lock).
func (c *Config) RunDirectory() string {
	return c.String(SectionDaemon, KeyRunDirectory, DefaultRunDirectory)
}

// LogDirectory is the destination for per-display X server logs.
func (c *Config) LogDirectory() string {
	return c.String(SectionDaemon, KeyLogDirectory, DefaultLogDirectory)
}

// BackupLogs selects backup-and-truncate log opening over plain append.
func (c *Config) BackupLogs() bool {
	return c.Boolean(SectionDaemon, KeyBackupLogs, true)
}

// SeatString looks a key up in [Seat:<name>], falling back to the
// [Seat:*] defaults section and then to def.
func (c *Config) SeatString(seat, key, def string) string {
	return c.String("Seat:"+seat, key, c.String("Seat:*", key, def))
}

// SeatInteger looks an integer key up with the same fallback chain as
// SeatString.
func (c *Config) SeatInteger(seat, key string, def int) int {
	return c.Integer("Seat:"+seat, key, c.Integer("Seat:*", key, def))
}

// SeatBoolean looks a boolean key up with the same fallback chain as
// SeatString.
func (c *Config) SeatBoolean(seat, key string, def bool) bool {
	return c.Boolean("Seat:"+seat, key, c.Boolean("Seat:*", key, def))
}
