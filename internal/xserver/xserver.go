// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/xserver/xserver.go
// Summary: Shared collaborators for the X server implementations.

package xserver

import (
	"lightdm/internal/display"
	"lightdm/internal/loop"
	"lightdm/internal/vt"
	"lightdm/internal/xversion"
)

// Env bundles the process-wide collaborators an X server needs. It is
// built once at daemon startup and threaded through constructors; no
// package holds a global.
type Env struct {
	Allocator *display.Allocator
	VTs       *vt.Registry
	Version   *xversion.Probe
	Post      loop.Poster

	RunDir     string
	LogDir     string
	BackupLogs bool
}

// Environment variables allowed through to a spawned X server, besides
// DISPLAY and XAUTHORITY which carry their own defaulting rule.
var forwardedEnv = []string{
	"LD_PRELOAD",
	"LD_LIBRARY_PATH",
	"PATH",
	"LIGHTDM_TEST_ROOT",
}
