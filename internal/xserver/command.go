// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/xserver/command.go
// Summary: Assembles the X server command line from configured state.

package xserver

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// resolveCommand splits the configured command into its binary and any
// verbatim trailing arguments, resolving the binary to an absolute path
// against PATH. A binary that cannot be resolved fails the start before
// any child is spawned.
func resolveCommand(command string) (absolute, rest string, err error) {
	binary, rest, _ := strings.Cut(command, " ")

	path, err := exec.LookPath(binary)
	if err != nil {
		return "", "", fmt.Errorf("xserver: %s not found in PATH: %w", binary, err)
	}
	if path, err = filepath.Abs(path); err != nil {
		return "", "", fmt.Errorf("xserver: resolve %s: %w", binary, err)
	}
	return path, rest, nil
}

// buildCommandLine assembles the argv string. The order is fixed so log
// lines diff cleanly between boots.
func (s *LocalXServer) buildCommandLine(absolute, rest string) string {
	args := []string{absolute}
	if rest != "" {
		args = append(args, rest)
	}

	args = append(args, fmt.Sprintf(":%d", s.displayNumber))

	if s.configFile != "" {
		args = append(args, "-config", s.configFile)
	}
	if s.layout != "" {
		args = append(args, "-layout", s.layout)
	}
	if s.xdgSeat != "" {
		args = append(args, "-seat", s.xdgSeat)
	}
	if path := s.authFile.Path(); path != "" {
		args = append(args, "-auth", path)
	}

	switch {
	case s.xdmcpServer != "":
		if s.xdmcpPort != 0 {
			args = append(args, "-port", strconv.Itoa(s.xdmcpPort))
		}
		args = append(args, "-query", s.xdmcpServer)
		if s.xdmcpKey != "" {
			args = append(args, "-cookie", s.xdmcpKey)
		}
	case s.allowTCP:
		// Pre-1.17 servers listen on TCP by default, so only the flag
		// for newer servers is ever emitted.
		if s.env.Version.Compare(1, 17) >= 0 {
			args = append(args, "-listen", "tcp")
		}
	default:
		args = append(args, "-nolisten", "tcp")
	}

	if s.vt >= 0 {
		args = append(args, fmt.Sprintf("vt%d", s.vt), "-novtswitch")
	}
	if s.background != "" {
		args = append(args, "-background", s.background)
	}
	if s.extraArgs != nil {
		args = append(args, s.extraArgs()...)
	}

	return strings.Join(args, " ")
}
