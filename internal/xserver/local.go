// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/xserver/local.go
// Summary: Lifecycle of one locally spawned X server.

package xserver

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"lightdm/internal/displayserver"
	"lightdm/internal/process"
	"lightdm/internal/xauth"
)

// LocalXServer spawns and supervises one X server child on this
// machine. It holds the display number reserved at construction, at
// most one VT reservation (taken by SetVT) and, once started, an
// authority file; all three are released by the stopped transition. It
// reports
// readiness only once the child raises its ready signal: a successful
// exec alone never advances the state machine.
//
// All methods run on the dispatch loop.
type LocalXServer struct {
	displayserver.Base

	env           Env
	displayNumber int

	command    string
	configFile string
	layout     string
	xdgSeat    string
	allowTCP   bool
	background string

	vt       int
	hasVTRef bool

	xdmcpServer string
	xdmcpPort   int
	xdmcpKey    string

	authority *xauth.Record
	authFile  *xauth.Manager

	// extraArgs lets variants append trailing arguments; captureStdout
	// lets them drop stdout from the log.
	extraArgs     func() []string
	captureStdout bool

	runner    *process.Runner
	gotSignal bool
}

// NewLocalXServer reserves a display number and mints the server's
// cookie. The number stays reserved until the stopped transition.
func NewLocalXServer(env Env) *LocalXServer {
	n := env.Allocator.Reserve()

	authority, err := xauth.NewLocalCookie(n)
	if err != nil {
		// Without a cookie the server comes up unauthenticated; the
		// command line will simply carry no -auth.
		log.Printf("XServer %d: generate cookie: %v", n, err)
		authority = nil
	}

	return &LocalXServer{
		env:           env,
		displayNumber: n,
		command:       "X",
		vt:            -1,
		authority:     authority,
		authFile:      xauth.NewManager(env.RunDir),
		captureStdout: true,
	}
}

// DisplayNumber returns the display number reserved at construction.
func (s *LocalXServer) DisplayNumber() int {
	return s.displayNumber
}

// Address is the X display address clients connect to, ":<n>".
func (s *LocalXServer) Address() string {
	return fmt.Sprintf(":%d", s.displayNumber)
}

// Authority returns the server's authority record, nil when running
// unauthenticated.
func (s *LocalXServer) Authority() *xauth.Record {
	return s.authority
}

// AuthorityFilePath returns the materialised authority file, "" while
// none exists.
func (s *LocalXServer) AuthorityFilePath() string {
	return s.authFile.Path()
}

func (s *LocalXServer) SetCommand(command string)  { s.command = command }
func (s *LocalXServer) SetConfigFile(path string)  { s.configFile = path }
func (s *LocalXServer) SetLayout(layout string)    { s.layout = layout }
func (s *LocalXServer) SetXDGSeat(seat string)     { s.xdgSeat = seat }
func (s *LocalXServer) SetAllowTCP(allow bool)     { s.allowTCP = allow }
func (s *LocalXServer) SetBackground(color string) { s.background = color }

func (s *LocalXServer) Command() string { return s.command }
func (s *LocalXServer) Layout() string  { return s.layout }
func (s *LocalXServer) XDGSeat() string { return s.xdgSeat }

// SetExtraArgs installs the variant hook appending trailing arguments.
func (s *LocalXServer) SetExtraArgs(fn func() []string) { s.extraArgs = fn }

// SetCaptureStdout controls whether the child's stdout joins stderr in
// the log file.
func (s *LocalXServer) SetCaptureStdout(capture bool) { s.captureStdout = capture }

// VT returns the configured virtual terminal, -1 when unset.
func (s *LocalXServer) VT() int {
	return s.vt
}

// SetVT reserves the terminal in the registry. Replacing a previous
// value releases the old reservation first. Zero is emitted on the
// command line like any other terminal but holds no reservation.
func (s *LocalXServer) SetVT(vt int) {
	if s.hasVTRef {
		s.env.VTs.Unref(s.vt)
		s.hasVTRef = false
	}
	s.vt = vt
	if vt > 0 {
		s.env.VTs.Ref(vt)
		s.hasVTRef = true
	}
}

func (s *LocalXServer) SetXDMCPServer(host string) { s.xdmcpServer = host }
func (s *LocalXServer) SetXDMCPPort(port int)      { s.xdmcpPort = port }

// SetXDMCPKey sets the session key for -query mode. The remote display
// manager provides authorization then, so any inherited cookie is
// dropped.
func (s *LocalXServer) SetXDMCPKey(key string) {
	s.xdmcpKey = key
	s.authority = nil
}

// Start launches the X server child and leaves the machine in Starting
// until the ready signal arrives. Precondition failures return
// synchronously without an event; failures past resource reservation
// synthesise the stopped transition so cleanup stays centralised.
func (s *LocalXServer) Start() error {
	if s.runner != nil {
		return errors.New("xserver: already running")
	}
	if s.command == "" {
		return errors.New("xserver: no command configured")
	}

	s.gotSignal = false
	s.SetState(displayserver.Starting)

	runner := process.NewRunner(s.env.Post)
	runner.OnSignal(s.handleSignal)
	runner.OnStopped(s.handleStopped)
	s.runner = runner

	absolute, rest, err := resolveCommand(s.command)
	if err != nil {
		log.Printf("XServer %d: %v", s.displayNumber, err)
		s.handleStopped()
		return err
	}

	if s.authority != nil {
		if err := s.authFile.Write(s.authority, s.Address()); err != nil {
			log.Printf("XServer %d: %v", s.displayNumber, err)
		}
	}

	runner.SetCommand(s.buildCommandLine(absolute, rest))

	logPath := filepath.Join(s.env.LogDir, fmt.Sprintf("x-%d.log", s.displayNumber))
	mode := process.LogAppend
	if s.env.BackupLogs {
		mode = process.LogBackupAndTruncate
	}
	runner.SetLogFile(logPath, s.captureStdout, mode)
	log.Printf("XServer %d: logging to %s", s.displayNumber, logPath)

	s.applyEnvironment(runner)

	if err := runner.Start(); err != nil {
		log.Printf("XServer %d: %v", s.displayNumber, err)
		s.handleStopped()
		return err
	}
	return nil
}

// Stop asks the supervisor to take the child down; the stopped
// transition follows from the reaper. Stopping an already stopped
// server is a no-op.
func (s *LocalXServer) Stop() {
	if s.runner == nil {
		return
	}
	s.SetState(displayserver.Stopping)
	s.runner.Stop()
}

// applyEnvironment builds the child's scrubbed environment: the
// whitelist intersected with what we inherited, plus the XAUTHORITY
// defaulting rule when DISPLAY crosses.
func (s *LocalXServer) applyEnvironment(runner *process.Runner) {
	runner.SetClearEnvironment(true)

	if display, ok := os.LookupEnv("DISPLAY"); ok {
		runner.SetEnv("DISPLAY", display)
		if xauthority, ok := os.LookupEnv("XAUTHORITY"); ok {
			runner.SetEnv("XAUTHORITY", xauthority)
		} else if home, err := os.UserHomeDir(); err == nil {
			runner.SetEnv("XAUTHORITY", filepath.Join(home, ".Xauthority"))
		}
	}

	for _, key := range forwardedEnv {
		if value, ok := os.LookupEnv(key); ok {
			runner.SetEnv(key, value)
		}
	}
}

func (s *LocalXServer) handleSignal(sig os.Signal) {
	if sig != unix.SIGUSR1 {
		return
	}
	if s.gotSignal || s.State() != displayserver.Starting {
		return
	}
	s.gotSignal = true
	log.Printf("XServer %d: got signal from X server :%d", s.displayNumber, s.displayNumber)
	s.ChainStart()
}

// handleStopped is the single release point for everything Start
// reserved: the VT reference, the authority file and the display
// number all come back here no matter how the child went away.
func (s *LocalXServer) handleStopped() {
	log.Printf("XServer %d: stopped", s.displayNumber)

	if s.hasVTRef {
		s.env.VTs.Unref(s.vt)
		s.hasVTRef = false
	}
	s.authFile.Remove()
	s.env.Allocator.Release(s.displayNumber)

	s.runner = nil
	s.ChainStop()
	// Observers read GotSignal during the stopped chain to tell an
	// orderly stop from a child that died before becoming ready; clear
	// it only once they have run.
	s.gotSignal = false
}

// GotSignal reports whether the child reached readiness. During the
// stopped chain it still reflects the finished run.
func (s *LocalXServer) GotSignal() bool {
	return s.gotSignal
}
