// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/seat/manager.go
// Summary: Owns the running seats and their display servers.

package seat

import (
	"fmt"
	"log"

	"lightdm/config"
	"lightdm/internal/displayserver"
	"lightdm/internal/xserver"
)

// Seat configuration keys, looked up in [Seat:<name>] with [Seat:*]
// fallback.
const (
	KeyXServerCommand  = "xserver-command"
	KeyXServerConfig   = "xserver-config"
	KeyXServerLayout   = "xserver-layout"
	KeyXServerAllowTCP = "xserver-allow-tcp"
)

// Manager starts the configured seats at boot and tears them down
// symmetrically on shutdown. Runs on the dispatch loop.
type Manager struct {
	cfg *config.Config
	env xserver.Env

	seats   []*Seat
	servers []displayserver.DisplayServer

	onReady     func()
	everStarted bool
}

func NewManager(cfg *config.Config, env xserver.Env) *Manager {
	return &Manager{cfg: cfg, env: env}
}

// OnReady registers the callback fired once, when the first display
// server reports ready.
func (m *Manager) OnReady(fn func()) {
	m.onReady = fn
}

// Start brings up the default local seat.
func (m *Manager) Start() error {
	return m.startLocalSeat("seat0")
}

func (m *Manager) startLocalSeat(name string) error {
	st := NewSeat(name, func(*Session) displayserver.DisplayServer {
		return m.newLocalServer(name)
	})

	server := st.CreateDisplayServer(nil)
	if server == nil {
		return fmt.Errorf("seat %s: no display server", name)
	}

	m.watch(st, server)
	m.seats = append(m.seats, st)
	m.servers = append(m.servers, server)

	log.Printf("Seat %s: starting display server :%d", name, server.DisplayNumber())
	return server.Start()
}

// AddXDMCPSeat binds an incoming XDMCP session to a fresh seat and
// starts its remote server handle.
func (m *Manager) AddXDMCPSeat(session *Session) (*XDMCPSeat, error) {
	st := NewXDMCPSeat(session)

	server := st.CreateDisplayServer(session)
	if server == nil {
		return nil, fmt.Errorf("seat %s: session type %q needs no display server", st.Name(), session.SessionType)
	}

	m.watch(st.Seat, server)
	m.seats = append(m.seats, st.Seat)
	m.servers = append(m.servers, server)

	log.Printf("Seat %s: attaching remote display %s:%d", st.Name(), session.RemoteHost, session.DisplayNumber)
	return st, server.Start()
}

// Stop takes every display server down. Stopped servers ignore the
// repeat.
func (m *Manager) Stop() {
	for _, server := range m.servers {
		server.Stop()
	}
}

// Running reports whether any display server is not yet stopped.
func (m *Manager) Running() bool {
	for _, server := range m.servers {
		if server.State() != displayserver.Stopped {
			return true
		}
	}
	return false
}

func (m *Manager) watch(st *Seat, server displayserver.DisplayServer) {
	server.OnReady(func() {
		log.Printf("Seat %s: display server :%d ready", st.Name(), server.DisplayNumber())
		if !m.everStarted && m.onReady != nil {
			m.everStarted = true
			m.onReady()
		}
	})
	server.OnStopped(func() {
		log.Printf("Seat %s: display server :%d stopped", st.Name(), server.DisplayNumber())
	})
}

func (m *Manager) newLocalServer(name string) *xserver.LocalXServer {
	server := xserver.NewLocalXServer(m.env)

	server.SetCommand(m.cfg.SeatString(name, KeyXServerCommand, "X"))
	if path := m.cfg.SeatString(name, KeyXServerConfig, ""); path != "" {
		server.SetConfigFile(path)
	}
	if layout := m.cfg.SeatString(name, KeyXServerLayout, ""); layout != "" {
		server.SetLayout(layout)
	}
	server.SetAllowTCP(m.cfg.SeatBoolean(name, KeyXServerAllowTCP, false))

	// The default seat owns the console; only extra seats get an
	// explicit -seat argument.
	if name != "seat0" {
		server.SetXDGSeat(name)
	}

	server.SetVT(m.env.VTs.Unused())
	return server
}
