// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/seat/seat.go
// Summary: Seats bind sessions to the display servers that host them.

package seat

import (
	"github.com/google/uuid"

	"lightdm/internal/displayserver"
	"lightdm/internal/xauth"
)

// SessionTypeX marks sessions that need an X display server.
const SessionTypeX = "x"

// Session describes an incoming session that wants a display server.
// For locally started seats there is no session yet and factories
// receive nil.
type Session struct {
	ID            uuid.UUID
	SessionType   string
	RemoteHost    string
	DisplayNumber int
	Authority     *xauth.Record
}

// NewSession mints a session record of the given type.
func NewSession(sessionType string) *Session {
	return &Session{ID: uuid.New(), SessionType: sessionType}
}

// DisplayServerFactory produces the display server a session should run
// on; nil means this seat cannot host the session.
type DisplayServerFactory func(session *Session) displayserver.DisplayServer

// Seat is one physical or remote user position. Variants supply their
// display-server policy as a factory rather than subclassing.
type Seat struct {
	name   string
	create DisplayServerFactory
}

func NewSeat(name string, create DisplayServerFactory) *Seat {
	return &Seat{name: name, create: create}
}

func (s *Seat) Name() string {
	return s.name
}

// CreateDisplayServer asks the seat for a display server to host
// session. A nil return means the seat declines.
func (s *Seat) CreateDisplayServer(session *Session) displayserver.DisplayServer {
	if s.create == nil {
		return nil
	}
	return s.create(session)
}
