// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/seat/xdmcp.go
// Summary: Seat variant backing a remote XDMCP session.

package seat

import (
	"lightdm/internal/displayserver"
	"lightdm/internal/xserver"
)

// XDMCPSeat hosts one remote XDMCP session. The remote display belongs
// to the peer, so the seat never spawns anything: it binds the session
// to a single remote-server handle for the seat's whole life, and a
// reconnecting client reattaches to that same handle.
type XDMCPSeat struct {
	*Seat

	session *Session
	server  *xserver.RemoteXServer
}

func NewXDMCPSeat(session *Session) *XDMCPSeat {
	s := &XDMCPSeat{session: session}
	s.Seat = NewSeat("xdmcp"+session.ID.String(), s.createDisplayServer)
	return s
}

// Session returns the XDMCP session this seat was created for.
func (s *XDMCPSeat) Session() *Session {
	return s.session
}

func (s *XDMCPSeat) createDisplayServer(session *Session) displayserver.DisplayServer {
	if session == nil || session.SessionType != SessionTypeX {
		return nil
	}
	if s.server == nil {
		s.server = xserver.NewRemoteXServer(session.RemoteHost, session.DisplayNumber, session.Authority)
	}
	return s.server
}
