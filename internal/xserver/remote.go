// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/xserver/remote.go
// Summary: Handle on an X server some other host is running.

package xserver

import (
	"fmt"

	"lightdm/internal/displayserver"
	"lightdm/internal/xauth"
)

// RemoteXServer wraps an X server we did not spawn: an XDMCP client's
// display connecting back to us. There is no child to supervise, so the
// server is ready the moment it is started and stopping only runs the
// observer chain.
type RemoteXServer struct {
	displayserver.Base

	hostname      string
	displayNumber int
	authority     *xauth.Record
}

func NewRemoteXServer(hostname string, displayNumber int, authority *xauth.Record) *RemoteXServer {
	return &RemoteXServer{
		hostname:      hostname,
		displayNumber: displayNumber,
		authority:     authority,
	}
}

func (s *RemoteXServer) DisplayNumber() int {
	return s.displayNumber
}

// Address is the display address in host:number form.
func (s *RemoteXServer) Address() string {
	return fmt.Sprintf("%s:%d", s.hostname, s.displayNumber)
}

func (s *RemoteXServer) Authority() *xauth.Record {
	return s.authority
}

// Start reports readiness immediately: the remote end is already up or
// it would not have completed the XDMCP exchange.
func (s *RemoteXServer) Start() error {
	s.SetState(displayserver.Starting)
	s.ChainStart()
	return nil
}

func (s *RemoteXServer) Stop() {
	s.ChainStop()
}
