// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/process/signals.go
// Summary: Process-wide relay of child-sent signals to live runners.

package process

import (
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"
)

// The kernel does not tell us which child raised SIGUSR1, so every live
// runner observes each delivery. A runner whose owner is not waiting for
// a ready signal ignores it.
var (
	relayOnce sync.Once
	relayCh   chan os.Signal

	relayMu      sync.Mutex
	relayTargets map[*Runner]struct{}
)

func startRelay() {
	relayCh = make(chan os.Signal, 8)
	relayTargets = make(map[*Runner]struct{})
	signal.Notify(relayCh, unix.SIGUSR1)

	go func() {
		for sig := range relayCh {
			relayMu.Lock()
			targets := make([]*Runner, 0, len(relayTargets))
			for r := range relayTargets {
				targets = append(targets, r)
			}
			relayMu.Unlock()

			for _, r := range targets {
				r.deliverSignal(sig)
			}
		}
	}()
}

func registerRunner(r *Runner) {
	relayOnce.Do(startRelay)
	relayMu.Lock()
	relayTargets[r] = struct{}{}
	relayMu.Unlock()
}

func unregisterRunner(r *Runner) {
	relayMu.Lock()
	delete(relayTargets, r)
	relayMu.Unlock()
}

// ignoreReadySignal flips SIGUSR1 to SIG_IGN so a child spawned now
// inherits that disposition across exec. An X server that starts with
// SIGUSR1 ignored takes it as "my parent wants the ready signal" and
// raises SIGUSR1 back once it accepts connections.
func ignoreReadySignal() {
	signal.Ignore(unix.SIGUSR1)
}

// restoreReadySignal re-arms our own SIGUSR1 delivery after a spawn. The
// window between spawn and re-arm is safe: the child cannot finish X
// server initialisation before we return from these two calls.
func restoreReadySignal() {
	relayOnce.Do(startRelay)
	signal.Notify(relayCh, unix.SIGUSR1)
}
