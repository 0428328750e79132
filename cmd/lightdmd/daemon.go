// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/lightdmd/daemon.go
// Summary: Daemon run loop: config, run lock, seats, shutdown choreography.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	sdnotify "github.com/coreos/go-systemd/v22/daemon"
	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"lightdm/config"
	"lightdm/internal/display"
	"lightdm/internal/loop"
	"lightdm/internal/seat"
	"lightdm/internal/users"
	"lightdm/internal/vt"
	"lightdm/internal/xserver"
	"lightdm/internal/xversion"
)

const shutdownTimeout = 10 * time.Second

func runDaemon(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	runDir := cfg.RunDirectory()
	if err := os.MkdirAll(runDir, 0o711); err != nil {
		return fmt.Errorf("create run directory %s: %w", runDir, err)
	}
	if err := os.MkdirAll(cfg.LogDirectory(), 0o755); err != nil {
		return fmt.Errorf("create log directory %s: %w", cfg.LogDirectory(), err)
	}

	// One daemon per run directory.
	runLock := flock.New(filepath.Join(runDir, "lightdmd.lock"))
	locked, err := runLock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another lightdmd already owns %s", runDir)
	}
	defer runLock.Unlock()

	if err := pointLogAtFile(cfg.LogDirectory()); err != nil {
		return err
	}
	log.Printf("Daemon: starting, run directory %s", runDir)

	userDir, err := users.Open(filepath.Join(runDir, "users.db"))
	if err != nil {
		return err
	}
	defer userDir.Close()
	log.Printf("Users: preferences in %s", filepath.Join(runDir, "users.db"))

	lp := loop.New()
	env := xserver.Env{
		Allocator:  display.NewAllocator(cfg.MinimumDisplayNumber(), ""),
		VTs:        vt.NewRegistry(),
		Version:    xversion.NewProbe("X"),
		Post:       lp,
		RunDir:     runDir,
		LogDir:     cfg.LogDirectory(),
		BackupLogs: cfg.BackupLogs(),
	}

	manager := seat.NewManager(cfg, env)
	manager.OnReady(func() {
		if _, err := sdnotify.SdNotify(false, sdnotify.SdNotifyReady); err != nil {
			log.Printf("Daemon: sd_notify: %v", err)
		}
	})

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), unix.SIGTERM, unix.SIGINT)
	defer stopSignals()

	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()

	lp.Post(func() {
		if err := manager.Start(); err != nil {
			log.Printf("Daemon: start seats: %v", err)
		}
	})

	go func() {
		<-sigCtx.Done()
		log.Printf("Daemon: shutting down")
		sdnotify.SdNotify(false, sdnotify.SdNotifyStopping)
		lp.Post(manager.Stop)

		deadline := time.Now().Add(shutdownTimeout)
		for time.Now().Before(deadline) {
			done := make(chan bool, 1)
			lp.Post(func() { done <- !manager.Running() })
			if <-done {
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		stopLoop()
	}()

	lp.Run(loopCtx)
	log.Printf("Daemon: exiting")
	return nil
}

// pointLogAtFile keeps daemon logging on stderr during interactive
// runs and routes it to <log-directory>/lightdm.log otherwise.
func pointLogAtFile(logDir string) error {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	path := filepath.Join(logDir, "lightdm.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("open daemon log %s: %w", path, err)
	}
	log.SetOutput(f)
	return nil
}
