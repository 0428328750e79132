// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/process/runner_test.go

package process

import (
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"lightdm/internal/loop"
)

const eventWait = 10 * time.Second

func waitEvent(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(eventWait):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestEnviron_SortedPairs(t *testing.T) {
	r := NewRunner(loop.Direct{})
	r.SetEnv("PATH", "/usr/bin")
	r.SetEnv("DISPLAY", ":0")
	r.SetEnv("LD_PRELOAD", "")

	want := []string{"DISPLAY=:0", "LD_PRELOAD=", "PATH=/usr/bin"}
	if got := r.Environ(); !reflect.DeepEqual(got, want) {
		t.Errorf("environ() = %v, want %v", got, want)
	}
}

func TestOpenLog_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x-0.log")
	if err := os.WriteFile(path, []byte("old\n"), 0o640); err != nil {
		t.Fatal(err)
	}

	f, err := openLog(path, LogAppend)
	if err != nil {
		t.Fatalf("openLog() error = %v", err)
	}
	if _, err := f.WriteString("new\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "old\nnew\n" {
		t.Errorf("log contents = %q, want old line kept", data)
	}
}

func TestOpenLog_BackupAndTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x-0.log")
	if err := os.WriteFile(path, []byte("old\n"), 0o640); err != nil {
		t.Fatal(err)
	}

	f, err := openLog(path, LogBackupAndTruncate)
	if err != nil {
		t.Fatalf("openLog() error = %v", err)
	}
	f.Close()

	backup, err := os.ReadFile(path + ".old")
	if err != nil {
		t.Fatalf("backup log missing: %v", err)
	}
	if string(backup) != "old\n" {
		t.Errorf("backup contents = %q, want previous log", backup)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("log not truncated, holds %q", data)
	}
}

func TestStart_ReportsStopped(t *testing.T) {
	r := NewRunner(loop.Direct{})
	r.SetCommand("true")

	stopped := make(chan struct{})
	r.OnStopped(func() { close(stopped) })

	if err := r.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	waitEvent(t, stopped, "stopped event")

	if r.Running() {
		t.Error("Running() = true after stopped event")
	}
}

func TestStart_SpawnFailure(t *testing.T) {
	r := NewRunner(loop.Direct{})
	r.SetCommand("/nonexistent/binary/path")

	if err := r.Start(); err == nil {
		t.Fatal("Start() of missing binary should fail")
	}
	if r.Running() {
		t.Error("Running() = true after failed spawn")
	}
}

func TestStart_CapturesOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "child.log")

	r := NewRunner(loop.Direct{})
	r.SetCommand(`sh -c "echo hello"`)
	r.SetLogFile(logPath, true, LogAppend)

	stopped := make(chan struct{})
	r.OnStopped(func() { close(stopped) })

	if err := r.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	waitEvent(t, stopped, "stopped event")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading child log: %v", err)
	}
	if string(data) != "hello\n" {
		t.Errorf("child log = %q, want %q", data, "hello\n")
	}
}

func TestStart_ClearedEnvironment(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "env.log")

	t.Setenv("RUNNER_TEST_SECRET", "leaky")

	r := NewRunner(loop.Direct{})
	r.SetCommand("env")
	r.SetClearEnvironment(true)
	r.SetEnv("PATH", os.Getenv("PATH"))
	r.SetLogFile(logPath, true, LogAppend)

	stopped := make(chan struct{})
	r.OnStopped(func() { close(stopped) })

	if err := r.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	waitEvent(t, stopped, "stopped event")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "PATH="+os.Getenv("PATH")+"\n" {
		t.Errorf("child environment = %q, want only PATH", got)
	}
}

func TestStop_TerminatesChild(t *testing.T) {
	r := NewRunner(loop.Direct{})
	r.SetCommand("sleep 60")

	stopped := make(chan struct{})
	var events atomic.Int32
	r.OnStopped(func() {
		if events.Add(1) == 1 {
			close(stopped)
		}
	})

	if err := r.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	r.Stop()
	r.Stop() // repeat must be harmless
	waitEvent(t, stopped, "stopped event")

	// Give a duplicate event a moment to surface, then check there
	// was exactly one.
	time.Sleep(50 * time.Millisecond)
	if n := events.Load(); n != 1 {
		t.Errorf("stopped fired %d times, want 1", n)
	}

	// Stop on an already-stopped runner is a no-op.
	r.Stop()
}
