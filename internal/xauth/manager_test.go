// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/xauth/manager_test.go

package xauth

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func testRecord(data []byte) *Record {
	return &Record{
		Family:  FamilyLocal,
		Address: "host",
		Number:  "0",
		Name:    CookieName,
		Data:    data,
	}
}

func TestWrite_CreatesFileUnderRoot(t *testing.T) {
	runDir := t.TempDir()
	m := NewManager(runDir)

	if err := m.Write(testRecord([]byte{1, 2}), ":0"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := filepath.Join(runDir, "root", ":0")
	if m.Path() != want {
		t.Errorf("Path() = %q, want %q", m.Path(), want)
	}

	info, err := os.Stat(filepath.Join(runDir, "root"))
	if err != nil {
		t.Fatalf("root directory not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Errorf("root directory mode = %o, want 700", perm)
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("reading authority file: %v", err)
	}
	if !bytes.Equal(data, testRecord([]byte{1, 2}).Encode()) {
		t.Error("authority file does not hold the encoded record")
	}
}

func TestWrite_ReplacesInPlace(t *testing.T) {
	m := NewManager(t.TempDir())

	if err := m.Write(testRecord([]byte{1}), ":0"); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	first := m.Path()

	if err := m.Write(testRecord([]byte{2}), ":0"); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}
	if m.Path() != first {
		t.Errorf("path changed across writes: %q then %q", first, m.Path())
	}

	data, err := os.ReadFile(m.Path())
	if err != nil {
		t.Fatalf("reading authority file: %v", err)
	}
	if !bytes.Equal(data, testRecord([]byte{2}).Encode()) {
		t.Error("second write did not replace contents")
	}
}

func TestRemove_UnlinksAndClearsPath(t *testing.T) {
	m := NewManager(t.TempDir())

	if err := m.Write(testRecord([]byte{1}), ":0"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	path := m.Path()

	m.Remove()
	if m.Path() != "" {
		t.Errorf("Path() = %q after Remove, want empty", m.Path())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("authority file still exists after Remove")
	}

	// Remove on every stop path means it must tolerate repeats and
	// never-written managers.
	m.Remove()
	NewManager(t.TempDir()).Remove()
}
