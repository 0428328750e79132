// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/display/allocator.go
// Summary: Display-number allocation reconciled against foreign X lock files.

package display

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// DefaultLockDir is where X servers drop their .X<n>-lock files.
const DefaultLockDir = "/tmp"

// killProbe checks whether a PID is alive with signal 0; swapped in tests.
var killProbe = func(pid int) error {
	return unix.Kill(pid, 0)
}

// Allocator hands out display numbers. A number is in use when we have
// reserved it ourselves or when another X server holds a live lock file
// for it. There is one allocator per process and it is only touched from
// the dispatch loop.
type Allocator struct {
	minimum  int
	lockDir  string
	reserved map[int]bool
}

// NewAllocator returns an allocator starting at minimum. lockDir
// overrides the lock-file directory; "" means DefaultLockDir.
func NewAllocator(minimum int, lockDir string) *Allocator {
	if lockDir == "" {
		lockDir = DefaultLockDir
	}
	return &Allocator{
		minimum:  minimum,
		lockDir:  lockDir,
		reserved: make(map[int]bool),
	}
}

// Reserve returns the smallest free display number at or above the
// configured minimum and records it as taken.
func (a *Allocator) Reserve() int {
	n := a.minimum
	for a.inUse(n) {
		n++
	}
	a.reserved[n] = true
	return n
}

// Release frees a previously reserved number. Releasing a number that is
// not reserved is a no-op.
func (a *Allocator) Release(n int) {
	delete(a.reserved, n)
}

func (a *Allocator) inUse(n int) bool {
	return a.reserved[n] || a.foreignLock(n)
}

// foreignLock reports whether another process holds a valid lock for
// display n. The probe is deliberately conservative: any failure other
// than "the lock's owner no longer exists" keeps the number off limits.
func (a *Allocator) foreignLock(n int) bool {
	data, err := os.ReadFile(a.lockPath(n))
	if err != nil {
		return !os.IsNotExist(err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return true
	}

	if err := killProbe(pid); errors.Is(err, unix.ESRCH) {
		return false
	}
	return true
}

func (a *Allocator) lockPath(n int) string {
	return filepath.Join(a.lockDir, fmt.Sprintf(".X%d-lock", n))
}
