// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/users/directory.go
// Summary: System user lookups plus persisted per-user preferences.

package users

import (
	"database/sql"
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	name     TEXT PRIMARY KEY,
	language TEXT NOT NULL DEFAULT '',
	session  TEXT NOT NULL DEFAULT ''
);
`

// Test seams.
var (
	lookupByName = user.Lookup
	lookupByID   = user.LookupId
	effectiveUID = os.Geteuid
)

// Directory resolves system accounts and persists the two mutable
// fields the display manager owns per user: preferred language and
// preferred session.
type Directory struct {
	db         *sql.DB
	passwdPath string
}

// Open creates or opens the preferences database at dbPath.
func Open(dbPath string) (*Directory, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open user db %s: %w", dbPath, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create user schema: %w", err)
	}
	return &Directory{db: db, passwdPath: "/etc/passwd"}, nil
}

func (d *Directory) Close() error {
	return d.db.Close()
}

// UserByName resolves a system account, nil when it does not exist.
func (d *Directory) UserByName(name string) *User {
	u, err := lookupByName(name)
	if err != nil {
		return nil
	}
	return d.wrap(u)
}

// Current resolves the account of the effective uid, nil when the uid
// has no passwd entry.
func (d *Directory) Current() *User {
	u, err := lookupByID(strconv.Itoa(effectiveUID()))
	if err != nil {
		return nil
	}
	return d.wrap(u)
}

func (d *Directory) wrap(u *user.User) *User {
	uid, _ := strconv.Atoi(u.Uid)
	gid, _ := strconv.Atoi(u.Gid)
	return &User{
		dir:   d,
		name:  u.Username,
		uid:   uid,
		gid:   gid,
		home:  u.HomeDir,
		shell: d.loginShell(u.Username),
	}
}

// loginShell reads the shell field from passwd; the stdlib lookup does
// not surface it.
func (d *Directory) loginShell(name string) string {
	data, err := os.ReadFile(d.passwdPath)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Split(line, ":")
		if len(fields) >= 7 && fields[0] == name {
			return fields[6]
		}
	}
	return ""
}

func (d *Directory) preference(name, column string) string {
	var value string
	// column is one of our two schema fields, never caller input.
	query := fmt.Sprintf("SELECT %s FROM users WHERE name = ?", column)
	if err := d.db.QueryRow(query, name).Scan(&value); err != nil {
		return ""
	}
	return value
}

func (d *Directory) setPreference(name, column, value string) error {
	query := fmt.Sprintf(
		"INSERT INTO users (name, %[1]s) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET %[1]s = excluded.%[1]s",
		column)
	if _, err := d.db.Exec(query, name, value); err != nil {
		return fmt.Errorf("save %s for %s: %w", column, name, err)
	}
	return nil
}
