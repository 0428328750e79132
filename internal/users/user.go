// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/users/user.go
// Summary: Read-only projection of one directory account.

package users

// User is a thin handle over one account record. Every accessor
// tolerates a nil receiver and returns its zero value, so callers that
// looked up a missing account can carry the nil through without
// sprinkling checks.
type User struct {
	dir   *Directory
	name  string
	uid   int
	gid   int
	home  string
	shell string
}

func (u *User) Name() string {
	if u == nil {
		return ""
	}
	return u.name
}

func (u *User) UID() int {
	if u == nil {
		return 0
	}
	return u.uid
}

func (u *User) GID() int {
	if u == nil {
		return 0
	}
	return u.gid
}

func (u *User) Home() string {
	if u == nil {
		return ""
	}
	return u.home
}

func (u *User) Shell() string {
	if u == nil {
		return ""
	}
	return u.shell
}

// Language returns the user's persisted preferred language, "" when
// never set.
func (u *User) Language() string {
	if u == nil {
		return ""
	}
	return u.dir.preference(u.name, "language")
}

// SetLanguage persists the preferred language.
func (u *User) SetLanguage(language string) error {
	if u == nil {
		return nil
	}
	return u.dir.setPreference(u.name, "language", language)
}

// Session returns the user's persisted preferred session, "" when
// never set.
func (u *User) Session() string {
	if u == nil {
		return ""
	}
	return u.dir.preference(u.name, "session")
}

// SetSession persists the preferred session.
func (u *User) SetSession(session string) error {
	if u == nil {
		return nil
	}
	return u.dir.setPreference(u.name, "session", session)
}
