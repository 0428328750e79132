// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/xauth/record_test.go

package xauth

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncode_WireFormat(t *testing.T) {
	r := &Record{
		Family:  FamilyLocal,
		Address: "myhost",
		Number:  "2",
		Name:    CookieName,
		Data:    []byte{0xde, 0xad, 0xbe, 0xef},
	}

	encoded := r.Encode()

	if family := binary.BigEndian.Uint16(encoded); family != FamilyLocal {
		t.Errorf("family = %d, want %d", family, FamilyLocal)
	}

	// Walk the four length-prefixed fields.
	rest := encoded[2:]
	for i, want := range [][]byte{[]byte("myhost"), []byte("2"), []byte(CookieName), {0xde, 0xad, 0xbe, 0xef}} {
		if len(rest) < 2 {
			t.Fatalf("field %d: truncated", i)
		}
		length := int(binary.BigEndian.Uint16(rest))
		rest = rest[2:]
		if len(rest) < length {
			t.Fatalf("field %d: length %d overruns buffer", i, length)
		}
		if !bytes.Equal(rest[:length], want) {
			t.Errorf("field %d = %q, want %q", i, rest[:length], want)
		}
		rest = rest[length:]
	}
	if len(rest) != 0 {
		t.Errorf("%d trailing bytes after last field", len(rest))
	}
}

func TestNewLocalCookie(t *testing.T) {
	r, err := NewLocalCookie(3)
	if err != nil {
		t.Fatalf("NewLocalCookie() error = %v", err)
	}

	if r.Family != FamilyLocal {
		t.Errorf("family = %d, want %d", r.Family, FamilyLocal)
	}
	if r.Number != "3" {
		t.Errorf("number = %q, want \"3\"", r.Number)
	}
	if r.Name != CookieName {
		t.Errorf("name = %q, want %q", r.Name, CookieName)
	}
	if len(r.Data) != 16 {
		t.Errorf("cookie length = %d, want 16", len(r.Data))
	}
	if len(r.Hex()) != 32 {
		t.Errorf("hex cookie length = %d, want 32", len(r.Hex()))
	}
}

func TestNewCookieFromKey(t *testing.T) {
	hexKey, err := NewCookieFromKey(0, "deadbeef")
	if err != nil {
		t.Fatalf("NewCookieFromKey() error = %v", err)
	}
	if !bytes.Equal(hexKey.Data, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("hex key data = %x, want deadbeef", hexKey.Data)
	}

	textKey, err := NewCookieFromKey(0, "not-hex!")
	if err != nil {
		t.Fatalf("NewCookieFromKey() error = %v", err)
	}
	if !bytes.Equal(textKey.Data, []byte("not-hex!")) {
		t.Errorf("text key data = %q, want raw text", textKey.Data)
	}
}
