// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/xauth/record.go
// Summary: MIT-MAGIC-COOKIE-1 authority records and their wire encoding.

package xauth

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
)

// Address families used in Xauthority records.
const (
	FamilyInternet  = 0
	FamilyInternet6 = 6
	FamilyLocal     = 256
	FamilyWild      = 65535
)

// CookieName is the only authorization protocol we issue.
const CookieName = "MIT-MAGIC-COOKIE-1"

const cookieLength = 16

// Record is a single authority entry. The on-disk format is the record
// concatenated repeatedly, all integers big endian:
//
//	uint16 family
//	uint16 addr_len,  uint8 addr[addr_len]
//	uint16 disp_len,  uint8 disp[disp_len]
//	uint16 name_len,  uint8 name[name_len]
//	uint16 data_len,  uint8 data[data_len]
type Record struct {
	Family  uint16
	Address string
	Number  string
	Name    string
	Data    []byte
}

// NewLocalCookie mints a fresh local-family cookie record for display
// number on this host.
func NewLocalCookie(number int) (*Record, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("get hostname: %w", err)
	}

	data := make([]byte, cookieLength)
	if _, err := rand.Read(data); err != nil {
		return nil, fmt.Errorf("generate cookie: %w", err)
	}

	return &Record{
		Family:  FamilyLocal,
		Address: hostname,
		Number:  strconv.Itoa(number),
		Name:    CookieName,
		Data:    data,
	}, nil
}

// NewCookieFromKey builds a record carrying a caller-supplied key. Keys
// that decode as hex are used raw, otherwise the text bytes are the
// cookie, matching how XDMCP keys are configured.
func NewCookieFromKey(number int, key string) (*Record, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("get hostname: %w", err)
	}

	data, decodeErr := hex.DecodeString(key)
	if decodeErr != nil {
		data = []byte(key)
	}

	return &Record{
		Family:  FamilyLocal,
		Address: hostname,
		Number:  strconv.Itoa(number),
		Name:    CookieName,
		Data:    data,
	}, nil
}

// Encode serialises the record in Xauthority wire format.
func (r *Record) Encode() []byte {
	buf := make([]byte, 2, 2+8+len(r.Address)+len(r.Number)+len(r.Name)+len(r.Data))
	binary.BigEndian.PutUint16(buf, r.Family)
	buf = appendString(buf, []byte(r.Address))
	buf = appendString(buf, []byte(r.Number))
	buf = appendString(buf, []byte(r.Name))
	buf = appendString(buf, r.Data)
	return buf
}

// Hex returns the cookie data as lowercase hex, the form the X server's
// -cookie flag and xauth(1) expect.
func (r *Record) Hex() string {
	return hex.EncodeToString(r.Data)
}

func appendString(buf, s []byte) []byte {
	var length [2]byte
	binary.BigEndian.PutUint16(length[:], uint16(len(s)))
	buf = append(buf, length[:]...)
	return append(buf, s...)
}
