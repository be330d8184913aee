// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package catalog provides a table of commonly used, named, CRC generator
// polynomials. See https://en.wikipedia.org/wiki/Cyclic_redundancy_check.
package catalog

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// CRC32 is the name of the catalog entry that callers may use as a
// default generator.
const CRC32 = "CRC-32"

// Entry represents a named generator polynomial.
type Entry struct {
	Name string
	// Koopman is the polynomial in Koopman notation, ie. with the
	// implicit +1 term omitted.
	Koopman uint64
	// Poly is the full generator polynomial, Koopman<<1 | 1.
	Poly *big.Int
}

// Degree returns the degree of the generator polynomial.
func (e Entry) Degree() int {
	return e.Poly.BitLen() - 1
}

func (e Entry) String() string {
	return fmt.Sprintf("%v (degree %v): %#x", e.Name, e.Degree(), e.Poly)
}

var table = []struct {
	name    string
	koopman uint64
}{
	{"CRC-1", 0x1},
	{"CRC-3-GSM", 0x5},
	{"CRC-4-ITU", 0x9},
	{"CRC-5-EPC", 0x14},
	{"CRC-5-ITU", 0x1A},
	{"CRC-5-USB", 0x12},
	{"CRC-6-CDMA2000-A", 0x33},
	{"CRC-6-CDMA2000-B", 0x23},
	{"CRC-6-DARC", 0x2C},
	{"CRC-6-GSM", 0x37},
	{"CRC-6-ITU", 0x21},
	{"CRC-7", 0x44},
	{"CRC-7-MVB", 0x72},
	{"CRC-8", 0xEA},
	{"CRC-8-AUTOSAR", 0x97},
	{"CRC-8-Bluetooth", 0xD3},
	{"CRC-8-CCITT", 0x83},
	{"CRC-8-Dallas/Maxim", 0x98},
	{"CRC-8-DARC", 0x9C},
	{"CRC-8-GSM-B", 0xA4},
	{"CRC-8-SAE J1850", 0x8E},
	{"CRC-8-WCDMA", 0xCD},
	{"CRC-10", 0x319},
	{"CRC-10-CDMA2000", 0x3EC},
	{"CRC-10-GSM", 0x2BA},
	{"CRC-11", 0x5C2},
	{"CRC-12", 0xC07},
	{"CRC-12-CDMA2000", 0xF89},
	{"CRC-12-GSM", 0xE98},
	{"CRC-13-BBC", 0x1E7A},
	{"CRC-14-DARC", 0x2402},
	{"CRC-14-GSM", 0x3016},
	{"CRC-15-CAN", 0x62CC},
	{"CRC-15-MPT1327", 0x740A},
	{"CRC-16-Chakravarty", 0x978A},
	{"CRC-16-ARINC", 0xD015},
	{"CRC-16-CCITT", 0x8810},
	{"CRC-16-CDMA2000", 0xE433},
	{"CRC-16-DECT", 0x82C4},
	{"CRC-16-T10-DIF", 0xC5DB},
	{"CRC-16-DNP", 0x9EB2},
	{"CRC-16-IBM", 0xC002},
	{"CRC-16-OpenSafety-A", 0xAC9A},
	{"CRC-16-OpenSafety-B", 0xBAAD},
	{"CRC-16-Profibus", 0x8EE7},
	{"CRC-17-CAN", 0x1B42D},
	{"CRC-21-CAN", 0x18144C},
	{"CRC-24", 0xAEB6E5},
	{"CRC-24-Radix-64", 0xC3267D},
	{"CRC-24-WCDMA", 0xC00031},
	{"CRC-30", 0x30185CE3},
	{"CRC-32", 0x82608EDB},
	{"CRC-32C", 0x8F6E37A0},
	{"CRC-32K", 0xBA0DC66B},
	{"CRC-32K2", 0x992C1A4C},
	{"CRC-32Q", 0xC0A0A0D5},
	{"CRC-40-GSM", 0x8002410004},
	{"CRC-64-ECMA", 0xA17870F5D4F51B49},
	{"CRC-64-ISO", 0x800000000000000D},
}

var (
	entries []Entry
	byName  map[string]int
	byPoly  map[string]int
)

func init() {
	entries = make([]Entry, 0, len(table))
	for _, t := range table {
		poly := new(big.Int).SetUint64(t.koopman)
		poly.Lsh(poly, 1)
		poly.SetBit(poly, 0, 1)
		entries = append(entries, Entry{Name: t.name, Koopman: t.koopman, Poly: poly})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if di, dj := entries[i].Degree(), entries[j].Degree(); di != dj {
			return di < dj
		}
		return entries[i].Name < entries[j].Name
	})
	byName = make(map[string]int, len(entries))
	byPoly = make(map[string]int, len(entries))
	for i, e := range entries {
		byName[strings.ToLower(e.Name)] = i
		byPoly[e.Poly.Text(16)] = i
	}
}

func (e Entry) copy() Entry {
	e.Poly = new(big.Int).Set(e.Poly)
	return e
}

// All returns all of the entries in the catalog ordered by degree
// and then by name.
func All() []Entry {
	all := make([]Entry, len(entries))
	for i, e := range entries {
		all[i] = e.copy()
	}
	return all
}

// Lookup returns the entry with the specified name, the comparison
// is case insensitive.
func Lookup(name string) (Entry, bool) {
	i, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Entry{}, false
	}
	return entries[i].copy(), true
}

// Name returns the name of the catalog entry for the specified
// generator polynomial.
func Name(poly *big.Int) (string, bool) {
	if poly == nil {
		return "", false
	}
	i, ok := byPoly[poly.Text(16)]
	if !ok {
		return "", false
	}
	return entries[i].Name, true
}

// Default returns the CRC32 entry.
func Default() Entry {
	e, _ := Lookup(CRC32)
	return e
}
