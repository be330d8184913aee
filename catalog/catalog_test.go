// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package catalog_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/cosnicolaou/gf2crc"
	"github.com/cosnicolaou/gf2crc/catalog"
)

func TestCatalog(t *testing.T) {
	all := catalog.All()
	if got, want := len(all), 59; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, e := range all {
		if e.Degree() < 1 {
			t.Errorf("%v: %v: degree too small", i, e)
		}
		if got, want := e.Poly.Bit(0), uint(1); got != want {
			t.Errorf("%v: %v: got %v, want %v", i, e, got, want)
		}
		if i > 0 && all[i-1].Degree() > e.Degree() {
			t.Errorf("%v: %v: out of order", i, e)
		}
		name, ok := catalog.Name(e.Poly)
		if !ok || name != e.Name {
			t.Errorf("%v: %v: got %v, %v", i, e, name, ok)
		}
	}
	if got, want := all[0].Name, "CRC-1"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := all[len(all)-1].Degree(), 64; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLookup(t *testing.T) {
	for i, tc := range []struct {
		name   string
		poly   string
		degree int
	}{
		{"CRC-32", "104c11db7", 32},
		{"crc-32", "104c11db7", 32},
		{"CRC-16-CCITT", "11021", 16},
		{"CRC-8-CCITT", "107", 8},
		{"CRC-1", "3", 1},
		{"CRC-64-ECMA", "142f0e1eba9ea3693", 64},
		{"CRC-64-ISO", "1000000000000001b", 64},
	} {
		e, ok := catalog.Lookup(tc.name)
		if !ok {
			t.Errorf("%v: %v: not found", i, tc.name)
			continue
		}
		if got, want := e.Poly.Text(16), tc.poly; got != want {
			t.Errorf("%v: %v: got %v, want %v", i, tc.name, got, want)
		}
		if got, want := e.Degree(), tc.degree; got != want {
			t.Errorf("%v: %v: got %v, want %v", i, tc.name, got, want)
		}
	}
	if _, ok := catalog.Lookup("CRC-99"); ok {
		t.Errorf("unexpected entry")
	}
	if _, ok := catalog.Name(big.NewInt(0b10)); ok {
		t.Errorf("unexpected entry")
	}
	if got, want := catalog.Default().Name, catalog.CRC32; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// Entries are copies.
	e, _ := catalog.Lookup(catalog.CRC32)
	e.Poly.SetInt64(3)
	if got, want := catalog.Default().Degree(), 32; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSingleBitErrors(t *testing.T) {
	rnd := rand.New(rand.NewSource(0x1234))
	for _, e := range catalog.All() {
		seq := new(big.Int).Rand(rnd, new(big.Int).Lsh(big.NewInt(1), 48))
		seq.SetBit(seq, 48, 1)
		encoded, err := gf2crc.Encode(seq, e.Poly)
		if err != nil {
			t.Fatalf("%v: %v", e.Name, err)
		}
		ok, err := gf2crc.Decode(encoded, e.Poly)
		if err != nil || !ok {
			t.Fatalf("%v: failed to decode: %v, %v", e.Name, ok, err)
		}
		corrupted := new(big.Int)
		for b := 0; b < encoded.BitLen(); b++ {
			corrupted.SetBit(encoded, b, encoded.Bit(b)^1)
			ok, err := gf2crc.Decode(corrupted, e.Poly)
			if err != nil {
				t.Fatalf("%v: %v", e.Name, err)
			}
			if ok {
				t.Errorf("%v: failed to detect flipped bit %v", e.Name, b)
			}
		}
	}
}
