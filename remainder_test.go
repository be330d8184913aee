// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gf2crc_test

import (
	"errors"
	"math/big"
	"math/rand"
	"runtime"
	"testing"

	"github.com/cosnicolaou/gf2crc"
	"github.com/cosnicolaou/gf2crc/internal"
	"github.com/sigurn/crc16"
)

func bi(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// referenceRemainder computes the remainder by repeatedly subtracting
// the generator aligned with the leading bit of the dividend.
func referenceRemainder(sequence, generator *big.Int) *big.Int {
	rem := new(big.Int).Set(sequence)
	g := generator.BitLen()
	shifted := new(big.Int)
	for rem.BitLen() >= g {
		shifted.Lsh(generator, uint(rem.BitLen()-g))
		rem.Xor(rem, shifted)
	}
	return rem
}

func remainder(t *testing.T, sequence, generator *big.Int) *big.Int {
	rem, err := gf2crc.Remainder(sequence, generator)
	if err != nil {
		_, _, line, _ := runtime.Caller(1)
		t.Fatalf("line %v: %v", line, err)
	}
	return rem
}

func TestRemainder(t *testing.T) {
	for i, tc := range []struct {
		sequence, generator, remainder uint64
	}{
		{0b11011010000, 0b10101, 0b1011},
		{0b11011011011, 0b10101, 0},
		{0b100100000, 0b1101, 0b1},
		{0b100100001, 0b1101, 0},
		// dividend one bit longer than the generator.
		{0b10101, 0b1101, 0b10},
		{0b1100, 0b111, 0b10},
		// dividend the same length as the generator.
		{0b1101, 0b1101, 0},
		{0b1111, 0b1101, 0b10},
		// dividend shorter than the generator.
		{0b101, 0b1101, 0b101},
		{0, 0b1101, 0},
		{0b1, 0b11, 0b1},
	} {
		got := remainder(t, bi(tc.sequence), bi(tc.generator))
		if want := bi(tc.remainder); got.Cmp(want) != 0 {
			t.Errorf("%v: %b %% %b: got %b, want %b", i, tc.sequence, tc.generator, got, want)
		}
	}
}

func TestRemainderReference(t *testing.T) {
	t.Logf("rand seed: %v", internal.RandSeed())
	rnd := rand.New(rand.NewSource(internal.RandSeed()))
	for i := 0; i < 5000; i++ {
		glen := 2 + rnd.Intn(70)
		generator := internal.RandomSequence(rnd, glen)
		// Bias towards lengths close to that of the generator.
		slen := rnd.Intn(glen + 3)
		if i%2 == 0 {
			slen = rnd.Intn(300)
		}
		sequence := internal.RandomSequence(rnd, slen)
		got := remainder(t, sequence, generator)
		if want := referenceRemainder(sequence, generator); got.Cmp(want) != 0 {
			t.Fatalf("%v: %b %% %b: got %b, want %b", i, sequence, generator, got, want)
		}
		if got.Cmp(generator) >= 0 || got.BitLen() >= glen {
			t.Fatalf("%v: %b %% %b: remainder %b is too large", i, sequence, generator, got)
		}
	}
}

func TestRemainderStandardCRCs(t *testing.T) {
	xmodem := crc16.MakeTable(crc16.CRC16_XMODEM)
	ccitt := bi(0x11021)
	ieee := bi(0x104c11db7)
	for i, tc := range []struct {
		data  []byte
		crc16 uint64
		crc32 uint64
	}{
		{[]byte{}, 0x0000, 0x00000000},
		{[]byte{0x00, 0x01}, 0x1021, 0x04c11db7},
		{[]byte("hello world"), 0x3be4, 0x737af2ae},
		{[]byte("123456789"), 0x31c3, 0x89a1897f},
	} {
		msg := new(big.Int).SetBytes(tc.data)
		got := remainder(t, new(big.Int).Lsh(msg, 16), ccitt)
		if want := bi(tc.crc16); got.Cmp(want) != 0 {
			t.Errorf("%v: crc16 %q: got %#04x, want %#04x", i, tc.data, got, want)
		}
		if want := uint64(crc16.Checksum(tc.data, xmodem)); got.Uint64() != want {
			t.Errorf("%v: crc16 %q: got %#04x, want %#04x", i, tc.data, got, want)
		}
		got = remainder(t, new(big.Int).Lsh(msg, 32), ieee)
		if want := bi(tc.crc32); got.Cmp(want) != 0 {
			t.Errorf("%v: crc32 %q: got %#08x, want %#08x", i, tc.data, got, want)
		}
	}

	rnd := rand.New(rand.NewSource(internal.RandSeed()))
	for i := 0; i < 100; i++ {
		data := make([]byte, 1+rnd.Intn(256))
		rnd.Read(data)
		msg := new(big.Int).SetBytes(data)
		got := remainder(t, new(big.Int).Lsh(msg, 16), ccitt)
		if want := uint64(crc16.Checksum(data, xmodem)); got.Uint64() != want {
			t.Errorf("%v: crc16 %x: got %#04x, want %#04x", i, data, got, want)
		}
		crc := &internal.CRC32{}
		crc.Write(data[:len(data)/2])
		crc.Write(data[len(data)/2:])
		got = remainder(t, new(big.Int).Lsh(msg, 32), ieee)
		if want := uint64(crc.Sum32()); got.Uint64() != want {
			t.Errorf("%v: crc32 %x: got %#08x, want %#08x", i, data, got, want)
		}
	}
}

func TestCRC32Oracle(t *testing.T) {
	for i, tc := range []struct {
		data []byte
		crc  uint32
	}{
		{nil, 0},
		{[]byte{0x00, 0x01}, 0x04c11db7},
		{[]byte("hello world"), 0x737af2ae},
		{[]byte("123456789"), 0x89a1897f},
	} {
		crc := &internal.CRC32{}
		crc.Write(tc.data)
		if got, want := crc.Sum32(), tc.crc; got != want {
			t.Errorf("%v: %q: got %#08x, want %#08x", i, tc.data, got, want)
		}
	}
}

func TestRemainderDoesNotModifyInputs(t *testing.T) {
	sequence, generator := bi(0b11011010000), bi(0b10101)
	for i := 0; i < 3; i++ {
		if got, want := remainder(t, sequence, generator), bi(0b1011); got.Cmp(want) != 0 {
			t.Errorf("%v: got %b, want %b", i, got, want)
		}
	}
	if got, want := sequence, bi(0b11011010000); got.Cmp(want) != 0 {
		t.Errorf("got %b, want %b", got, want)
	}
	if got, want := generator, bi(0b10101); got.Cmp(want) != 0 {
		t.Errorf("got %b, want %b", got, want)
	}
}

func TestRemainderErrors(t *testing.T) {
	for i, tc := range []struct {
		sequence, generator *big.Int
		err                 error
	}{
		{bi(0b1101), bi(0b1), gf2crc.ErrInvalidGenerator},
		{bi(0b1101), bi(0), gf2crc.ErrInvalidGenerator},
		{bi(0b1101), nil, gf2crc.ErrInvalidGenerator},
		{bi(0b1101), big.NewInt(-5), gf2crc.ErrInvalidGenerator},
		{nil, bi(0b1101), gf2crc.ErrInvalidArgument},
		{big.NewInt(-1), bi(0b1101), gf2crc.ErrInvalidArgument},
	} {
		_, err := gf2crc.Remainder(tc.sequence, tc.generator)
		if err == nil || !errors.Is(err, tc.err) {
			t.Errorf("%v: missing or wrong error: %v", i, err)
		}
		if !errors.Is(err, gf2crc.ErrInvalidArgument) {
			t.Errorf("%v: %v is not an invalid argument error", i, err)
		}
	}
}
