// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gf2crc

import (
	"fmt"
	"math/big"
	"strings"
)

// Sequence represents a bit sequence with an explicit length so that
// leading zero bits, which cannot be represented by the integer value
// alone, are retained. Length is always at least Value.BitLen().
// The CRC computations depend only on Value.
type Sequence struct {
	Value  *big.Int
	Length int
}

// NewSequence returns the Sequence for v with no leading zeros.
func NewSequence(v *big.Int) Sequence {
	return Sequence{Value: new(big.Int).Set(v), Length: v.BitLen()}
}

// SequenceFromBytes returns the Sequence represented by buf, most
// significant bit of the first byte first. Its length is 8*len(buf).
func SequenceFromBytes(buf []byte) Sequence {
	return Sequence{Value: new(big.Int).SetBytes(buf), Length: len(buf) * 8}
}

// ParseSequence parses a string of binary digits, with an optional 0b
// prefix and optional _ separators between digits. Leading zeros are
// retained in the returned Sequence's length.
func ParseSequence(s string) (Sequence, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "0b")
	digits = strings.ReplaceAll(digits, "_", "")
	if len(digits) == 0 {
		return Sequence{}, fmt.Errorf("%q: empty: %w", s, ErrInvalidSequence)
	}
	for i, r := range digits {
		if r != '0' && r != '1' {
			return Sequence{}, fmt.Errorf("%q: invalid digit %q at offset %v: %w", s, r, i, ErrInvalidSequence)
		}
	}
	v, ok := new(big.Int).SetString(digits, 2)
	if !ok {
		return Sequence{}, fmt.Errorf("%q: %w", s, ErrInvalidSequence)
	}
	return Sequence{Value: v, Length: len(digits)}, nil
}

// ParseGenerator parses a generator polynomial in the same format as
// ParseSequence and checks that it has degree >= 1.
func ParseGenerator(s string) (*big.Int, error) {
	seq, err := ParseSequence(s)
	if err != nil {
		return nil, err
	}
	if err := validateGenerator(seq.Value); err != nil {
		return nil, err
	}
	return seq.Value, nil
}

// String returns the binary representation of s, zero padded to its length.
func (s Sequence) String() string {
	if s.Value == nil {
		return strings.Repeat("0", s.Length)
	}
	return fmt.Sprintf("%0*b", s.Length, s.Value)
}

func (s Sequence) withLength(v *big.Int, extra int) Sequence {
	l := s.Length + extra
	if bl := v.BitLen(); bl > l {
		l = bl
	}
	return Sequence{Value: v, Length: l}
}

// EncodeSequence is like Encode except that it operates on a Sequence and
// the returned codeword retains any leading zeros of s.
func EncodeSequence(s Sequence, generator *big.Int) (Sequence, error) {
	encoded, err := Encode(s.Value, generator)
	if err != nil {
		return Sequence{}, err
	}
	return s.withLength(encoded, generator.BitLen()-1), nil
}

// PadSequence is like Pad except that it operates on a Sequence.
func PadSequence(s Sequence, generator *big.Int) (Sequence, error) {
	padded, err := Pad(s.Value, generator)
	if err != nil {
		return Sequence{}, err
	}
	return s.withLength(padded, generator.BitLen()-1), nil
}

// RemainderSequence is like Remainder except that the remainder is returned
// as a Sequence whose length is the degree of generator, ie. as the check
// bits that Encode would append.
func RemainderSequence(s Sequence, generator *big.Int) (Sequence, error) {
	rem, err := Remainder(s.Value, generator)
	if err != nil {
		return Sequence{}, err
	}
	return Sequence{Value: rem, Length: generator.BitLen() - 1}, nil
}

// DecodeSequence is like Decode except that it operates on a Sequence.
func DecodeSequence(s Sequence, generator *big.Int) (bool, error) {
	return Decode(s.Value, generator)
}
