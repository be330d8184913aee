// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gf2crc

import (
	"math/big"
)

// Degree returns the degree of generator, ie. its length less one, which
// is also the number of check bits it produces.
func Degree(generator *big.Int) (int, error) {
	if err := validateGenerator(generator); err != nil {
		return 0, err
	}
	return generator.BitLen() - 1, nil
}

// Pad appends Degree(generator) trailing zero bits to sequence.
func Pad(sequence, generator *big.Int) (*big.Int, error) {
	if err := validate(sequence, generator); err != nil {
		return nil, err
	}
	return new(big.Int).Lsh(sequence, uint(generator.BitLen()-1)), nil
}

// Encode returns sequence with the CRC check bits for generator appended
// as its least significant bits. The result is always exactly divisible
// by generator.
func Encode(sequence, generator *big.Int) (*big.Int, error) {
	padded, err := Pad(sequence, generator)
	if err != nil {
		return nil, err
	}
	rem, err := Remainder(padded, generator)
	if err != nil {
		return nil, err
	}
	// The low order bits of padded are all zero, so adding the remainder
	// is the same as or'ing it in.
	return padded.Add(padded, rem), nil
}

// Decode returns true if no errors are detected in candidate, that is,
// if it is exactly divisible by generator. A false return indicates that
// the data is corrupt and is not an error; Decode does not attempt to
// locate or correct the corruption.
func Decode(candidate, generator *big.Int) (bool, error) {
	rem, err := Remainder(candidate, generator)
	if err != nil {
		return false, err
	}
	return rem.Sign() == 0, nil
}
