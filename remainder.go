// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gf2crc

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cosnicolaou/gf2crc/bitops"
)

var (
	// ErrInvalidArgument is returned for contract violations such as
	// a negative bit ordinal or a negative sequence.
	ErrInvalidArgument = bitops.ErrInvalidArgument

	// ErrInvalidGenerator is returned for a generator polynomial of
	// degree less than 1. It wraps ErrInvalidArgument.
	ErrInvalidGenerator = fmt.Errorf("generator polynomial must have degree >= 1: %w", ErrInvalidArgument)

	// ErrInvalidSequence is returned when the textual representation
	// of a sequence is empty or contains anything other than binary digits.
	ErrInvalidSequence = errors.New("sequence must be a non-empty string of binary digits (0 or 1)")
)

func validateGenerator(generator *big.Int) error {
	if generator == nil || generator.Sign() < 0 || generator.BitLen() < 2 {
		return fmt.Errorf("%v: %w", generator, ErrInvalidGenerator)
	}
	return nil
}

func validateSequence(sequence *big.Int) error {
	if sequence == nil {
		return fmt.Errorf("nil sequence: %w", ErrInvalidArgument)
	}
	if sequence.Sign() < 0 {
		return fmt.Errorf("negative sequence %v: %w", sequence, ErrInvalidArgument)
	}
	return nil
}

func validate(sequence, generator *big.Int) error {
	if err := validateGenerator(generator); err != nil {
		return err
	}
	return validateSequence(sequence)
}

// Remainder returns the terminal remainder of the polynomial long division
// of sequence by generator in GF(2); the quotient is discarded. The
// remainder is zero if, and only if, sequence is a valid codeword for
// generator, and it is always shorter than generator.
func Remainder(sequence, generator *big.Int) (*big.Int, error) {
	if err := validate(sequence, generator); err != nil {
		return nil, err
	}
	glen := generator.BitLen()
	msb := glen - 1

	// next is the ordinal of the next dividend bit to be brought into
	// the working register once it holds the top glen bits of sequence.
	next := sequence.BitLen() - glen - 1
	reg := new(big.Int)
	if next >= 0 {
		reg.Rsh(sequence, uint(next+1))
	} else {
		// the sequence is no longer than the generator, at most a
		// single subtraction is required.
		reg.Set(sequence)
	}

	var err error
	for ; next >= 0; next-- {
		if _, err = bitops.XorIfMSBSet(reg, reg, msb, generator); err != nil {
			return nil, err
		}
		if _, err = bitops.ShiftIn(reg, reg, next, sequence); err != nil {
			return nil, err
		}
		// The register is glen bits wide, drop the bit shifted out of it.
		if _, err = bitops.ClearBit(reg, reg, glen); err != nil {
			return nil, err
		}
	}
	if _, err = bitops.XorIfMSBSet(reg, reg, msb, generator); err != nil {
		return nil, err
	}
	return reg, nil
}
