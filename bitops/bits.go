// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bitops provides the bit level primitives used to carry out
// polynomial long division over GF(2). Values are arbitrary precision,
// non-negative integers treated as bit vectors with bit 0 being the least
// significant bit.
//
// The functions that return a *big.Int follow the conventions of math/big:
// the result is stored in z, which is also returned, and z may alias any
// of the inputs. Passing a freshly allocated z leaves the inputs untouched.
package bitops

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidArgument is returned for a negative bit ordinal or for a nil or
// negative value.
var ErrInvalidArgument = errors.New("invalid argument")

func checkOrdinal(bit int) error {
	if bit < 0 {
		return fmt.Errorf("invalid bit ordinal indicator %d: %w", bit, ErrInvalidArgument)
	}
	return nil
}

func checkValue(x *big.Int) error {
	if x == nil {
		return fmt.Errorf("nil value: %w", ErrInvalidArgument)
	}
	if x.Sign() < 0 {
		return fmt.Errorf("negative value %v: %w", x, ErrInvalidArgument)
	}
	return nil
}

func check(x *big.Int, bit int) error {
	if err := checkOrdinal(bit); err != nil {
		return err
	}
	return checkValue(x)
}

// Len returns the length of x as a bit sequence, that is, the position of
// its highest set bit plus one. The length of 0 is 0.
func Len(x *big.Int) int {
	return x.BitLen()
}

// GetBit returns the value of the specified bit of x. Bits beyond the
// highest set bit of x are 0.
func GetBit(x *big.Int, bit int) (uint, error) {
	if err := check(x, bit); err != nil {
		return 0, err
	}
	return x.Bit(bit), nil
}

// SetBit sets z to x with the specified bit set to 1.
func SetBit(z, x *big.Int, bit int) (*big.Int, error) {
	if err := check(x, bit); err != nil {
		return nil, err
	}
	return z.SetBit(x, bit, 1), nil
}

// ClearBit sets z to x with the specified bit set to 0.
func ClearBit(z, x *big.Int, bit int) (*big.Int, error) {
	if err := check(x, bit); err != nil {
		return nil, err
	}
	return z.SetBit(x, bit, 0), nil
}

// ShiftIn sets z to x shifted left by one with the specified bit of
// source as its new least significant bit. It brings the next bit of
// the dividend into the working register.
func ShiftIn(z, x *big.Int, bit int, source *big.Int) (*big.Int, error) {
	if err := checkValue(x); err != nil {
		return nil, err
	}
	next, err := GetBit(source, bit)
	if err != nil {
		return nil, fmt.Errorf("failed to shift in bit: %w", err)
	}
	z.Lsh(x, 1)
	return z.SetBit(z, 0, next), nil
}

// XorIfMSBSet sets z to x XOR operand if bit msb of x is 1, and to x
// otherwise. It subtracts the divisor, modulo 2, only when the leading
// bit of the partial remainder is set.
func XorIfMSBSet(z, x *big.Int, msb int, operand *big.Int) (*big.Int, error) {
	set, err := GetBit(x, msb)
	if err != nil {
		return nil, fmt.Errorf("failed to test leading bit: %w", err)
	}
	if err := checkValue(operand); err != nil {
		return nil, err
	}
	if set == 0 {
		return z.Set(x), nil
	}
	return z.Xor(x, operand), nil
}
