// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package internal

import (
	"fmt"
	"math/big"
	"math/rand"
	"sync"
	"time"
)

// Seed for the pseudorandom generator used by GenPredictableRandomSequence.
const fixedRandSeed = 0x1234

var (
	randMu     sync.Mutex
	randSource rand.Source
	randSeed   int64
)

func init() {
	randSeed = time.Now().UnixNano()
	randSource = rand.NewSource(randSeed)
}

// RandSeed returns the seed used by GenReproducibleRandomSequence so that
// failing tests can be reproduced.
func RandSeed() int64 {
	return randSeed
}

// RandomSequence returns a random sequence of exactly length bits, ie.
// with its most significant bit set. A length of zero returns 0.
func RandomSequence(rnd *rand.Rand, length int) *big.Int {
	seq := new(big.Int)
	if length <= 0 {
		return seq
	}
	seq.Rand(rnd, new(big.Int).Lsh(big.NewInt(1), uint(length-1)))
	return seq.SetBit(seq, length-1, 1)
}

// GenPredictableRandomSequence generates a random sequence of length bits
// starting with a fixed known seed.
func GenPredictableRandomSequence(length int) *big.Int {
	return RandomSequence(rand.New(rand.NewSource(fixedRandSeed)), length)
}

// GenReproducibleRandomSequence uses the random seed returned by RandSeed.
func GenReproducibleRandomSequence(length int) *big.Int {
	randMu.Lock()
	defer randMu.Unlock()
	return RandomSequence(rand.New(randSource), length)
}

// FirstN returns at most the first n characters of the binary
// representation of v, for use in error messages.
func FirstN(n int, v *big.Int) string {
	s := fmt.Sprintf("%b", v)
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
