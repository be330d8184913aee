// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package gf2crc implements cyclic redundancy check (CRC) encoding,
// decoding and remainder computation using polynomial long division in
// GF(2) with an arbitrary generator polynomial of arbitrary width.
//
// Sequences and generators are non-negative integers whose binary
// representation is the bit sequence, most significant bit first. The
// length of a sequence is the position of its highest set bit plus one,
// so leading zero bits are not represented; Sequence records an explicit
// length for callers that need to retain them.
//
// The division is carried out directly, one bit at a time, rather than
// via precomputed tables. Benchmark can be used to measure its cost for
// a set of generators and sequence lengths.
package gf2crc
