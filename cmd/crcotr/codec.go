// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"math/big"

	"cloudeng.io/errors"
	"github.com/cosnicolaou/gf2crc"
	"github.com/cosnicolaou/gf2crc/catalog"
)

// resolveGenerator accepts either the name of a catalog entry or a
// binary number.
func resolveGenerator(value string) (string, *big.Int, error) {
	if e, ok := catalog.Lookup(value); ok {
		return e.Name, e.Poly, nil
	}
	gen, err := gf2crc.ParseGenerator(value)
	if err != nil {
		return "", nil, fmt.Errorf("generator: %w", err)
	}
	if name, ok := catalog.Name(gen); ok {
		return name, gen, nil
	}
	return fmt.Sprintf("%b", gen), gen, nil
}

type sequenceOp func(seq gf2crc.Sequence, gen *big.Int) (string, error)

func forEachSequence(fv *codecFlags, args []string, op sequenceOp) error {
	name, gen, err := resolveGenerator(fv.Generator)
	if err != nil {
		return err
	}
	errs := errors.M{}
	for _, arg := range args {
		seq, err := gf2crc.ParseSequence(arg)
		if err != nil {
			errs.Append(err)
			continue
		}
		result, err := op(seq, gen)
		if err != nil {
			errs.Append(fmt.Errorf("%v: %v", arg, err))
			continue
		}
		if fv.Verbose {
			fmt.Fprintf(stdout, "[%v] %% [%v] -> %v\n", seq, name, result)
			continue
		}
		fmt.Fprintln(stdout, result)
	}
	return errs.Err()
}

func encode(ctx context.Context, values interface{}, args []string) error {
	return forEachSequence(values.(*codecFlags), args,
		func(seq gf2crc.Sequence, gen *big.Int) (string, error) {
			encoded, err := gf2crc.EncodeSequence(seq, gen)
			return encoded.String(), err
		})
}

func decode(ctx context.Context, values interface{}, args []string) error {
	return forEachSequence(values.(*codecFlags), args,
		func(seq gf2crc.Sequence, gen *big.Int) (string, error) {
			ok, err := gf2crc.DecodeSequence(seq, gen)
			if err != nil {
				return "", err
			}
			if ok {
				return "ok", nil
			}
			return "error detected", nil
		})
}

func check(ctx context.Context, values interface{}, args []string) error {
	return forEachSequence(values.(*codecFlags), args,
		func(seq gf2crc.Sequence, gen *big.Int) (string, error) {
			rem, err := gf2crc.RemainderSequence(seq, gen)
			return rem.String(), err
		})
}

func pad(ctx context.Context, values interface{}, args []string) error {
	return forEachSequence(values.(*codecFlags), args,
		func(seq gf2crc.Sequence, gen *big.Int) (string, error) {
			padded, err := gf2crc.PadSequence(seq, gen)
			return padded.String(), err
		})
}
