// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command crcotr computes, appends and verifies cyclic redundancy checks
// using polynomial long division in GF(2), and benchmarks the cost of
// doing so for the commonly used generator polynomials.
package main

import (
	"context"
	"io"
	"log"
	"os"

	"cloudeng.io/cmdutil/subcmd"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cosnicolaou/gf2crc/catalog"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/grailbio/base/must"
)

// stdout is used for all command output other than progress bars.
var stdout io.Writer = os.Stdout

type codecFlags struct {
	Generator string `subcmd:"generator,,'generator polynomial, either the name of a catalog entry or a binary number'"`
	Verbose   bool   `subcmd:"verbose,false,'print the input and generator alongside each result'"`
}

type catalogFlags struct {
	Binary bool `subcmd:"binary,false,'display polynomials in binary rather than hex'"`
}

type benchmarkFlags struct {
	Output      string `subcmd:"output,,'output file or s3 path, omit for stdout'"`
	Generators  string `subcmd:"generators,,'comma separated list of catalog entries to benchmark, omit for all'"`
	Lengths     string `subcmd:"lengths,,'comma separated list of sequence lengths, in bits'"`
	Repeats     int    `subcmd:"repeats,100,'number of random sequences to time for each generator and length'"`
	Concurrency int    `subcmd:"concurrency,1,'number of generator and length combinations to time concurrently'"`
	Operation   string `subcmd:"operation,remainder,'the operation to time, remainder or encode'"`
	Seed        int    `subcmd:"seed,4660,'seed for the random sequences'"`
	ProgressBar bool   `subcmd:"progress,true,display a progress bar"`
	Verbose     bool   `subcmd:"verbose,false,verbose debug/trace information"`
}

type summarizeFlags struct{}

func init() {
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(
			s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

func newFlagSet(values interface{}, defaults map[string]interface{}) *subcmd.FlagSet {
	fs := subcmd.NewFlagSet()
	must.Nil(fs.RegisterFlagStruct(values, defaults, nil))
	return fs
}

func codecCommand(name string, runner subcmd.Runner, doc string) *subcmd.Command {
	fs := newFlagSet(&codecFlags{}, map[string]interface{}{
		"generator": catalog.CRC32,
	})
	cmd := subcmd.NewCommand(name, fs, runner, subcmd.AtLeastNArguments(1))
	cmd.Document(doc, "<binary-sequence>...")
	return cmd
}

func commands() *subcmd.CommandSet {
	encodeCmd := codecCommand("encode", encode,
		"append the CRC check bits for the generator to each sequence.")
	decodeCmd := codecCommand("decode", decode,
		"check each codeword for errors, printing ok or 'error detected'.")
	checkCmd := codecCommand("check", check,
		"print the remainder of the division of each sequence by the generator.")
	padCmd := codecCommand("pad", pad,
		"append as many zero bits as the degree of the generator to each sequence.")

	catalogCmd := subcmd.NewCommand("catalog",
		newFlagSet(&catalogFlags{}, nil),
		listCatalog, subcmd.WithoutArguments())
	catalogCmd.Document("list the named generator polynomials.")

	benchmarkCmd := subcmd.NewCommand("benchmark",
		newFlagSet(&benchmarkFlags{}, map[string]interface{}{
			"lengths": "64,128,256,512,1024,2048,4096",
		}),
		benchmark, subcmd.WithoutArguments())
	benchmarkCmd.Document("time the CRC operations for catalog generators over random sequences, writing the results as CSV.")

	summarizeCmd := subcmd.NewCommand("summarize",
		newFlagSet(&summarizeFlags{}, nil),
		summarize, subcmd.AtLeastNArguments(1))
	summarizeCmd.Document("summarize benchmark results per generator.", "<csv-file-s3-path-or-url>...")

	cmdSet := subcmd.NewCommandSet(encodeCmd, decodeCmd, checkCmd, padCmd,
		catalogCmd, benchmarkCmd, summarizeCmd)
	cmdSet.Document(`compute and verify cyclic redundancy checks using polynomial long division in GF(2).

Sequences and generators are specified as binary digits, optionally prefixed
by 0b. Generators may also be specified by the name of a catalog entry.`)
	return cmdSet
}

func main() {
	ctx := context.Background()
	if err := commands().Dispatch(ctx); err != nil {
		log.Fatal(err)
	}
}
