// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"cloudeng.io/cmdutil"
	"github.com/cosnicolaou/gf2crc"
	"github.com/cosnicolaou/gf2crc/catalog"
	"github.com/schollz/progressbar/v2"
	"golang.org/x/crypto/ssh/terminal"
)

func progressBar(ctx context.Context, progressBarWr io.Writer, ch chan gf2crc.Progress, jobs int) {
	last := uint64(0)
	bar := progressbar.NewOptions64(int64(jobs),
		progressbar.OptionSetWriter(progressBarWr),
		progressbar.OptionSetPredictTime(true))
	bar.RenderBlank()
	for {
		select {
		case p, ok := <-ch:
			if !ok {
				fmt.Fprintf(progressBarWr, "\n")
				return
			}
			// Failed jobs are not reported, so gaps are expected.
			if p.Job <= last {
				log.Fatalf("out of sequence job %#v\n", p)
			}
			bar.Add(int(p.Job - last))
			last = p.Job
		case <-ctx.Done():
			return
		}
	}
}

func parseLengths(lengths string) ([]int, error) {
	var parsed []int
	for _, l := range strings.Split(lengths, ",") {
		l = strings.TrimSpace(l)
		if len(l) == 0 {
			continue
		}
		n, err := strconv.Atoi(l)
		if err != nil {
			return nil, fmt.Errorf("invalid sequence length: %q: %v", l, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid sequence length: %v", n)
		}
		parsed = append(parsed, n)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("no sequence lengths specified")
	}
	return parsed, nil
}

func selectGenerators(names string) ([]catalog.Entry, error) {
	if len(strings.TrimSpace(names)) == 0 {
		return catalog.All(), nil
	}
	var entries []catalog.Entry
	for _, name := range strings.Split(names, ",") {
		e, ok := catalog.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown generator: %q", name)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func benchmark(ctx context.Context, values interface{}, args []string) (returnErr error) {
	fv := values.(*benchmarkFlags)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmdutil.HandleSignals(cancel, os.Interrupt)

	op, err := gf2crc.ParseOperation(fv.Operation)
	if err != nil {
		return err
	}
	lengths, err := parseLengths(fv.Lengths)
	if err != nil {
		return err
	}
	generators, err := selectGenerators(fv.Generators)
	if err != nil {
		return err
	}

	wr, writerCleanup, err := createFile(ctx, fv.Output)
	if err != nil {
		return err
	}
	defer func() {
		if err := writerCleanup(ctx); err != nil {
			log.Printf("writer cleanup: %v", err)
			if returnErr == nil {
				returnErr = err
			}
		}
	}()

	bmOpts := []gf2crc.BenchmarkOption{
		gf2crc.BenchConcurrency(fv.Concurrency),
		gf2crc.BenchRepeats(fv.Repeats),
		gf2crc.BenchOperation(op),
		gf2crc.BenchSeed(int64(fv.Seed)),
		gf2crc.BenchVerbose(fv.Verbose),
	}

	// Kick off the progress bar, if requested and the output is not
	// being written to stdout.
	var (
		progressBarCh chan gf2crc.Progress
		progressBarWg sync.WaitGroup
		progressBarWr io.Writer = os.Stdout
	)
	showProgressBar := len(fv.Output) > 0
	isTTY := terminal.IsTerminal(int(os.Stdout.Fd()))
	if fv.ProgressBar && (showProgressBar || !isTTY) {
		progressBarCh = make(chan gf2crc.Progress, fv.Concurrency)
		progressBarWg.Add(1)
		bmOpts = append(bmOpts, gf2crc.BenchSendUpdates(progressBarCh))
		if !isTTY {
			progressBarWr = os.Stderr
		}
		go func() {
			progressBar(ctx, progressBarWr, progressBarCh, len(generators)*len(lengths))
			progressBarWg.Done()
		}()
	}

	bm := gf2crc.NewBenchmark(ctx, bmOpts...)
	for _, e := range generators {
		for _, l := range lengths {
			if err := bm.Append(e.Name, e.Poly, l); err != nil {
				bm.Cancel(err)
				break
			}
		}
	}
	results, err := bm.Finish()
	if progressBarCh != nil {
		close(progressBarCh)
		progressBarWg.Wait()
	}
	if err != nil {
		return fmt.Errorf("benchmark: %v", err)
	}
	return gf2crc.WriteResults(wr, results)
}
