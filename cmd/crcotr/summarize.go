// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"cloudeng.io/cmdutil"
	"cloudeng.io/errors"
	"github.com/cosnicolaou/gf2crc"
)

type summary struct {
	name          string
	degree        int
	samples       int
	min, max, sum time.Duration
}

func (s *summary) add(r gf2crc.Result) {
	if s.samples == 0 || r.Elapsed < s.min {
		s.min = r.Elapsed
	}
	if r.Elapsed > s.max {
		s.max = r.Elapsed
	}
	s.sum += r.Elapsed
	s.samples++
}

func (s *summary) mean() time.Duration {
	if s.samples == 0 {
		return 0
	}
	return s.sum / time.Duration(s.samples)
}

func readResults(ctx context.Context, name string) ([]gf2crc.Result, error) {
	rd, readerCleanup, err := openFileOrURL(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%v: %v", name, err)
	}
	results, err := gf2crc.ReadResults(rd)
	errs := errors.M{}
	errs.Append(err)
	errs.Append(readerCleanup(ctx))
	if err := errs.Err(); err != nil {
		return nil, fmt.Errorf("%v: %v", name, err)
	}
	return results, nil
}

func summarizeResults(results []gf2crc.Result) []*summary {
	byName := map[string]*summary{}
	for _, r := range results {
		s, ok := byName[r.Name]
		if !ok {
			s = &summary{name: r.Name, degree: r.Degree}
			byName[r.Name] = s
		}
		s.add(r)
	}
	summaries := make([]*summary, 0, len(byName))
	for _, s := range byName {
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].degree != summaries[j].degree {
			return summaries[i].degree < summaries[j].degree
		}
		return summaries[i].name < summaries[j].name
	})
	return summaries
}

func summarize(ctx context.Context, values interface{}, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmdutil.HandleSignals(cancel, os.Interrupt)

	var all []gf2crc.Result
	errs := errors.M{}
	for _, arg := range args {
		results, err := readResults(ctx, arg)
		if err != nil {
			errs.Append(err)
			continue
		}
		all = append(all, results...)
	}
	if err := errs.Err(); err != nil {
		return err
	}
	wr := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(wr, "Name\tDegree\tSamples\tMin\tMean\tMax")
	for _, s := range summarizeResults(all) {
		fmt.Fprintf(wr, "%v\t%v\t%v\t%v\t%v\t%v\n",
			s.name, s.degree, s.samples, s.min, s.mean(), s.max)
	}
	return wr.Flush()
}
