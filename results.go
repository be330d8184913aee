// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gf2crc

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
)

// ResultsHeader is the header row written by WriteResults. ExecutionTime
// is in milliseconds.
var ResultsHeader = []string{"Name", "Degree", "SequenceLength", "ExecutionTime"}

func toMilliseconds(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', -1, 64)
}

func fromMilliseconds(s string) (time.Duration, error) {
	ms, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(math.Round(ms * float64(time.Millisecond))), nil
}

// WriteResults writes results as CSV, including a header row.
func WriteResults(wr io.Writer, results []Result) error {
	cw := csv.NewWriter(wr)
	if err := cw.Write(ResultsHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{
			r.Name,
			strconv.Itoa(r.Degree),
			strconv.Itoa(r.SequenceLength),
			toMilliseconds(r.Elapsed),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadResults reads results written by WriteResults. The Repeats field
// is not recorded and will be zero.
func ReadResults(rd io.Reader) ([]Result, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = len(ResultsHeader)
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header")
		}
		return nil, err
	}
	for i, h := range ResultsHeader {
		if header[i] != h {
			return nil, fmt.Errorf("unexpected column %v: got %q, want %q", i, header[i], h)
		}
	}
	var results []Result
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return results, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		var r Result
		r.Name = record[0]
		if r.Degree, err = strconv.Atoi(record[1]); err != nil {
			return nil, fmt.Errorf("line %v: degree: %v", line, err)
		}
		if r.SequenceLength, err = strconv.Atoi(record[2]); err != nil {
			return nil, fmt.Errorf("line %v: sequence length: %v", line, err)
		}
		if r.Elapsed, err = fromMilliseconds(record[3]); err != nil {
			return nil, fmt.Errorf("line %v: execution time: %v", line, err)
		}
		results = append(results, r)
	}
}
