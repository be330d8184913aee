// Copyright 2022 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gf2crc

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cosnicolaou/gf2crc/internal"
)

// Operation represents the CRC operation being benchmarked.
type Operation int

const (
	// OpRemainder benchmarks Remainder.
	OpRemainder Operation = iota
	// OpEncode benchmarks Encode.
	OpEncode
)

func (op Operation) String() string {
	switch op {
	case OpRemainder:
		return "remainder"
	case OpEncode:
		return "encode"
	}
	return fmt.Sprintf("unknown operation: %d", int(op))
}

// ParseOperation returns the Operation with the specified name.
func ParseOperation(name string) (Operation, error) {
	switch strings.ToLower(name) {
	case "remainder", "check":
		return OpRemainder, nil
	case "encode":
		return OpEncode, nil
	}
	return 0, fmt.Errorf("unrecognised operation: %q", name)
}

type benchmarkOpts struct {
	concurrency int
	progressCh  chan<- Progress
	verbose     bool
	repeats     int
	seed        int64
	op          Operation
}

// BenchmarkOption represents an option to NewBenchmark.
type BenchmarkOption func(*benchmarkOpts)

// BenchConcurrency sets the number of goroutines used to run benchmark
// jobs. Timings are most reliable with a concurrency of 1.
func BenchConcurrency(n int) BenchmarkOption {
	return func(o *benchmarkOpts) {
		o.concurrency = n
	}
}

// BenchSendUpdates sets the channel for sending progress updates over,
// one per job, in the order that jobs were appended.
func BenchSendUpdates(ch chan<- Progress) BenchmarkOption {
	return func(o *benchmarkOpts) {
		o.progressCh = ch
	}
}

// BenchVerbose controls verbose logging of each completed job.
func BenchVerbose(v bool) BenchmarkOption {
	return func(o *benchmarkOpts) {
		o.verbose = v
	}
}

// BenchRepeats sets the number of random sequences that are generated and
// processed for each job.
func BenchRepeats(n int) BenchmarkOption {
	return func(o *benchmarkOpts) {
		o.repeats = n
	}
}

// BenchSeed sets the seed used to generate the random sequences. Each job
// derives its own seed from it so that the sequences used are independent
// of the concurrency and order of execution.
func BenchSeed(seed int64) BenchmarkOption {
	return func(o *benchmarkOpts) {
		o.seed = seed
	}
}

// BenchOperation sets the operation to be benchmarked.
func BenchOperation(op Operation) BenchmarkOption {
	return func(o *benchmarkOpts) {
		o.op = op
	}
}

// Progress is used to report the progress of a benchmark.
type Progress struct {
	Duration       time.Duration
	Job            uint64
	Name           string
	SequenceLength int
}

// Result represents the timing of a single benchmark job.
type Result struct {
	Name           string
	Degree         int
	SequenceLength int
	Repeats        int
	// Elapsed is the mean time taken per call.
	Elapsed time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("%v (degree %v), %v bits: %v", r.Name, r.Degree, r.SequenceLength, r.Elapsed)
}

// Benchmark times CRC operations for a set of generator polynomials and
// sequence lengths using a pool of goroutines. Results are returned in
// the order that the jobs were appended.
type Benchmark struct {
	ctx        context.Context
	cancel     context.CancelFunc
	opts       benchmarkOpts
	workWg     sync.WaitGroup
	doneWg     sync.WaitGroup
	workCh     chan *jobDesc
	doneCh     chan *jobDesc
	order      uint64
	heap       *jobHeap
	results    []Result
	errMu      sync.Mutex
	err        error // GUARDED_BY(errMu)
	finishOnce sync.Once
	workMu     sync.Mutex
	finished   bool // GUARDED_BY(workMu)
}

// ErrBenchmarkFinished is returned by Append when called after Finish.
var ErrBenchmarkFinished = errors.New("benchmark has finished")

var numBenchmarkGoRoutines int64

// NewBenchmark creates a new Benchmark and starts its worker goroutines.
// Finish must be called to release them.
func NewBenchmark(ctx context.Context, opts ...BenchmarkOption) *Benchmark {
	o := benchmarkOpts{
		concurrency: 1,
		repeats:     100,
		seed:        0x1234,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	if o.repeats < 1 {
		o.repeats = 1
	}
	b := &Benchmark{
		opts:   o,
		doneCh: make(chan *jobDesc, o.concurrency),
		workCh: make(chan *jobDesc, o.concurrency),
		heap:   &jobHeap{},
	}
	b.ctx, b.cancel = context.WithCancel(ctx)
	heap.Init(b.heap)
	b.workWg.Add(o.concurrency)
	b.doneWg.Add(1)
	for i := 0; i < o.concurrency; i++ {
		go func() {
			atomic.AddInt64(&numBenchmarkGoRoutines, 1)
			b.worker()
			atomic.AddInt64(&numBenchmarkGoRoutines, -1)
			b.workWg.Done()
		}()
	}
	go func() {
		atomic.AddInt64(&numBenchmarkGoRoutines, 1)
		b.assemble()
		atomic.AddInt64(&numBenchmarkGoRoutines, -1)
		b.doneWg.Done()
	}()
	return b
}

type jobDesc struct {
	order     uint64
	name      string
	generator *big.Int
	length    int

	err     error
	elapsed time.Duration
}

func (b *Benchmark) worker() {
	for job := range b.workCh {
		if err := b.ctx.Err(); err != nil {
			job.err = err
		} else {
			job.elapsed, job.err = b.run(job)
		}
		b.doneCh <- job
	}
}

func (b *Benchmark) run(job *jobDesc) (time.Duration, error) {
	rnd := rand.New(rand.NewSource(b.opts.seed + int64(job.order)))
	sequences := make([]*big.Int, b.opts.repeats)
	for i := range sequences {
		sequences[i] = internal.RandomSequence(rnd, job.length)
	}
	fn := Remainder
	if b.opts.op == OpEncode {
		fn = Encode
	}
	start := time.Now()
	for _, seq := range sequences {
		if _, err := fn(seq, job.generator); err != nil {
			return 0, fmt.Errorf("%v: %v bits: %v", job.name, job.length, err)
		}
	}
	return time.Since(start), nil
}

// Append adds a job that times the benchmark's operation on sequences of
// length bits using generator. It blocks until a worker is available.
// Calls to Append after Finish return ErrBenchmarkFinished.
func (b *Benchmark) Append(name string, generator *big.Int, length int) error {
	degree, err := Degree(generator)
	if err != nil {
		return fmt.Errorf("%v: %w", name, err)
	}
	if length < 0 {
		return fmt.Errorf("%v: negative sequence length %v: %w", name, length, ErrInvalidArgument)
	}
	b.workMu.Lock()
	defer b.workMu.Unlock()
	if b.finished {
		return fmt.Errorf("%v: %w", name, ErrBenchmarkFinished)
	}
	if err := b.ctx.Err(); err != nil {
		return err
	}
	job := &jobDesc{
		order:     atomic.AddUint64(&b.order, 1),
		name:      name,
		generator: new(big.Int).Set(generator),
		length:    length,
	}
	if b.opts.verbose {
		log.Printf("benchmark: queued job %v: %v (degree %v), %v bits", job.order, name, degree, length)
	}
	select {
	case b.workCh <- job:
		return nil
	case <-b.ctx.Done():
		return b.ctx.Err()
	}
}

// Cancel can be called to unblock any calls to Append and to abandon any
// jobs that have not yet started. The error, if non-nil, is returned by
// Finish.
func (b *Benchmark) Cancel(err error) {
	b.setErr(err)
	b.cancel()
}

func (b *Benchmark) setErr(err error) {
	if err == nil {
		return
	}
	b.errMu.Lock()
	defer b.errMu.Unlock()
	if b.err == nil {
		b.err = err
	}
}

// Finish must be called to wait for all of the currently outstanding
// jobs to complete. It returns the results of all completed jobs in the
// order that they were appended and the first error encountered, if any.
func (b *Benchmark) Finish() ([]Result, error) {
	b.finishOnce.Do(func() {
		b.workMu.Lock()
		b.finished = true
		close(b.workCh)
		b.workMu.Unlock()
		b.workWg.Wait()
		close(b.doneCh)
		b.doneWg.Wait()
		b.setErr(b.ctx.Err())
		b.cancel()
	})
	b.errMu.Lock()
	defer b.errMu.Unlock()
	return b.results, b.err
}

type jobHeap []*jobDesc

func (h jobHeap) Len() int           { return len(h) }
func (h jobHeap) Less(i, j int) bool { return h[i].order < h[j].order }
func (h jobHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *jobHeap) Push(x interface{}) {
	*h = append(*h, x.(*jobDesc))
}

func (h *jobHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

func (b *Benchmark) assemble() {
	expected := uint64(1)
	for job := range b.doneCh {
		heap.Push(b.heap, job)
		for len(*b.heap) > 0 {
			min := (*b.heap)[0]
			if min.order != expected {
				break
			}
			heap.Remove(b.heap, 0)
			expected++
			if min.err != nil {
				b.setErr(min.err)
				continue
			}
			result := Result{
				Name:           min.name,
				Degree:         min.generator.BitLen() - 1,
				SequenceLength: min.length,
				Repeats:        b.opts.repeats,
				Elapsed:        min.elapsed / time.Duration(b.opts.repeats),
			}
			b.results = append(b.results, result)
			if b.opts.verbose {
				log.Printf("benchmark: job %v: %v", min.order, result)
			}
			if b.opts.progressCh != nil {
				select {
				case b.opts.progressCh <- Progress{
					Duration:       min.elapsed,
					Job:            min.order,
					Name:           min.name,
					SequenceLength: min.length,
				}:
				case <-b.ctx.Done():
				}
			}
		}
	}
}
