package gf2crc

import "sync/atomic"

func GetNumBenchmarkGoRoutines() int64 {
	return atomic.LoadInt64(&numBenchmarkGoRoutines)
}
