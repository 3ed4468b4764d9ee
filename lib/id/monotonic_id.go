package id

import (
	"strconv"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

const cacheLinePadSize = unsafe.Sizeof(cpu.CacheLinePad{})

// monotonicNonZeroID occupies whole cache lines, the counter is shared
// by the benchmark workers without false sharing.
// Only increase, if it overflows, it will be reset to 1.
type monotonicNonZeroID struct {
	_   [cacheLinePadSize - unsafe.Sizeof(*new(uint64))]byte
	val uint64
	_   [cacheLinePadSize - unsafe.Sizeof(*new(uint64))]byte
}

func (id *monotonicNonZeroID) next() uint64 {
	var v uint64
	if v = atomic.AddUint64(&id.val, 1); v == 0 {
		v = atomic.AddUint64(&id.val, 1)
	}
	return v
}

// MonotonicNonZeroID starts from start+1. It is safe for the
// concurrent use.
func MonotonicNonZeroID(start uint64) Generator {
	src := &monotonicNonZeroID{val: start}
	return newGenerator(src.next)
}

func formatNumber(n uint64) string {
	return strconv.FormatUint(n, 10)
}
