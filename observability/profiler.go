package observability

// References:
// https://github.com/DataDog/dd-trace-go/blob/main/profiler/profiler.go#L118

import (
	"fmt"
	"io"
	"runtime"
	"runtime/pprof"

	"github.com/benz9527/ordtree/lib/infra"
)

//go:generate stringer -type=ProfileType
type ProfileType int8

const (
	CPUProfile ProfileType = iota
	MemProfile
)

// StartProfile starts the profile to w. The returned stop finishes
// (CPU) or writes (heap) the profile.
func StartProfile(typ ProfileType, w io.Writer) (stop func() error, err error) {
	switch typ {
	case CPUProfile:
		if err = pprof.StartCPUProfile(w); err != nil {
			return nil, infra.WrapErrorStack(err)
		}
		return func() error {
			pprof.StopCPUProfile()
			return nil
		}, nil
	case MemProfile:
		return func() error {
			runtime.GC()
			return infra.WrapErrorStack(pprof.WriteHeapProfile(w))
		}, nil
	default:
	}
	return nil, infra.NewErrorStack(fmt.Sprintf("[observability] unknown profile type %s", typ))
}
