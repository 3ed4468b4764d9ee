package bench

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"

	"github.com/benz9527/ordtree/lib/hrtime"
	"github.com/benz9527/ordtree/lib/id"
	"github.com/benz9527/ordtree/lib/infra"
	"github.com/benz9527/ordtree/lib/tree"
	"github.com/benz9527/ordtree/lib/xlog"
)

type Runner struct {
	cfg    *Config
	kinds  []tree.TreeKind
	logger xlog.XLogger
	gPool  *ants.Pool
	stats  bool
}

type RunnerOption func(*Runner)

// WithRunnerTreeStats records the otel metrics of every tree.
func WithRunnerTreeStats() RunnerOption {
	return func(r *Runner) {
		r.stats = true
	}
}

func NewRunner(cfg *Config, logger xlog.XLogger, opts ...RunnerOption) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kinds, _ := cfg.Kinds()
	r := &Runner{
		cfg:    cfg,
		kinds:  kinds,
		logger: logger,
	}
	for _, o := range opts {
		o(r)
	}

	size := 1
	if cfg.Parallel {
		size = len(kinds)
	}
	poolOpts := []ants.Option{ants.WithPreAlloc(true)}
	if logger != nil {
		poolOpts = append(poolOpts, ants.WithLogger(xlog.NewAntsXLogger(logger)))
	}
	p, err := ants.NewPool(size, poolOpts...)
	if err != nil {
		return nil, infra.WrapErrorStack(err)
	}
	r.gPool = p
	return r, nil
}

func (r *Runner) Release() {
	r.gPool.Release()
}

// Keys returns the distinct insertion keys and the removal keys, a prefix
// of them in a different order.
func (r *Runner) Keys() (inserts, removes []uint64) {
	var gen id.Generator
	switch r.cfg.KeySource {
	case SequentialKeys:
		gen = id.MonotonicNonZeroID(0)
	default:
		gen = id.RandomID(r.cfg.Seed, 0)
	}
	inserts = make([]uint64, 0, r.cfg.Count)
	seen := make(map[uint64]struct{}, r.cfg.Count)
	for len(inserts) < r.cfg.Count {
		k := gen.Number()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		inserts = append(inserts, k)
	}

	removes = slices.Clone(inserts)
	id.Shuffle(r.cfg.Seed+1, removes)
	return inserts, removes[:int(float64(r.cfg.Count)*r.cfg.RemoveRatio)]
}

func (r *Runner) Run(ctx context.Context) (*Report, error) {
	inserts, removes := r.Keys()
	report := &Report{
		Count:    len(inserts),
		Removed:  len(removes),
		Seed:     r.cfg.Seed,
		Source:   r.cfg.KeySource,
		Variants: make([]VariantResult, len(r.kinds)),
	}
	sequences := make([][]uint64, len(r.kinds))
	errs := make([]error, len(r.kinds))
	sw := hrtime.NewStopwatch(nil)

	var wg sync.WaitGroup
	for i, kind := range r.kinds {
		wg.Add(1)
		err := r.gPool.Submit(func() {
			defer wg.Done()
			defer func() {
				if err := recover(); err != nil {
					errs[i] = infra.NewErrorStack(fmt.Sprintf("[bench] %s panic: %v, stack: %s", kind, err, debug.Stack()))
				}
			}()
			report.Variants[i], sequences[i], errs[i] = r.runVariant(ctx, kind, inserts, removes)
		})
		if err != nil {
			wg.Done()
			errs[i] = infra.WrapErrorStack(err)
		}
	}
	wg.Wait()
	report.Total = sw.Total()

	var es error
	for i, err := range errs {
		if err != nil {
			es = infra.AppendErrorStack(es, err)
			if r.logger != nil {
				r.logger.ErrorStack(err, "[bench] variant failed", zap.String("kind", r.kinds[i].String()))
			}
		}
	}
	if es != nil {
		return report, es
	}
	if err := checkEquivalence(r.kinds, sequences); err != nil {
		return report, err
	}
	report.RSSBytes = residentSetSize()
	return report, nil
}

func (r *Runner) newTree(kind tree.TreeKind) tree.Tree[uint64] {
	opts := make([]tree.TreeOption, 0, 2)
	if r.logger != nil {
		opts = append(opts, tree.WithTreeLogger(r.logger))
	}
	if r.stats {
		opts = append(opts, tree.WithTreeStats("bench"))
	}
	return tree.NewTree[uint64](kind, infra.OrderedKeyCompare[uint64], opts...)
}

func (r *Runner) check(t tree.Tree[uint64], phase string, i int) error {
	if !r.cfg.CheckEveryOp {
		return nil
	}
	if err := tree.Validate(t); err != nil {
		return infra.AppendErrorStack(
			infra.NewErrorStack(fmt.Sprintf("[bench] %s %s op %d", t.Kind(), phase, i)),
			err,
		)
	}
	return nil
}

func (r *Runner) runVariant(ctx context.Context, kind tree.TreeKind, inserts, removes []uint64) (VariantResult, []uint64, error) {
	res := VariantResult{Kind: kind.String()}
	t := r.newTree(kind)
	defer t.Release()

	sw := hrtime.NewStopwatch(nil)
	for i, k := range inserts {
		if !t.Insert(k) {
			return res, nil, infra.NewErrorStack(fmt.Sprintf("[bench] %s duplicate insert %d", kind, k))
		}
		if err := r.check(t, "insert", i); err != nil {
			return res, nil, err
		}
	}
	res.Insert = sw.Update()
	res.Height = t.Height()
	if err := ctx.Err(); err != nil {
		return res, nil, infra.WrapErrorStack(err)
	}

	for _, k := range inserts {
		if _, ok := t.Find(k); !ok {
			return res, nil, infra.NewErrorStack(fmt.Sprintf("[bench] %s missing key %d", kind, k))
		}
	}
	res.Find = sw.Update()

	for i, k := range removes {
		if !t.Remove(k) {
			return res, nil, infra.NewErrorStack(fmt.Sprintf("[bench] %s remove missing key %d", kind, k))
		}
		if err := r.check(t, "remove", i); err != nil {
			return res, nil, err
		}
	}
	res.Remove = sw.Update()
	if err := ctx.Err(); err != nil {
		return res, nil, infra.WrapErrorStack(err)
	}

	for _, k := range removes {
		if _, ok := t.Find(k); ok {
			return res, nil, infra.NewErrorStack(fmt.Sprintf("[bench] %s removed key %d found", kind, k))
		}
	}
	if expected := int64(len(inserts) - len(removes)); t.Len() != expected {
		return res, nil, infra.NewErrorStack(fmt.Sprintf("[bench] %s size %d, expected %d", kind, t.Len(), expected))
	}
	if err := tree.Validate(t); err != nil {
		return res, nil, err
	}
	res.Len = t.Len()

	seq := make([]uint64, 0, t.Len())
	t.Traverse(tree.InOrder, func(idx int64, elem uint64) bool {
		seq = append(seq, elem)
		return true
	})
	if r.logger != nil {
		r.logger.Debug("[bench] variant done",
			zap.String("kind", res.Kind),
			zap.Duration("insert", res.Insert),
			zap.Duration("remove", res.Remove),
		)
	}
	return res, seq, nil
}

// checkEquivalence compares the in-order sequences of all the variants.
func checkEquivalence(kinds []tree.TreeKind, sequences [][]uint64) error {
	for i := 1; i < len(sequences); i++ {
		if !slices.Equal(sequences[0], sequences[i]) {
			return infra.NewErrorStack(fmt.Sprintf("[bench] %s and %s in-order sequences differ", kinds[0], kinds[i]))
		}
	}
	return nil
}

func residentSetSize() uint64 {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	mem, err := p.MemoryInfo()
	if err != nil || mem == nil {
		return 0
	}
	return mem.RSS
}
