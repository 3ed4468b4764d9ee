package id

import (
	randv2 "math/rand/v2"
	"sync"
)

// RandomID draws uniformly distributed numbers in [1, limit], or in
// [1, MaxUint64] if limit is 0. The same seed replays the same sequence.
// It is safe for the concurrent use.
func RandomID(seed uint64, limit uint64) Generator {
	var lock sync.Mutex
	rng := randv2.New(randv2.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return newGenerator(func() uint64 {
		lock.Lock()
		defer lock.Unlock()
		if limit == 0 {
			for {
				if v := rng.Uint64(); v != 0 {
					return v
				}
			}
		}
		return rng.Uint64N(limit) + 1
	})
}

// Shuffle permutes the keys with the seeded source, the removal order
// of the benchmark is replayable too.
func Shuffle[K any](seed uint64, keys []K) {
	rng := randv2.New(randv2.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
}
