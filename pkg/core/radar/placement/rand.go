package placement

import "math/rand/v2"

// Rand returns uniform variates in [0, 1).
type Rand func() float64

// NewRand returns a seeded PCG source. It is not safe for concurrent use.
func NewRand(seed uint64) Rand {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	return rng.Float64
}

// Default returns the process-wide source, which is safe for concurrent use
// and differs between runs.
func Default() Rand {
	return rand.Float64
}

// Sequence returns a source that cycles through vals. An empty sequence
// always yields 0.5.
func Sequence(vals ...float64) Rand {
	if len(vals) == 0 {
		return func() float64 { return 0.5 }
	}
	i := 0
	return func() float64 {
		v := vals[i%len(vals)]
		i++
		return v
	}
}
