package core

import (
	"encoding/binary"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2. Each sweep worker
// owns one, so no generator state is shared between goroutines.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewStreamRNG creates an RNG for one of several independent streams
// derived from the same seed.
func NewStreamRNG(seed, stream uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, stream))}
}

// Read fills p with uniformly distributed bytes. It never returns an error.
func (r *RNG) Read(p []byte) (int, error) {
	n := len(p)
	for len(p) >= 8 {
		binary.LittleEndian.PutUint64(p, r.r.Uint64())
		p = p[8:]
	}
	if len(p) > 0 {
		v := r.r.Uint64()
		for i := range p {
			p[i] = byte(v)
			v >>= 8
		}
	}
	return n, nil
}
