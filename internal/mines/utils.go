package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

// NewRand returns a PCG generator with a random seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}
