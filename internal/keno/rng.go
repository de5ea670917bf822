package keno

import (
	cryptoRand "crypto/rand"
	"math/big"
	"math/rand/v2"
	"sync"
)

// RandomSource abstracts the uniform integer generator used by Draw.
type RandomSource interface {
	IntN(n int) int // [0, n)
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) IntN(n int) int {
	v, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// back to math/rand/v2
		return rand.IntN(n)
	}
	return int(v.Int64())
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (tests, Monte Carlo). Safe for concurrent use.
type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}
