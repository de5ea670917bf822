package keno

import "slices"

// DrawResult holds the 20 numbers of one draw in the order they were drawn.
type DrawResult struct {
	numbers []int
	hit     [MaxNumber + 1]bool
}

// Draw picks DrawSize distinct numbers from 1..80, uniformly without replacement.
// A shrinking pool is sampled by index, which is a partial Fisher-Yates shuffle.
// nil rng => DefaultRNG()
func Draw(rng RandomSource) DrawResult {
	if rng == nil {
		rng = DefaultRNG()
	}
	pool := make([]int, 0, MaxNumber)
	for n := MinNumber; n <= MaxNumber; n++ {
		pool = append(pool, n)
	}

	var d DrawResult
	d.numbers = make([]int, 0, DrawSize)
	for len(d.numbers) < DrawSize {
		i := rng.IntN(len(pool))
		n := pool[i]
		pool = slices.Delete(pool, i, i+1)
		d.numbers = append(d.numbers, n)
		d.hit[n] = true
	}
	return d
}

// NewDrawResult rebuilds a DrawResult from a recorded draw sequence.
// The numbers must be DrawSize distinct values in 1..80.
func NewDrawResult(numbers []int) (DrawResult, error) {
	if len(numbers) != DrawSize {
		return DrawResult{}, ErrInvalidDraw
	}
	var d DrawResult
	for _, n := range numbers {
		if n < MinNumber || n > MaxNumber || d.hit[n] {
			return DrawResult{}, ErrInvalidDraw
		}
		d.hit[n] = true
	}
	d.numbers = slices.Clone(numbers)
	return d, nil
}

// Numbers returns the drawn numbers in draw order.
func (d DrawResult) Numbers() []int { return slices.Clone(d.numbers) }

// Sorted returns the drawn numbers ascending.
func (d DrawResult) Sorted() []int {
	out := slices.Clone(d.numbers)
	slices.Sort(out)
	return out
}

func (d DrawResult) Contains(n int) bool {
	if n < MinNumber || n > MaxNumber {
		return false
	}
	return d.hit[n]
}

func (d DrawResult) Len() int { return len(d.numbers) }
