package keno

import (
	"errors"
	"math"
	"sort"
)

var ErrSimParams = errors.New("invalid simulation params")

// SimParams describes one simulation run.
type SimParams struct {
	Spots   int   // 1..10; ignored when Numbers is set
	Numbers []int // optional fixed selection; empty => one quick pick reused for every round
	Trials  int   // number of rounds
}

// Stats summarizes simulated multipliers (payout per unit bet).
type Stats struct {
	Mean    float64
	Var     float64
	StdDev  float64
	P50     float64
	P90     float64
	P99     float64
	Max     int64
	HitRate float64 // share of rounds that paid anything
	// Matches[m] counts rounds with exactly m matches
	Matches []int
	// Optional: raw samples if caller needs histograms/exports
	Samples []int64 `json:"-"`
}

// QuickPick chooses n distinct numbers the same way Draw does.
func QuickPick(n int, rng RandomSource) (Selection, error) {
	if n < 1 {
		return Selection{}, ErrEmptySelection
	}
	if n > MaxSpots {
		return Selection{}, ErrTooManySelections
	}
	d := Draw(rng)
	return ValidateSelection(d.numbers[:n])
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int64) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	hits := 0
	for _, v := range xs {
		sum += float64(v)
		if v > 0 {
			hits++
		}
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int64(nil), xs...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Max:     cp[n-1],
		HitRate: float64(hits) / float64(n),
		Samples: xs,
	}
}

// RunMonteCarlo plays p.Trials rounds at a unit bet and returns summary stats.
func RunMonteCarlo(t *PayoutTable, p SimParams, rng RandomSource) (Stats, error) {
	if p.Trials <= 0 {
		return Stats{}, nil
	}
	if t == nil {
		t = StandardPayoutTable()
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	var sel Selection
	var err error
	if len(p.Numbers) > 0 {
		sel, err = ValidateSelection(p.Numbers)
	} else {
		sel, err = QuickPick(p.Spots, rng)
	}
	if err != nil {
		return Stats{}, errors.Join(ErrSimParams, err)
	}

	samples := make([]int64, p.Trials)
	matches := make([]int, sel.Len()+1)
	for i := range samples {
		out := t.Settle(sel, Draw(rng), 1)
		samples[i] = out.Multiplier
		matches[out.Matches]++
	}
	st := calcStats(samples)
	st.Matches = matches
	return st, nil
}
