package keno

import (
	"fmt"
	"math"
)

// PayoutTable maps (spots, matches) to an integer multiplier.
// Pairs that are absent pay 0. A table never changes after construction.
type PayoutTable struct {
	mult [MaxSpots + 1][MaxSpots + 1]int64 // [spots][matches]
}

// PayLine is one paying row of the table for a given spot count.
type PayLine struct {
	Matches    int   `json:"matches"`
	Multiplier int64 `json:"multiplier"`
	Payout     int64 `json:"payout"` // bet * multiplier
}

// spots -> matches -> multiplier
var standardPayouts = map[int]map[int]int64{
	1:  {1: 3},
	2:  {2: 12},
	3:  {2: 1, 3: 42},
	4:  {2: 1, 3: 4, 4: 120},
	5:  {3: 1, 4: 12, 5: 750},
	6:  {3: 1, 4: 3, 5: 75, 6: 1500},
	7:  {4: 1, 5: 20, 6: 400, 7: 7500},
	8:  {5: 10, 6: 80, 7: 1000, 8: 15000},
	9:  {5: 5, 6: 50, 7: 300, 8: 4000, 9: 25000},
	10: {5: 2, 6: 20, 7: 80, 8: 500, 9: 4500, 10: 50000},
}

var standard = func() *PayoutTable {
	t, err := NewPayoutTable(standardPayouts)
	if err != nil {
		panic(err)
	}
	return t
}()

// StandardPayoutTable returns the house table.
func StandardPayoutTable() *PayoutTable { return standard }

// NewPayoutTable copies and validates a spots -> matches -> multiplier mapping.
func NewPayoutTable(m map[int]map[int]int64) (*PayoutTable, error) {
	t := &PayoutTable{}
	for spots, row := range m {
		if spots < 1 || spots > MaxSpots {
			return nil, fmt.Errorf("%w: spots %d out of 1..%d", ErrPayoutTable, spots, MaxSpots)
		}
		for matches, mult := range row {
			if matches < 0 || matches > spots {
				return nil, fmt.Errorf("%w: %d matches for %d spots", ErrPayoutTable, matches, spots)
			}
			if mult < 0 {
				return nil, fmt.Errorf("%w: negative multiplier at %d/%d", ErrPayoutTable, spots, matches)
			}
			t.mult[spots][matches] = mult
		}
	}
	return t, nil
}

// Multiplier returns the factor for (spots, matches); 0 when the pair does not pay.
func (t *PayoutTable) Multiplier(spots, matches int) int64 {
	if spots < 1 || spots > MaxSpots || matches < 0 || matches > spots {
		return 0
	}
	return t.mult[spots][matches]
}

// Paying lists the paying rows for a spot count, most matches first.
func (t *PayoutTable) Paying(spots int, bet int64) []PayLine {
	var out []PayLine
	for m := spots; m >= 0; m-- {
		mult := t.Multiplier(spots, m)
		if mult > 0 {
			out = append(out, PayLine{Matches: m, Multiplier: mult, Payout: bet * mult})
		}
	}
	return out
}

// Top is the largest multiplier available for a spot count.
func (t *PayoutTable) Top(spots int) int64 {
	var top int64
	for m := 0; m <= spots; m++ {
		if v := t.Multiplier(spots, m); v > top {
			top = v
		}
	}
	return top
}

// MaxBet is the largest bet on spots whose top payout still fits in an int64.
func (t *PayoutTable) MaxBet(spots int) int64 {
	top := t.Top(spots)
	if top == 0 {
		return math.MaxInt64
	}
	return math.MaxInt64 / top
}
