package keno

import "iter"

// RevealEvent is one step of the number-by-number reveal of a draw.
type RevealEvent struct {
	Index        int  // 0-based position in the draw
	Number       int  // drawn number
	Match        bool // number is one of the player's spots
	MatchesSoFar int  // matches revealed up to and including this one
}

// Reveal yields the draw in order, one event per number.
// The sequence is finite and starts over each time it is ranged.
func (d DrawResult) Reveal(sel Selection) iter.Seq[RevealEvent] {
	return func(yield func(RevealEvent) bool) {
		matches := 0
		for i, n := range d.numbers {
			hit := sel.Contains(n)
			if hit {
				matches++
			}
			if !yield(RevealEvent{Index: i, Number: n, Match: hit, MatchesSoFar: matches}) {
				return
			}
		}
	}
}
