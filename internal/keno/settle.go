package keno

// Outcome is the settled result of one round.
type Outcome struct {
	Drawn      DrawResult
	Spots      int
	Matches    int
	Matched    []int // spots that were drawn, ascending
	Multiplier int64
	Bet        int64
	Payout     int64 // Bet * Multiplier
}

// Won reports whether the round paid anything.
func (o Outcome) Won() bool { return o.Payout > 0 }

// Settle counts matches between sel and drawn and prices bet with the table.
// sel must come from ValidateSelection; bet checks belong to the caller.
func (t *PayoutTable) Settle(sel Selection, drawn DrawResult, bet int64) Outcome {
	var matched []int
	for _, n := range sel.nums {
		if drawn.Contains(n) {
			matched = append(matched, n)
		}
	}
	mult := t.Multiplier(sel.Len(), len(matched))
	return Outcome{
		Drawn:      drawn,
		Spots:      sel.Len(),
		Matches:    len(matched),
		Matched:    matched,
		Multiplier: mult,
		Bet:        bet,
		Payout:     bet * mult,
	}
}
