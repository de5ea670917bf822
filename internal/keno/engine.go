package keno

import "fmt"

// Engine bundles a payout table with a random source.
// It holds no balance and keeps nothing between rounds.
type Engine struct {
	table *PayoutTable
	rng   RandomSource
}

type Option func(*Engine)

func WithRNG(rng RandomSource) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

func WithPayoutTable(t *PayoutTable) Option {
	return func(e *Engine) {
		if t != nil {
			e.table = t
		}
	}
}

// NewEngine creates an engine on the standard table and the crypto RNG unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{table: StandardPayoutTable(), rng: DefaultRNG()}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Table() *PayoutTable { return e.table }

func (e *Engine) Validate(nums []int) (Selection, error) { return ValidateSelection(nums) }

func (e *Engine) Draw() DrawResult { return Draw(e.rng) }

func (e *Engine) Settle(sel Selection, drawn DrawResult, bet int64) Outcome {
	return e.table.Settle(sel, drawn, bet)
}

// Play runs validate -> draw -> settle for one round.
// All input errors are returned before anything is drawn.
func (e *Engine) Play(nums []int, bet int64) (Outcome, error) {
	sel, err := ValidateSelection(nums)
	if err != nil {
		return Outcome{}, err
	}
	if sel.Len() == 0 {
		return Outcome{}, ErrEmptySelection
	}
	if bet <= 0 {
		return Outcome{}, ErrInvalidBet
	}
	if limit := e.table.MaxBet(sel.Len()); bet > limit {
		return Outcome{}, fmt.Errorf("%w: %d exceeds %d for %d spots", ErrInvalidBet, bet, limit, sel.Len())
	}
	return e.Settle(sel, e.Draw(), bet), nil
}
