package session

import "time"

// RoundView is the wire shape of a Round.
type RoundView struct {
	ID            string    `json:"id"`
	Selection     []int     `json:"selection"`
	Drawn         []int     `json:"drawn"` // draw order
	Matched       []int     `json:"matched"`
	Spots         int       `json:"spots"`
	Matches       int       `json:"matches"`
	Multiplier    int64     `json:"multiplier"`
	Bet           int64     `json:"bet"`
	Payout        int64     `json:"payout"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	PlayedAt      time.Time `json:"played_at"`
}

func (r Round) View() RoundView {
	matched := r.Outcome.Matched
	if matched == nil {
		matched = []int{}
	}
	return RoundView{
		ID:            r.ID,
		Selection:     r.Selection.Numbers(),
		Drawn:         r.Outcome.Drawn.Numbers(),
		Matched:       matched,
		Spots:         r.Outcome.Spots,
		Matches:       r.Outcome.Matches,
		Multiplier:    r.Outcome.Multiplier,
		Bet:           r.Outcome.Bet,
		Payout:        r.Outcome.Payout,
		BalanceBefore: r.BalanceBefore,
		BalanceAfter:  r.BalanceAfter,
		PlayedAt:      r.PlayedAt,
	}
}

// SessionView is the wire shape of a Session.
type SessionView struct {
	ID         string    `json:"id"`
	Balance    int64     `json:"balance"`
	MinBet     int64     `json:"min_bet"`
	MaxBet     int64     `json:"max_bet"`
	DefaultBet int64     `json:"default_bet"`
	Rounds     int       `json:"rounds"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Session) View() SessionView {
	l := s.Limits()
	return SessionView{
		ID:         s.ID,
		Balance:    s.Balance(),
		MinBet:     l.MinBet,
		MaxBet:     l.MaxBet,
		DefaultBet: l.DefaultBet,
		Rounds:     s.history.Len(),
		CreatedAt:  s.CreatedAt,
	}
}
