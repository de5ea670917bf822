package session

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xtding233/keno-backend/internal/keno"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrBetOutOfRange   = errors.New("bet outside table limits")
)

// Limits bound a single bet. MaxBet == 0 means no upper bound.
type Limits struct {
	MinBet     int64
	MaxBet     int64
	DefaultBet int64
}

func (l Limits) normalize() Limits {
	if l.MinBet <= 0 {
		l.MinBet = 1
	}
	if l.DefaultBet < l.MinBet {
		l.DefaultBet = l.MinBet
	}
	if l.MaxBet > 0 && l.DefaultBet > l.MaxBet {
		l.DefaultBet = l.MaxBet
	}
	return l
}

func (l Limits) check(bet int64) error {
	if bet <= 0 {
		return keno.ErrInvalidBet
	}
	if bet < l.MinBet || (l.MaxBet > 0 && bet > l.MaxBet) {
		return fmt.Errorf("%w: %d not in [%d, %s]", ErrBetOutOfRange, bet, l.MinBet, maxLabel(l.MaxBet))
	}
	return nil
}

func maxLabel(v int64) string {
	if v <= 0 {
		return "∞"
	}
	return fmt.Sprint(v)
}

// Round is one settled play inside a session.
type Round struct {
	ID            string
	Selection     keno.Selection
	Outcome       keno.Outcome
	BalanceBefore int64
	BalanceAfter  int64
	PlayedAt      time.Time
}

// Session owns a player's balance and recent history; the engine stays stateless.
type Session struct {
	ID        string
	CreatedAt time.Time

	engine  *keno.Engine
	history *History
	now     func() time.Time

	mu       sync.Mutex
	starting int64
	balance  int64
	limits   Limits
}

func newSession(engine *keno.Engine, cfg Config, now func() time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now(),
		engine:    engine,
		history:   NewHistory(cfg.HistorySize),
		now:       now,
		starting:  cfg.StartingBalance,
		balance:   cfg.StartingBalance,
		limits:    cfg.Limits.normalize(),
	}
}

// Play validates the picks and the bet, then draws and settles one round.
// bet == 0 plays the default bet. Nothing changes unless the round completes.
func (s *Session) Play(nums []int, bet int64) (Round, error) {
	sel, err := keno.ValidateSelection(nums)
	if err != nil {
		return Round{}, err
	}
	if sel.Len() == 0 {
		return Round{}, keno.ErrEmptySelection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if bet == 0 {
		bet = s.limits.DefaultBet
	}
	if err := s.limits.check(bet); err != nil {
		return Round{}, err
	}
	if bet > s.balance {
		return Round{}, fmt.Errorf("%w: bet %d, balance %d", keno.ErrInsufficientBalance, bet, s.balance)
	}
	if err := s.checkHeadroom(sel.Len(), bet); err != nil {
		return Round{}, err
	}

	out := s.engine.Settle(sel, s.engine.Draw(), bet)
	r := Round{
		ID:            uuid.NewString(),
		Selection:     sel,
		Outcome:       out,
		BalanceBefore: s.balance,
		BalanceAfter:  s.balance - bet + out.Payout,
		PlayedAt:      s.now(),
	}
	s.balance = r.BalanceAfter
	s.history.Push(r)
	return r, nil
}

// checkHeadroom rejects bets whose top payout would wrap the payout or the balance.
// Caller holds s.mu.
func (s *Session) checkHeadroom(spots int, bet int64) error {
	table := s.engine.Table()
	if limit := table.MaxBet(spots); bet > limit {
		return fmt.Errorf("%w: %d exceeds %d for %d spots", ErrBetOutOfRange, bet, limit, spots)
	}
	if s.balance-bet > math.MaxInt64-bet*table.Top(spots) {
		return fmt.Errorf("%w: balance %d cannot hold a %dx win", ErrBetOutOfRange, s.balance, table.Top(spots))
	}
	return nil
}

func (s *Session) Balance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

func (s *Session) Limits() Limits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits
}

func (s *Session) SetLimits(l Limits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits = l.normalize()
}

// History returns recent rounds, newest first.
func (s *Session) History() []Round { return s.history.Recent() }

// Reset refills the play-money balance to the starting amount and clears history.
// Picks and the last draw are client state and are not touched here.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance = s.starting
	s.history.Clear()
}
