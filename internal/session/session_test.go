package session

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xtding233/keno-backend/internal/events"
	"github.com/xtding233/keno-backend/internal/keno"
)

type recordingEmitter struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingEmitter) Emit(ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recordingEmitter) Close() {}

func (r *recordingEmitter) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func newTestManager(t *testing.T, cfg Config, opts ...ManagerOption) *Manager {
	t.Helper()
	engine := keno.NewEngine(keno.WithRNG(keno.NewSeededRNG(99)))
	return NewManager(engine, cfg, opts...)
}

func defaultCfg() Config {
	return Config{
		StartingBalance: 1000,
		HistorySize:     10,
		Limits:          Limits{MinBet: 1, DefaultBet: 10},
	}
}

func TestSession_PlayUpdatesBalance(t *testing.T) {
	m := newTestManager(t, defaultCfg())
	s := m.Open()
	require.Equal(t, int64(1000), s.Balance())

	r, err := s.Play([]int{5, 10, 15, 20}, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), r.BalanceBefore)
	assert.Equal(t, r.BalanceBefore-25+r.Outcome.Payout, r.BalanceAfter)
	assert.Equal(t, r.BalanceAfter, s.Balance())
	assert.Equal(t, int64(25), r.Outcome.Bet)
	assert.NotEmpty(t, r.ID)
	assert.Len(t, s.History(), 1)
}

func TestSession_DefaultBet(t *testing.T) {
	s := newTestManager(t, defaultCfg()).Open()
	r, err := s.Play([]int{1}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(10), r.Outcome.Bet)
}

func TestSession_InsufficientBalanceLeavesStateAlone(t *testing.T) {
	cfg := defaultCfg()
	cfg.StartingBalance = 5
	s := newTestManager(t, cfg).Open()

	_, err := s.Play([]int{1, 2, 3}, 10)
	assert.ErrorIs(t, err, keno.ErrInsufficientBalance)
	assert.Equal(t, int64(5), s.Balance())
	assert.Empty(t, s.History())
}

func TestSession_InputErrors(t *testing.T) {
	s := newTestManager(t, Config{StartingBalance: 100, Limits: Limits{MinBet: 2, MaxBet: 50}}).Open()

	_, err := s.Play(nil, 10)
	assert.ErrorIs(t, err, keno.ErrEmptySelection)

	_, err = s.Play([]int{1, 1}, 10)
	assert.ErrorIs(t, err, keno.ErrDuplicateNumber)

	_, err = s.Play([]int{1}, -3)
	assert.ErrorIs(t, err, keno.ErrInvalidBet)

	_, err = s.Play([]int{1}, 1)
	assert.ErrorIs(t, err, ErrBetOutOfRange)

	_, err = s.Play([]int{1}, 51)
	assert.ErrorIs(t, err, ErrBetOutOfRange)

	assert.Equal(t, int64(100), s.Balance())
	assert.Empty(t, s.History())
}

func TestSession_HistoryBoundedNewestFirst(t *testing.T) {
	cfg := defaultCfg()
	cfg.StartingBalance = 1_000_000
	s := newTestManager(t, cfg).Open()

	var ids []string
	for i := 0; i < 12; i++ {
		r, err := s.Play([]int{1, 2, 3, 4, 5}, 1)
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}

	h := s.History()
	require.Len(t, h, 10)
	for i, r := range h {
		assert.Equal(t, ids[11-i], r.ID)
	}
}

func TestSession_Reset(t *testing.T) {
	s := newTestManager(t, defaultCfg()).Open()
	_, err := s.Play([]int{7, 8}, 100)
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, int64(1000), s.Balance())
	assert.Empty(t, s.History())
}

func TestSession_ConcurrentPlaysBalanceConsistent(t *testing.T) {
	cfg := defaultCfg()
	cfg.StartingBalance = 1_000_000
	cfg.HistorySize = 1000
	s := newTestManager(t, cfg).Open()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		delta  int64
		rounds int
	)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				r, err := s.Play([]int{10, 20, 30}, 2)
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				delta += r.Outcome.Payout - r.Outcome.Bet
				rounds++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400, rounds)
	assert.Equal(t, int64(1_000_000)+delta, s.Balance())
	assert.Len(t, s.History(), 400)
}

func TestLimitsNormalize(t *testing.T) {
	assert.Equal(t, Limits{MinBet: 1, DefaultBet: 1}, Limits{}.normalize())
	assert.Equal(t, Limits{MinBet: 5, MaxBet: 8, DefaultBet: 8}, Limits{MinBet: 5, MaxBet: 8, DefaultBet: 20}.normalize())
}

func TestManager_Lifecycle(t *testing.T) {
	rec := &recordingEmitter{}
	m := newTestManager(t, defaultCfg(), WithEmitter(rec))

	s := m.Open()
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	r, err := m.Play(s.ID, []int{1, 2, 3}, 10)
	require.NoError(t, err)
	assert.Equal(t, s.Balance(), r.BalanceAfter)

	require.NoError(t, m.Close(s.ID))
	assert.ErrorIs(t, m.Close(s.ID), ErrSessionNotFound)
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Play(s.ID, []int{1}, 10)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.Equal(t, []string{
		events.TypeSessionOpened,
		events.TypeRoundSettled,
		events.TypeSessionClosed,
	}, rec.types())
	view, ok := rec.events[1].Data.(RoundView)
	require.True(t, ok)
	assert.Equal(t, r.ID, view.ID)
	assert.Len(t, view.Drawn, keno.DrawSize)
}

func TestManager_EmitFailureKeepsRound(t *testing.T) {
	rec := &recordingEmitter{err: errors.New("broker down")}
	m := newTestManager(t, defaultCfg(), WithEmitter(rec))
	s := m.Open()

	r, err := m.Play(s.ID, []int{40}, 10)
	require.NoError(t, err)
	assert.Equal(t, r.BalanceAfter, s.Balance())
	assert.Len(t, s.History(), 1)
}

func TestManager_ApplyLimits(t *testing.T) {
	m := newTestManager(t, defaultCfg())
	s := m.Open()

	m.ApplyLimits(Limits{MinBet: 20, MaxBet: 40, DefaultBet: 30})
	assert.Equal(t, Limits{MinBet: 20, MaxBet: 40, DefaultBet: 30}, s.Limits())
	assert.Equal(t, int64(30), m.Open().Limits().DefaultBet)

	_, err := s.Play([]int{1}, 10)
	assert.ErrorIs(t, err, ErrBetOutOfRange)
}

func TestManager_Clock(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := &recordingEmitter{}
	m := newTestManager(t, defaultCfg(), WithClock(func() time.Time { return at }), WithEmitter(rec))
	s := m.Open()
	r, err := m.Play(s.ID, []int{9}, 10)
	require.NoError(t, err)
	require.NoError(t, m.Close(s.ID))
	assert.Equal(t, at, s.CreatedAt)
	assert.Equal(t, at, r.PlayedAt)

	require.Len(t, rec.events, 3)
	for _, ev := range rec.events {
		assert.Equal(t, at.UnixMilli(), ev.Timestamp, ev.Type)
	}
}

func TestSession_BetOverflowRejected(t *testing.T) {
	cfg := defaultCfg()
	cfg.StartingBalance = math.MaxInt64
	s := newTestManager(t, cfg).Open()
	ten := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	_, err := s.Play(ten, keno.StandardPayoutTable().MaxBet(10)+1)
	assert.ErrorIs(t, err, ErrBetOutOfRange)

	// the bet fits but a 50000x win would wrap the balance
	_, err = s.Play(ten, 1)
	assert.ErrorIs(t, err, ErrBetOutOfRange)
	assert.Equal(t, int64(math.MaxInt64), s.Balance())
	assert.Empty(t, s.History())

	cfg.StartingBalance = 1_000_000
	s = newTestManager(t, cfg).Open()
	_, err = s.Play(ten, 1000)
	assert.NoError(t, err)
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, 0, h.Len())
	h.Push(Round{ID: "a"})
	h.Push(Round{ID: "b"})
	assert.Equal(t, []string{"b", "a"}, []string{h.Recent()[0].ID, h.Recent()[1].ID})
	h.Clear()
	assert.Empty(t, h.Recent())
}
