package session

import (
	"sync"
	"time"

	"github.com/xtding233/keno-backend/internal/events"
	"github.com/xtding233/keno-backend/internal/keno"
	"github.com/xtding233/keno-backend/internal/logger"
)

// Config is what every new session starts with.
type Config struct {
	StartingBalance int64
	HistorySize     int
	Limits          Limits
}

type ManagerOption func(*Manager)

func WithEmitter(e events.Emitter) ManagerOption {
	return func(m *Manager) {
		if e != nil {
			m.emitter = e
		}
	}
}

func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// Manager is an in-process registry of sessions keyed by id.
type Manager struct {
	engine  *keno.Engine
	emitter events.Emitter
	now     func() time.Time

	mu       sync.RWMutex
	cfg      Config
	sessions map[string]*Session
}

func NewManager(engine *keno.Engine, cfg Config, opts ...ManagerOption) *Manager {
	if engine == nil {
		engine = keno.NewEngine()
	}
	m := &Manager{
		engine:   engine,
		emitter:  events.Nop{},
		now:      time.Now,
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) Engine() *keno.Engine { return m.engine }

func (m *Manager) Open() *Session {
	m.mu.Lock()
	s := newSession(m.engine, m.cfg, m.now)
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.emit(events.NewAt(events.TypeSessionOpened, s.ID, map[string]any{"balance": s.Balance()}, s.CreatedAt))
	logger.Debug("Session opened", "session", s.ID, "balance", s.Balance())
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) Close(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	m.emit(events.NewAt(events.TypeSessionClosed, id, nil, m.now()))
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Play settles a round on session id and publishes it.
// A failed publish is logged; the round stands.
func (m *Manager) Play(id string, nums []int, bet int64) (Round, error) {
	s, err := m.Get(id)
	if err != nil {
		return Round{}, err
	}
	r, err := s.Play(nums, bet)
	if err != nil {
		return Round{}, err
	}
	logger.Debug("Round settled",
		"session", id, "round", r.ID,
		"spots", r.Outcome.Spots, "matches", r.Outcome.Matches,
		"bet", r.Outcome.Bet, "payout", r.Outcome.Payout,
	)
	m.emit(events.NewAt(events.TypeRoundSettled, id, r.View(), r.PlayedAt))
	return r, nil
}

// ApplyLimits swaps the bet limits for new and existing sessions.
func (m *Manager) ApplyLimits(l Limits) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Limits = l
	for _, s := range m.sessions {
		s.SetLimits(l)
	}
}

func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

func (m *Manager) emit(ev events.Event) {
	if err := m.emitter.Emit(ev); err != nil {
		logger.Warn("Emit event failed", "type", ev.Type, "session", ev.SessionID, "err", err)
	}
}
