package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/xtding233/keno-backend/internal/logger"
)

const (
	TypeRoundSettled  = "round.settled"
	TypeSessionOpened = "session.opened"
	TypeSessionClosed = "session.closed"

	DefaultSubject = "keno.rounds"
)

type Event struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func New(typ, sessionID string, data any) Event {
	return NewAt(typ, sessionID, data, time.Now())
}

// NewAt stamps the event with at instead of the wall clock.
func NewAt(typ, sessionID string, data any, at time.Time) Event {
	return Event{Type: typ, SessionID: sessionID, Data: data, Timestamp: at.UnixMilli()}
}

type Emitter interface {
	Emit(event Event) error
	Close()
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Emit(Event) error { return nil }
func (Nop) Close()           {}

type NATSEmitter struct {
	conn    *nats.Conn
	subject string
}

func NewNATSEmitter(natsURL, subject string) (*NATSEmitter, error) {
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}
	if subject == "" {
		subject = DefaultSubject
	}
	conn, err := nats.Connect(natsURL,
		nats.Name("keno-backend"),
		nats.MaxReconnects(-1), // retry forever
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("Disconnected from NATS", "err", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSEmitter{conn: conn, subject: subject}, nil
}

// Subject returns the subject for an event type, e.g. keno.rounds.round.settled.
func (e *NATSEmitter) Subject(typ string) string {
	return e.subject + "." + typ
}

func (e *NATSEmitter) Emit(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return e.conn.Publish(e.Subject(event.Type), data)
}

func (e *NATSEmitter) Close() {
	if e.conn != nil {
		_ = e.conn.Drain()
	}
}
