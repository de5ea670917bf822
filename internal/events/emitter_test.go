package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventEnvelope(t *testing.T) {
	ev := New(TypeRoundSettled, "s-1", map[string]int{"payout": 240})
	assert.Positive(t, ev.Timestamp)

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "round.settled", got["type"])
	assert.Equal(t, "s-1", got["session_id"])
	assert.Equal(t, map[string]any{"payout": float64(240)}, got["data"])
}

func TestNewAt(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	ev := NewAt(TypeSessionClosed, "s-2", nil, at)
	assert.Equal(t, at.UnixMilli(), ev.Timestamp)
	assert.Equal(t, TypeSessionClosed, ev.Type)
}

func TestSubject(t *testing.T) {
	e := &NATSEmitter{subject: DefaultSubject}
	assert.Equal(t, "keno.rounds.round.settled", e.Subject(TypeRoundSettled))
	e.Close()
}

func TestNop(t *testing.T) {
	var e Emitter = Nop{}
	assert.NoError(t, e.Emit(New(TypeSessionOpened, "x", nil)))
	e.Close()
}
