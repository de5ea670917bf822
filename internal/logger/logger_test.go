package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestInitWritesThroughTint(t *testing.T) {
	var buf bytes.Buffer
	Init(&Options{Level: slog.LevelDebug, Writer: &buf, NoColor: true})
	Info("Round settled", "payout", 240)
	assert.Contains(t, buf.String(), "Round settled")
	assert.Contains(t, buf.String(), "payout=240")
}
