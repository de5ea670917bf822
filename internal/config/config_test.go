package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

const defaultYAML = `
version: "1"
wallet:
  starting_balance: 500
  default_bet: 5
  min_bet: 1
  max_bet: 100
server:
  http_addr: ":8000"
  grpc_addr: ":9000"
log:
  level: info
`

const highRollerYAML = `
version: "1-high"
wallet:
  starting_balance: 100000
  min_bet: 50
  default_bet: 100
  max_bet: 0
server:
  grpc_addr: ":9500"
events:
  nats_url: nats://127.0.0.1:4222
history:
  size: 20
`

func TestLoader_MergesProfileOverDefault(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)
	writeFile(t, l.Paths().DefaultPath(), defaultYAML)
	writeFile(t, l.Paths().ProfilePath("high"), highRollerYAML)

	s, err := l.Load("high")
	require.NoError(t, err)
	assert.Equal(t, Settings{
		StartingBalance: 100000,
		DefaultBet:      100,
		MinBet:          50,
		MaxBet:          0,
		HistorySize:     20,
		HTTPAddr:        ":8000",
		GRPCAddr:        ":9500",
		NATSURL:         "nats://127.0.0.1:4222",
		Subject:         DefaultSubject,
		LogLevel:        "info",
		TimeFormat:      DefaultTimeFormat,
		Version:         "1-high",
	}, s)

	def, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(500), def.StartingBalance)
	assert.Equal(t, int64(100), def.MaxBet)
	assert.Equal(t, ":9000", def.GRPCAddr)
	assert.Empty(t, def.NATSURL)
}

func TestLoader_MissingFilesGiveDefaults(t *testing.T) {
	s, err := NewLoader(t.TempDir()).Load("nope")
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultStartingBalance), s.StartingBalance)
	assert.Equal(t, int64(DefaultBet), s.DefaultBet)
	assert.Equal(t, DefaultHistorySize, s.HistorySize)
	assert.Equal(t, DefaultHTTPAddr, s.HTTPAddr)
}

func TestLoader_CacheAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)
	writeFile(t, l.Paths().DefaultPath(), "wallet:\n  starting_balance: 10\n")

	s, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.StartingBalance)

	writeFile(t, l.Paths().DefaultPath(), "wallet:\n  starting_balance: 20\n")
	s, err = l.Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.StartingBalance, "cached value until invalidated")

	l.Invalidate()
	s, err = l.Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(20), s.StartingBalance)
}

func TestLoader_BadYAML(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)
	writeFile(t, l.Paths().DefaultPath(), "wallet: [unterminated")
	_, err := l.Load("")
	assert.Error(t, err)
}

func TestValidateRaw(t *testing.T) {
	i64 := func(v int64) *int64 { return &v }
	size := 0

	assert.NoError(t, ValidateRaw(RawConfig{}))

	err := ValidateRaw(RawConfig{
		Wallet: WalletConfig{
			StartingBalance: i64(-1),
			MinBet:          i64(10),
			MaxBet:          i64(5),
			DefaultBet:      i64(7),
		},
		History: &HistoryConfig{Size: &size},
		Log:     &LogConfig{Level: "loud"},
		Events:  &EventsConfig{NATSURL: "localhost"},
	})
	require.Error(t, err)
	for _, want := range []string{
		"wallet.starting_balance",
		"wallet.min_bet must not exceed",
		"wallet.default_bet must be >= wallet.min_bet",
		"wallet.default_bet must be <= wallet.max_bet",
		"history.size",
		"log.level",
		"events.nats_url",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestFileWatcher_FiresOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yaml")
	writeFile(t, path, "version: a\n")

	changed := make(chan string, 4)
	w := NewFileWatcher([]string{path}, 10*time.Millisecond, func(p string) { changed <- p })
	w.Start()
	defer w.Stop()

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	select {
	case p := <-changed:
		assert.Equal(t, path, p)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report change")
	}

	w.Stop()
	w.Stop()
}
