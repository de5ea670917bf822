// types.go
package config

// Raw config loaded from YAML. Pointer fields distinguish "unset" from zero.
type RawConfig struct {
	Version string         `yaml:"version"`
	Wallet  WalletConfig   `yaml:"wallet"`
	History *HistoryConfig `yaml:"history,omitempty"`
	Server  *ServerConfig  `yaml:"server,omitempty"`
	Events  *EventsConfig  `yaml:"events,omitempty"`
	Log     *LogConfig     `yaml:"log,omitempty"`
	Notes   string         `yaml:"notes,omitempty"`
}

type WalletConfig struct {
	StartingBalance *int64 `yaml:"starting_balance"`
	DefaultBet      *int64 `yaml:"default_bet"`
	MinBet          *int64 `yaml:"min_bet"`
	MaxBet          *int64 `yaml:"max_bet"` // 0 => no cap
}

type HistoryConfig struct {
	Size *int `yaml:"size"`
}

type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	GRPCAddr string `yaml:"grpc_addr"`
}

type EventsConfig struct {
	NATSURL string `yaml:"nats_url"` // empty => events disabled
	Subject string `yaml:"subject"`
}

type LogConfig struct {
	Level      string `yaml:"level"` // debug | info | warn | error
	TimeFormat string `yaml:"time_format"`
}

// Settings is the resolved config used by the server.
type Settings struct {
	StartingBalance int64
	DefaultBet      int64
	MinBet          int64
	MaxBet          int64
	HistorySize     int
	HTTPAddr        string
	GRPCAddr        string
	NATSURL         string
	Subject         string
	LogLevel        string
	TimeFormat      string
	Version         string // effective config version for tracing
}
