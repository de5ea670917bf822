// resolve.go
package config

// Defaults match the original table: 1000 credits, 10 per round.
const (
	DefaultStartingBalance = 1000
	DefaultBet             = 10
	DefaultMinBet          = 1
	DefaultHistorySize     = 10
	DefaultHTTPAddr        = ":8080"
	DefaultGRPCAddr        = ":9090"
	DefaultSubject         = "keno.rounds"
	DefaultLogLevel        = "info"
	DefaultTimeFormat      = "15:04:05"
)

// Resolve fills defaults into a merged RawConfig.
func Resolve(raw RawConfig) Settings {
	s := Settings{
		StartingBalance: DefaultStartingBalance,
		DefaultBet:      DefaultBet,
		MinBet:          DefaultMinBet,
		HistorySize:     DefaultHistorySize,
		HTTPAddr:        DefaultHTTPAddr,
		GRPCAddr:        DefaultGRPCAddr,
		Subject:         DefaultSubject,
		LogLevel:        DefaultLogLevel,
		TimeFormat:      DefaultTimeFormat,
		Version:         raw.Version,
	}

	if v := raw.Wallet.StartingBalance; v != nil {
		s.StartingBalance = *v
	}
	if v := raw.Wallet.DefaultBet; v != nil {
		s.DefaultBet = *v
	}
	if v := raw.Wallet.MinBet; v != nil {
		s.MinBet = *v
	}
	if v := raw.Wallet.MaxBet; v != nil {
		s.MaxBet = *v
	}
	if raw.History != nil && raw.History.Size != nil {
		s.HistorySize = *raw.History.Size
	}
	if raw.Server != nil {
		if raw.Server.HTTPAddr != "" {
			s.HTTPAddr = raw.Server.HTTPAddr
		}
		if raw.Server.GRPCAddr != "" {
			s.GRPCAddr = raw.Server.GRPCAddr
		}
	}
	if raw.Events != nil {
		s.NATSURL = raw.Events.NATSURL
		if raw.Events.Subject != "" {
			s.Subject = raw.Events.Subject
		}
	}
	if raw.Log != nil {
		if raw.Log.Level != "" {
			s.LogLevel = raw.Log.Level
		}
		if raw.Log.TimeFormat != "" {
			s.TimeFormat = raw.Log.TimeFormat
		}
	}
	return s
}
