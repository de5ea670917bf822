package config

import (
	"fmt"
	"strings"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	w := cfg.Wallet
	if w.StartingBalance != nil && *w.StartingBalance < 0 {
		errs = append(errs, "wallet.starting_balance must be >= 0")
	}
	if w.MinBet != nil && *w.MinBet < 1 {
		errs = append(errs, "wallet.min_bet must be >= 1")
	}
	if w.MaxBet != nil && *w.MaxBet < 0 {
		errs = append(errs, "wallet.max_bet must be >= 0 (0 means no cap)")
	}
	if w.DefaultBet != nil && *w.DefaultBet < 1 {
		errs = append(errs, "wallet.default_bet must be >= 1")
	}
	if w.MinBet != nil && w.MaxBet != nil && *w.MaxBet > 0 && *w.MinBet > *w.MaxBet {
		errs = append(errs, "wallet.min_bet must not exceed wallet.max_bet")
	}
	if w.DefaultBet != nil {
		if w.MinBet != nil && *w.DefaultBet < *w.MinBet {
			errs = append(errs, "wallet.default_bet must be >= wallet.min_bet")
		}
		if w.MaxBet != nil && *w.MaxBet > 0 && *w.DefaultBet > *w.MaxBet {
			errs = append(errs, "wallet.default_bet must be <= wallet.max_bet")
		}
	}

	if cfg.History != nil && cfg.History.Size != nil && *cfg.History.Size < 1 {
		errs = append(errs, "history.size must be >= 1")
	}

	if cfg.Log != nil && cfg.Log.Level != "" {
		switch strings.ToLower(cfg.Log.Level) {
		case "debug", "info", "warn", "warning", "error":
		default:
			errs = append(errs, fmt.Sprintf("log.level %q must be one of: debug, info, warn, error", cfg.Log.Level))
		}
	}

	if cfg.Events != nil && cfg.Events.NATSURL != "" && !strings.Contains(cfg.Events.NATSURL, "://") {
		errs = append(errs, "events.nats_url must be a URL, e.g. nats://127.0.0.1:4222")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
