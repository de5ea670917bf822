package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "keno", "default.yaml")
}
func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, "keno", "profiles", profile+".yaml")
}

// Files lists the paths that feed a profile, for the watcher.
func (p Paths) Files(profile string) []string {
	if profile == "" {
		return []string{p.DefaultPath()}
	}
	return []string{p.DefaultPath(), p.ProfilePath(profile)}
}

// Loader reads YAML configs and merges default → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile, "" for default only
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → profile (profile optional).
// It returns the merged RawConfig (without defaults applied).
func (l *Loader) LoadMerged(profile string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[profile]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if profile != "" {
		profCfg, err := readYAML(l.paths.ProfilePath(profile))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %s: %w", profile, err)
		}
		merged = mergeRaw(defCfg, profCfg)
	}

	l.mu.Lock()
	l.cache[profile] = merged
	l.cache[""] = defCfg
	l.mu.Unlock()

	return merged, nil
}

// Load merges, validates and resolves a profile in one step.
func (l *Loader) Load(profile string) (Settings, error) {
	raw, err := l.LoadMerged(profile)
	if err != nil {
		return Settings{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return Settings{}, err
	}
	return Resolve(raw), nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw performs a shallow field merge: 'b' overrides 'a' where set.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// wallet
	if b.Wallet.StartingBalance != nil {
		out.Wallet.StartingBalance = b.Wallet.StartingBalance
	}
	if b.Wallet.DefaultBet != nil {
		out.Wallet.DefaultBet = b.Wallet.DefaultBet
	}
	if b.Wallet.MinBet != nil {
		out.Wallet.MinBet = b.Wallet.MinBet
	}
	if b.Wallet.MaxBet != nil {
		out.Wallet.MaxBet = b.Wallet.MaxBet
	}

	// history
	if b.History != nil && b.History.Size != nil {
		out.History = &HistoryConfig{Size: b.History.Size}
	}

	// server
	switch {
	case out.Server == nil && b.Server != nil:
		c := *b.Server
		out.Server = &c
	case out.Server != nil && b.Server != nil:
		c := *out.Server
		if b.Server.HTTPAddr != "" {
			c.HTTPAddr = b.Server.HTTPAddr
		}
		if b.Server.GRPCAddr != "" {
			c.GRPCAddr = b.Server.GRPCAddr
		}
		out.Server = &c
	}

	// events
	switch {
	case out.Events == nil && b.Events != nil:
		c := *b.Events
		out.Events = &c
	case out.Events != nil && b.Events != nil:
		c := *out.Events
		if b.Events.NATSURL != "" {
			c.NATSURL = b.Events.NATSURL
		}
		if b.Events.Subject != "" {
			c.Subject = b.Events.Subject
		}
		out.Events = &c
	}

	// log
	switch {
	case out.Log == nil && b.Log != nil:
		c := *b.Log
		out.Log = &c
	case out.Log != nil && b.Log != nil:
		c := *out.Log
		if b.Log.Level != "" {
			c.Level = b.Log.Level
		}
		if b.Log.TimeFormat != "" {
			c.TimeFormat = b.Log.TimeFormat
		}
		out.Log = &c
	}

	return out
}
