package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// MatchRules is the tunable rule set for a scoring session.
type MatchRules struct {
	// AllowConsecutiveBowler permits the same bowler to bowl back-to-back overs.
	AllowConsecutiveBowler bool `json:"allow_consecutive_bowler"`
	// MaxOvers caps the per-side overs an umpire may confirm.
	MaxOvers int `json:"max_overs"`
}

type MatchConfig struct {
	Rules MatchRules `json:"rules"`
	// ScorecardTokenTTLSeconds is the lifetime of issued scorecard share tokens.
	ScorecardTokenTTLSeconds int `json:"scorecard_token_ttl_seconds"`
}

var (
	cfg      *MatchConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadMatchConfig loads the match configuration from the given path.
func LoadMatchConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read match config: %w", err)
			return
		}

		var c MatchConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal match config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetMatchConfig returns the global match configuration.
func GetMatchConfig() *MatchConfig {
	return cfg
}

// GetRules returns the configured rules, or safe defaults when no config was loaded.
func GetRules() MatchRules {
	if cfg == nil {
		return MatchRules{AllowConsecutiveBowler: true, MaxOvers: 50}
	}
	return cfg.Rules
}

// GetScorecardTokenTTLSeconds returns the scorecard token lifetime.
func GetScorecardTokenTTLSeconds() int {
	if cfg == nil || cfg.ScorecardTokenTTLSeconds <= 0 {
		return 86400
	}
	return cfg.ScorecardTokenTTLSeconds
}
