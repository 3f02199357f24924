package reconcile

import (
	"context"
	"fmt"

	"ballebaaz/internal/domain"
	"ballebaaz/internal/ports"
)

// Result captures how far a reconciliation run got. Failures are non-fatal:
// the run visits every delta once and reports what could not be written.
type Result struct {
	AlreadyDone    bool
	PlayersUpdated int
	TeamsUpdated   int
	Failures       []error
}

// Failed reports whether any write was lost.
func (r Result) Failed() bool {
	return len(r.Failures) > 0
}

// Service folds a completed match's result into the stored career records.
// Reconciliation runs at most once per match: the completed-match registry is
// marked first, and a match already marked is skipped entirely. There is no
// rollback; a partially applied run reports its failures and leaves the
// applied writes in place.
type Service struct {
	players ports.PlayerRecordPort
	teams   ports.TeamRecordPort
	matches ports.MatchRecordPort
}

// NewService constructs a reconciliation service with required ports.
func NewService(players ports.PlayerRecordPort, teams ports.TeamRecordPort, matches ports.MatchRecordPort) *Service {
	return &Service{
		players: players,
		teams:   teams,
		matches: matches,
	}
}

// Reconcile applies the match result's deltas to every stored record.
func (s *Service) Reconcile(ctx context.Context, matchID string, res domain.MatchResult) (Result, error) {
	if s.players == nil || s.teams == nil || s.matches == nil {
		return Result{}, fmt.Errorf("reconcile service not configured")
	}

	alreadyDone, err := s.matches.MarkCompleted(ctx, matchID, res.Summary)
	if err != nil {
		return Result{}, fmt.Errorf("failed to mark match %s completed: %w", matchID, err)
	}
	if alreadyDone {
		return Result{AlreadyDone: true}, nil
	}

	result := Result{}
	for _, d := range res.TeamDeltas {
		if err := s.teams.ApplyDelta(ctx, d); err != nil {
			result.Failures = append(result.Failures,
				fmt.Errorf("team %s: %w", d.TeamID, err))
			continue
		}
		result.TeamsUpdated++
	}
	for _, d := range res.PlayerDeltas {
		if err := s.players.ApplyDelta(ctx, d); err != nil {
			result.Failures = append(result.Failures,
				fmt.Errorf("player %s: %w", d.PlayerID, err))
			continue
		}
		result.PlayersUpdated++
	}

	return result, nil
}
