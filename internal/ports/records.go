package ports

import (
	"context"

	"ballebaaz/internal/domain"
)

// PlayerRecordPort defines the interface for persisting player career records.
type PlayerRecordPort interface {
	// ApplyDelta folds one match's figures into the player's stored career record.
	ApplyDelta(ctx context.Context, d domain.PlayerMatchDelta) error
}

// TeamRecordPort defines the interface for persisting team records.
type TeamRecordPort interface {
	// ApplyDelta folds one match's outcome into the team's stored record.
	ApplyDelta(ctx context.Context, d domain.TeamMatchDelta) error
}

// MatchRecordPort defines the interface for the completed-match registry.
type MatchRecordPort interface {
	// MarkCompleted records the match as reconciled. A second call for the
	// same match id reports alreadyDone without writing again.
	MarkCompleted(ctx context.Context, matchID, summary string) (alreadyDone bool, err error)
}

// CareerBootstrapPort seeds an empty career record for a first-time player.
type CareerBootstrapPort interface {
	// EnsureCareerRecord creates the record if absent. Returns true when a new
	// record was created.
	EnsureCareerRecord(ctx context.Context, playerID string) (bool, error)
}
