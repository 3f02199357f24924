package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ballebaaz/internal/domain"
	"ballebaaz/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	careerStatsCollection  = "career_stats"
	careerStatsKey         = "career_v1"
	teamStatsCollection    = "team_stats"
	matchRecordsCollection = "match_records"

	// casMaxAttempts bounds the read-fold-write retry loop under concurrent writers.
	casMaxAttempts = 3
)

// NakamaRecordsAdapter persists career and team records in Nakama storage.
// Player records live under the player's own user id; team and match records
// are system-owned documents keyed by their entity id. All folds go through a
// versioned read-modify-write so concurrent reconciliations cannot lose runs.
type NakamaRecordsAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaRecordsAdapter creates a new records adapter.
func NewNakamaRecordsAdapter(nk runtime.NakamaModule) *NakamaRecordsAdapter {
	return &NakamaRecordsAdapter{nk: nk}
}

// ApplyDelta folds one match's figures into the player's career record.
func (a *NakamaRecordsAdapter) ApplyDelta(ctx context.Context, d domain.PlayerMatchDelta) error {
	if d.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}

	for attempt := 0; attempt < casMaxAttempts; attempt++ {
		var rec domain.PlayerCareerRecord
		version, err := a.readJSON(ctx, careerStatsCollection, careerStatsKey, d.PlayerID, &rec)
		if err != nil {
			return fmt.Errorf("failed to read career record for %s: %w", d.PlayerID, err)
		}

		rec = domain.FoldPlayerDelta(rec, d)

		err = a.writeJSON(ctx, careerStatsCollection, careerStatsKey, d.PlayerID, version, rec,
			runtime.STORAGE_PERMISSION_PUBLIC_READ)
		if err == nil {
			return nil
		}
		if !errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return fmt.Errorf("failed to write career record for %s: %w", d.PlayerID, err)
		}
	}
	return fmt.Errorf("career record for %s kept changing after %d attempts", d.PlayerID, casMaxAttempts)
}

var _ ports.PlayerRecordPort = (*NakamaRecordsAdapter)(nil)

// teamApplyDelta is split out so the adapter can satisfy both record ports
// with the same storage mechanics.
func (a *NakamaRecordsAdapter) teamApplyDelta(ctx context.Context, d domain.TeamMatchDelta) error {
	if d.TeamID == "" {
		return fmt.Errorf("team id is required")
	}

	for attempt := 0; attempt < casMaxAttempts; attempt++ {
		var rec domain.TeamRecord
		version, err := a.readJSON(ctx, teamStatsCollection, d.TeamID, "", &rec)
		if err != nil {
			return fmt.Errorf("failed to read team record for %s: %w", d.TeamID, err)
		}

		rec = domain.FoldTeamDelta(rec, d)

		err = a.writeJSON(ctx, teamStatsCollection, d.TeamID, "", version, rec,
			runtime.STORAGE_PERMISSION_PUBLIC_READ)
		if err == nil {
			return nil
		}
		if !errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return fmt.Errorf("failed to write team record for %s: %w", d.TeamID, err)
		}
	}
	return fmt.Errorf("team record for %s kept changing after %d attempts", d.TeamID, casMaxAttempts)
}

// teamRecordPort adapts the shared records adapter to the team port, since
// both ports name their method ApplyDelta over different delta types.
type teamRecordPort struct {
	adapter *NakamaRecordsAdapter
}

func (p teamRecordPort) ApplyDelta(ctx context.Context, d domain.TeamMatchDelta) error {
	return p.adapter.teamApplyDelta(ctx, d)
}

// TeamRecords exposes the adapter as a ports.TeamRecordPort.
func (a *NakamaRecordsAdapter) TeamRecords() ports.TeamRecordPort {
	return teamRecordPort{adapter: a}
}

// matchRecordDoc is the completed-match registry entry.
type matchRecordDoc struct {
	MatchID     string `json:"match_id"`
	Summary     string `json:"summary"`
	CompletedAt string `json:"completed_at"`
}

// MarkCompleted records the match as reconciled. The create-only write is the
// at-most-once guard: a rejected version means another run already claimed it.
func (a *NakamaRecordsAdapter) MarkCompleted(ctx context.Context, matchID, summary string) (bool, error) {
	if matchID == "" {
		return false, fmt.Errorf("match id is required")
	}

	doc := matchRecordDoc{
		MatchID:     matchID,
		Summary:     summary,
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
	}
	err := a.writeJSON(ctx, matchRecordsCollection, matchID, "", "*", doc,
		runtime.STORAGE_PERMISSION_PUBLIC_READ)
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return true, nil
		}
		return false, fmt.Errorf("failed to mark match %s completed: %w", matchID, err)
	}
	return false, nil
}

var _ ports.MatchRecordPort = (*NakamaRecordsAdapter)(nil)

// EnsureCareerRecord seeds an empty career record for a first-time player.
func (a *NakamaRecordsAdapter) EnsureCareerRecord(ctx context.Context, playerID string) (bool, error) {
	if playerID == "" {
		return false, fmt.Errorf("player id is required")
	}

	rec := domain.PlayerCareerRecord{PlayerID: playerID}
	err := a.writeJSON(ctx, careerStatsCollection, careerStatsKey, playerID, "*", rec,
		runtime.STORAGE_PERMISSION_PUBLIC_READ)
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to seed career record for %s: %w", playerID, err)
	}
	return true, nil
}

var _ ports.CareerBootstrapPort = (*NakamaRecordsAdapter)(nil)

// readJSON reads one storage object into out. A missing object leaves out
// untouched and returns the create-only version "*".
func (a *NakamaRecordsAdapter) readJSON(ctx context.Context, collection, key, userID string, out any) (string, error) {
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: collection, Key: key, UserID: userID},
	})
	if err != nil {
		return "", err
	}
	if len(objects) == 0 {
		return "*", nil
	}
	if err := json.Unmarshal([]byte(objects[0].Value), out); err != nil {
		return "", fmt.Errorf("corrupt stored record: %w", err)
	}
	return objects[0].Version, nil
}

func (a *NakamaRecordsAdapter) writeJSON(ctx context.Context, collection, key, userID, version string, value any, readPerm int) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      collection,
			Key:             key,
			UserID:          userID,
			Value:           string(bytes),
			Version:         version,
			PermissionRead:  readPerm,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	return err
}
