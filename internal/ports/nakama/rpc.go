package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

const teamsCollection = "teams"

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcCreateScoringMatch, rpcCreateScoringMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcFindLiveMatch, rpcFindLiveMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcScorecardToken, rpcScorecardToken)
}

// CreateScoringMatchResponse is returned to the umpire after match creation.
type CreateScoringMatchResponse struct {
	MatchID string `json:"match_id"`
}

// rpcCreateScoringMatch creates an authoritative scoring match for two stored
// teams. The caller becomes the match's umpire.
//
// Payload: {"team_a_id": "...", "team_b_id": "..."}
// Returns: {"match_id": "..."}
func rpcCreateScoringMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("authentication required", 16) // UNAUTHENTICATED
	}

	var req struct {
		TeamAID string `json:"team_a_id"`
		TeamBID string `json:"team_b_id"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
	}
	if req.TeamAID == "" || req.TeamBID == "" || req.TeamAID == req.TeamBID {
		return "", runtime.NewError("two distinct team ids are required", 3)
	}

	docs, err := readTeamDocs(ctx, nk, req.TeamAID, req.TeamBID)
	if err != nil {
		logger.Error("rpcCreateScoringMatch [User:%s]: %v", userID, err)
		return "", runtime.NewError(err.Error(), 5) // NOT_FOUND
	}

	teamsJSON, err := json.Marshal(docs)
	if err != nil {
		logger.Error("rpcCreateScoringMatch [User:%s]: Failed to marshal team docs: %v", userID, err)
		return "", runtime.NewError("internal error", 13) // INTERNAL
	}

	params := map[string]interface{}{
		matchInitParamUmpireID: userID,
		matchInitParamTeams:    string(teamsJSON),
	}
	matchID, err := nk.MatchCreate(ctx, MatchNameScoring, params)
	if err != nil {
		logger.Error("rpcCreateScoringMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", runtime.NewError("failed to create match", 13)
	}

	logger.Info("rpcCreateScoringMatch [User:%s]: Created match %s for %s vs %s", userID, matchID, req.TeamAID, req.TeamBID)
	b, _ := json.Marshal(CreateScoringMatchResponse{MatchID: matchID})
	return string(b), nil
}

// readTeamDocs loads both roster documents from the system-owned teams collection.
func readTeamDocs(ctx context.Context, nk runtime.NakamaModule, teamAID, teamBID string) ([2]teamDoc, error) {
	var docs [2]teamDoc

	objects, err := nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: teamsCollection, Key: teamAID},
		{Collection: teamsCollection, Key: teamBID},
	})
	if err != nil {
		return docs, fmt.Errorf("failed to read team documents: %w", err)
	}

	found := map[string]string{}
	for _, obj := range objects {
		found[obj.Key] = obj.Value
	}
	for i, id := range []string{teamAID, teamBID} {
		value, ok := found[id]
		if !ok {
			return docs, fmt.Errorf("team %s not found", id)
		}
		if err := json.Unmarshal([]byte(value), &docs[i]); err != nil {
			return docs, fmt.Errorf("team %s document is corrupt: %w", id, err)
		}
	}
	return docs, nil
}

// FindLiveMatchResponse is the payload returned to clients looking for a match to watch.
type FindLiveMatchResponse struct {
	MatchID string `json:"match_id"`
	Label   string `json:"label"`
}

// rpcFindLiveMatch searches for a live scoring match to spectate.
//
// Payload: (Optional) Unused for now.
// Returns: {"match_id": "...", "label": "..."}
func rpcFindLiveMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	// Query syntax: "+label.open:>=1" filters on the "open" key in the JSON
	// label, which drops to 0 once a match completes.
	limit := 1
	authoritative := true
	labelQuery := fmt.Sprintf("+label.%s:>=1 +label.game:ballebaaz", MatchLabelKey_Open)

	matches, err := nk.MatchList(ctx, limit, authoritative, "", nil, nil, labelQuery)
	if err != nil {
		logger.Error("rpcFindLiveMatch [User:%s]: Failed to list matches: %v", userID, err)
		return "", runtime.NewError("failed to list matches", 13)
	}
	if len(matches) == 0 {
		return "", runtime.NewError("no live match found", 5) // NOT_FOUND
	}

	resp := FindLiveMatchResponse{
		MatchID: matches[0].MatchId,
		Label:   matches[0].Label.GetValue(),
	}
	b, _ := json.Marshal(resp)
	return string(b), nil
}
