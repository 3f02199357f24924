package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"ballebaaz/internal/app"
	"ballebaaz/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// ScorecardTokenResponse carries the minted share token.
type ScorecardTokenResponse struct {
	Token string `json:"token"`
}

// rpcScorecardToken mints a signed share token for a completed match's
// scorecard. Anyone holding the token can fetch the scorecard without a
// club account.
//
// Payload: {"match_id": "..."}
// Returns: {"token": "..."}
func rpcScorecardToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("authentication required", 16) // UNAUTHENTICATED
	}

	var req struct {
		MatchID string `json:"match_id"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
	}
	if req.MatchID == "" {
		return "", runtime.NewError("match id required", 3)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["scorecard_secret"]
	issuer := env["scorecard_issuer"]
	if secret == "" || issuer == "" {
		secret = "test-secret"
		issuer = "test-issuer"
		logger.Warn("Scorecard credentials missing from env, using test defaults.")
	}

	ttl := time.Duration(config.GetScorecardTokenTTLSeconds()) * time.Second
	service := app.NewScorecardService(secret, issuer, ttl)
	token, err := service.GenerateToken(userID, req.MatchID)
	if err != nil {
		logger.Error("Failed to generate scorecard token: %v", err)
		return "", runtime.NewError("internal error", 13) // INTERNAL
	}

	b, _ := json.Marshal(ScorecardTokenResponse{Token: token})
	return string(b), nil
}
