package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"ballebaaz/internal/app"
	"ballebaaz/internal/app/reconcile"
	"ballebaaz/internal/config"
	"ballebaaz/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	// MatchLabelKey_Open is the label key spectator queries filter on.
	MatchLabelKey_Open = "open"

	matchInitParamUmpireID = "umpire_id"
	matchInitParamTeams    = "teams"
)

// MatchLabel is the indexed JSON label carried by every scoring match.
type MatchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
	TeamA string `json:"team_a"`
	TeamB string `json:"team_b"`
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	UmpireID   string                      `json:"umpire_id"` // the single operator allowed to score
	MatchID    string                      `json:"match_id"`
	Presences  map[string]runtime.Presence `json:"-"` // UserId -> Presence for targeted messaging
	App        *app.Service                `json:"-"`
	Reconciler *reconcile.Service          `json:"-"`
	Match      *domain.Match               `json:"-"`
	Reconciled bool                        `json:"reconciled"`
}

// teamDoc is the stored roster document a scoring match is created from.
type teamDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CaptainID   string `json:"captain_id"`
	CaptainName string `json:"captain_name"`
	Players     []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	} `json:"players"`
}

func (d teamDoc) toDomain() *domain.Team {
	team := &domain.Team{
		ID:          d.ID,
		Name:        d.Name,
		CaptainID:   d.CaptainID,
		CaptainName: d.CaptainName,
	}
	for _, p := range d.Players {
		team.Players = append(team.Players, &domain.Player{
			ID:     p.ID,
			Name:   p.Name,
			Role:   domain.PlayerRole(p.Role),
			TeamID: d.ID,
		})
	}
	return team
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created. It expects the umpire id and
// the two team roster documents in the creation params.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing scoring match handler.")

	if err := config.LoadMatchConfig("data/match_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load match config: %v", err)
	}

	umpireID, _ := params[matchInitParamUmpireID].(string)
	teamsJSON, _ := params[matchInitParamTeams].(string)
	if umpireID == "" || teamsJSON == "" {
		logger.Error("MatchInit: Missing umpire or team params.")
		return nil, 0, ""
	}

	var docs [2]teamDoc
	if err := json.Unmarshal([]byte(teamsJSON), &docs); err != nil {
		logger.Error("MatchInit: Failed to unmarshal team docs: %v", err)
		return nil, 0, ""
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	records := NewNakamaRecordsAdapter(nk)
	state := &MatchState{
		UmpireID:   umpireID,
		MatchID:    matchID,
		Presences:  make(map[string]runtime.Presence),
		App:        app.NewService(config.GetRules()),
		Reconciler: reconcile.NewService(records, records.TeamRecords(), records),
	}

	match, _, err := state.App.StartMatch(docs[0].toDomain(), docs[1].toDomain())
	if err != nil {
		logger.Error("MatchInit: Failed to start match: %v", err)
		return nil, 0, ""
	}
	state.Match = match

	labelBytes, err := json.Marshal(matchLabel(state))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

// MatchJoinAttempt admits everyone: the umpire scores, anyone else spectates.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	if _, ok := state.(*MatchState); !ok {
		return state, false, "state not found"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
	}

	// New joiners get the current match snapshot so a reconnecting umpire or a
	// late spectator can render the live scoreboard.
	broadcastSnapshot(matchState, dispatcher, logger, presences)

	return matchState
}

// MatchLeave is called when one or more users leave the match. The match keeps
// running without its umpire; scoring resumes when they reconnect.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
	}

	// Once the match is complete and reconciled there is nothing left to serve.
	if len(matchState.Presences) == 0 && matchState.Reconciled {
		logger.Info("MatchLeave: Terminating reconciled match with no presences.")
		return nil
	}

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, msg := range messages {
		senderID := msg.GetUserId()
		if senderID != matchState.UmpireID {
			logger.Warn("MatchLoop: Non-umpire %s sent opcode %d, ignoring.", senderID, msg.GetOpCode())
			sendError(matchState, dispatcher, logger, senderID, 403, "only the umpire may score")
			continue
		}

		switch msg.GetOpCode() {
		case OpConfirmOvers:
			handleConfirmOvers(matchState, dispatcher, logger, senderID, msg.GetData())
		case OpTossDecision:
			handleTossDecision(matchState, dispatcher, logger, senderID, msg.GetData())
		case OpSelectBatsman:
			handleSelectBatsman(matchState, dispatcher, logger, senderID, msg.GetData())
		case OpSelectBowler:
			handleSelectBowler(matchState, dispatcher, logger, senderID, msg.GetData())
		case OpRecordDelivery:
			handleRecordDelivery(ctx, matchState, dispatcher, logger, senderID, msg.GetData())
		case OpBeginSecondInnings:
			handleBeginSecondInnings(matchState, dispatcher, logger, senderID)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	return matchState
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

type confirmOversRequest struct {
	TotalOvers int `json:"total_overs"`
}

func handleConfirmOvers(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	var req confirmOversRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Warn("ConfirmOvers: Invalid request from %s: %v", senderID, err)
		sendError(state, dispatcher, logger, senderID, 400, "invalid payload")
		return
	}

	events, err := state.App.ConfirmOvers(state.Match, req.TotalOvers)
	if err != nil {
		logger.Warn("ConfirmOvers: Rejected for %s: %v", senderID, err)
		sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	broadcastEvents(state, dispatcher, logger, events)
	updateLabel(state, dispatcher, logger)
}

type tossDecisionRequest struct {
	BattingTeamID string `json:"batting_team_id"`
}

func handleTossDecision(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	var req tossDecisionRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Warn("TossDecision: Invalid request from %s: %v", senderID, err)
		sendError(state, dispatcher, logger, senderID, 400, "invalid payload")
		return
	}

	events, err := state.App.SetToss(state.Match, req.BattingTeamID)
	if err != nil {
		logger.Warn("TossDecision: Rejected for %s: %v", senderID, err)
		sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	broadcastEvents(state, dispatcher, logger, events)
	updateLabel(state, dispatcher, logger)
}

type selectPlayerRequest struct {
	PlayerID string `json:"player_id"`
}

func handleSelectBatsman(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	var req selectPlayerRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Warn("SelectBatsman: Invalid request from %s: %v", senderID, err)
		sendError(state, dispatcher, logger, senderID, 400, "invalid payload")
		return
	}

	events, err := state.App.SelectBatsman(state.Match, req.PlayerID)
	if err != nil {
		logger.Warn("SelectBatsman: Rejected for %s: %v", senderID, err)
		sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	broadcastEvents(state, dispatcher, logger, events)
}

func handleSelectBowler(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	var req selectPlayerRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Warn("SelectBowler: Invalid request from %s: %v", senderID, err)
		sendError(state, dispatcher, logger, senderID, 400, "invalid payload")
		return
	}

	events, err := state.App.SelectBowler(state.Match, req.PlayerID)
	if err != nil {
		logger.Warn("SelectBowler: Rejected for %s: %v", senderID, err)
		sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	broadcastEvents(state, dispatcher, logger, events)
}

type recordDeliveryRequest struct {
	Kind string `json:"kind"`
	Runs int    `json:"runs"`
}

// reconcileReport is broadcast once after the final delivery, so every client
// knows whether the career records were updated.
type reconcileReport struct {
	PlayersUpdated int      `json:"players_updated"`
	TeamsUpdated   int      `json:"teams_updated"`
	Failures       []string `json:"failures,omitempty"`
}

func handleRecordDelivery(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	var req recordDeliveryRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Warn("RecordDelivery: Invalid request from %s: %v", senderID, err)
		sendError(state, dispatcher, logger, senderID, 400, "invalid payload")
		return
	}

	outcome := domain.DeliveryOutcome{Kind: domain.DeliveryKind(req.Kind), Runs: req.Runs}
	events, err := state.App.RecordDelivery(state.Match, outcome)
	if err != nil {
		logger.Warn("RecordDelivery: Rejected for %s: %v", senderID, err)
		sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	broadcastEvents(state, dispatcher, logger, events)

	if state.Match.Phase == domain.PhaseMatchComplete && !state.Reconciled {
		reconcileMatch(ctx, state, dispatcher, logger)
		updateLabel(state, dispatcher, logger)
	}
}

func handleBeginSecondInnings(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	events, err := state.App.BeginSecondInnings(state.Match)
	if err != nil {
		logger.Warn("BeginSecondInnings: Rejected for %s: %v", senderID, err)
		sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	broadcastEvents(state, dispatcher, logger, events)
	updateLabel(state, dispatcher, logger)
}

// reconcileMatch folds the final result into the stored career records exactly
// once per match. Failures are reported to clients but never retried here; the
// completed-match registry guards a manual re-run from double counting.
func reconcileMatch(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	state.Reconciled = true

	res, err := state.App.Finalize(state.Match)
	if err != nil {
		logger.Error("Reconcile: Failed to finalize match %s: %v", state.MatchID, err)
		return
	}

	result, err := state.Reconciler.Reconcile(ctx, state.MatchID, res)
	if err != nil {
		logger.Error("Reconcile: Failed for match %s: %v", state.MatchID, err)
		broadcast(dispatcher, logger, OpReconcileReport, reconcileReport{Failures: []string{err.Error()}}, nil)
		return
	}

	report := reconcileReport{
		PlayersUpdated: result.PlayersUpdated,
		TeamsUpdated:   result.TeamsUpdated,
	}
	for _, f := range result.Failures {
		report.Failures = append(report.Failures, f.Error())
	}
	if result.Failed() {
		logger.Warn("Reconcile: Match %s applied with %d failures.", state.MatchID, len(result.Failures))
	} else {
		logger.Info("Reconcile: Match %s applied (%d players, %d teams).", state.MatchID, result.PlayersUpdated, result.TeamsUpdated)
	}
	broadcast(dispatcher, logger, OpReconcileReport, report, nil)
}

// broadcastEvents converts app events to opcodes and dispatches them.
func broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, ok := opCodeFor(ev.Kind)
		if !ok {
			logger.Warn("Unknown event kind: %v", ev.Kind)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, uid := range ev.Recipients {
				if p, ok := state.Presences[uid]; ok {
					recipients = append(recipients, p)
				}
			}
			// Targeted events with no connected recipient must not leak to everyone.
			if len(recipients) == 0 {
				continue
			}
		}

		broadcast(dispatcher, logger, opCode, ev.Payload, recipients)
	}
}

func opCodeFor(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventMatchStarted:
		return OpMatchStarted, true
	case app.EventOversConfirmed:
		return OpOversConfirmed, true
	case app.EventTossDecided:
		return OpTossDecided, true
	case app.EventBatsmanSelected:
		return OpBatsmanSelected, true
	case app.EventBowlerSelected:
		return OpBowlerSelected, true
	case app.EventScoreUpdated:
		return OpScoreUpdated, true
	case app.EventOverEnded:
		return OpOverEnded, true
	case app.EventFreeHitRunsNeeded:
		return OpFreeHitRunsNeeded, true
	case app.EventBatsmanNeeded:
		return OpBatsmanNeeded, true
	case app.EventBowlerNeeded:
		return OpBowlerNeeded, true
	case app.EventInningsEnded:
		return OpInningsEnded, true
	case app.EventInningsStarted:
		return OpInningsStarted, true
	case app.EventMatchEnded:
		return OpMatchEnded, true
	default:
		return 0, false
	}
}

func broadcast(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload any, recipients []runtime.Presence) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal payload for opcode %d: %v", opCode, err)
		return
	}
	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// matchSnapshot is sent to joiners so they can render the current state.
type matchSnapshot struct {
	Phase       string `json:"phase"`
	TotalOvers  int    `json:"total_overs"`
	Innings     int    `json:"innings"`
	TargetScore int    `json:"target_score,omitempty"`

	BattingTeamID string `json:"batting_team_id,omitempty"`
	TotalRuns     int    `json:"total_runs"`
	WicketsLost   int    `json:"wickets_lost"`
	Overs         string `json:"overs"`
}

func broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, presences []runtime.Presence) {
	m := state.Match
	snap := matchSnapshot{
		Phase:      string(m.Phase),
		TotalOvers: m.TotalOvers,
		Innings:    m.Innings,
	}
	if m.FirstInningsDone {
		snap.TargetScore = m.TargetScore
	}
	if m.BattingTeam != nil {
		snap.BattingTeamID = m.BattingTeam.ID
		snap.TotalRuns = m.BattingTeam.TotalRuns
		snap.WicketsLost = m.BattingTeam.WicketsLost
		snap.Overs = m.BattingTeam.OversPlayed.String()
	}
	broadcast(dispatcher, logger, OpMatchStarted, snap, presences)
}

// scoringErrorEvent is sent privately to the umpire on a rejected action.
type scoringErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	broadcast(dispatcher, logger, OpScoringError, scoringErrorEvent{Code: code, Message: message}, []runtime.Presence{presence})
}

func matchLabel(state *MatchState) MatchLabel {
	open := 1
	if state.Match.Phase == domain.PhaseMatchComplete {
		open = 0
	}
	return MatchLabel{
		Open:  open,
		Game:  "ballebaaz",
		Phase: string(state.Match.Phase),
		TeamA: state.Match.TeamA.ID,
		TeamB: state.Match.TeamB.ID,
	}
}

func updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(matchLabel(state))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}
