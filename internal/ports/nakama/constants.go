package nakama

const (
	// RpcCreateScoringMatch is the Nakama RPC id umpires call to create a scoring match for two teams.
	RpcCreateScoringMatch = "create_scoring_match"

	// RpcFindLiveMatch is the Nakama RPC id clients call to find a live match to watch.
	RpcFindLiveMatch = "find_live_match"

	// RpcScorecardToken is the Nakama RPC id clients call to mint a scorecard share token.
	RpcScorecardToken = "scorecard_token"

	// MatchNameScoring is the authoritative match handler name registered with Nakama.
	MatchNameScoring = "ballebaaz_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server (umpire only)
	OpConfirmOvers       int64 = 1
	OpTossDecision       int64 = 2
	OpSelectBatsman      int64 = 3
	OpSelectBowler       int64 = 4
	OpRecordDelivery     int64 = 5
	OpBeginSecondInnings int64 = 6

	// Server -> Client events
	OpMatchStarted       int64 = 101
	OpOversConfirmed     int64 = 102
	OpTossDecided        int64 = 103
	OpBatsmanSelected    int64 = 104
	OpBowlerSelected     int64 = 105
	OpScoreUpdated       int64 = 106
	OpOverEnded          int64 = 107
	OpFreeHitRunsNeeded  int64 = 108
	OpBatsmanNeeded      int64 = 109
	OpBowlerNeeded       int64 = 110
	OpInningsEnded       int64 = 111
	OpInningsStarted     int64 = 112
	OpMatchEnded         int64 = 113
	OpReconcileReport    int64 = 114
	OpScoringError       int64 = 115
)
