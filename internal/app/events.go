package app

import "ballebaaz/internal/domain"

// EventKind identifies emitted scoring events for Nakama dispatch.
type EventKind string

const (
	EventMatchStarted      EventKind = "match_started"
	EventOversConfirmed    EventKind = "overs_confirmed"
	EventTossDecided       EventKind = "toss_decided"
	EventBatsmanSelected   EventKind = "batsman_selected"
	EventBowlerSelected    EventKind = "bowler_selected"
	EventScoreUpdated      EventKind = "score_updated"
	EventOverEnded         EventKind = "over_ended"
	EventFreeHitRunsNeeded EventKind = "free_hit_runs_needed"
	EventBatsmanNeeded     EventKind = "batsman_needed"
	EventBowlerNeeded      EventKind = "bowler_needed"
	EventInningsEnded      EventKind = "innings_ended"
	EventInningsStarted    EventKind = "innings_started"
	EventMatchEnded        EventKind = "match_ended"
)

// Event is a scoring event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type MatchStartedPayload struct {
	TeamAID   string `json:"team_a_id"`
	TeamAName string `json:"team_a_name"`
	TeamBID   string `json:"team_b_id"`
	TeamBName string `json:"team_b_name"`
}

type OversConfirmedPayload struct {
	TotalOvers int `json:"total_overs"`
}

type TossDecidedPayload struct {
	BattingTeamID string `json:"batting_team_id"`
	BowlingTeamID string `json:"bowling_team_id"`
}

type BatsmanSelectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	OnStrike   bool   `json:"on_strike"`
}

type BowlerSelectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerLine is the live scoreboard line for one batsman or bowler.
type PlayerLine struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Runs       int    `json:"runs"`
	Balls      int    `json:"balls"`
	Fours      int    `json:"fours,omitempty"`
	Sixes      int    `json:"sixes,omitempty"`
	Overs      string `json:"overs,omitempty"`
	Wickets    int    `json:"wickets,omitempty"`
	Rate       string `json:"rate"` // strike rate for batsmen, economy for bowlers
}

// ScoreUpdatedPayload is broadcast after every applied delivery.
type ScoreUpdatedPayload struct {
	Innings         int        `json:"innings"`
	BattingTeamID   string     `json:"batting_team_id"`
	TotalRuns       int        `json:"total_runs"`
	WicketsLost     int        `json:"wickets_lost"`
	Overs           string     `json:"overs"`
	Extras          int        `json:"extras"`
	RunRate         string     `json:"run_rate"`
	RequiredRunRate string     `json:"required_run_rate,omitempty"`
	TargetScore     int        `json:"target_score,omitempty"`
	FreeHit         bool       `json:"free_hit"`
	Striker         PlayerLine `json:"striker"`
	NonStriker      PlayerLine `json:"non_striker"`
	Bowler          PlayerLine `json:"bowler"`
}

type OverEndedPayload struct {
	Overs    string `json:"overs"`
	BowlerID string `json:"bowler_id"`
}

// SelectionPayload lists the eligible players for a pending pick.
type SelectionPayload struct {
	Eligible []PlayerLine `json:"eligible"`
}

type InningsEndedPayload struct {
	Innings     int    `json:"innings"`
	TotalRuns   int    `json:"total_runs"`
	WicketsLost int    `json:"wickets_lost"`
	Overs       string `json:"overs"`
	TargetScore int    `json:"target_score"`
}

type InningsStartedPayload struct {
	Innings       int    `json:"innings"`
	BattingTeamID string `json:"batting_team_id"`
	TargetScore   int    `json:"target_score"`
}

type MatchEndedPayload struct {
	WinnerTeamID  string `json:"winner_team_id"`
	Tie           bool   `json:"tie"`
	MarginRuns    int    `json:"margin_runs"`
	MarginWickets int    `json:"margin_wickets"`
	Summary       string `json:"summary"`

	Cards []domain.InningsCard `json:"cards"`
}
