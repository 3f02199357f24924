package domain

import "fmt"

// PlayerCareerRecord mirrors the persisted player statistics document.
// All figures are cumulative across matches except BattingStrikeRate, which
// the stored shape overwrites with the latest match's value.
type PlayerCareerRecord struct {
	PlayerID          string `json:"player_id"`
	RunsScored        int    `json:"runs_scored"`
	BallsFaced        int    `json:"balls_faced"`
	Fours             int    `json:"fours"`
	Sixes             int    `json:"sixes"`
	TimesOut          int    `json:"times_out"`
	Centuries         int    `json:"centuries"`
	HalfCenturies     int    `json:"half_centuries"`
	BattingAverage    string `json:"batting_average"`
	BattingStrikeRate string `json:"batting_strike_rate"`

	RunsConceded      int    `json:"runs_conceded"`
	BallsBowled       int    `json:"balls_bowled"`
	Wickets           int    `json:"wickets"`
	FiveWicketHauls   int    `json:"five_wicket_hauls"`
	BowlingAverage    string `json:"bowling_average"`
	BowlingStrikeRate string `json:"bowling_strike_rate"`

	BestBowlingWickets int `json:"best_bowling_wickets"`
	BestBowlingRuns    int `json:"best_bowling_runs"`
}

// PlayerMatchDelta carries one player's final figures for a single match.
type PlayerMatchDelta struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	TeamID       string `json:"team_id"`
	RunsScored   int    `json:"runs_scored"`
	BallsFaced   int    `json:"balls_faced"`
	Fours        int    `json:"fours"`
	Sixes        int    `json:"sixes"`
	Out          bool   `json:"out"`
	RunsConceded int    `json:"runs_conceded"`
	BallsBowled  int    `json:"balls_bowled"`
	Wickets      int    `json:"wickets"`
}

// FoldPlayerDelta folds one match's figures into a career record. Averages
// guard divide-by-zero with "0.00"; best bowling figures are replaced when the
// match's (wickets desc, runs asc) pair beats the stored pair; milestone
// counters judge this match's figures only, never re-evaluated totals.
func FoldPlayerDelta(rec PlayerCareerRecord, d PlayerMatchDelta) PlayerCareerRecord {
	rec.PlayerID = d.PlayerID

	rec.RunsScored += d.RunsScored
	rec.BallsFaced += d.BallsFaced
	rec.Fours += d.Fours
	rec.Sixes += d.Sixes
	if d.Out {
		rec.TimesOut++
	}
	rec.BattingAverage = figure(float64(rec.RunsScored), float64(rec.TimesOut))
	// Stored shape keeps the latest match's strike rate, not a career figure.
	// A match without a ball faced leaves the previous figure in place.
	if d.BallsFaced > 0 {
		rec.BattingStrikeRate = figure(float64(d.RunsScored)*100, float64(d.BallsFaced))
	} else if rec.BattingStrikeRate == "" {
		rec.BattingStrikeRate = "0.00"
	}

	rec.RunsConceded += d.RunsConceded
	rec.BallsBowled += d.BallsBowled
	rec.Wickets += d.Wickets
	rec.BowlingAverage = figure(float64(rec.RunsConceded), float64(rec.Wickets))
	rec.BowlingStrikeRate = figure(float64(rec.BallsBowled), float64(rec.Wickets))

	if d.Wickets > rec.BestBowlingWickets ||
		(d.Wickets == rec.BestBowlingWickets && d.Wickets > 0 && d.RunsConceded < rec.BestBowlingRuns) {
		rec.BestBowlingWickets = d.Wickets
		rec.BestBowlingRuns = d.RunsConceded
	}

	if d.RunsScored >= 100 {
		rec.Centuries++
	} else if d.RunsScored >= 50 {
		rec.HalfCenturies++
	}
	if d.Wickets >= 5 {
		rec.FiveWicketHauls++
	}

	return rec
}

// TeamRecord mirrors the persisted team statistics document.
type TeamRecord struct {
	TeamID        string `json:"team_id"`
	MatchesPlayed int    `json:"matches_played"`
	MatchesWon    int    `json:"matches_won"`
	MatchesLost   int    `json:"matches_lost"`
	HighestScore  int    `json:"highest_score"`
	WLRatio       string `json:"wl_ratio"`
}

// TeamMatchDelta carries one team's final figures for a single match.
type TeamMatchDelta struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
	Runs   int    `json:"runs"`
	Won    bool   `json:"won"`
	Lost   bool   `json:"lost"`
}

// FoldTeamDelta folds one match's outcome into a team record. The win/loss
// ratio is stored as a percent string, with "100%" standing in when the team
// has never lost.
func FoldTeamDelta(rec TeamRecord, d TeamMatchDelta) TeamRecord {
	rec.TeamID = d.TeamID
	rec.MatchesPlayed++
	if d.Won {
		rec.MatchesWon++
	}
	if d.Lost {
		rec.MatchesLost++
	}
	if d.Runs > rec.HighestScore {
		rec.HighestScore = d.Runs
	}
	if rec.MatchesLost == 0 {
		rec.WLRatio = "100%"
	} else {
		rec.WLRatio = fmt.Sprintf("%.2f%%", float64(rec.MatchesWon)/float64(rec.MatchesLost)*100)
	}
	return rec
}
