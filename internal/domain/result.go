package domain

import "fmt"

// MatchResult is the final projection computed once at match completion.
// It is pure data; persisting the deltas is the caller's responsibility.
type MatchResult struct {
	WinnerTeamID  string `json:"winner_team_id"` // empty on a tie
	Tie           bool   `json:"tie"`
	MarginRuns    int    `json:"margin_runs"`    // set when the side batting first won
	MarginWickets int    `json:"margin_wickets"` // set when the chasing side won
	Summary       string `json:"summary"`

	TeamDeltas   []TeamMatchDelta   `json:"team_deltas"`
	PlayerDeltas []PlayerMatchDelta `json:"player_deltas"`
}

// Finalize computes the winner, margin, and per-entity career deltas. Valid
// only after the second innings has closed the match.
func (m *Match) Finalize() (MatchResult, error) {
	if m.Phase != PhaseMatchComplete {
		return MatchResult{}, ErrWrongPhase
	}

	// After the second innings the batting side is the chaser.
	chaser := m.BattingTeam
	defender := m.BowlingTeam
	firstTotal := m.TargetScore - 1
	secondTotal := chaser.TotalRuns

	res := MatchResult{}
	switch {
	case secondTotal > firstTotal:
		res.WinnerTeamID = chaser.ID
		res.MarginWickets = chaser.Size() - chaser.WicketsLost - 1
		res.Summary = fmt.Sprintf("%s won by %d wickets", chaser.Name, res.MarginWickets)
	case secondTotal < firstTotal:
		res.WinnerTeamID = defender.ID
		res.MarginRuns = firstTotal - secondTotal
		res.Summary = fmt.Sprintf("%s won by %d runs", defender.Name, res.MarginRuns)
	default:
		res.Tie = true
		res.Summary = "Match tied"
	}

	res.TeamDeltas = []TeamMatchDelta{
		{
			TeamID: defender.ID,
			Name:   defender.Name,
			Runs:   firstTotal,
			Won:    res.WinnerTeamID == defender.ID,
			Lost:   res.WinnerTeamID == chaser.ID,
		},
		{
			TeamID: chaser.ID,
			Name:   chaser.Name,
			Runs:   secondTotal,
			Won:    res.WinnerTeamID == chaser.ID,
			Lost:   res.WinnerTeamID == defender.ID,
		},
	}

	for _, t := range []*Team{defender, chaser} {
		for _, p := range t.Players {
			if !playerParticipated(p) {
				continue
			}
			res.PlayerDeltas = append(res.PlayerDeltas, PlayerMatchDelta{
				PlayerID:     p.ID,
				Name:         p.Name,
				TeamID:       p.TeamID,
				RunsScored:   p.RunsScored,
				BallsFaced:   p.BallsFaced,
				Fours:        p.Fours,
				Sixes:        p.Sixes,
				Out:          p.Out,
				RunsConceded: p.RunsConceded,
				BallsBowled:  p.BallsBowled,
				Wickets:      p.WicketsTaken,
			})
		}
	}

	return res, nil
}

// playerParticipated reports whether the player took the field: coming to the
// crease counts even when no ball was faced, as does bowling only illegal
// deliveries. Squad members who never took the field produce no career delta.
func playerParticipated(p *Player) bool {
	return p.Batted || p.BallsBowled > 0 || p.RunsConceded > 0
}
