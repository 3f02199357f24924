package domain

// Team is the per-match working copy of a club team. A team bats in one
// innings and bowls in the other, so batting-role and bowling-role totals are
// kept as distinct field groups; which group is live depends on the innings.
type Team struct {
	ID          string
	Name        string
	CaptainID   string
	CaptainName string
	Players     []*Player // roster order

	// Batting-innings totals.
	TotalRuns   int
	WicketsLost int
	OversPlayed Overs
	Extras      int

	// Bowling-innings totals.
	RunsConceded   int
	OversBowled    Overs
	WicketsTaken   int
	ExtrasConceded int
}

// RunRate is runs scored per over, against the fixed-point overs value.
func (t *Team) RunRate() Stat {
	return StatOf(float64(t.TotalRuns), t.OversPlayed.Value())
}

// Size returns the squad size.
func (t *Team) Size() int {
	return len(t.Players)
}

// PlayerByID returns the roster player with the given id, or nil.
func (t *Team) PlayerByID(id string) *Player {
	for _, p := range t.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// InningsRole distinguishes which side of an innings a snapshot describes.
type InningsRole string

const (
	InningsBatting InningsRole = "batting"
	InningsBowling InningsRole = "bowling"
)

// InningsCard is an immutable snapshot of one team's figures for one innings,
// keyed by (TeamID, Innings, Role). Cards are cut at innings boundaries so a
// later role swap cannot alias earlier figures.
type InningsCard struct {
	TeamID  string
	Innings int
	Role    InningsRole
	Runs    int
	Wickets int
	Overs   Overs
	Extras  int
}

func battingCard(t *Team, innings int) InningsCard {
	return InningsCard{
		TeamID:  t.ID,
		Innings: innings,
		Role:    InningsBatting,
		Runs:    t.TotalRuns,
		Wickets: t.WicketsLost,
		Overs:   t.OversPlayed,
		Extras:  t.Extras,
	}
}

func bowlingCard(t *Team, innings int) InningsCard {
	return InningsCard{
		TeamID:  t.ID,
		Innings: innings,
		Role:    InningsBowling,
		Runs:    t.RunsConceded,
		Wickets: t.WicketsTaken,
		Overs:   t.OversBowled,
		Extras:  t.ExtrasConceded,
	}
}
