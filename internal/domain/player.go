package domain

// PlayerRole mirrors the club roster roles.
type PlayerRole string

const (
	RoleBatsman      PlayerRole = "batsman"
	RoleBowler       PlayerRole = "bowler"
	RoleAllrounder   PlayerRole = "allrounder"
	RoleWicketKeeper PlayerRole = "wicketkeeper"
)

// Player is the per-match working copy of a roster player. Batting and bowling
// figures accumulate for this match only; career records are folded separately
// once the match completes.
type Player struct {
	ID     string
	Name   string
	Role   PlayerRole
	TeamID string

	// Batting figures for this match.
	RunsScored int
	BallsFaced int
	Fours      int
	Sixes      int
	Batted     bool // set when the player comes to the crease, even if no ball is faced
	Out        bool // permanent once set; an out batsman can never return to the crease

	// Bowling figures for this match.
	RunsConceded  int
	BallsBowled   int
	OversBowled   Overs
	WicketsTaken  int
	FoursConceded int
	SixesConceded int
}

// StrikeRate is runs scored per 100 balls faced.
func (p *Player) StrikeRate() Stat {
	return StatOf(float64(p.RunsScored)*100, float64(p.BallsFaced))
}

// EconomyRate is runs conceded per over bowled, against the fixed-point overs value.
func (p *Player) EconomyRate() Stat {
	return StatOf(float64(p.RunsConceded), p.OversBowled.Value())
}
