package domain

import "errors"

// Phase represents the lifecycle stage of a scoring session.
type Phase string

const (
	// PhaseAwaitingOversConfirmation waits for the umpire to enter the match format.
	PhaseAwaitingOversConfirmation Phase = "awaiting_overs"
	// PhaseAwaitingTossDecision waits for the umpire to record which team bats first.
	PhaseAwaitingTossDecision Phase = "awaiting_toss"
	// PhaseAwaitingOpeningBatsmen waits for the striker, then the non-striker.
	PhaseAwaitingOpeningBatsmen Phase = "awaiting_opening_batsmen"
	// PhaseAwaitingOpeningBowler waits for the opening bowler of the innings.
	PhaseAwaitingOpeningBowler Phase = "awaiting_opening_bowler"
	// PhaseInningsInProgress accepts delivery outcomes.
	PhaseInningsInProgress Phase = "innings_in_progress"
	// PhaseAwaitingNewBatsman waits for a replacement after a wicket.
	PhaseAwaitingNewBatsman Phase = "awaiting_new_batsman"
	// PhaseAwaitingNewBowler waits for the next over's bowler.
	PhaseAwaitingNewBowler Phase = "awaiting_new_bowler"
	// PhaseInningsBreak waits for the umpire to begin the second innings.
	PhaseInningsBreak Phase = "innings_break"
	// PhaseMatchComplete is terminal; no further scoring is accepted.
	PhaseMatchComplete Phase = "match_complete"
)

var (
	ErrMatchComplete   = errors.New("match already complete")
	ErrWrongPhase      = errors.New("action not valid in current phase")
	ErrInvalidOvers    = errors.New("total overs must be a positive integer")
	ErrUnknownTeam     = errors.New("team is not part of this match")
	ErrUnknownPlayer   = errors.New("player is not on the team roster")
	ErrBatsmanOut      = errors.New("batsman is already out")
	ErrCreaseOccupied  = errors.New("batsman is already at the crease")
	ErrConsecutiveOver = errors.New("bowler bowled the previous over")
	ErrNoStrikerSet    = errors.New("no striker set")
	ErrNoBowlerSet     = errors.New("no bowler set")
	ErrSquadTooSmall   = errors.New("team needs at least two players")
	ErrInvalidRuns     = errors.New("invalid run value for delivery")
)

// Match is the root aggregate for one live scoring session. It is mutated only
// by the delivery processor and the phase transitions below, and is discarded
// after the final result has been reconciled into career records.
type Match struct {
	Phase Phase

	TotalOvers int // set once at overs confirmation, immutable thereafter

	TeamA *Team
	TeamB *Team

	BattingTeam *Team
	BowlingTeam *Team

	Striker       *Player
	NonStriker    *Player
	CurrentBowler *Player

	Innings          int // 1 or 2
	FirstInningsDone bool
	TargetScore      int // first-innings total + 1, set at the innings break
	FreeHit          bool
	MatchOngoing     bool

	// LastOverBowlerID identifies the bowler of the over that just finished,
	// for the configurable no-consecutive-overs rule.
	LastOverBowlerID string

	// pendingBowler records that a new-bowler prompt is owed once the
	// outstanding batsman selection is resolved (wicket on an over's last ball).
	pendingBowler bool

	Cards []InningsCard
}

// NewMatch creates a scoring session for the two squads. Both teams need at
// least two players since an innings closes at squad size minus one wickets.
func NewMatch(teamA, teamB *Team) (*Match, error) {
	if teamA == nil || teamB == nil || teamA.Size() < 2 || teamB.Size() < 2 {
		return nil, ErrSquadTooSmall
	}
	return &Match{
		Phase:        PhaseAwaitingOversConfirmation,
		TeamA:        teamA,
		TeamB:        teamB,
		Innings:      1,
		MatchOngoing: true,
	}, nil
}

// ConfirmOvers fixes the match format and moves on to the toss decision.
func (m *Match) ConfirmOvers(totalOvers int) error {
	if m.Phase != PhaseAwaitingOversConfirmation {
		return ErrWrongPhase
	}
	if totalOvers <= 0 {
		return ErrInvalidOvers
	}
	m.TotalOvers = totalOvers
	m.Phase = PhaseAwaitingTossDecision
	return nil
}

// SetToss records which team bats first and assigns the other as bowling side.
func (m *Match) SetToss(battingTeamID string) error {
	if m.Phase != PhaseAwaitingTossDecision {
		return ErrWrongPhase
	}
	switch battingTeamID {
	case m.TeamA.ID:
		m.BattingTeam, m.BowlingTeam = m.TeamA, m.TeamB
	case m.TeamB.ID:
		m.BattingTeam, m.BowlingTeam = m.TeamB, m.TeamA
	default:
		return ErrUnknownTeam
	}
	m.Phase = PhaseAwaitingOpeningBatsmen
	return nil
}

// EligibleBatsmen lists batting-team players who may come to the crease:
// not out and not already occupying a crease slot. Invalid selections are
// prevented by this list, not handled as runtime errors.
func (m *Match) EligibleBatsmen() []*Player {
	if m.BattingTeam == nil {
		return nil
	}
	out := make([]*Player, 0, m.BattingTeam.Size())
	for _, p := range m.BattingTeam.Players {
		if p.Out || p == m.Striker || p == m.NonStriker {
			continue
		}
		out = append(out, p)
	}
	return out
}

// EligibleBowlers lists bowling-team players who may bowl the next over.
// When excludeLastOver is set, the bowler of the over just finished is omitted.
func (m *Match) EligibleBowlers(excludeLastOver bool) []*Player {
	if m.BowlingTeam == nil {
		return nil
	}
	out := make([]*Player, 0, m.BowlingTeam.Size())
	for _, p := range m.BowlingTeam.Players {
		if excludeLastOver && p.ID == m.LastOverBowlerID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SelectBatsman fills the open crease slot. During opening selection the
// striker is filled first, then the non-striker; after a wicket only the
// vacant slot is filled.
func (m *Match) SelectBatsman(playerID string) error {
	switch m.Phase {
	case PhaseAwaitingOpeningBatsmen, PhaseAwaitingNewBatsman:
	default:
		return ErrWrongPhase
	}

	p := m.BattingTeam.PlayerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if p.Out {
		return ErrBatsmanOut
	}
	if p == m.Striker || p == m.NonStriker {
		return ErrCreaseOccupied
	}

	p.Batted = true
	if m.Striker == nil {
		m.Striker = p
	} else {
		m.NonStriker = p
	}

	switch {
	case m.Striker == nil || m.NonStriker == nil:
		// Opening selection still needs the second batsman.
	case m.Phase == PhaseAwaitingOpeningBatsmen:
		m.Phase = PhaseAwaitingOpeningBowler
	case m.pendingBowler:
		m.pendingBowler = false
		m.Phase = PhaseAwaitingNewBowler
	default:
		m.Phase = PhaseInningsInProgress
	}
	return nil
}

// SelectBowler sets the bowler for the coming over. allowConsecutive mirrors
// the configurable repeat rule; when false the previous over's bowler is rejected.
func (m *Match) SelectBowler(playerID string, allowConsecutive bool) error {
	switch m.Phase {
	case PhaseAwaitingOpeningBowler, PhaseAwaitingNewBowler:
	default:
		return ErrWrongPhase
	}

	p := m.BowlingTeam.PlayerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if !allowConsecutive && p.ID == m.LastOverBowlerID {
		return ErrConsecutiveOver
	}

	m.CurrentBowler = p
	m.Phase = PhaseInningsInProgress
	return nil
}

// BeginSecondInnings swaps the sides after the innings break and re-enters
// batsman selection for the chase.
func (m *Match) BeginSecondInnings() error {
	if m.Phase != PhaseInningsBreak {
		return ErrWrongPhase
	}
	m.BattingTeam, m.BowlingTeam = m.BowlingTeam, m.BattingTeam
	m.Striker = nil
	m.NonStriker = nil
	m.CurrentBowler = nil
	m.LastOverBowlerID = ""
	m.FreeHit = false
	m.Innings = 2
	m.Phase = PhaseAwaitingOpeningBatsmen
	return nil
}

// RequiredRunRate is the rate the chasing side must maintain, defined only
// once the first innings is done. Overs remaining uses the fixed-point value.
func (m *Match) RequiredRunRate() Stat {
	if !m.FirstInningsDone || m.BattingTeam == nil {
		return Stat{}
	}
	remaining := float64(m.TotalOvers) - m.BattingTeam.OversPlayed.Value()
	return StatOf(float64(m.TargetScore-m.BattingTeam.TotalRuns), remaining)
}
