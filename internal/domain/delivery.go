package domain

// DeliveryKind enumerates the umpire's scoring inputs for a single delivery.
type DeliveryKind string

const (
	// DeliveryRuns is a legal ball with 0..6 runs off the bat.
	DeliveryRuns DeliveryKind = "runs"
	// DeliveryWicket is a legal ball on which the striker is dismissed.
	DeliveryWicket DeliveryKind = "wicket"
	// DeliveryWide is an illegal ball: 1 penalty run plus any extra runs taken.
	DeliveryWide DeliveryKind = "wide"
	// DeliveryNoBall is an illegal ball: 1 penalty run plus extra runs taken.
	// Arms a free hit for the next legal delivery.
	DeliveryNoBall DeliveryKind = "no_ball"
	// DeliveryNoBallFour is a no-ball hit to the boundary for four.
	DeliveryNoBallFour DeliveryKind = "no_ball_four"
	// DeliveryNoBallSix is a no-ball hit over the boundary for six.
	DeliveryNoBallSix DeliveryKind = "no_ball_six"
	// DeliveryBye is a legal ball whose runs go to extras, not the striker.
	DeliveryBye DeliveryKind = "bye"
)

// DeliveryOutcome is one umpire scoring action. Runs carries off-bat runs for
// DeliveryRuns, extra runs for wides and no-balls, and bye runs for byes; it
// is ignored for wickets and boundary no-balls.
type DeliveryOutcome struct {
	Kind DeliveryKind
	Runs int
}

// Signals reports the follow-up actions a delivery requires from the caller.
type Signals struct {
	OverEnded        bool
	InningsEnded     bool
	MatchEnded       bool
	NeedsBatsman     bool
	NeedsBowler      bool
	NeedsFreeHitRuns bool
	StrikeRotated    bool
}

// ApplyDelivery applies exactly one delivery outcome to the match state.
// Rejections leave the state untouched: scoring outside an active innings,
// with no striker or bowler set, or with out-of-range runs never mutates.
func (m *Match) ApplyDelivery(out DeliveryOutcome) (Signals, error) {
	var sig Signals

	if !m.MatchOngoing {
		return sig, ErrMatchComplete
	}
	if m.Phase != PhaseInningsInProgress {
		return sig, ErrWrongPhase
	}
	if m.Striker == nil || m.NonStriker == nil {
		return sig, ErrNoStrikerSet
	}
	if m.CurrentBowler == nil {
		return sig, ErrNoBowlerSet
	}
	if err := validateOutcome(out); err != nil {
		return sig, err
	}

	// Free-hit protection: a wicket attempt on a free hit is converted into a
	// prompt for the runs actually taken; nothing is applied here.
	if m.FreeHit && out.Kind == DeliveryWicket {
		sig.NeedsFreeHitRuns = true
		return sig, nil
	}

	switch out.Kind {
	case DeliveryRuns:
		m.applyBatRuns(out.Runs, &sig)
	case DeliveryWicket:
		m.applyWicket(&sig)
	case DeliveryWide:
		m.applyWide(out.Runs)
	case DeliveryNoBall:
		m.applyNoBall(out.Runs, &sig)
	case DeliveryNoBallFour:
		m.applyNoBallBoundary(4, &sig)
	case DeliveryNoBallSix:
		m.applyNoBallBoundary(6, &sig)
	case DeliveryBye:
		m.applyBye(out.Runs, &sig)
	}

	m.checkBoundaries(&sig)
	return sig, nil
}

func validateOutcome(out DeliveryOutcome) error {
	switch out.Kind {
	case DeliveryRuns:
		if out.Runs < 0 || out.Runs > 6 {
			return ErrInvalidRuns
		}
	case DeliveryWide, DeliveryNoBall, DeliveryBye:
		if out.Runs < 0 {
			return ErrInvalidRuns
		}
	case DeliveryWicket, DeliveryNoBallFour, DeliveryNoBallSix:
	default:
		return ErrInvalidRuns
	}
	return nil
}

// addTeamRuns credits runs to the batting side and mirrors them onto the
// bowling side, keeping both running totals equal at all times.
func (m *Match) addTeamRuns(runs, extras int) {
	m.BattingTeam.TotalRuns += runs
	m.BattingTeam.Extras += extras
	m.BowlingTeam.RunsConceded += runs
	m.BowlingTeam.ExtrasConceded += extras
}

// advanceOver counts one legal delivery against the over, the bowler, and both
// team over counters. Returns true on the over's sixth legal ball.
func (m *Match) advanceOver() bool {
	var ended bool
	m.BattingTeam.OversPlayed, ended = m.BattingTeam.OversPlayed.AddBall()
	m.BowlingTeam.OversBowled, _ = m.BowlingTeam.OversBowled.AddBall()
	m.CurrentBowler.OversBowled, _ = m.CurrentBowler.OversBowled.AddBall()
	m.CurrentBowler.BallsBowled++
	return ended
}

// rotateStrike applies the two independent swaps: odd runs taken on the ball,
// and the change of ends when the over completes. Both together cancel out.
func (m *Match) rotateStrike(runs int, overEnded bool, sig *Signals) {
	odd := runs%2 == 1
	if odd != overEnded {
		m.Striker, m.NonStriker = m.NonStriker, m.Striker
		sig.StrikeRotated = true
	}
}

func (m *Match) applyBatRuns(r int, sig *Signals) {
	m.Striker.RunsScored += r
	m.Striker.BallsFaced++
	if r == 4 {
		m.Striker.Fours++
		m.CurrentBowler.FoursConceded++
	}
	if r == 6 {
		m.Striker.Sixes++
		m.CurrentBowler.SixesConceded++
	}
	m.CurrentBowler.RunsConceded += r
	m.addTeamRuns(r, 0)
	m.FreeHit = false

	ended := m.advanceOver()
	sig.OverEnded = ended
	m.rotateStrike(r, ended, sig)
}

func (m *Match) applyWicket(sig *Signals) {
	m.Striker.BallsFaced++
	m.Striker.Out = true
	m.BattingTeam.WicketsLost++
	m.BowlingTeam.WicketsTaken++
	m.CurrentBowler.WicketsTaken++
	m.FreeHit = false

	ended := m.advanceOver()
	sig.OverEnded = ended
	sig.NeedsBatsman = true

	m.Striker = nil
	if ended {
		// The surviving batsman crosses for the new over; the replacement
		// comes in at the non-striker's end.
		m.Striker, m.NonStriker = m.NonStriker, nil
		sig.NeedsBowler = true
	}
}

func (m *Match) applyWide(extra int) {
	runs := 1 + extra
	m.CurrentBowler.RunsConceded += runs
	m.addTeamRuns(runs, runs)
	// No ball faced, no over progress, and wide run parity never rotates strike.
}

func (m *Match) applyNoBall(extra int, sig *Signals) {
	runs := 1 + extra
	m.CurrentBowler.RunsConceded += runs
	m.addTeamRuns(runs, runs)
	// Runs scrambled off a no-ball rotate strike on the usual odd-runs rule.
	m.rotateStrike(extra, false, sig)
	m.FreeHit = true
}

func (m *Match) applyNoBallBoundary(boundary int, sig *Signals) {
	m.Striker.RunsScored += boundary
	if boundary == 4 {
		m.Striker.Fours++
	} else {
		m.Striker.Sixes++
	}
	m.CurrentBowler.RunsConceded += 1 + boundary
	m.addTeamRuns(1+boundary, 1)
	m.FreeHit = true
}

func (m *Match) applyBye(runs int, sig *Signals) {
	m.Striker.BallsFaced++
	m.CurrentBowler.RunsConceded += runs
	m.addTeamRuns(runs, runs)
	m.FreeHit = false

	ended := m.advanceOver()
	sig.OverEnded = ended
	m.rotateStrike(runs, ended, sig)
}

// checkBoundaries runs the end-of-over, end-of-innings, and end-of-match
// checks after a delivery has been applied, and settles the resulting phase.
func (m *Match) checkBoundaries(sig *Signals) {
	if sig.OverEnded && m.CurrentBowler != nil {
		m.LastOverBowlerID = m.CurrentBowler.ID
		m.CurrentBowler = nil
		if !sig.NeedsBatsman {
			sig.NeedsBowler = true
		}
	}

	// A completed chase ends the match immediately, even mid-over.
	chaseDone := m.FirstInningsDone && m.BattingTeam.TotalRuns >= m.TargetScore
	allOut := m.BattingTeam.WicketsLost >= m.BattingTeam.Size()-1
	oversDone := m.BattingTeam.OversPlayed.Reached(m.TotalOvers)

	if chaseDone || allOut || oversDone {
		sig.InningsEnded = true
		sig.NeedsBatsman = false
		sig.NeedsBowler = false
		m.closeInnings(sig)
		return
	}

	switch {
	case sig.NeedsBatsman:
		m.Phase = PhaseAwaitingNewBatsman
		m.pendingBowler = sig.NeedsBowler
	case sig.NeedsBowler:
		m.Phase = PhaseAwaitingNewBowler
	}
}

func (m *Match) closeInnings(sig *Signals) {
	m.Cards = append(m.Cards,
		battingCard(m.BattingTeam, m.Innings),
		bowlingCard(m.BowlingTeam, m.Innings),
	)

	if !m.FirstInningsDone {
		m.TargetScore = m.BattingTeam.TotalRuns + 1
		m.FirstInningsDone = true
		m.Phase = PhaseInningsBreak
		return
	}

	sig.MatchEnded = true
	m.MatchOngoing = false
	m.Phase = PhaseMatchComplete
}
