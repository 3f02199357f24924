package app

import (
	"errors"

	"ballebaaz/internal/config"
	"ballebaaz/internal/domain"
)

var ErrOversExceedLimit = errors.New("total overs exceed the configured limit")

// Service contains the umpire scoring use-cases operating on match state.
// It owns no state of its own; every method takes the live match, applies one
// action, and returns the events the caller should dispatch.
type Service struct {
	rules config.MatchRules
}

// NewService constructs a Service with the given rules.
func NewService(rules config.MatchRules) *Service {
	return &Service{rules: rules}
}

// StartMatch creates a scoring session for the two squads.
func (s *Service) StartMatch(teamA, teamB *domain.Team) (*domain.Match, []Event, error) {
	m, err := domain.NewMatch(teamA, teamB)
	if err != nil {
		return nil, nil, err
	}
	events := []Event{{
		Kind: EventMatchStarted,
		Payload: MatchStartedPayload{
			TeamAID:   teamA.ID,
			TeamAName: teamA.Name,
			TeamBID:   teamB.ID,
			TeamBName: teamB.Name,
		},
	}}
	return m, events, nil
}

// ConfirmOvers records the match format entered by the umpire.
func (s *Service) ConfirmOvers(m *domain.Match, totalOvers int) ([]Event, error) {
	if s.rules.MaxOvers > 0 && totalOvers > s.rules.MaxOvers {
		return nil, ErrOversExceedLimit
	}
	if err := m.ConfirmOvers(totalOvers); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventOversConfirmed,
		Payload: OversConfirmedPayload{TotalOvers: totalOvers},
	}}, nil
}

// SetToss records the toss outcome and prompts for the opening batsmen.
func (s *Service) SetToss(m *domain.Match, battingTeamID string) ([]Event, error) {
	if err := m.SetToss(battingTeamID); err != nil {
		return nil, err
	}
	return []Event{
		{
			Kind: EventTossDecided,
			Payload: TossDecidedPayload{
				BattingTeamID: m.BattingTeam.ID,
				BowlingTeamID: m.BowlingTeam.ID,
			},
		},
		{
			Kind:    EventBatsmanNeeded,
			Payload: SelectionPayload{Eligible: playerLines(m.EligibleBatsmen())},
		},
	}, nil
}

// SelectBatsman fills the open crease slot and prompts for whatever pick is
// still outstanding.
func (s *Service) SelectBatsman(m *domain.Match, playerID string) ([]Event, error) {
	if err := m.SelectBatsman(playerID); err != nil {
		return nil, err
	}
	p := m.BattingTeam.PlayerByID(playerID)
	events := []Event{{
		Kind: EventBatsmanSelected,
		Payload: BatsmanSelectedPayload{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			OnStrike:   m.Striker == p,
		},
	}}

	switch m.Phase {
	case domain.PhaseAwaitingOpeningBatsmen:
		events = append(events, Event{
			Kind:    EventBatsmanNeeded,
			Payload: SelectionPayload{Eligible: playerLines(m.EligibleBatsmen())},
		})
	case domain.PhaseAwaitingOpeningBowler, domain.PhaseAwaitingNewBowler:
		events = append(events, s.bowlerPrompt(m))
	}
	return events, nil
}

// SelectBowler sets the bowler for the coming over.
func (s *Service) SelectBowler(m *domain.Match, playerID string) ([]Event, error) {
	if err := m.SelectBowler(playerID, s.rules.AllowConsecutiveBowler); err != nil {
		return nil, err
	}
	p := m.BowlingTeam.PlayerByID(playerID)
	return []Event{{
		Kind: EventBowlerSelected,
		Payload: BowlerSelectedPayload{
			PlayerID:   p.ID,
			PlayerName: p.Name,
		},
	}}, nil
}

// RecordDelivery applies one umpire scoring action and emits the score update
// plus whatever follow-up prompts the delivery produced.
func (s *Service) RecordDelivery(m *domain.Match, out domain.DeliveryOutcome) ([]Event, error) {
	// The bowler leaves the scoreboard line when the over ends; capture first.
	bowler := m.CurrentBowler
	sig, err := m.ApplyDelivery(out)
	if err != nil {
		return nil, err
	}

	if sig.NeedsFreeHitRuns {
		return []Event{{Kind: EventFreeHitRunsNeeded}}, nil
	}

	events := []Event{{
		Kind:    EventScoreUpdated,
		Payload: s.scorePayload(m, bowler),
	}}

	if sig.OverEnded {
		events = append(events, Event{
			Kind: EventOverEnded,
			Payload: OverEndedPayload{
				Overs:    m.BattingTeam.OversPlayed.String(),
				BowlerID: bowler.ID,
			},
		})
	}

	if sig.InningsEnded {
		events = append(events, Event{
			Kind: EventInningsEnded,
			Payload: InningsEndedPayload{
				Innings:     m.Innings,
				TotalRuns:   m.BattingTeam.TotalRuns,
				WicketsLost: m.BattingTeam.WicketsLost,
				Overs:       m.BattingTeam.OversPlayed.String(),
				TargetScore: m.TargetScore,
			},
		})
		if sig.MatchEnded {
			end, err := s.matchEndedEvent(m)
			if err != nil {
				return nil, err
			}
			events = append(events, end)
		}
		return events, nil
	}

	if sig.NeedsBatsman {
		events = append(events, Event{
			Kind:    EventBatsmanNeeded,
			Payload: SelectionPayload{Eligible: playerLines(m.EligibleBatsmen())},
		})
	} else if sig.NeedsBowler {
		events = append(events, s.bowlerPrompt(m))
	}
	return events, nil
}

// BeginSecondInnings starts the chase after the innings break.
func (s *Service) BeginSecondInnings(m *domain.Match) ([]Event, error) {
	if err := m.BeginSecondInnings(); err != nil {
		return nil, err
	}
	return []Event{
		{
			Kind: EventInningsStarted,
			Payload: InningsStartedPayload{
				Innings:       m.Innings,
				BattingTeamID: m.BattingTeam.ID,
				TargetScore:   m.TargetScore,
			},
		},
		{
			Kind:    EventBatsmanNeeded,
			Payload: SelectionPayload{Eligible: playerLines(m.EligibleBatsmen())},
		},
	}, nil
}

// Finalize computes the terminal result for reconciliation.
func (s *Service) Finalize(m *domain.Match) (domain.MatchResult, error) {
	return m.Finalize()
}

func (s *Service) bowlerPrompt(m *domain.Match) Event {
	return Event{
		Kind:    EventBowlerNeeded,
		Payload: SelectionPayload{Eligible: playerLines(m.EligibleBowlers(!s.rules.AllowConsecutiveBowler))},
	}
}

func (s *Service) matchEndedEvent(m *domain.Match) (Event, error) {
	res, err := m.Finalize()
	if err != nil {
		return Event{}, err
	}
	return Event{
		Kind: EventMatchEnded,
		Payload: MatchEndedPayload{
			WinnerTeamID:  res.WinnerTeamID,
			Tie:           res.Tie,
			MarginRuns:    res.MarginRuns,
			MarginWickets: res.MarginWickets,
			Summary:       res.Summary,
			Cards:         m.Cards,
		},
	}, nil
}

func (s *Service) scorePayload(m *domain.Match, bowler *domain.Player) ScoreUpdatedPayload {
	p := ScoreUpdatedPayload{
		Innings:       m.Innings,
		BattingTeamID: m.BattingTeam.ID,
		TotalRuns:     m.BattingTeam.TotalRuns,
		WicketsLost:   m.BattingTeam.WicketsLost,
		Overs:         m.BattingTeam.OversPlayed.String(),
		Extras:        m.BattingTeam.Extras,
		RunRate:       m.BattingTeam.RunRate().String(),
		FreeHit:       m.FreeHit,
	}
	if m.FirstInningsDone {
		p.TargetScore = m.TargetScore
		p.RequiredRunRate = m.RequiredRunRate().String()
	}
	if m.Striker != nil {
		p.Striker = battingLine(m.Striker)
	}
	if m.NonStriker != nil {
		p.NonStriker = battingLine(m.NonStriker)
	}
	if bowler != nil {
		p.Bowler = bowlingLine(bowler)
	}
	return p
}

func battingLine(p *domain.Player) PlayerLine {
	return PlayerLine{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Runs:       p.RunsScored,
		Balls:      p.BallsFaced,
		Fours:      p.Fours,
		Sixes:      p.Sixes,
		Rate:       p.StrikeRate().String(),
	}
}

func bowlingLine(p *domain.Player) PlayerLine {
	return PlayerLine{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Runs:       p.RunsConceded,
		Balls:      p.BallsBowled,
		Overs:      p.OversBowled.String(),
		Wickets:    p.WicketsTaken,
		Rate:       p.EconomyRate().String(),
	}
}

func playerLines(players []*domain.Player) []PlayerLine {
	out := make([]PlayerLine, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerLine{PlayerID: p.ID, PlayerName: p.Name})
	}
	return out
}
