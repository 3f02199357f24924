package app

import (
	"fmt"
	"testing"

	"ballebaaz/internal/config"
	"ballebaaz/internal/domain"
)

func testTeam(prefix string, squad int) *domain.Team {
	team := &domain.Team{ID: "team-" + prefix, Name: "Team " + prefix}
	for i := 1; i <= squad; i++ {
		team.Players = append(team.Players, &domain.Player{
			ID:     fmt.Sprintf("%s%d", prefix, i),
			Name:   fmt.Sprintf("Player %s%d", prefix, i),
			Role:   domain.RoleAllrounder,
			TeamID: team.ID,
		})
	}
	return team
}

func testService() *Service {
	return NewService(config.MatchRules{AllowConsecutiveBowler: true, MaxOvers: 50})
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func eventOf(t *testing.T, events []Event, kind EventKind) Event {
	t.Helper()
	for _, ev := range events {
		if ev.Kind == kind {
			return ev
		}
	}
	t.Fatalf("no %s event in %d events", kind, len(events))
	return Event{}
}

func TestStartMatchEmitsEvent(t *testing.T) {
	svc := testService()
	m, events, err := svc.StartMatch(testTeam("a", 5), testTeam("b", 5))
	if err != nil {
		t.Fatalf("StartMatch error: %v", err)
	}
	if m.Phase != domain.PhaseAwaitingOversConfirmation {
		t.Fatalf("phase = %s", m.Phase)
	}
	ev := eventOf(t, events, EventMatchStarted)
	p := ev.Payload.(MatchStartedPayload)
	if p.TeamAID != "team-a" || p.TeamBID != "team-b" {
		t.Fatalf("payload = %+v", p)
	}
	if len(ev.Recipients) != 0 {
		t.Fatal("match started should broadcast to everyone")
	}
}

func TestConfirmOversHonorsLimit(t *testing.T) {
	svc := NewService(config.MatchRules{AllowConsecutiveBowler: true, MaxOvers: 20})
	m, _, _ := svc.StartMatch(testTeam("a", 5), testTeam("b", 5))

	if _, err := svc.ConfirmOvers(m, 21); err != ErrOversExceedLimit {
		t.Fatalf("err = %v, want ErrOversExceedLimit", err)
	}
	if _, err := svc.ConfirmOvers(m, 20); err != nil {
		t.Fatalf("ConfirmOvers error: %v", err)
	}
}

func TestSetTossPromptsForBatsmen(t *testing.T) {
	svc := testService()
	m, _, _ := svc.StartMatch(testTeam("a", 5), testTeam("b", 5))
	svc.ConfirmOvers(m, 20)

	events, err := svc.SetToss(m, "team-a")
	if err != nil {
		t.Fatalf("SetToss error: %v", err)
	}
	prompt := eventOf(t, events, EventBatsmanNeeded)
	sel := prompt.Payload.(SelectionPayload)
	if len(sel.Eligible) != 5 {
		t.Fatalf("eligible = %d, want the full squad", len(sel.Eligible))
	}
}

// driveToLive walks the setup flow to the first ball of the first innings.
func driveToLive(t *testing.T, svc *Service) *domain.Match {
	t.Helper()
	m, _, err := svc.StartMatch(testTeam("a", 5), testTeam("b", 5))
	if err != nil {
		t.Fatalf("StartMatch error: %v", err)
	}
	if _, err := svc.ConfirmOvers(m, 1); err != nil {
		t.Fatalf("ConfirmOvers error: %v", err)
	}
	if _, err := svc.SetToss(m, "team-a"); err != nil {
		t.Fatalf("SetToss error: %v", err)
	}
	if _, err := svc.SelectBatsman(m, "a1"); err != nil {
		t.Fatalf("SelectBatsman error: %v", err)
	}
	events, err := svc.SelectBatsman(m, "a2")
	if err != nil {
		t.Fatalf("SelectBatsman error: %v", err)
	}
	if !hasEvent(events, EventBowlerNeeded) {
		t.Fatal("second opener should trigger the bowler prompt")
	}
	if _, err := svc.SelectBowler(m, "b1"); err != nil {
		t.Fatalf("SelectBowler error: %v", err)
	}
	return m
}

func TestRecordDeliveryEmitsScoreUpdate(t *testing.T) {
	svc := testService()
	m := driveToLive(t, svc)

	events, err := svc.RecordDelivery(m, domain.DeliveryOutcome{Kind: domain.DeliveryRuns, Runs: 4})
	if err != nil {
		t.Fatalf("RecordDelivery error: %v", err)
	}
	score := eventOf(t, events, EventScoreUpdated).Payload.(ScoreUpdatedPayload)
	if score.TotalRuns != 4 || score.Overs != "0.1" {
		t.Fatalf("score = %+v", score)
	}
	if score.Striker.Runs != 4 || score.Striker.Rate != "400.00" {
		t.Fatalf("striker line = %+v", score.Striker)
	}
	if score.Bowler.PlayerID != "b1" || score.Bowler.Runs != 4 {
		t.Fatalf("bowler line = %+v", score.Bowler)
	}
}

func TestRecordDeliveryWicketPromptsReplacement(t *testing.T) {
	svc := testService()
	m := driveToLive(t, svc)

	events, err := svc.RecordDelivery(m, domain.DeliveryOutcome{Kind: domain.DeliveryWicket})
	if err != nil {
		t.Fatalf("RecordDelivery error: %v", err)
	}
	sel := eventOf(t, events, EventBatsmanNeeded).Payload.(SelectionPayload)
	for _, line := range sel.Eligible {
		if line.PlayerID == "a1" || line.PlayerID == "a2" {
			t.Fatalf("ineligible batsman %s offered", line.PlayerID)
		}
	}
}

func TestRecordDeliveryFreeHitPrompt(t *testing.T) {
	svc := testService()
	m := driveToLive(t, svc)

	if _, err := svc.RecordDelivery(m, domain.DeliveryOutcome{Kind: domain.DeliveryNoBall}); err != nil {
		t.Fatalf("RecordDelivery error: %v", err)
	}
	events, err := svc.RecordDelivery(m, domain.DeliveryOutcome{Kind: domain.DeliveryWicket})
	if err != nil {
		t.Fatalf("RecordDelivery error: %v", err)
	}
	if len(events) != 1 || events[0].Kind != EventFreeHitRunsNeeded {
		t.Fatalf("events = %+v, want only the free-hit prompt", events)
	}
}

func TestFullMatchFlowThroughService(t *testing.T) {
	svc := testService()
	m := driveToLive(t, svc)

	// First innings: six singles off the over.
	var lastEvents []Event
	for i := 0; i < domain.BallsPerOver; i++ {
		var err error
		lastEvents, err = svc.RecordDelivery(m, domain.DeliveryOutcome{Kind: domain.DeliveryRuns, Runs: 1})
		if err != nil {
			t.Fatalf("RecordDelivery error: %v", err)
		}
	}
	innings := eventOf(t, lastEvents, EventInningsEnded).Payload.(InningsEndedPayload)
	if innings.TotalRuns != 6 || innings.TargetScore != 7 {
		t.Fatalf("innings payload = %+v", innings)
	}

	events, err := svc.BeginSecondInnings(m)
	if err != nil {
		t.Fatalf("BeginSecondInnings error: %v", err)
	}
	started := eventOf(t, events, EventInningsStarted).Payload.(InningsStartedPayload)
	if started.Innings != 2 || started.BattingTeamID != "team-b" || started.TargetScore != 7 {
		t.Fatalf("innings started payload = %+v", started)
	}

	if _, err := svc.SelectBatsman(m, "b1"); err != nil {
		t.Fatalf("SelectBatsman error: %v", err)
	}
	if _, err := svc.SelectBatsman(m, "b2"); err != nil {
		t.Fatalf("SelectBatsman error: %v", err)
	}
	if _, err := svc.SelectBowler(m, "a1"); err != nil {
		t.Fatalf("SelectBowler error: %v", err)
	}

	if _, err := svc.RecordDelivery(m, domain.DeliveryOutcome{Kind: domain.DeliveryRuns, Runs: 6}); err != nil {
		t.Fatalf("RecordDelivery error: %v", err)
	}
	events, err = svc.RecordDelivery(m, domain.DeliveryOutcome{Kind: domain.DeliveryRuns, Runs: 1})
	if err != nil {
		t.Fatalf("RecordDelivery error: %v", err)
	}

	ended := eventOf(t, events, EventMatchEnded).Payload.(MatchEndedPayload)
	if ended.WinnerTeamID != "team-b" || ended.MarginWickets != 4 {
		t.Fatalf("match ended payload = %+v", ended)
	}
	if len(ended.Cards) != 4 {
		t.Fatalf("cards = %d, want 4", len(ended.Cards))
	}

	if _, err := svc.RecordDelivery(m, domain.DeliveryOutcome{Kind: domain.DeliveryRuns, Runs: 1}); err != domain.ErrMatchComplete {
		t.Fatalf("err = %v, want ErrMatchComplete", err)
	}
}

func TestSecondInningsScoreCarriesChaseContext(t *testing.T) {
	svc := testService()
	m := driveToLive(t, svc)
	for i := 0; i < domain.BallsPerOver; i++ {
		svc.RecordDelivery(m, domain.DeliveryOutcome{Kind: domain.DeliveryRuns, Runs: 1})
	}
	svc.BeginSecondInnings(m)
	svc.SelectBatsman(m, "b1")
	svc.SelectBatsman(m, "b2")
	svc.SelectBowler(m, "a1")

	events, err := svc.RecordDelivery(m, domain.DeliveryOutcome{Kind: domain.DeliveryRuns, Runs: 0})
	if err != nil {
		t.Fatalf("RecordDelivery error: %v", err)
	}
	score := eventOf(t, events, EventScoreUpdated).Payload.(ScoreUpdatedPayload)
	if score.TargetScore != 7 || score.RequiredRunRate == "" {
		t.Fatalf("score = %+v, want chase context", score)
	}
}
