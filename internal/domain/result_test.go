package domain

import (
	"strings"
	"testing"
)

// playCompleteMatch runs a full 1-over-a-side match. Team A scores six singles;
// the chase is shaped by chaseRuns, applied one legal delivery at a time until
// the match ends or the deliveries run out.
func playCompleteMatch(t *testing.T, chaseRuns []int) *Match {
	t.Helper()
	m := newLiveMatch(t, 1, 5)
	startSecondInnings(t, m)
	for _, r := range chaseRuns {
		sig := mustApply(t, m, DeliveryOutcome{Kind: DeliveryRuns, Runs: r})
		if sig.MatchEnded {
			break
		}
	}
	return m
}

func TestFinalizeChaserWins(t *testing.T) {
	m := playCompleteMatch(t, []int{6, 1}) // target 7, reached with no wickets down

	res, err := m.Finalize()
	if err != nil {
		t.Fatalf("Finalize error: %v", err)
	}
	if res.WinnerTeamID != "team-b" {
		t.Fatalf("winner = %q, want team-b", res.WinnerTeamID)
	}
	// 5-a-side with 0 wickets down: 5 - 0 - 1 = 4 wickets in hand.
	if res.MarginWickets != 4 {
		t.Fatalf("margin = %d wickets, want 4", res.MarginWickets)
	}
	if !strings.Contains(res.Summary, "won by 4 wickets") {
		t.Fatalf("summary = %q", res.Summary)
	}
}

func TestFinalizeDefenderWins(t *testing.T) {
	m := playCompleteMatch(t, []int{0, 0, 0, 1, 0, 1}) // chase ends 2, target 7

	res, err := m.Finalize()
	if err != nil {
		t.Fatalf("Finalize error: %v", err)
	}
	if res.WinnerTeamID != "team-a" {
		t.Fatalf("winner = %q, want team-a", res.WinnerTeamID)
	}
	if res.MarginRuns != 4 {
		t.Fatalf("margin = %d runs, want 4", res.MarginRuns)
	}
	if !strings.Contains(res.Summary, "won by 4 runs") {
		t.Fatalf("summary = %q", res.Summary)
	}
}

func TestFinalizeTie(t *testing.T) {
	m := playCompleteMatch(t, []int{1, 1, 1, 1, 1, 1}) // 6 apiece

	res, err := m.Finalize()
	if err != nil {
		t.Fatalf("Finalize error: %v", err)
	}
	if !res.Tie || res.WinnerTeamID != "" {
		t.Fatalf("result = %+v, want tie with no winner", res)
	}
	for _, d := range res.TeamDeltas {
		if d.Won || d.Lost {
			t.Fatalf("tie team delta = %+v, want neither won nor lost", d)
		}
	}
}

func TestFinalizeRequiresCompleteMatch(t *testing.T) {
	m := newLiveMatch(t, 1, 5)
	if _, err := m.Finalize(); err != ErrWrongPhase {
		t.Fatalf("err = %v, want ErrWrongPhase", err)
	}
}

func TestFinalizeTeamDeltas(t *testing.T) {
	m := playCompleteMatch(t, []int{6, 1})

	res, err := m.Finalize()
	if err != nil {
		t.Fatalf("Finalize error: %v", err)
	}
	if len(res.TeamDeltas) != 2 {
		t.Fatalf("team deltas = %d, want 2", len(res.TeamDeltas))
	}
	byID := map[string]TeamMatchDelta{}
	for _, d := range res.TeamDeltas {
		byID[d.TeamID] = d
	}
	if d := byID["team-a"]; d.Runs != 6 || d.Won || !d.Lost {
		t.Fatalf("team-a delta = %+v, want 6 runs, lost", d)
	}
	if d := byID["team-b"]; d.Runs != 7 || !d.Won || d.Lost {
		t.Fatalf("team-b delta = %+v, want 7 runs, won", d)
	}
}

func TestFinalizePlayerDeltasOnlyParticipants(t *testing.T) {
	m := playCompleteMatch(t, []int{6, 1})

	res, err := m.Finalize()
	if err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	byID := map[string]PlayerMatchDelta{}
	for _, d := range res.PlayerDeltas {
		byID[d.PlayerID] = d
	}
	// First innings: a1/a2 batted, b1 bowled. Chase: b1/b2 batted, a1 bowled.
	for _, id := range []string{"a1", "a2", "b1", "b2"} {
		if _, ok := byID[id]; !ok {
			t.Fatalf("participant %s missing from player deltas", id)
		}
	}
	// The chase ended before the non-striker faced a ball; coming to the
	// crease is still participation.
	if d := byID["b2"]; d.BallsFaced != 0 || d.RunsScored != 0 {
		t.Fatalf("stranded non-striker delta = %+v, want zero batting figures", d)
	}
	// a5 and b5 never took the field.
	for _, id := range []string{"a5", "b5"} {
		if _, ok := byID[id]; ok {
			t.Fatalf("non-participant %s produced a player delta", id)
		}
	}
}

func TestInningsCardsCutAtBoundaries(t *testing.T) {
	m := playCompleteMatch(t, []int{6, 1})

	if len(m.Cards) != 4 {
		t.Fatalf("cards = %d, want 4 (two per innings)", len(m.Cards))
	}

	find := func(teamID string, innings int, role InningsRole) InningsCard {
		for _, c := range m.Cards {
			if c.TeamID == teamID && c.Innings == innings && c.Role == role {
				return c
			}
		}
		t.Fatalf("no card for %s innings %d role %s", teamID, innings, role)
		return InningsCard{}
	}

	first := find("team-a", 1, InningsBatting)
	if first.Runs != 6 || first.Overs != (Overs{Completed: 1}) {
		t.Fatalf("first-innings batting card = %+v, want 6 runs off 1.0", first)
	}
	// Team A's second-innings bowling card must not alias its batting figures.
	second := find("team-a", 2, InningsBowling)
	if second.Runs != 7 {
		t.Fatalf("second-innings bowling card runs = %d, want 7", second.Runs)
	}
}
