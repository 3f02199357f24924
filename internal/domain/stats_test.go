package domain

import "testing"

func TestStatOf(t *testing.T) {
	tests := []struct {
		name string
		num  float64
		den  float64
		want string
	}{
		{name: "normal division", num: 150, den: 100, want: "1.50"},
		{name: "rounds to two places", num: 10, den: 3, want: "3.33"},
		{name: "zero denominator", num: 42, den: 0, want: "N/A"},
		{name: "zero numerator", num: 0, den: 5, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatOf(tt.num, tt.den).String(); got != tt.want {
				t.Fatalf("StatOf(%v, %v) = %q, want %q", tt.num, tt.den, got, tt.want)
			}
		})
	}
}

func TestFigureGuardsDivideByZero(t *testing.T) {
	if got := figure(42, 0); got != "0.00" {
		t.Fatalf("figure(42, 0) = %q, want %q", got, "0.00")
	}
	if got := figure(150, 100); got != "1.50" {
		t.Fatalf("figure(150, 100) = %q, want %q", got, "1.50")
	}
}

func TestPlayerRates(t *testing.T) {
	p := &Player{RunsScored: 30, BallsFaced: 24}
	if sr := p.StrikeRate(); !sr.OK || sr.String() != "125.00" {
		t.Fatalf("strike rate = %s, want 125.00", sr)
	}

	fresh := &Player{}
	if fresh.StrikeRate().OK {
		t.Fatal("strike rate with no balls faced should be N/A")
	}

	b := &Player{RunsConceded: 24, OversBowled: Overs{Completed: 4}}
	if er := b.EconomyRate(); !er.OK || er.String() != "6.00" {
		t.Fatalf("economy rate = %s, want 6.00", er)
	}
	if (&Player{}).EconomyRate().OK {
		t.Fatal("economy rate with no overs bowled should be N/A")
	}
}

func TestTeamRunRate(t *testing.T) {
	team := &Team{TotalRuns: 87, OversPlayed: Overs{Completed: 10}}
	if rr := team.RunRate(); !rr.OK || rr.String() != "8.70" {
		t.Fatalf("run rate = %s, want 8.70", rr)
	}
	if (&Team{}).RunRate().OK {
		t.Fatal("run rate before the first ball should be N/A")
	}
}
