package scoring

import (
	"testing"
)

func TestRates(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"strike rate", StrikeRate(50, 40), 125},
		{"strike rate no balls", StrikeRate(4, 0), 0},
		{"strike rate rounds", StrikeRate(1, 3), 33.33},
		{"economy", Economy(30, 24), 7.5},
		{"economy no balls", Economy(5, 0), 0},
		{"run rate", RunRate(151, 120), 7.55},
		{"required run rate", RequiredRunRate(151, 100, 60), 5.1},
		{"required run rate passed", RequiredRunRate(151, 160, 6), 0},
		{"required run rate no balls", RequiredRunRate(151, 100, 0), 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestOversNotation(t *testing.T) {
	for balls, want := range map[int]string{0: "0.0", 5: "0.5", 6: "1.0", 75: "12.3", 120: "20.0"} {
		if got := OversNotation(balls); got != want {
			t.Errorf("OversNotation(%d) = %q, want %q", balls, got, want)
		}
	}
}

func TestParseExtras(t *testing.T) {
	tests := []struct {
		code     string
		runs     int
		wantCode string
		wantBat  int
		legal    bool
		wantErr  bool
	}{
		{"", 3, "", 3, true, false},
		{" wd ", 0, "WD", 0, false, false},
		{"NB", 2, "NB", 0, false, false},
		{"nb+6", 0, "NB+6", 6, false, false},
		{"NB+04", 0, "NB+4", 4, false, false},
		{"NB+7", 0, "", 0, false, true},
		{"NB+x", 0, "", 0, false, true},
		{"B", 0, "", 0, false, true},
		{"", -1, "", 0, false, true},
	}
	for _, tt := range tests {
		x, err := ParseExtras(tt.code, tt.runs)
		if tt.wantErr {
			if !IsValidation(err) {
				t.Errorf("ParseExtras(%q, %d) err = %v, want validation error", tt.code, tt.runs, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseExtras(%q, %d): %v", tt.code, tt.runs, err)
			continue
		}
		if x.Code != tt.wantCode || x.BatRuns != tt.wantBat || x.Legal() != tt.legal {
			t.Errorf("ParseExtras(%q, %d) = %+v", tt.code, tt.runs, x)
		}
	}
}

func TestPartnershipAndFallOfWickets(t *testing.T) {
	e := newEngine()
	m := newTestMatch(t, e, 11, 20)
	s := &scorer{t: t, e: e, m: m, bowlers: []int64{201, 202}, queue: ids(100, 3, 11)}
	s.ball(Delivery{Runs: 4})
	s.ball(Delivery{Extras: "WD"})
	s.ball(Delivery{WicketType: "caught", WicketTakerID: ptr(203)})
	s.ball(Delivery{Runs: 2})
	s.ball(Delivery{Extras: "NB+1"})

	inn := m.ActiveInnings()
	if p := CurrentPartnership(inn); p.Runs != 4 || p.Balls != 1 {
		t.Errorf("partnership = %+v, want 4 runs off 1 ball", p)
	}
	fow := FallOfWickets(m, inn)
	if len(fow) != 1 {
		t.Fatalf("fall of wickets = %+v", fow)
	}
	if f := fow[0]; f.PlayerID != 101 || f.Score != 5 || f.Overs != "0.2" || f.Name != "P101" {
		t.Errorf("fall of wicket = %+v", f)
	}
}

func TestBuildScorecard(t *testing.T) {
	e := newEngine()
	m := newTestMatch(t, e, 4, 2)
	s := &scorer{t: t, e: e, m: m, bowlers: []int64{201, 202}, queue: []int64{103}}
	s.ball(Delivery{Runs: 1})
	s.ball(Delivery{Extras: "WD"})
	s.ball(Delivery{Extras: "NB+2"})
	s.ball(Delivery{WicketType: "bowled"})

	sc := BuildScorecard(m)
	if sc.Team1 != "Team One" || sc.State != "innings_1_active" || len(sc.Innings) != 1 {
		t.Fatalf("scorecard = %+v", sc)
	}
	card := sc.Innings[0]
	if card.Runs != 5 || card.Wickets != 1 || card.Overs != "0.2" || card.BallsRemaining != 10 {
		t.Errorf("totals = %d/%d in %s, %d remaining", card.Runs, card.Wickets, card.Overs, card.BallsRemaining)
	}
	if card.Extras != (ExtrasTally{Wides: 1, NoBalls: 1, Total: 2}) {
		t.Errorf("extras = %+v", card.Extras)
	}
	if card.Target != nil || card.RunsNeeded != nil {
		t.Errorf("first innings should have no target")
	}
	var dismissed *BatterLine
	for i := range card.Batting {
		if card.Batting[i].Out {
			dismissed = &card.Batting[i]
		}
	}
	if dismissed == nil || dismissed.HowOut != Bowled {
		t.Fatalf("batting = %+v", card.Batting)
	}
	if len(card.YetToBat) != 1 || card.YetToBat[0].PlayerID != 104 {
		t.Errorf("yet to bat = %+v", card.YetToBat)
	}
	if len(card.Bowling) != 1 || card.Bowling[0].Wickets != 1 || card.Bowling[0].RunsConceded != 5 {
		t.Errorf("bowling = %+v", card.Bowling)
	}

	if _, err := e.EndInnings(m); err != nil {
		t.Fatal(err)
	}
	chase := BuildScorecard(m).Innings[1]
	if chase.Target == nil || *chase.Target != 6 || *chase.RunsNeeded != 6 || *chase.RequiredRunRate != 3 {
		t.Errorf("chase = target %v needed %v rrr %v", chase.Target, chase.RunsNeeded, chase.RequiredRunRate)
	}
}
