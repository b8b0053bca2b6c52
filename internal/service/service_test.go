package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"cricket-scorer/internal/config"
	"cricket-scorer/internal/database"
	"cricket-scorer/internal/db"
	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/repository"
	"cricket-scorer/internal/scoring"

	"github.com/rs/zerolog"
)

func newServices(t *testing.T) (*PlayerService, *MatchService) {
	t.Helper()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	q := db.New(sqlDB)
	playerRepo := repository.NewPlayerRepository(sqlDB, q, zerolog.Nop())
	matchRepo := repository.NewMatchRepository(sqlDB, q, zerolog.Nop())
	cfg := &config.Config{DefaultOvers: 20}
	return NewPlayerService(playerRepo, zerolog.Nop()), NewMatchService(matchRepo, playerRepo, scoring.NewEngine(nil), cfg, zerolog.Nop())
}

// startedMatch creates a match with two sides of three and innings 1 open
// with the first two players of side one at the crease.
func startedMatch(t *testing.T, overs int) (*MatchService, *domain.Match, []int64) {
	t.Helper()
	ctx := context.Background()
	players, matches := newServices(t)

	ids := make([]int64, 6)
	for i, name := range []string{"A1", "A2", "A3", "B1", "B2", "B3"} {
		p, err := players.Create(ctx, name)
		if err != nil {
			t.Fatal(err)
		}
		ids[i] = p.ID
	}
	m, err := matches.CreateMatch(ctx, overs)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := matches.AssignRoster(ctx, m.ID, ids[:3], ids[3:]); err != nil {
		t.Fatal(err)
	}
	if _, err := matches.StartInnings(ctx, m.ID); err != nil {
		t.Fatal(err)
	}
	if m, err = matches.SetOpeners(ctx, m.ID, ids[0], ids[1]); err != nil {
		t.Fatal(err)
	}
	return matches, m, ids
}

func TestCreateMatchOvers(t *testing.T) {
	_, matches := newServices(t)
	ctx := context.Background()

	m, err := matches.CreateMatch(ctx, 0)
	if err != nil || m.Overs != 20 {
		t.Fatalf("default overs = %v, %v", m, err)
	}
	for _, overs := range []int{-1, 51} {
		if _, err := matches.CreateMatch(ctx, overs); !scoring.IsValidation(err) {
			t.Errorf("overs %d err = %v", overs, err)
		}
	}
}

func TestAssignRosterUnknownPlayer(t *testing.T) {
	players, matches := newServices(t)
	ctx := context.Background()
	p, err := players.Create(ctx, "Solo")
	if err != nil {
		t.Fatal(err)
	}
	m, err := matches.CreateMatch(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	_, err = matches.AssignRoster(ctx, m.ID, []int64{p.ID, 999}, []int64{998, 997})
	var ve *scoring.ValidationError
	if !errors.As(err, &ve) || ve.Field != "team1" {
		t.Fatalf("err = %v", err)
	}
	if _, err := matches.AssignRoster(ctx, 4242, []int64{p.ID}, []int64{p.ID}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("missing match err = %v", err)
	}
}

func TestConcurrentBallsAreSerialized(t *testing.T) {
	matches, m, ids := startedMatch(t, 2)
	bowler := ids[3]

	var wg sync.WaitGroup
	errs := make(chan error, scoring.BallsPerOver)
	for i := 0; i < scoring.BallsPerOver; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := matches.RecordBall(context.Background(), m.ID, scoring.Delivery{BowlerID: &bowler, Runs: 1})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := matches.Get(context.Background(), m.ID)
	if err != nil {
		t.Fatal(err)
	}
	inn := got.ActiveInnings()
	if inn.Runs != 6 || inn.LegalBalls != 6 || len(inn.Balls) != 6 || inn.CurrentBowlerID != nil {
		t.Fatalf("innings = runs %d legal %d events %d bowler %v", inn.Runs, inn.LegalBalls, len(inn.Balls), inn.CurrentBowlerID)
	}
	if inn.LastOverBowlerID == nil || *inn.LastOverBowlerID != bowler {
		t.Errorf("last over bowler = %v", inn.LastOverBowlerID)
	}
}

func TestRejectedBallWritesNothing(t *testing.T) {
	matches, m, ids := startedMatch(t, 2)
	ctx := context.Background()
	bowler := ids[3]

	if _, _, err := matches.RecordBall(ctx, m.ID, scoring.Delivery{BowlerID: &bowler, Runs: 7}); !scoring.IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
	batter := ids[0]
	if _, _, err := matches.RecordBall(ctx, m.ID, scoring.Delivery{BowlerID: &batter, Runs: 1}); !scoring.IsValidation(err) {
		t.Fatalf("own side bowling err = %v", err)
	}
	got, err := matches.Get(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if inn := got.ActiveInnings(); inn.Runs != 0 || len(inn.Balls) != 0 {
		t.Fatalf("innings touched: %+v", inn)
	}
}

func TestEndMatchFinalizesAndSummarizes(t *testing.T) {
	matches, m, ids := startedMatch(t, 2)
	ctx := context.Background()
	bowler := ids[3]

	if _, _, err := matches.RecordBall(ctx, m.ID, scoring.Delivery{BowlerID: &bowler, Runs: 3}); err != nil {
		t.Fatal(err)
	}
	got, out, err := matches.EndMatch(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !out.MatchCompleted || got.State != domain.StateFinalized || got.Result != "Manually Ended" {
		t.Fatalf("ended = %s %q outcome %+v", got.State, got.Result, out)
	}

	_, credits, err := matches.Finalize(ctx, m.ID)
	if err != nil || len(credits) != 0 {
		t.Fatalf("second finalize = %v, %v", credits, err)
	}

	sum, err := matches.Summary(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Scorecard.State != string(domain.StateFinalized) || len(sum.Squads) != 6 {
		t.Fatalf("summary = %+v", sum)
	}
	played := map[int64]bool{ids[0]: true, ids[1]: true, ids[3]: true}
	for _, sp := range sum.Squads {
		want := 0
		if played[sp.PlayerID] {
			want = 1
		}
		if sp.CareerMatches != want {
			t.Errorf("%s matches = %d, want %d", sp.Name, sp.CareerMatches, want)
		}
		if sp.PlayerID == ids[0] && sp.CareerRuns != 3 {
			t.Errorf("%s runs = %d, want 3", sp.Name, sp.CareerRuns)
		}
	}

	if _, err := matches.Summary(ctx, 9999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("missing summary err = %v", err)
	}
}
