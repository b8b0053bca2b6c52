package service

import (
	"context"
	"fmt"

	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/repository"
	"cricket-scorer/internal/scoring"

	"golang.org/x/sync/errgroup"
)

type SquadPlayer struct {
	PlayerID      int64  `json:"player_id"`
	Name          string `json:"name"`
	Team          string `json:"team"`
	CareerRuns    int    `json:"career_runs"`
	CareerWickets int    `json:"career_wickets"`
	CareerMatches int    `json:"career_matches"`
}

type Summary struct {
	Scorecard scoring.Scorecard `json:"scorecard"`
	Squads    []SquadPlayer     `json:"squads"`
}

// Summary loads the scorecard and the career figures of the selected players.
func (s *MatchService) Summary(ctx context.Context, id int64) (*Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	var m *domain.Match
	var roster []repository.RosterPlayer

	g.Go(func() error {
		var err error
		m, err = s.matchRepo.Get(gCtx, id)
		return err
	})

	g.Go(func() error {
		var err error
		roster, err = s.matchRepo.Roster(gCtx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log(ctx).Warn().Err(err).Int64("match_id", id).Msg("failed to load match summary")
		return nil, fmt.Errorf("failed to load summary of match %d: %w", id, err)
	}

	out := &Summary{
		Scorecard: scoring.BuildScorecard(m),
		Squads:    make([]SquadPlayer, len(roster)),
	}
	for i, rp := range roster {
		out.Squads[i] = SquadPlayer{
			PlayerID:      rp.PlayerID,
			Name:          rp.PlayerName,
			Team:          m.TeamName(rp.TeamID),
			CareerRuns:    rp.CareerRuns,
			CareerWickets: rp.CareerWickets,
			CareerMatches: rp.CareerMatches,
		}
	}
	return out, nil
}
