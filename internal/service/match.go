package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cricket-scorer/internal/config"
	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/repository"
	"cricket-scorer/internal/scoring"

	"github.com/rs/zerolog"
)

type MatchService struct {
	matchRepo  *repository.MatchRepository
	playerRepo *repository.PlayerRepository
	engine     *scoring.Engine
	cfg        *config.Config
	logger     zerolog.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewMatchService(matchRepo *repository.MatchRepository, playerRepo *repository.PlayerRepository, engine *scoring.Engine, cfg *config.Config, logger zerolog.Logger) *MatchService {
	return &MatchService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		engine:     engine,
		cfg:        cfg,
		logger:     logger,
		locks:      make(map[int64]*sync.Mutex),
	}
}

// lock serializes every transition of one match. Locks are never removed;
// there is one per match ever touched by this process.
func (s *MatchService) lock(id int64) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// log prefers the request-scoped logger the middleware put in ctx.
func (s *MatchService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}

// mutate runs fn against match id under its lock and in one transaction.
func (s *MatchService) mutate(ctx context.Context, id int64, op string, fn func(*domain.Match) error) (*domain.Match, error) {
	unlock := s.lock(id)
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	m, err := s.matchRepo.Mutate(ctx, id, fn)
	if err != nil {
		if isClientError(err) {
			s.log(ctx).Warn().Err(err).Int64("match_id", id).Str("op", op).Msg("match transition rejected")
		} else {
			s.log(ctx).Error().Err(err).Int64("match_id", id).Str("op", op).Msg("match transition failed")
		}
		return nil, err
	}
	s.log(ctx).Debug().Int64("match_id", id).Str("op", op).Str("state", string(m.State)).Msg("match transition applied")
	return m, nil
}

func isClientError(err error) bool {
	return scoring.IsValidation(err) || scoring.IsPrecondition(err) || errors.Is(err, repository.ErrNotFound)
}

func (s *MatchService) CreateMatch(ctx context.Context, overs int) (*domain.Match, error) {
	if overs == 0 {
		overs = s.cfg.DefaultOvers
	}
	if overs < 1 || overs > constants.MaxOvers {
		return nil, &scoring.ValidationError{Field: "overs", Reason: fmt.Sprintf("must be between 1 and %d", constants.MaxOvers)}
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	m, err := s.matchRepo.Create(ctx, overs)
	if err != nil {
		s.log(ctx).Error().Err(err).Int("overs", overs).Msg("failed to create match")
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	s.log(ctx).Info().Int64("match_id", m.ID).Str("code", m.Code).Int("overs", overs).Msg("match created")
	return m, nil
}

func (s *MatchService) Get(ctx context.Context, id int64) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.matchRepo.Get(ctx, id)
}

func (s *MatchService) GetByCode(ctx context.Context, code string) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.matchRepo.GetByCode(ctx, code)
}

func (s *MatchService) ListRecent(ctx context.Context, limit int) ([]domain.MatchSummary, error) {
	if limit <= 0 {
		limit = constants.RecentMatchLimit
	}
	if limit > constants.MaxMatchLimit {
		limit = constants.MaxMatchLimit
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.matchRepo.ListRecent(ctx, limit)
}

func (s *MatchService) Teams(ctx context.Context) ([]domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.matchRepo.Teams(ctx)
}

// AssignRoster selects the players of both sides by id.
func (s *MatchService) AssignRoster(ctx context.Context, id int64, team1, team2 []int64) (*domain.Match, error) {
	lookup := func(field string, ids []int64) ([]domain.Player, error) {
		players, err := s.playerRepo.GetMany(ctx, ids)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &scoring.ValidationError{Field: field, Reason: err.Error()}
		}
		return players, err
	}
	p1, err := lookup("team1", team1)
	if err != nil {
		return nil, err
	}
	p2, err := lookup("team2", team2)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "assign roster", func(m *domain.Match) error {
		return s.engine.AssignRoster(m, p1, p2)
	})
}

func (s *MatchService) StartInnings(ctx context.Context, id int64) (*domain.Match, error) {
	return s.mutate(ctx, id, "start innings", func(m *domain.Match) error {
		inn, err := s.engine.StartInnings(m)
		if err != nil {
			return err
		}
		s.log(ctx).Info().Int64("match_id", id).Int("innings", inn.Number).Msg("innings started")
		return nil
	})
}

func (s *MatchService) SetOpeners(ctx context.Context, id, strikerID, nonStrikerID int64) (*domain.Match, error) {
	return s.mutate(ctx, id, "set openers", func(m *domain.Match) error {
		return s.engine.SetOpeners(m, strikerID, nonStrikerID)
	})
}

func (s *MatchService) AddBatsman(ctx context.Context, id, playerID int64, asStriker bool) (*domain.Match, error) {
	return s.mutate(ctx, id, "add batsman", func(m *domain.Match) error {
		return s.engine.AddBatsman(m, playerID, asStriker)
	})
}

func (s *MatchService) SetStriker(ctx context.Context, id, playerID int64) (*domain.Match, error) {
	return s.mutate(ctx, id, "set striker", func(m *domain.Match) error {
		return s.engine.SetStriker(m, playerID)
	})
}

func (s *MatchService) RetireBatsman(ctx context.Context, id, playerID int64) (*domain.Match, error) {
	return s.mutate(ctx, id, "retire batsman", func(m *domain.Match) error {
		return s.engine.RetireBatsman(m, playerID)
	})
}

// RecordBall applies one delivery. A delivery that ends the match also
// finalizes it in the same transaction.
func (s *MatchService) RecordBall(ctx context.Context, id int64, d scoring.Delivery) (*domain.Match, scoring.Outcome, error) {
	var out scoring.Outcome
	m, err := s.mutate(ctx, id, "record ball", func(m *domain.Match) error {
		var err error
		out, err = s.engine.ApplyDelivery(m, d)
		if err != nil {
			return err
		}
		return s.finalizeIfOver(ctx, m, out)
	})
	if err != nil {
		return nil, out, err
	}
	if inn := m.ActiveInnings(); inn != nil {
		s.log(ctx).Debug().
			Int64("match_id", id).
			Int("innings", inn.Number).
			Int("runs", inn.Runs).
			Int("wickets", inn.Wickets).
			Str("overs", scoring.OversNotation(inn.LegalBalls)).
			Msg("ball recorded")
	}
	return m, out, nil
}

func (s *MatchService) BabyOver(ctx context.Context, id int64) (*domain.Match, int, error) {
	var voided int
	m, err := s.mutate(ctx, id, "baby over", func(m *domain.Match) error {
		var err error
		voided, err = s.engine.BabyOver(m)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	s.log(ctx).Info().Int64("match_id", id).Int("voided_balls", voided).Msg("baby over called")
	return m, voided, nil
}

func (s *MatchService) EndInnings(ctx context.Context, id int64) (*domain.Match, scoring.Outcome, error) {
	var out scoring.Outcome
	m, err := s.mutate(ctx, id, "end innings", func(m *domain.Match) error {
		var err error
		out, err = s.engine.EndInnings(m)
		if err != nil {
			return err
		}
		return s.finalizeIfOver(ctx, m, out)
	})
	return m, out, err
}

func (s *MatchService) EndMatch(ctx context.Context, id int64) (*domain.Match, scoring.Outcome, error) {
	var out scoring.Outcome
	m, err := s.mutate(ctx, id, "end match", func(m *domain.Match) error {
		var err error
		out, err = s.engine.EndMatch(m)
		if err != nil {
			return err
		}
		return s.finalizeIfOver(ctx, m, out)
	})
	return m, out, err
}

func (s *MatchService) Finalize(ctx context.Context, id int64) (*domain.Match, []domain.CareerCredit, error) {
	var credits []domain.CareerCredit
	m, err := s.mutate(ctx, id, "finalize", func(m *domain.Match) error {
		var err error
		credits, err = s.engine.Finalize(m)
		return err
	})
	return m, credits, err
}

func (s *MatchService) finalizeIfOver(ctx context.Context, m *domain.Match, out scoring.Outcome) error {
	if !out.MatchCompleted {
		return nil
	}
	credits, err := s.engine.Finalize(m)
	if err != nil {
		return err
	}
	s.log(ctx).Info().
		Int64("match_id", m.ID).
		Str("result", m.Result).
		Int("credited_players", len(credits)).
		Msg("match finished and finalized")
	return nil
}
