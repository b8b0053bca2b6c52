package service

import (
	"context"
	"fmt"
	"strings"

	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/repository"
	"cricket-scorer/internal/scoring"

	"github.com/rs/zerolog"
)

const maxPlayerName = 64

type PlayerService struct {
	repo   *repository.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerService(repo *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{repo: repo, logger: logger}
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &scoring.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(name) > maxPlayerName {
		return "", &scoring.ValidationError{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", maxPlayerName)}
	}
	return name, nil
}

func (s *PlayerService) Create(ctx context.Context, name string) (*domain.Player, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	p, err := s.repo.Create(ctx, name)
	if err != nil {
		s.logger.Warn().Err(err).Str("name", name).Msg("failed to create player")
		return nil, err
	}
	s.logger.Info().Int64("player_id", p.ID).Str("name", p.Name).Msg("player added to pool")
	return p, nil
}

func (s *PlayerService) Get(ctx context.Context, id int64) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.Get(ctx, id)
}

func (s *PlayerService) List(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.List(ctx)
}

func (s *PlayerService) Rename(ctx context.Context, id int64, name string) (*domain.Player, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.Rename(ctx, id, name)
}

func (s *PlayerService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("player_id", id).Msg("failed to delete player")
		return err
	}
	s.logger.Info().Int64("player_id", id).Msg("player removed from pool")
	return nil
}
