package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cricket-scorer/internal/db"
	"cricket-scorer/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func toPlayer(p db.Player) *domain.Player {
	return &domain.Player{
		ID:            p.ID,
		Name:          p.Name,
		CareerRuns:    int(p.CareerRuns),
		CareerWickets: int(p.CareerWickets),
		CareerMatches: int(p.CareerMatches),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (r *PlayerRepository) Create(ctx context.Context, name string) (*domain.Player, error) {
	now := time.Now().UTC()
	id, err := r.queries.CreatePlayer(ctx, db.CreatePlayerParams{
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("player %q: %w", name, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	r.logger.Debug().Int64("player_id", id).Str("name", name).Msg("player created")
	return r.Get(ctx, id)
}

func (r *PlayerRepository) Get(ctx context.Context, id int64) (*domain.Player, error) {
	p, err := r.queries.GetPlayer(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toPlayer(p), nil
}

// GetMany returns the players in the order of ids and fails on the first
// unknown id.
func (r *PlayerRepository) GetMany(ctx context.Context, ids []int64) ([]domain.Player, error) {
	players := make([]domain.Player, 0, len(ids))
	for _, id := range ids {
		p, err := r.queries.GetPlayer(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", id, notFound(err))
		}
		players = append(players, *toPlayer(p))
	}
	return players, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.queries.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	players := make([]domain.Player, len(rows))
	for i, p := range rows {
		players[i] = *toPlayer(p)
	}
	return players, nil
}

func (r *PlayerRepository) Rename(ctx context.Context, id int64, name string) (*domain.Player, error) {
	n, err := r.queries.RenamePlayer(ctx, db.RenamePlayerParams{
		Name:      strings.TrimSpace(name),
		UpdatedAt: time.Now().UTC(),
		ID:        id,
	})
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("player %q: %w", name, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rename player %d: %w", id, err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes a player who was never selected for a match.
func (r *PlayerRepository) Delete(ctx context.Context, id int64) error {
	count, err := r.queries.CountPlayerMatches(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count matches for player %d: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("player %d: %w", id, ErrInUse)
	}

	n, err := r.queries.DeletePlayer(ctx, id)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("player %d: %w", id, ErrInUse)
	}
	if err != nil {
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	r.logger.Debug().Int64("player_id", id).Msg("player deleted")
	return nil
}
