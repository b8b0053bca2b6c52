package db

import (
	"context"
	"time"
)

const createPlayer = `-- name: CreatePlayer :execlastid
INSERT INTO players (name, created_at, updated_at)
VALUES (?, ?, ?)
`

type CreatePlayerParams struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createPlayer, arg.Name, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const getPlayer = `-- name: GetPlayer :one
SELECT id, name, career_runs, career_wickets, career_matches, created_at, updated_at
FROM players
WHERE id = ?
`

func (q *Queries) GetPlayer(ctx context.Context, id int64) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayer, id)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.CareerRuns,
		&i.CareerWickets,
		&i.CareerMatches,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listPlayers = `-- name: ListPlayers :many
SELECT id, name, career_runs, career_wickets, career_matches, created_at, updated_at
FROM players
ORDER BY name COLLATE NOCASE
`

func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Player
	for rows.Next() {
		var i Player
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.CareerRuns,
			&i.CareerWickets,
			&i.CareerMatches,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const renamePlayer = `-- name: RenamePlayer :execrows
UPDATE players
SET name = ?, updated_at = ?
WHERE id = ?
`

type RenamePlayerParams struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        int64     `json:"id"`
}

func (q *Queries) RenamePlayer(ctx context.Context, arg RenamePlayerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, renamePlayer, arg.Name, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deletePlayer = `-- name: DeletePlayer :execrows
DELETE FROM players
WHERE id = ?
`

func (q *Queries) DeletePlayer(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePlayer, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countPlayerMatches = `-- name: CountPlayerMatches :one
SELECT COUNT(*) FROM match_team_players
WHERE player_id = ?
`

func (q *Queries) CountPlayerMatches(ctx context.Context, playerID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPlayerMatches, playerID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const creditPlayerCareer = `-- name: CreditPlayerCareer :execrows
UPDATE players
SET career_runs = career_runs + ?,
    career_wickets = career_wickets + ?,
    career_matches = career_matches + ?,
    updated_at = ?
WHERE id = ?
`

type CreditPlayerCareerParams struct {
	Runs      int64     `json:"runs"`
	Wickets   int64     `json:"wickets"`
	Matches   int64     `json:"matches"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        int64     `json:"id"`
}

func (q *Queries) CreditPlayerCareer(ctx context.Context, arg CreditPlayerCareerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, creditPlayerCareer,
		arg.Runs,
		arg.Wickets,
		arg.Matches,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
