package db

import (
	"context"
)

const listInnings = `-- name: ListInnings :many
SELECT id, match_id, number, batting_team_id, bowling_team_id, runs, wickets, legal_balls,
       completed, target, striker_id, non_striker_id, current_bowler_id, current_bowler_balls,
       last_over_bowler_id
FROM innings
WHERE match_id = ?
ORDER BY number
`

func (q *Queries) ListInnings(ctx context.Context, matchID int64) ([]Innings, error) {
	rows, err := q.db.QueryContext(ctx, listInnings, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Innings
	for rows.Next() {
		var i Innings
		if err := rows.Scan(
			&i.ID,
			&i.MatchID,
			&i.Number,
			&i.BattingTeamID,
			&i.BowlingTeamID,
			&i.Runs,
			&i.Wickets,
			&i.LegalBalls,
			&i.Completed,
			&i.Target,
			&i.StrikerID,
			&i.NonStrikerID,
			&i.CurrentBowlerID,
			&i.CurrentBowlerBalls,
			&i.LastOverBowlerID,
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

const createInnings = `-- name: CreateInnings :one
INSERT INTO innings (match_id, number, batting_team_id, bowling_team_id, target)
VALUES (?, ?, ?, ?, ?)
RETURNING id
`

type CreateInningsParams struct {
	MatchID       int64  `json:"match_id"`
	Number        int64  `json:"number"`
	BattingTeamID int64  `json:"batting_team_id"`
	BowlingTeamID int64  `json:"bowling_team_id"`
	Target        *int64 `json:"target"`
}

func (q *Queries) CreateInnings(ctx context.Context, arg CreateInningsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createInnings,
		arg.MatchID,
		arg.Number,
		arg.BattingTeamID,
		arg.BowlingTeamID,
		arg.Target,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const updateInnings = `-- name: UpdateInnings :exec
UPDATE innings
SET runs = ?, wickets = ?, legal_balls = ?, completed = ?, target = ?,
    striker_id = ?, non_striker_id = ?, current_bowler_id = ?, current_bowler_balls = ?,
    last_over_bowler_id = ?
WHERE id = ?
`

type UpdateInningsParams struct {
	Runs               int64  `json:"runs"`
	Wickets            int64  `json:"wickets"`
	LegalBalls         int64  `json:"legal_balls"`
	Completed          bool   `json:"completed"`
	Target             *int64 `json:"target"`
	StrikerID          *int64 `json:"striker_id"`
	NonStrikerID       *int64 `json:"non_striker_id"`
	CurrentBowlerID    *int64 `json:"current_bowler_id"`
	CurrentBowlerBalls int64  `json:"current_bowler_balls"`
	LastOverBowlerID   *int64 `json:"last_over_bowler_id"`
	ID                 int64  `json:"id"`
}

func (q *Queries) UpdateInnings(ctx context.Context, arg UpdateInningsParams) error {
	_, err := q.db.ExecContext(ctx, updateInnings,
		arg.Runs,
		arg.Wickets,
		arg.LegalBalls,
		arg.Completed,
		arg.Target,
		arg.StrikerID,
		arg.NonStrikerID,
		arg.CurrentBowlerID,
		arg.CurrentBowlerBalls,
		arg.LastOverBowlerID,
		arg.ID,
	)
	return err
}

const listPlayerInnings = `-- name: ListPlayerInnings :many
SELECT id, innings_id, player_id, runs, balls, is_out, retired
FROM player_innings
WHERE innings_id = ?
ORDER BY id
`

func (q *Queries) ListPlayerInnings(ctx context.Context, inningsID int64) ([]PlayerInnings, error) {
	rows, err := q.db.QueryContext(ctx, listPlayerInnings, inningsID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PlayerInnings
	for rows.Next() {
		var i PlayerInnings
		if err := rows.Scan(
			&i.ID,
			&i.InningsID,
			&i.PlayerID,
			&i.Runs,
			&i.Balls,
			&i.IsOut,
			&i.Retired,
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

const createPlayerInnings = `-- name: CreatePlayerInnings :one
INSERT INTO player_innings (innings_id, player_id, runs, balls, is_out, retired)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id
`

type CreatePlayerInningsParams struct {
	InningsID int64 `json:"innings_id"`
	PlayerID  int64 `json:"player_id"`
	Runs      int64 `json:"runs"`
	Balls     int64 `json:"balls"`
	IsOut     bool  `json:"is_out"`
	Retired   bool  `json:"retired"`
}

func (q *Queries) CreatePlayerInnings(ctx context.Context, arg CreatePlayerInningsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createPlayerInnings,
		arg.InningsID,
		arg.PlayerID,
		arg.Runs,
		arg.Balls,
		arg.IsOut,
		arg.Retired,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const updatePlayerInnings = `-- name: UpdatePlayerInnings :exec
UPDATE player_innings
SET runs = ?, balls = ?, is_out = ?, retired = ?
WHERE id = ?
`

type UpdatePlayerInningsParams struct {
	Runs    int64 `json:"runs"`
	Balls   int64 `json:"balls"`
	IsOut   bool  `json:"is_out"`
	Retired bool  `json:"retired"`
	ID      int64 `json:"id"`
}

func (q *Queries) UpdatePlayerInnings(ctx context.Context, arg UpdatePlayerInningsParams) error {
	_, err := q.db.ExecContext(ctx, updatePlayerInnings,
		arg.Runs,
		arg.Balls,
		arg.IsOut,
		arg.Retired,
		arg.ID,
	)
	return err
}

const listBowlingInnings = `-- name: ListBowlingInnings :many
SELECT id, innings_id, player_id, balls, runs_conceded, wickets
FROM bowling_innings
WHERE innings_id = ?
ORDER BY id
`

func (q *Queries) ListBowlingInnings(ctx context.Context, inningsID int64) ([]BowlingInnings, error) {
	rows, err := q.db.QueryContext(ctx, listBowlingInnings, inningsID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BowlingInnings
	for rows.Next() {
		var i BowlingInnings
		if err := rows.Scan(
			&i.ID,
			&i.InningsID,
			&i.PlayerID,
			&i.Balls,
			&i.RunsConceded,
			&i.Wickets,
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

const createBowlingInnings = `-- name: CreateBowlingInnings :one
INSERT INTO bowling_innings (innings_id, player_id, balls, runs_conceded, wickets)
VALUES (?, ?, ?, ?, ?)
RETURNING id
`

type CreateBowlingInningsParams struct {
	InningsID    int64 `json:"innings_id"`
	PlayerID     int64 `json:"player_id"`
	Balls        int64 `json:"balls"`
	RunsConceded int64 `json:"runs_conceded"`
	Wickets      int64 `json:"wickets"`
}

func (q *Queries) CreateBowlingInnings(ctx context.Context, arg CreateBowlingInningsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createBowlingInnings,
		arg.InningsID,
		arg.PlayerID,
		arg.Balls,
		arg.RunsConceded,
		arg.Wickets,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const updateBowlingInnings = `-- name: UpdateBowlingInnings :exec
UPDATE bowling_innings
SET balls = ?, runs_conceded = ?, wickets = ?
WHERE id = ?
`

type UpdateBowlingInningsParams struct {
	Balls        int64 `json:"balls"`
	RunsConceded int64 `json:"runs_conceded"`
	Wickets      int64 `json:"wickets"`
	ID           int64 `json:"id"`
}

func (q *Queries) UpdateBowlingInnings(ctx context.Context, arg UpdateBowlingInningsParams) error {
	_, err := q.db.ExecContext(ctx, updateBowlingInnings,
		arg.Balls,
		arg.RunsConceded,
		arg.Wickets,
		arg.ID,
	)
	return err
}
