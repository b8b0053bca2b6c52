package db

import (
	"context"
	"time"
)

const matchColumns = `id, code, team1_id, team2_id, overs, state, result, created_at, updated_at, finalized_at`

func scanMatch(row interface{ Scan(...interface{}) error }) (Match, error) {
	var i Match
	err := row.Scan(
		&i.ID,
		&i.Code,
		&i.Team1ID,
		&i.Team2ID,
		&i.Overs,
		&i.State,
		&i.Result,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.FinalizedAt,
	)
	return i, err
}

const createMatch = `-- name: CreateMatch :execlastid
INSERT INTO matches (code, team1_id, team2_id, overs, state, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type CreateMatchParams struct {
	Code      string    `json:"code"`
	Team1ID   int64     `json:"team1_id"`
	Team2ID   int64     `json:"team2_id"`
	Overs     int64     `json:"overs"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Queries) CreateMatch(ctx context.Context, arg CreateMatchParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createMatch,
		arg.Code,
		arg.Team1ID,
		arg.Team2ID,
		arg.Overs,
		arg.State,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const getMatch = `-- name: GetMatch :one
SELECT ` + matchColumns + `
FROM matches
WHERE id = ?
`

func (q *Queries) GetMatch(ctx context.Context, id int64) (Match, error) {
	return scanMatch(q.db.QueryRowContext(ctx, getMatch, id))
}

const getMatchByCode = `-- name: GetMatchByCode :one
SELECT ` + matchColumns + `
FROM matches
WHERE code = ?
`

func (q *Queries) GetMatchByCode(ctx context.Context, code string) (Match, error) {
	return scanMatch(q.db.QueryRowContext(ctx, getMatchByCode, code))
}

const listRecentMatches = `-- name: ListRecentMatches :many
SELECT ` + matchColumns + `
FROM matches
ORDER BY created_at DESC, id DESC
LIMIT ?
`

func (q *Queries) ListRecentMatches(ctx context.Context, limit int64) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, listRecentMatches, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Match
	for rows.Next() {
		i, err := scanMatch(rows)
		if err != nil {
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

const updateMatch = `-- name: UpdateMatch :exec
UPDATE matches
SET state = ?, result = ?, finalized_at = ?, updated_at = ?
WHERE id = ?
`

type UpdateMatchParams struct {
	State       string     `json:"state"`
	Result      string     `json:"result"`
	FinalizedAt *time.Time `json:"finalized_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ID          int64      `json:"id"`
}

func (q *Queries) UpdateMatch(ctx context.Context, arg UpdateMatchParams) error {
	_, err := q.db.ExecContext(ctx, updateMatch,
		arg.State,
		arg.Result,
		arg.FinalizedAt,
		arg.UpdatedAt,
		arg.ID,
	)
	return err
}

const listMatchRoster = `-- name: ListMatchRoster :many
SELECT mtp.id, mtp.match_id, mtp.team_id, mtp.player_id, p.name AS player_name,
       p.career_runs, p.career_wickets, p.career_matches
FROM match_team_players mtp
JOIN players p ON p.id = mtp.player_id
WHERE mtp.match_id = ?
ORDER BY mtp.id
`

type ListMatchRosterRow struct {
	ID            int64  `json:"id"`
	MatchID       int64  `json:"match_id"`
	TeamID        int64  `json:"team_id"`
	PlayerID      int64  `json:"player_id"`
	PlayerName    string `json:"player_name"`
	CareerRuns    int64  `json:"career_runs"`
	CareerWickets int64  `json:"career_wickets"`
	CareerMatches int64  `json:"career_matches"`
}

func (q *Queries) ListMatchRoster(ctx context.Context, matchID int64) ([]ListMatchRosterRow, error) {
	rows, err := q.db.QueryContext(ctx, listMatchRoster, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListMatchRosterRow
	for rows.Next() {
		var i ListMatchRosterRow
		if err := rows.Scan(
			&i.ID,
			&i.MatchID,
			&i.TeamID,
			&i.PlayerID,
			&i.PlayerName,
			&i.CareerRuns,
			&i.CareerWickets,
			&i.CareerMatches,
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

const deleteMatchRoster = `-- name: DeleteMatchRoster :exec
DELETE FROM match_team_players
WHERE match_id = ?
`

func (q *Queries) DeleteMatchRoster(ctx context.Context, matchID int64) error {
	_, err := q.db.ExecContext(ctx, deleteMatchRoster, matchID)
	return err
}

const addMatchPlayer = `-- name: AddMatchPlayer :one
INSERT INTO match_team_players (match_id, team_id, player_id)
VALUES (?, ?, ?)
RETURNING id
`

type AddMatchPlayerParams struct {
	MatchID  int64 `json:"match_id"`
	TeamID   int64 `json:"team_id"`
	PlayerID int64 `json:"player_id"`
}

func (q *Queries) AddMatchPlayer(ctx context.Context, arg AddMatchPlayerParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, addMatchPlayer, arg.MatchID, arg.TeamID, arg.PlayerID)
	var id int64
	err := row.Scan(&id)
	return id, err
}
