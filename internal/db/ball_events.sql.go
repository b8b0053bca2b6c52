package db

import (
	"context"
	"time"
)

const listBallEvents = `-- name: ListBallEvents :many
SELECT id, innings_id, striker_id, non_striker_id, bowler_id, runs, extras, wicket_type,
       wicket_taker_id, dismissed_id, legal, created_at
FROM ball_events
WHERE innings_id = ?
ORDER BY id
`

func (q *Queries) ListBallEvents(ctx context.Context, inningsID int64) ([]BallEvent, error) {
	rows, err := q.db.QueryContext(ctx, listBallEvents, inningsID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BallEvent
	for rows.Next() {
		var i BallEvent
		if err := rows.Scan(
			&i.ID,
			&i.InningsID,
			&i.StrikerID,
			&i.NonStrikerID,
			&i.BowlerID,
			&i.Runs,
			&i.Extras,
			&i.WicketType,
			&i.WicketTakerID,
			&i.DismissedID,
			&i.Legal,
			&i.CreatedAt,
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

const createBallEvent = `-- name: CreateBallEvent :one
INSERT INTO ball_events (innings_id, striker_id, non_striker_id, bowler_id, runs, extras,
                         wicket_type, wicket_taker_id, dismissed_id, legal, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id
`

type CreateBallEventParams struct {
	InningsID     int64     `json:"innings_id"`
	StrikerID     int64     `json:"striker_id"`
	NonStrikerID  int64     `json:"non_striker_id"`
	BowlerID      int64     `json:"bowler_id"`
	Runs          int64     `json:"runs"`
	Extras        string    `json:"extras"`
	WicketType    string    `json:"wicket_type"`
	WicketTakerID *int64    `json:"wicket_taker_id"`
	DismissedID   *int64    `json:"dismissed_id"`
	Legal         bool      `json:"legal"`
	CreatedAt     time.Time `json:"created_at"`
}

func (q *Queries) CreateBallEvent(ctx context.Context, arg CreateBallEventParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createBallEvent,
		arg.InningsID,
		arg.StrikerID,
		arg.NonStrikerID,
		arg.BowlerID,
		arg.Runs,
		arg.Extras,
		arg.WicketType,
		arg.WicketTakerID,
		arg.DismissedID,
		arg.Legal,
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}
