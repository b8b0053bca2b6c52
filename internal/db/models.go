package db

import (
	"time"
)

type BallEvent struct {
	ID            int64     `json:"id"`
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

type BowlingInnings struct {
	ID           int64 `json:"id"`
	InningsID    int64 `json:"innings_id"`
	PlayerID     int64 `json:"player_id"`
	Balls        int64 `json:"balls"`
	RunsConceded int64 `json:"runs_conceded"`
	Wickets      int64 `json:"wickets"`
}

type Innings struct {
	ID                 int64  `json:"id"`
	MatchID            int64  `json:"match_id"`
	Number             int64  `json:"number"`
	BattingTeamID      int64  `json:"batting_team_id"`
	BowlingTeamID      int64  `json:"bowling_team_id"`
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
}

type Match struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Team1ID     int64      `json:"team1_id"`
	Team2ID     int64      `json:"team2_id"`
	Overs       int64      `json:"overs"`
	State       string     `json:"state"`
	Result      string     `json:"result"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	FinalizedAt *time.Time `json:"finalized_at"`
}

type MatchTeamPlayer struct {
	ID       int64 `json:"id"`
	MatchID  int64 `json:"match_id"`
	TeamID   int64 `json:"team_id"`
	PlayerID int64 `json:"player_id"`
}

type Player struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	CareerRuns    int64     `json:"career_runs"`
	CareerWickets int64     `json:"career_wickets"`
	CareerMatches int64     `json:"career_matches"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type PlayerInnings struct {
	ID        int64 `json:"id"`
	InningsID int64 `json:"innings_id"`
	PlayerID  int64 `json:"player_id"`
	Runs      int64 `json:"runs"`
	Balls     int64 `json:"balls"`
	IsOut     bool  `json:"is_out"`
	Retired   bool  `json:"retired"`
}

type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
