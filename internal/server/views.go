package server

import (
	"time"

	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/scoring"
)

type playerView struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	CareerRuns    int       `json:"career_runs"`
	CareerWickets int       `json:"career_wickets"`
	CareerMatches int       `json:"career_matches"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toPlayerView(p *domain.Player) playerView {
	return playerView{
		ID:            p.ID,
		Name:          p.Name,
		CareerRuns:    p.CareerRuns,
		CareerWickets: p.CareerWickets,
		CareerMatches: p.CareerMatches,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type teamView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type matchSummaryView struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Team1     teamView  `json:"team1"`
	Team2     teamView  `json:"team2"`
	Overs     int       `json:"overs"`
	State     string    `json:"state"`
	Result    string    `json:"result,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toMatchSummaryView(m domain.MatchSummary) matchSummaryView {
	return matchSummaryView{
		ID:        m.ID,
		Code:      m.Code,
		Team1:     teamView(m.Team1),
		Team2:     teamView(m.Team2),
		Overs:     m.Overs,
		State:     string(m.State),
		Result:    m.Result,
		CreatedAt: m.CreatedAt,
	}
}

type outcomeView struct {
	OverComplete     bool     `json:"over_complete"`
	InningsCompleted bool     `json:"innings_completed"`
	MatchCompleted   bool     `json:"match_completed"`
	Target           *int     `json:"target,omitempty"`
	Result           string   `json:"result,omitempty"`
	Messages         []string `json:"messages"`
}

func toOutcomeView(o scoring.Outcome) *outcomeView {
	msgs := o.Messages
	if msgs == nil {
		msgs = []string{}
	}
	return &outcomeView{
		OverComplete:     o.OverComplete,
		InningsCompleted: o.InningsCompleted,
		MatchCompleted:   o.MatchCompleted,
		Target:           o.Target,
		Result:           o.Result,
		Messages:         msgs,
	}
}

type creditView struct {
	PlayerID int64 `json:"player_id"`
	Runs     int   `json:"runs"`
	Wickets  int   `json:"wickets"`
	Matches  int   `json:"matches"`
}

// stateResponse is returned by every match transition: the scorecard after
// the change plus whatever the change itself reported.
type stateResponse struct {
	Scorecard   scoring.Scorecard `json:"scorecard"`
	Outcome     *outcomeView      `json:"outcome,omitempty"`
	VoidedBalls *int              `json:"voided_balls,omitempty"`
	Credits     []creditView      `json:"credits,omitempty"`
}

type playerRequest struct {
	Name string `json:"name"`
}

type createMatchRequest struct {
	Overs int `json:"overs"`
}

type rosterRequest struct {
	Team1 []int64 `json:"team1"`
	Team2 []int64 `json:"team2"`
}

type openersRequest struct {
	StrikerID    int64 `json:"striker_id"`
	NonStrikerID int64 `json:"non_striker_id"`
}

type batsmanRequest struct {
	PlayerID  int64 `json:"player_id"`
	AsStriker bool  `json:"as_striker"`
}

type playerIDRequest struct {
	PlayerID int64 `json:"player_id"`
}

type ballRequest struct {
	StrikerID     *int64 `json:"striker_id"`
	BowlerID      *int64 `json:"bowler_id"`
	Extras        string `json:"extras"`
	Runs          int    `json:"runs"`
	WicketType    string `json:"wicket_type"`
	WicketTakerID *int64 `json:"wicket_taker_id"`
	DismissedID   *int64 `json:"dismissed_id"`
}

func (b ballRequest) delivery() scoring.Delivery {
	return scoring.Delivery{
		StrikerID:     b.StrikerID,
		BowlerID:      b.BowlerID,
		Extras:        b.Extras,
		Runs:          b.Runs,
		WicketType:    b.WicketType,
		WicketTakerID: b.WicketTakerID,
		DismissedID:   b.DismissedID,
	}
}
