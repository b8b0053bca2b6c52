package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/scoring"

	"github.com/valyala/fasthttp"
)

// ScorerClient talks to the scoring API on behalf of the command line scorer.
type ScorerClient struct {
	baseURL string
	client  *fasthttp.Client
}

func NewScorerClient(baseURL string) *ScorerClient {
	return &ScorerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     4,
			ReadTimeout:         constants.ClientTimeout,
			WriteTimeout:        constants.ClientTimeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("API error: %d: %s", e.StatusCode, e.Message)
}

type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type Outcome struct {
	OverComplete     bool     `json:"over_complete"`
	InningsCompleted bool     `json:"innings_completed"`
	MatchCompleted   bool     `json:"match_completed"`
	Target           *int     `json:"target,omitempty"`
	Result           string   `json:"result,omitempty"`
	Messages         []string `json:"messages"`
}

type Credit struct {
	PlayerID int64 `json:"player_id"`
	Runs     int   `json:"runs"`
	Wickets  int   `json:"wickets"`
	Matches  int   `json:"matches"`
}

type State struct {
	Scorecard   scoring.Scorecard `json:"scorecard"`
	Outcome     *Outcome          `json:"outcome,omitempty"`
	VoidedBalls *int              `json:"voided_balls,omitempty"`
	Credits     []Credit          `json:"credits,omitempty"`
}

type Player struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CareerRuns    int    `json:"career_runs"`
	CareerWickets int    `json:"career_wickets"`
	CareerMatches int    `json:"career_matches"`
}

type Ball struct {
	StrikerID     *int64 `json:"striker_id,omitempty"`
	BowlerID      *int64 `json:"bowler_id,omitempty"`
	Extras        string `json:"extras,omitempty"`
	Runs          int    `json:"runs"`
	WicketType    string `json:"wicket_type,omitempty"`
	WicketTakerID *int64 `json:"wicket_taker_id,omitempty"`
	DismissedID   *int64 `json:"dismissed_id,omitempty"`
}

func (c *ScorerClient) Players(ctx context.Context) ([]Player, error) {
	players, err := doRequest[[]Player](ctx, c, fasthttp.MethodGet, "/api/players", nil)
	if err != nil {
		return nil, err
	}
	return *players, nil
}

func (c *ScorerClient) CreateMatch(ctx context.Context, overs int) (*State, error) {
	return doRequest[State](ctx, c, fasthttp.MethodPost, "/api/matches", map[string]int{"overs": overs})
}

func (c *ScorerClient) Match(ctx context.Context, id int64) (*State, error) {
	return doRequest[State](ctx, c, fasthttp.MethodGet, matchPath(id, ""), nil)
}

func (c *ScorerClient) MatchByCode(ctx context.Context, code string) (*State, error) {
	return doRequest[State](ctx, c, fasthttp.MethodGet, "/api/matches/code/"+url.PathEscape(code), nil)
}

func (c *ScorerClient) AssignRoster(ctx context.Context, id int64, team1, team2 []int64) (*State, error) {
	body := map[string][]int64{"team1": team1, "team2": team2}
	return doRequest[State](ctx, c, fasthttp.MethodPut, matchPath(id, "/roster"), body)
}

func (c *ScorerClient) StartInnings(ctx context.Context, id int64) (*State, error) {
	return doRequest[State](ctx, c, fasthttp.MethodPost, matchPath(id, "/start"), nil)
}

func (c *ScorerClient) SetOpeners(ctx context.Context, id, strikerID, nonStrikerID int64) (*State, error) {
	body := map[string]int64{"striker_id": strikerID, "non_striker_id": nonStrikerID}
	return doRequest[State](ctx, c, fasthttp.MethodPost, matchPath(id, "/openers"), body)
}

func (c *ScorerClient) AddBatsman(ctx context.Context, id, playerID int64, asStriker bool) (*State, error) {
	body := struct {
		PlayerID  int64 `json:"player_id"`
		AsStriker bool  `json:"as_striker"`
	}{playerID, asStriker}
	return doRequest[State](ctx, c, fasthttp.MethodPost, matchPath(id, "/batsmen"), body)
}

func (c *ScorerClient) RecordBall(ctx context.Context, id int64, b Ball) (*State, error) {
	return doRequest[State](ctx, c, fasthttp.MethodPost, matchPath(id, "/balls"), b)
}

func (c *ScorerClient) EndInnings(ctx context.Context, id int64) (*State, error) {
	return doRequest[State](ctx, c, fasthttp.MethodPost, matchPath(id, "/end-innings"), nil)
}

func (c *ScorerClient) EndMatch(ctx context.Context, id int64) (*State, error) {
	return doRequest[State](ctx, c, fasthttp.MethodPost, matchPath(id, "/end"), nil)
}

func matchPath(id int64, suffix string) string {
	return fmt.Sprintf("/api/matches/%d%s", id, suffix)
}

func doRequest[T any](ctx context.Context, client *ScorerClient, method, path string, body interface{}) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	var result envelope[T]
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		if resp.StatusCode() >= fasthttp.StatusBadRequest {
			return nil, &APIError{StatusCode: resp.StatusCode()}
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode() >= fasthttp.StatusBadRequest || result.Status != "success" {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: result.Message}
	}
	return &result.Data, nil
}
