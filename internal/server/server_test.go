package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"cricket-scorer/internal/config"
	"cricket-scorer/internal/database"
	"cricket-scorer/internal/db"
	"cricket-scorer/internal/repository"
	"cricket-scorer/internal/scoring"
	"cricket-scorer/internal/service"

	"github.com/rs/zerolog"
)

type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{DefaultOvers: 20, CORSOrigins: []string{"*"}}
	q := db.New(sqlDB)
	playerRepo := repository.NewPlayerRepository(sqlDB, q, zerolog.Nop())
	matchRepo := repository.NewMatchRepository(sqlDB, q, zerolog.Nop())
	players := service.NewPlayerService(playerRepo, zerolog.Nop())
	matches := service.NewMatchService(matchRepo, playerRepo, scoring.NewEngine(nil), cfg, zerolog.Nop())
	return NewServer(players, matches, sqlDB, cfg, zerolog.Nop()).Routes()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) (int, response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, resp
}

// must performs a request that has to succeed and decodes its data into out.
func must(t *testing.T, h http.Handler, method, path string, body, out interface{}) {
	t.Helper()
	code, resp := doJSON(t, h, method, path, body)
	if code >= 300 || resp.Status != "success" {
		t.Fatalf("%s %s = %d %q", method, path, code, resp.Message)
	}
	if out != nil {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}
}

func TestPlayerEndpoints(t *testing.T) {
	h := newTestServer(t)

	var p playerView
	must(t, h, http.MethodPost, "/api/players", playerRequest{Name: "Asha"}, &p)
	if p.ID == 0 || p.Name != "Asha" {
		t.Fatalf("created = %+v", p)
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"duplicate", http.MethodPost, "/api/players", playerRequest{Name: "Asha"}, http.StatusConflict},
		{"blank name", http.MethodPost, "/api/players", playerRequest{Name: "  "}, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/players", `{"nick":"A"}`, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/api/players", nil, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/api/players/abc", nil, http.StatusBadRequest},
		{"missing", http.MethodGet, "/api/players/999", nil, http.StatusNotFound},
		{"rename", http.MethodPut, fmt.Sprintf("/api/players/%d", p.ID), playerRequest{Name: "Asha K"}, http.StatusOK},
		{"delete missing", http.MethodDelete, "/api/players/999", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doJSON(t, h, tt.method, tt.path, tt.body)
			if code != tt.want {
				t.Fatalf("status = %d (%s), want %d", code, resp.Message, tt.want)
			}
			if code >= 400 && (resp.Status != "error" || resp.Message == "") {
				t.Errorf("error envelope = %+v", resp)
			}
		})
	}

	var list []playerView
	must(t, h, http.MethodGet, "/api/players", nil, &list)
	if len(list) != 1 || list[0].Name != "Asha K" {
		t.Fatalf("list = %+v", list)
	}
	must(t, h, http.MethodDelete, fmt.Sprintf("/api/players/%d", p.ID), nil, nil)

	var teams []teamView
	must(t, h, http.MethodGet, "/api/teams", nil, &teams)
	if len(teams) != 2 {
		t.Fatalf("teams = %+v", teams)
	}
}

func TestMatchLifecycle(t *testing.T) {
	h := newTestServer(t)

	ids := make([]int64, 4)
	for i, name := range []string{"A1", "A2", "B1", "B2"} {
		var p playerView
		must(t, h, http.MethodPost, "/api/players", playerRequest{Name: name}, &p)
		ids[i] = p.ID
	}
	a1, a2, b1, b2 := ids[0], ids[1], ids[2], ids[3]

	var st stateResponse
	must(t, h, http.MethodPost, "/api/matches", createMatchRequest{Overs: 1}, &st)
	if st.Scorecard.Overs != 1 || st.Scorecard.State != "awaiting_innings_1" || len(st.Scorecard.Code) != 8 {
		t.Fatalf("created = %+v", st.Scorecard)
	}
	base := fmt.Sprintf("/api/matches/%d", st.Scorecard.MatchID)

	must(t, h, http.MethodGet, "/api/matches/code/"+st.Scorecard.Code, nil, nil)

	if code, _ := doJSON(t, h, http.MethodPost, base+"/balls", ballRequest{Runs: 1}); code != http.StatusConflict {
		t.Fatalf("ball before start = %d", code)
	}

	must(t, h, http.MethodPut, base+"/roster", rosterRequest{Team1: []int64{a1, a2}, Team2: []int64{b1, b2}}, nil)
	if code, _ := doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/players/%d", a1), nil); code != http.StatusConflict {
		t.Fatalf("delete selected player = %d", code)
	}

	must(t, h, http.MethodPost, base+"/start", nil, nil)
	if code, _ := doJSON(t, h, http.MethodPost, base+"/balls", ballRequest{BowlerID: &b1, Runs: 1}); code != http.StatusConflict {
		t.Fatalf("ball before openers = %d", code)
	}
	must(t, h, http.MethodPost, base+"/openers", openersRequest{StrikerID: a1, NonStrikerID: a2}, nil)

	if code, _ := doJSON(t, h, http.MethodPost, base+"/balls", ballRequest{BowlerID: &b1, Extras: "X"}); code != http.StatusBadRequest {
		t.Fatalf("bad extras = %d", code)
	}

	must(t, h, http.MethodPost, base+"/balls", ballRequest{BowlerID: &b1, Runs: 4}, &st)
	inn := st.Scorecard.Innings[0]
	if inn.Runs != 4 || inn.LegalBalls != 1 || st.Outcome == nil || st.Outcome.OverComplete {
		t.Fatalf("after first ball = %+v outcome %+v", inn, st.Outcome)
	}

	must(t, h, http.MethodPost, base+"/end-innings", nil, &st)
	if st.Outcome == nil || st.Outcome.Target == nil || *st.Outcome.Target != 5 {
		t.Fatalf("end innings outcome = %+v", st.Outcome)
	}
	if st.Scorecard.State != "innings_2_active" {
		t.Fatalf("state = %s", st.Scorecard.State)
	}

	must(t, h, http.MethodPost, base+"/openers", openersRequest{StrikerID: b1, NonStrikerID: b2}, nil)
	must(t, h, http.MethodPost, base+"/balls", ballRequest{BowlerID: &a2, WicketType: "bowled"}, &st)
	if !st.Outcome.MatchCompleted || st.Scorecard.State != "finalized" {
		t.Fatalf("final ball = %+v state %s", st.Outcome, st.Scorecard.State)
	}
	if st.Scorecard.Result != "Team Bat First won by 4 runs" {
		t.Errorf("result = %q", st.Scorecard.Result)
	}

	if code, _ := doJSON(t, h, http.MethodPost, base+"/balls", ballRequest{Runs: 1}); code != http.StatusConflict {
		t.Fatalf("ball after finish = %d", code)
	}
	must(t, h, http.MethodPost, base+"/finalize", nil, &st)
	if len(st.Credits) != 0 {
		t.Errorf("second finalize credited %+v", st.Credits)
	}

	var sum service.Summary
	must(t, h, http.MethodGet, base+"/summary", nil, &sum)
	if len(sum.Squads) != 4 {
		t.Fatalf("squads = %+v", sum.Squads)
	}
	for _, sp := range sum.Squads {
		if sp.CareerMatches != 1 {
			t.Errorf("%s career matches = %d", sp.Name, sp.CareerMatches)
		}
		if sp.PlayerID == a1 && sp.CareerRuns != 4 {
			t.Errorf("A1 career runs = %d", sp.CareerRuns)
		}
		if sp.PlayerID == a2 && sp.CareerWickets != 1 {
			t.Errorf("A2 career wickets = %d", sp.CareerWickets)
		}
	}

	var recent []matchSummaryView
	must(t, h, http.MethodGet, "/api/matches?limit=5", nil, &recent)
	if len(recent) != 1 || recent[0].State != "finalized" {
		t.Fatalf("recent = %+v", recent)
	}
	if code, _ := doJSON(t, h, http.MethodGet, "/api/matches?limit=x", nil); code != http.StatusBadRequest {
		t.Fatalf("bad limit = %d", code)
	}
	if code, _ := doJSON(t, h, http.MethodGet, "/api/matches/999", nil); code != http.StatusNotFound {
		t.Fatalf("missing match = %d", code)
	}
}

func TestCreateMatchDefaultsOvers(t *testing.T) {
	h := newTestServer(t)
	var st stateResponse
	must(t, h, http.MethodPost, "/api/matches", nil, &st)
	if st.Scorecard.Overs != 20 {
		t.Fatalf("overs = %d", st.Scorecard.Overs)
	}
	if code, _ := doJSON(t, h, http.MethodPost, "/api/matches", createMatchRequest{Overs: 51}); code != http.StatusBadRequest {
		t.Fatalf("too many overs = %d", code)
	}
}
