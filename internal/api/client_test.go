package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type recorded struct {
	method string
	path   string
	body   map[string]interface{}
}

func newTestAPI(t *testing.T, status int, reply string) (*ScorerClient, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.body = nil
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			json.Unmarshal(raw, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return NewScorerClient(srv.URL + "/"), rec
}

func TestRecordBall(t *testing.T) {
	reply := `{"status":"success","data":{"scorecard":{"match_id":7,"code":"ABCD2345","state":"innings_1_active","innings":[{"number":1,"runs":4,"overs":"0.1"}]},"outcome":{"over_complete":false,"messages":["FOUR"]}}}`
	c, rec := newTestAPI(t, http.StatusOK, reply)

	bowler := int64(12)
	st, err := c.RecordBall(context.Background(), 7, Ball{BowlerID: &bowler, Runs: 4})
	if err != nil {
		t.Fatal(err)
	}
	if rec.method != http.MethodPost || rec.path != "/api/matches/7/balls" {
		t.Fatalf("request = %s %s", rec.method, rec.path)
	}
	if rec.body["bowler_id"] != float64(12) || rec.body["runs"] != float64(4) {
		t.Errorf("body = %v", rec.body)
	}
	if _, ok := rec.body["extras"]; ok {
		t.Errorf("empty extras should be omitted: %v", rec.body)
	}
	if st.Scorecard.MatchID != 7 || st.Scorecard.Innings[0].Runs != 4 || st.Outcome == nil || len(st.Outcome.Messages) != 1 {
		t.Fatalf("state = %+v", st)
	}
}

func TestRequestPaths(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, rec := newTestAPI(t, http.StatusOK, `{"status":"success","data":{}}`)
	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"create", func() error { _, err := c.CreateMatch(ctx, 5); return err }, http.MethodPost, "/api/matches"},
		{"get", func() error { _, err := c.Match(ctx, 3); return err }, http.MethodGet, "/api/matches/3"},
		{"by code", func() error { _, err := c.MatchByCode(ctx, "XY23"); return err }, http.MethodGet, "/api/matches/code/XY23"},
		{"roster", func() error { _, err := c.AssignRoster(ctx, 3, []int64{1, 2}, []int64{3, 4}); return err }, http.MethodPut, "/api/matches/3/roster"},
		{"start", func() error { _, err := c.StartInnings(ctx, 3); return err }, http.MethodPost, "/api/matches/3/start"},
		{"openers", func() error { _, err := c.SetOpeners(ctx, 3, 1, 2); return err }, http.MethodPost, "/api/matches/3/openers"},
		{"batsman", func() error { _, err := c.AddBatsman(ctx, 3, 9, true); return err }, http.MethodPost, "/api/matches/3/batsmen"},
		{"end innings", func() error { _, err := c.EndInnings(ctx, 3); return err }, http.MethodPost, "/api/matches/3/end-innings"},
		{"end", func() error { _, err := c.EndMatch(ctx, 3); return err }, http.MethodPost, "/api/matches/3/end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatal(err)
			}
			if rec.method != tt.method || rec.path != tt.path {
				t.Errorf("request = %s %s, want %s %s", rec.method, rec.path, tt.method, tt.path)
			}
		})
	}
	if rec.body != nil {
		t.Errorf("end match sent a body: %v", rec.body)
	}
}

func TestPlayers(t *testing.T) {
	c, _ := newTestAPI(t, http.StatusOK, `{"status":"success","data":[{"id":1,"name":"Asha","career_runs":40}]}`)
	players, err := c.Players(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 1 || players[0].CareerRuns != 40 {
		t.Fatalf("players = %+v", players)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		reply   string
		code    int
		message string
	}{
		{"envelope", http.StatusConflict, `{"status":"error","message":"record ball: set openers first"}`, http.StatusConflict, "record ball: set openers first"},
		{"plain text", http.StatusBadGateway, `bad gateway`, http.StatusBadGateway, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestAPI(t, tt.status, tt.reply)
			_, err := c.Match(context.Background(), 1)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v", err)
			}
			if apiErr.StatusCode != tt.code || apiErr.Message != tt.message {
				t.Errorf("err = %+v", apiErr)
			}
		})
	}
}
