package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		status   int
		level    string
	}{
		{"generated", "", http.StatusOK, "info"},
		{"propagated", "abc-123", http.StatusNotFound, "warn"},
		{"server error", "", http.StatusInternalServerError, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			var seen string
			h := RequestID(zerolog.New(&logs))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
				zerolog.Ctx(r.Context()).Info().Msg("inside")
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got == "" || got != seen {
				t.Fatalf("header %q, context %q", got, seen)
			}
			if tt.incoming != "" && got != tt.incoming {
				t.Errorf("request id = %q, want %q", got, tt.incoming)
			}

			dec := json.NewDecoder(&logs)
			var lines []map[string]interface{}
			for dec.More() {
				var line map[string]interface{}
				if err := dec.Decode(&line); err != nil {
					t.Fatal(err)
				}
				lines = append(lines, line)
			}
			if len(lines) != 2 {
				t.Fatalf("log lines = %d", len(lines))
			}
			for _, line := range lines {
				if line["request_id"] != got {
					t.Errorf("log line without request id: %v", line)
				}
			}
			done := lines[1]
			if done["level"] != tt.level || done["status"] != float64(tt.status) {
				t.Errorf("completion log = %v", done)
			}
		})
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := GetRequestID(req.Context()); id != "" {
		t.Fatalf("id = %q", id)
	}
}
