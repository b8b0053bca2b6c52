package server

import (
	"context"
	"net/http"
	"strconv"

	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/scoring"

	"github.com/go-chi/chi/v5"
)

func respondState(w http.ResponseWriter, status int, m *domain.Match, resp stateResponse) {
	resp.Scorecard = scoring.BuildScorecard(m)
	respondJSON(w, status, resp)
}

func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondErr(w, r, &scoring.ValidationError{Field: "limit", Reason: "must be a non-negative integer"})
			return
		}
		limit = n
	}
	matches, err := s.matches.ListRecent(r.Context(), limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	out := make([]matchSummaryView, len(matches))
	for i, m := range matches {
		out[i] = toMatchSummaryView(m)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) createMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			respondErr(w, r, err)
			return
		}
	}
	m, err := s.matches.CreateMatch(r.Context(), req.Overs)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondState(w, http.StatusCreated, m, stateResponse{})
}

func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	m, err := s.matches.Get(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondState(w, http.StatusOK, m, stateResponse{})
}

func (s *Server) getMatchByCode(w http.ResponseWriter, r *http.Request) {
	m, err := s.matches.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondState(w, http.StatusOK, m, stateResponse{})
}

func (s *Server) matchSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	sum, err := s.matches.Summary(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

func (s *Server) assignRoster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var req rosterRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	m, err := s.matches.AssignRoster(r.Context(), id, req.Team1, req.Team2)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondState(w, http.StatusOK, m, stateResponse{})
}

func (s *Server) startInnings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	m, err := s.matches.StartInnings(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondState(w, http.StatusOK, m, stateResponse{})
}

func (s *Server) setOpeners(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var req openersRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	m, err := s.matches.SetOpeners(r.Context(), id, req.StrikerID, req.NonStrikerID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondState(w, http.StatusOK, m, stateResponse{})
}

func (s *Server) addBatsman(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var req batsmanRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	m, err := s.matches.AddBatsman(r.Context(), id, req.PlayerID, req.AsStriker)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondState(w, http.StatusOK, m, stateResponse{})
}

func (s *Server) setStriker(w http.ResponseWriter, r *http.Request) {
	s.crease(w, r, s.matches.SetStriker)
}

func (s *Server) retireBatsman(w http.ResponseWriter, r *http.Request) {
	s.crease(w, r, s.matches.RetireBatsman)
}

// crease handles the transitions that take a single player id.
func (s *Server) crease(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64, int64) (*domain.Match, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var req playerIDRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	m, err := fn(r.Context(), id, req.PlayerID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondState(w, http.StatusOK, m, stateResponse{})
}

func (s *Server) recordBall(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var req ballRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	m, out, err := s.matches.RecordBall(r.Context(), id, req.delivery())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondState(w, http.StatusOK, m, stateResponse{Outcome: toOutcomeView(out)})
}

func (s *Server) babyOver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	m, voided, err := s.matches.BabyOver(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondState(w, http.StatusOK, m, stateResponse{VoidedBalls: &voided})
}

func (s *Server) endInnings(w http.ResponseWriter, r *http.Request) {
	s.finish(w, r, s.matches.EndInnings)
}

func (s *Server) endMatch(w http.ResponseWriter, r *http.Request) {
	s.finish(w, r, s.matches.EndMatch)
}

func (s *Server) finish(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) (*domain.Match, scoring.Outcome, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	m, out, err := fn(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondState(w, http.StatusOK, m, stateResponse{Outcome: toOutcomeView(out)})
}

func (s *Server) finalize(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	m, credits, err := s.matches.Finalize(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	views := make([]creditView, len(credits))
	for i, c := range credits {
		views[i] = creditView(c)
	}
	respondState(w, http.StatusOK, m, stateResponse{Credits: views})
}
