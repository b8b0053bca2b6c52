package server

import (
	"net/http"
)

func (s *Server) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.players.List(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	out := make([]playerView, len(players))
	for i := range players {
		out[i] = toPlayerView(&players[i])
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	p, err := s.players.Create(r.Context(), req.Name)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPlayerView(p))
}

func (s *Server) getPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	p, err := s.players.Get(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPlayerView(p))
}

func (s *Server) renamePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var req playerRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	p, err := s.players.Rename(r.Context(), id, req.Name)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPlayerView(p))
}

func (s *Server) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if err := s.players.Delete(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.matches.Teams(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	out := make([]teamView, len(teams))
	for i, t := range teams {
		out[i] = teamView(t)
	}
	respondJSON(w, http.StatusOK, out)
}
