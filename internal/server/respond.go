package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"cricket-scorer/internal/repository"
	"cricket-scorer/internal/scoring"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

type envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Status: "success", Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Status: "error", Message: message})
}

// respondErr maps the error taxonomy onto status codes; anything unknown is
// logged and reported without detail.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case scoring.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case scoring.IsPrecondition(err):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrConflict), errors.Is(err, repository.ErrInUse):
		respondError(w, http.StatusConflict, err.Error())
	case scoring.IsInvariant(err):
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("invariant violated")
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &scoring.ValidationError{Field: "body", Reason: "request body is empty"}
		}
		return &scoring.ValidationError{Field: "body", Reason: err.Error()}
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &scoring.ValidationError{Field: name, Reason: fmt.Sprintf("%q is not a valid id", raw)}
	}
	return id, nil
}
