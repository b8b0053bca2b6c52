package server

import (
	"context"
	"database/sql"
	"net/http"

	"cricket-scorer/internal/config"
	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/middleware"
	"cricket-scorer/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Server struct {
	players *service.PlayerService
	matches *service.MatchService
	db      *sql.DB
	cfg     *config.Config
	logger  zerolog.Logger
}

func NewServer(players *service.PlayerService, matches *service.MatchService, db *sql.DB, cfg *config.Config, logger zerolog.Logger) *Server {
	return &Server{
		players: players,
		matches: matches,
		db:      db,
		cfg:     cfg,
		logger:  logger,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(constants.RequestTimeout))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler)

	r.Get("/health", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/teams", s.listTeams)

		r.Route("/players", func(r chi.Router) {
			r.Get("/", s.listPlayers)
			r.Post("/", s.createPlayer)
			r.Get("/{id}", s.getPlayer)
			r.Put("/{id}", s.renamePlayer)
			r.Delete("/{id}", s.deletePlayer)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", s.listMatches)
			r.Post("/", s.createMatch)
			r.Get("/code/{code}", s.getMatchByCode)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getMatch)
				r.Get("/summary", s.matchSummary)
				r.Put("/roster", s.assignRoster)
				r.Post("/start", s.startInnings)
				r.Post("/openers", s.setOpeners)
				r.Post("/batsmen", s.addBatsman)
				r.Post("/striker", s.setStriker)
				r.Post("/retire", s.retireBatsman)
				r.Post("/balls", s.recordBall)
				r.Post("/baby-over", s.babyOver)
				r.Post("/end-innings", s.endInnings)
				r.Post("/end", s.endMatch)
				r.Post("/finalize", s.finalize)
			})
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"database": "ok"})
}
