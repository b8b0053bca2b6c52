package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/db"
	"cricket-scorer/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// share codes avoid characters that are easy to misread when read out
const codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// enriched
type RosterPlayer struct {
	domain.TeamPlayer
	CareerRuns    int
	CareerWickets int
	CareerMatches int
}

func (r *MatchRepository) Teams(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.queries.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	teams := make([]domain.Team, len(rows))
	for i, t := range rows {
		teams[i] = domain.Team{ID: t.ID, Name: t.Name}
	}
	return teams, nil
}

// Create stores a new match between the two seeded sides, the first of which
// bats first.
func (r *MatchRepository) Create(ctx context.Context, overs int) (*domain.Match, error) {
	teams, err := r.Teams(ctx)
	if err != nil {
		return nil, err
	}
	if len(teams) < 2 {
		return nil, fmt.Errorf("expected two seeded teams, found %d", len(teams))
	}

	now := time.Now().UTC()
	for attempt := 0; attempt < 3; attempt++ {
		code, err := gonanoid.Generate(codeAlphabet, constants.MatchCodeLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate match code: %w", err)
		}
		id, err := r.queries.CreateMatch(ctx, db.CreateMatchParams{
			Code:      code,
			Team1ID:   teams[0].ID,
			Team2ID:   teams[1].ID,
			Overs:     int64(overs),
			State:     string(domain.StateAwaitingInnings1),
			CreatedAt: now,
			UpdatedAt: now,
		})
		if isUniqueViolation(err) {
			r.logger.Warn().Str("code", code).Msg("match code collision, retrying")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create match: %w", err)
		}
		r.logger.Debug().Int64("match_id", id).Str("code", code).Msg("match created")
		return r.Get(ctx, id)
	}
	return nil, fmt.Errorf("failed to create match: %w", ErrConflict)
}

func (r *MatchRepository) Get(ctx context.Context, id int64) (*domain.Match, error) {
	row, err := r.queries.GetMatch(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return r.build(ctx, r.queries, row, nil)
}

func (r *MatchRepository) GetByCode(ctx context.Context, code string) (*domain.Match, error) {
	row, err := r.queries.GetMatchByCode(ctx, code)
	if err != nil {
		return nil, notFound(err)
	}
	return r.build(ctx, r.queries, row, nil)
}

func (r *MatchRepository) ListRecent(ctx context.Context, limit int) ([]domain.MatchSummary, error) {
	rows, err := r.queries.ListRecentMatches(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	teams, err := r.Teams(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	out := make([]domain.MatchSummary, len(rows))
	for i, m := range rows {
		out[i] = domain.MatchSummary{
			ID:        m.ID,
			Code:      m.Code,
			Team1:     byID[m.Team1ID],
			Team2:     byID[m.Team2ID],
			Overs:     int(m.Overs),
			State:     domain.MatchState(m.State),
			Result:    m.Result,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

// Roster returns the players selected for a match with their career totals.
func (r *MatchRepository) Roster(ctx context.Context, matchID int64) ([]RosterPlayer, error) {
	rows, err := r.queries.ListMatchRoster(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster of match %d: %w", matchID, err)
	}
	out := make([]RosterPlayer, len(rows))
	for i, row := range rows {
		out[i] = RosterPlayer{
			TeamPlayer: domain.TeamPlayer{
				ID:         row.ID,
				MatchID:    row.MatchID,
				TeamID:     row.TeamID,
				PlayerID:   row.PlayerID,
				PlayerName: row.PlayerName,
			},
			CareerRuns:    int(row.CareerRuns),
			CareerWickets: int(row.CareerWickets),
			CareerMatches: int(row.CareerMatches),
		}
	}
	return out, nil
}

// Mutate loads match id inside a transaction, applies fn and writes the
// aggregate back. Nothing is written when fn fails.
func (r *MatchRepository) Mutate(ctx context.Context, id int64, fn func(*domain.Match) error) (*domain.Match, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	row, err := qtx.GetMatch(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	m, err := r.build(ctx, qtx, row, nil)
	if err != nil {
		return nil, err
	}

	if err := fn(m); err != nil {
		return nil, err
	}

	if err := r.save(ctx, qtx, m, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match %d: %w", id, err)
	}
	return m, nil
}

func (r *MatchRepository) build(ctx context.Context, q *db.Queries, row db.Match, teams []domain.Team) (*domain.Match, error) {
	if teams == nil {
		rows, err := q.ListTeams(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list teams: %w", err)
		}
		for _, t := range rows {
			teams = append(teams, domain.Team{ID: t.ID, Name: t.Name})
		}
	}

	m := &domain.Match{
		ID:          row.ID,
		Code:        row.Code,
		Overs:       int(row.Overs),
		State:       domain.MatchState(row.State),
		Result:      row.Result,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		FinalizedAt: row.FinalizedAt,
	}
	for _, t := range teams {
		switch t.ID {
		case row.Team1ID:
			m.Team1 = t
		case row.Team2ID:
			m.Team2 = t
		}
	}

	roster, err := q.ListMatchRoster(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster of match %d: %w", row.ID, err)
	}
	for _, tp := range roster {
		m.Roster = append(m.Roster, domain.TeamPlayer{
			ID:         tp.ID,
			MatchID:    tp.MatchID,
			TeamID:     tp.TeamID,
			PlayerID:   tp.PlayerID,
			PlayerName: tp.PlayerName,
		})
	}

	innings, err := q.ListInnings(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load innings of match %d: %w", row.ID, err)
	}
	for _, in := range innings {
		inn, err := loadInnings(ctx, q, in)
		if err != nil {
			return nil, err
		}
		m.Innings = append(m.Innings, inn)
	}
	return m, nil
}

func loadInnings(ctx context.Context, q *db.Queries, in db.Innings) (*domain.Innings, error) {
	inn := &domain.Innings{
		ID:                 in.ID,
		MatchID:            in.MatchID,
		Number:             int(in.Number),
		BattingTeamID:      in.BattingTeamID,
		BowlingTeamID:      in.BowlingTeamID,
		Runs:               int(in.Runs),
		Wickets:            int(in.Wickets),
		LegalBalls:         int(in.LegalBalls),
		Completed:          in.Completed,
		Target:             intPtr(in.Target),
		StrikerID:          in.StrikerID,
		NonStrikerID:       in.NonStrikerID,
		CurrentBowlerID:    in.CurrentBowlerID,
		CurrentBowlerBalls: int(in.CurrentBowlerBalls),
		LastOverBowlerID:   in.LastOverBowlerID,
	}

	batting, err := q.ListPlayerInnings(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batting of innings %d: %w", in.ID, err)
	}
	for _, p := range batting {
		inn.Batting = append(inn.Batting, &domain.PlayerInnings{
			ID:        p.ID,
			InningsID: p.InningsID,
			PlayerID:  p.PlayerID,
			Runs:      int(p.Runs),
			Balls:     int(p.Balls),
			Out:       p.IsOut,
			Retired:   p.Retired,
		})
	}

	bowling, err := q.ListBowlingInnings(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bowling of innings %d: %w", in.ID, err)
	}
	for _, b := range bowling {
		inn.Bowling = append(inn.Bowling, &domain.BowlingInnings{
			ID:           b.ID,
			InningsID:    b.InningsID,
			PlayerID:     b.PlayerID,
			Balls:        int(b.Balls),
			RunsConceded: int(b.RunsConceded),
			Wickets:      int(b.Wickets),
		})
	}

	balls, err := q.ListBallEvents(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load balls of innings %d: %w", in.ID, err)
	}
	for _, b := range balls {
		inn.Balls = append(inn.Balls, &domain.BallEvent{
			ID:            b.ID,
			InningsID:     b.InningsID,
			StrikerID:     b.StrikerID,
			NonStrikerID:  b.NonStrikerID,
			BowlerID:      b.BowlerID,
			Runs:          int(b.Runs),
			Extras:        b.Extras,
			WicketType:    b.WicketType,
			WicketTakerID: b.WicketTakerID,
			DismissedID:   b.DismissedID,
			Legal:         b.Legal,
			CreatedAt:     b.CreatedAt,
		})
	}

	inn.SyncCreaseFlags()
	return inn, nil
}

// save writes every part of m that may have changed. Rows with a zero id are
// new; ball events are never rewritten.
func (r *MatchRepository) save(ctx context.Context, q *db.Queries, m *domain.Match, now time.Time) error {
	if err := q.UpdateMatch(ctx, db.UpdateMatchParams{
		State:       string(m.State),
		Result:      m.Result,
		FinalizedAt: m.FinalizedAt,
		UpdatedAt:   now,
		ID:          m.ID,
	}); err != nil {
		return fmt.Errorf("failed to update match %d: %w", m.ID, err)
	}
	m.UpdatedAt = now

	if m.RosterDirty() {
		if err := q.DeleteMatchRoster(ctx, m.ID); err != nil {
			return fmt.Errorf("failed to clear roster of match %d: %w", m.ID, err)
		}
		for i := range m.Roster {
			tp := &m.Roster[i]
			id, err := q.AddMatchPlayer(ctx, db.AddMatchPlayerParams{
				MatchID:  m.ID,
				TeamID:   tp.TeamID,
				PlayerID: tp.PlayerID,
			})
			if err != nil {
				return fmt.Errorf("failed to add player %d to match %d: %w", tp.PlayerID, m.ID, err)
			}
			tp.ID, tp.MatchID = id, m.ID
		}
		m.MarkRosterSaved()
	}

	for _, inn := range m.Innings {
		if err := saveInnings(ctx, q, m.ID, inn); err != nil {
			return err
		}
	}

	for _, c := range m.PendingCredits {
		n, err := q.CreditPlayerCareer(ctx, db.CreditPlayerCareerParams{
			Runs:      int64(c.Runs),
			Wickets:   int64(c.Wickets),
			Matches:   int64(c.Matches),
			UpdatedAt: now,
			ID:        c.PlayerID,
		})
		if err != nil {
			return fmt.Errorf("failed to credit player %d: %w", c.PlayerID, err)
		}
		if n == 0 {
			return fmt.Errorf("failed to credit player %d: %w", c.PlayerID, ErrNotFound)
		}
	}
	if len(m.PendingCredits) > 0 {
		r.logger.Info().
			Int64("match_id", m.ID).
			Int("players", len(m.PendingCredits)).
			Msg("career stats credited")
	}
	m.PendingCredits = nil
	return nil
}

func saveInnings(ctx context.Context, q *db.Queries, matchID int64, inn *domain.Innings) error {
	if inn.ID == 0 {
		id, err := q.CreateInnings(ctx, db.CreateInningsParams{
			MatchID:       matchID,
			Number:        int64(inn.Number),
			BattingTeamID: inn.BattingTeamID,
			BowlingTeamID: inn.BowlingTeamID,
			Target:        int64Ptr(inn.Target),
		})
		if err != nil {
			return fmt.Errorf("failed to create innings %d of match %d: %w", inn.Number, matchID, err)
		}
		inn.ID, inn.MatchID = id, matchID
	}

	if err := q.UpdateInnings(ctx, db.UpdateInningsParams{
		Runs:               int64(inn.Runs),
		Wickets:            int64(inn.Wickets),
		LegalBalls:         int64(inn.LegalBalls),
		Completed:          inn.Completed,
		Target:             int64Ptr(inn.Target),
		StrikerID:          inn.StrikerID,
		NonStrikerID:       inn.NonStrikerID,
		CurrentBowlerID:    inn.CurrentBowlerID,
		CurrentBowlerBalls: int64(inn.CurrentBowlerBalls),
		LastOverBowlerID:   inn.LastOverBowlerID,
		ID:                 inn.ID,
	}); err != nil {
		return fmt.Errorf("failed to update innings %d: %w", inn.ID, err)
	}

	for _, pi := range inn.Batting {
		pi.InningsID = inn.ID
		if pi.ID == 0 {
			id, err := q.CreatePlayerInnings(ctx, db.CreatePlayerInningsParams{
				InningsID: inn.ID,
				PlayerID:  pi.PlayerID,
				Runs:      int64(pi.Runs),
				Balls:     int64(pi.Balls),
				IsOut:     pi.Out,
				Retired:   pi.Retired,
			})
			if err != nil {
				return fmt.Errorf("failed to create batting of player %d: %w", pi.PlayerID, err)
			}
			pi.ID = id
			continue
		}
		if err := q.UpdatePlayerInnings(ctx, db.UpdatePlayerInningsParams{
			Runs:    int64(pi.Runs),
			Balls:   int64(pi.Balls),
			IsOut:   pi.Out,
			Retired: pi.Retired,
			ID:      pi.ID,
		}); err != nil {
			return fmt.Errorf("failed to update batting of player %d: %w", pi.PlayerID, err)
		}
	}

	for _, bi := range inn.Bowling {
		bi.InningsID = inn.ID
		if bi.ID == 0 {
			id, err := q.CreateBowlingInnings(ctx, db.CreateBowlingInningsParams{
				InningsID:    inn.ID,
				PlayerID:     bi.PlayerID,
				Balls:        int64(bi.Balls),
				RunsConceded: int64(bi.RunsConceded),
				Wickets:      int64(bi.Wickets),
			})
			if err != nil {
				return fmt.Errorf("failed to create bowling of player %d: %w", bi.PlayerID, err)
			}
			bi.ID = id
			continue
		}
		if err := q.UpdateBowlingInnings(ctx, db.UpdateBowlingInningsParams{
			Balls:        int64(bi.Balls),
			RunsConceded: int64(bi.RunsConceded),
			Wickets:      int64(bi.Wickets),
			ID:           bi.ID,
		}); err != nil {
			return fmt.Errorf("failed to update bowling of player %d: %w", bi.PlayerID, err)
		}
	}

	for _, ev := range inn.Balls {
		if ev.ID != 0 {
			continue
		}
		ev.InningsID = inn.ID
		id, err := q.CreateBallEvent(ctx, db.CreateBallEventParams{
			InningsID:     inn.ID,
			StrikerID:     ev.StrikerID,
			NonStrikerID:  ev.NonStrikerID,
			BowlerID:      ev.BowlerID,
			Runs:          int64(ev.Runs),
			Extras:        ev.Extras,
			WicketType:    ev.WicketType,
			WicketTakerID: ev.WicketTakerID,
			DismissedID:   ev.DismissedID,
			Legal:         ev.Legal,
			CreatedAt:     ev.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to record ball in innings %d: %w", inn.ID, err)
		}
		ev.ID = id
	}
	return nil
}
