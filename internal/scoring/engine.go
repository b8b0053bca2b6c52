package scoring

import (
	"fmt"
	"time"

	"cricket-scorer/internal/domain"
)

// Engine applies scoring transitions to an already loaded match. It keeps no
// state of its own; callers serialize access per match and persist the result.
type Engine struct {
	now func() time.Time
}

func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Delivery is one ball as entered by the scorer.
type Delivery struct {
	StrikerID     *int64
	BowlerID      *int64
	Extras        string
	Runs          int
	WicketType    string
	WicketTakerID *int64
	DismissedID   *int64
}

type Outcome struct {
	OverComplete     bool
	InningsCompleted bool
	MatchCompleted   bool
	Target           *int
	Result           string
	Messages         []string
}

func (o *Outcome) say(format string, args ...any) {
	o.Messages = append(o.Messages, fmt.Sprintf(format, args...))
}

const opBall = "record ball"

// ApplyDelivery validates d against the active innings of m and, only if it
// is acceptable, applies it in full.
func (e *Engine) ApplyDelivery(m *domain.Match, d Delivery) (Outcome, error) {
	var out Outcome

	inn, err := activeInnings(m, opBall)
	if err != nil {
		return out, err
	}
	if inn.StrikerID == nil || inn.NonStrikerID == nil {
		return out, precondition(opBall, ErrOpenersNotSet)
	}

	x, err := ParseExtras(d.Extras, d.Runs)
	if err != nil {
		return out, err
	}

	strikerID, nonStrikerID := *inn.StrikerID, *inn.NonStrikerID
	if d.StrikerID != nil && *d.StrikerID != strikerID {
		if *d.StrikerID == nonStrikerID {
			strikerID, nonStrikerID = nonStrikerID, strikerID
		} else {
			if err := checkBatter(m, inn, *d.StrikerID, opBall); err != nil {
				return out, err
			}
			strikerID = *d.StrikerID
		}
	}

	bowlerID, err := resolveBowler(m, inn, d.BowlerID)
	if err != nil {
		return out, err
	}

	kind := NormalizeDismissal(d.WicketType)
	var dismissedID int64
	if kind != "" {
		if err := validateDismissal(kind, x); err != nil {
			return out, err
		}
		dismissedID = strikerID
		if d.DismissedID != nil {
			dismissedID = *d.DismissedID
		}
		if dismissedID != strikerID && dismissedID != nonStrikerID {
			return out, invalid("dismissed", "player %d is not at the crease", dismissedID)
		}
		if d.WicketTakerID != nil && !m.OnSide(inn.BowlingTeamID, *d.WicketTakerID) {
			return out, invalid("wicket_taker", "player %d is not on the fielding side", *d.WicketTakerID)
		}
		if inn.Wickets+1 > allOutAt(m, inn) {
			return out, invariantf("innings %d would have %d wickets with a roster of %d",
				inn.Number, inn.Wickets+1, m.RosterSize(inn.BattingTeamID))
		}
	} else if d.WicketTakerID != nil || d.DismissedID != nil {
		return out, invalid("wicket_type", "required when a dismissal is recorded")
	}

	// Everything is validated; from here on the delivery applies in full.
	inn.StrikerID, inn.NonStrikerID = &strikerID, &nonStrikerID

	// 1. bowler of the over
	inn.CurrentBowlerID = &bowlerID

	// 2. audit trail
	ev := &domain.BallEvent{
		InningsID:     inn.ID,
		StrikerID:     strikerID,
		NonStrikerID:  nonStrikerID,
		BowlerID:      bowlerID,
		Runs:          x.BatRuns,
		Extras:        x.Code,
		WicketType:    kind,
		WicketTakerID: d.WicketTakerID,
		Legal:         x.Legal(),
		CreatedAt:     e.now(),
	}
	if kind != "" {
		ev.DismissedID = &dismissedID
	}
	inn.Balls = append(inn.Balls, ev)

	// 3. lazy per-innings records
	pi := ensurePlayerInnings(inn, strikerID)
	bi := ensureBowlingInnings(inn, bowlerID)

	// 4. totals
	total := x.BatRuns + x.Runs()
	inn.Runs += total
	bi.RunsConceded += total

	// 5. legal ball tallies
	if x.Legal() {
		inn.LegalBalls++
		pi.Balls++
		bi.Balls++
		inn.CurrentBowlerBalls++
	}

	// 6. over boundary
	if inn.CurrentBowlerBalls >= BallsPerOver {
		inn.LastOverBowlerID = inn.CurrentBowlerID
		inn.CurrentBowlerID = nil
		inn.CurrentBowlerBalls = 0
		out.OverComplete = true
		out.say("Over complete! Please choose next bowler.")
	}

	// 7. batter's runs
	pi.Runs += x.BatRuns

	// 8. wicket
	if kind != "" {
		ensurePlayerInnings(inn, dismissedID).Out = true
		inn.Wickets++
		if CreditsBowler(kind) {
			bi.Wickets++
		}
		switch dismissedID {
		case *inn.StrikerID:
			inn.StrikerID = nil
		case *inn.NonStrikerID:
			inn.NonStrikerID = nil
		}
		out.say("%s out (%s).", playerLabel(m, dismissedID), kind)
	}

	// 9. strike rotation; both swaps may apply to the same ball
	if x.Legal() && x.BatRuns%2 == 1 {
		swapEnds(inn)
	}
	if x.Legal() && inn.LegalBalls > 0 && inn.LegalBalls%BallsPerOver == 0 {
		swapEnds(inn)
	}

	// 10. derived flags
	inn.SyncCreaseFlags()

	if err := e.checkCompletion(m, inn, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (e *Engine) checkCompletion(m *domain.Match, inn *domain.Innings, out *Outcome) error {
	if inn.Number == 2 {
		if first := m.InningsByNumber(1); first != nil && inn.Runs > first.Runs {
			inn.Completed = true
			m.Result = winByWickets(m, inn)
			if err := transition(m, domain.StateCompleted); err != nil {
				return err
			}
			out.InningsCompleted = true
			out.MatchCompleted = true
			out.Result = m.Result
			out.say("%s", m.Result)
			return nil
		}
	}
	if inn.LegalBalls >= m.Overs*BallsPerOver || inn.Wickets >= allOutAt(m, inn) {
		return e.closeInnings(m, inn, out)
	}
	return nil
}

// closeInnings ends inn and advances the match: innings 1 sets the target and
// opens innings 2, innings 2 settles the result.
func (e *Engine) closeInnings(m *domain.Match, inn *domain.Innings, out *Outcome) error {
	inn.Completed = true
	inn.CurrentBowlerID = nil
	inn.CurrentBowlerBalls = 0
	out.InningsCompleted = true

	if inn.Number == 1 {
		if err := transition(m, domain.StateAwaitingInnings2); err != nil {
			return err
		}
		second, err := e.StartInnings(m)
		if err != nil {
			return err
		}
		out.Target = second.Target
		out.say("Innings 1 completed. Target: %d runs.", *second.Target)
		return nil
	}

	result, err := ComputeResult(m)
	if err != nil {
		return err
	}
	m.Result = result
	if err := transition(m, domain.StateCompleted); err != nil {
		return err
	}
	out.MatchCompleted = true
	out.Result = result
	out.say("%s", result)
	return nil
}

func resolveBowler(m *domain.Match, inn *domain.Innings, supplied *int64) (int64, error) {
	if supplied == nil {
		if inn.CurrentBowlerID == nil {
			return 0, precondition(opBall, ErrNoBowler)
		}
		return *inn.CurrentBowlerID, nil
	}
	id := *supplied
	if !m.OnSide(inn.BowlingTeamID, id) {
		return 0, invalid("bowler", "player %d is not on the bowling side", id)
	}
	if inn.CurrentBowlerID == nil && inn.LastOverBowlerID != nil && *inn.LastOverBowlerID == id {
		return 0, preconditionf(opBall, "%s bowled the previous over", playerLabel(m, id))
	}
	return id, nil
}

// activeInnings returns the innings scoring applies to and checks that the
// match state agrees with it.
func activeInnings(m *domain.Match, op string) (*domain.Innings, error) {
	if IsOver(m.State) {
		return nil, precondition(op, ErrMatchOver)
	}
	inn := m.ActiveInnings()
	if inn == nil {
		return nil, precondition(op, ErrNoActiveInnings)
	}
	if m.State != activeState(inn.Number) {
		return nil, invariantf("innings %d is open but match is %s", inn.Number, m.State)
	}
	return inn, nil
}

// allOutAt is the wicket count that ends an innings: the last batter cannot
// bat alone.
func allOutAt(m *domain.Match, inn *domain.Innings) int {
	return m.RosterSize(inn.BattingTeamID) - 1
}

func ensurePlayerInnings(inn *domain.Innings, playerID int64) *domain.PlayerInnings {
	if pi := inn.PlayerInnings(playerID); pi != nil {
		return pi
	}
	pi := &domain.PlayerInnings{InningsID: inn.ID, PlayerID: playerID}
	inn.Batting = append(inn.Batting, pi)
	return pi
}

func ensureBowlingInnings(inn *domain.Innings, playerID int64) *domain.BowlingInnings {
	if bi := inn.BowlingInnings(playerID); bi != nil {
		return bi
	}
	bi := &domain.BowlingInnings{InningsID: inn.ID, PlayerID: playerID}
	inn.Bowling = append(inn.Bowling, bi)
	return bi
}

func swapEnds(inn *domain.Innings) {
	inn.StrikerID, inn.NonStrikerID = inn.NonStrikerID, inn.StrikerID
}

func playerLabel(m *domain.Match, id int64) string {
	if name := m.PlayerName(id); name != "" {
		return name
	}
	return fmt.Sprintf("player %d", id)
}
