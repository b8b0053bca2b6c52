package scoring

import (
	"fmt"

	"cricket-scorer/internal/domain"
)

const ManuallyEnded = "Manually Ended"

// StartInnings opens the next innings. Innings 1 needs an assigned roster;
// innings 2 is opened with the sides swapped once innings 1 is completed.
func (e *Engine) StartInnings(m *domain.Match) (*domain.Innings, error) {
	const op = "start innings"

	switch m.State {
	case domain.StateAwaitingInnings1:
		if len(m.Innings) != 0 {
			return nil, invariantf("match %d awaits innings 1 but has %d innings", m.ID, len(m.Innings))
		}
		if m.RosterSize(m.Team1.ID) < MinSidePlayers || m.RosterSize(m.Team2.ID) < MinSidePlayers {
			return nil, preconditionf(op, "select at least %d players for each side first", MinSidePlayers)
		}
		inn := &domain.Innings{
			MatchID:       m.ID,
			Number:        1,
			BattingTeamID: m.Team1.ID,
			BowlingTeamID: m.Team2.ID,
		}
		m.Innings = append(m.Innings, inn)
		return inn, transition(m, domain.StateInnings1Active)

	case domain.StateAwaitingInnings2:
		first := m.InningsByNumber(1)
		if first == nil || !first.Completed {
			return nil, invariantf("match %d awaits innings 2 without a completed innings 1", m.ID)
		}
		if len(m.Innings) != 1 {
			return nil, invariantf("match %d already has %d innings", m.ID, len(m.Innings))
		}
		target := first.Runs + 1
		inn := &domain.Innings{
			MatchID:       m.ID,
			Number:        2,
			BattingTeamID: first.BowlingTeamID,
			BowlingTeamID: first.BattingTeamID,
			Target:        &target,
		}
		m.Innings = append(m.Innings, inn)
		return inn, transition(m, domain.StateInnings2Active)
	}

	if IsOver(m.State) {
		return nil, precondition(op, ErrMatchOver)
	}
	if inn := m.ActiveInnings(); inn != nil {
		return nil, preconditionf(op, "innings %d is still in progress", inn.Number)
	}
	return nil, invariantf("match %d is %s without an open innings", m.ID, m.State)
}

// EndInnings closes the active innings before its natural limit.
func (e *Engine) EndInnings(m *domain.Match) (Outcome, error) {
	var out Outcome
	inn, err := activeInnings(m, "end innings")
	if err != nil {
		return out, err
	}
	if err := e.closeInnings(m, inn, &out); err != nil {
		return out, err
	}
	return out, nil
}

// EndMatch force-ends the match. The result is settled when both innings
// exist, otherwise the match is recorded as manually ended.
func (e *Engine) EndMatch(m *domain.Match) (Outcome, error) {
	var out Outcome
	if IsOver(m.State) {
		return out, precondition("end match", ErrMatchOver)
	}

	for _, inn := range m.Innings {
		if !inn.Completed {
			inn.Completed = true
			inn.CurrentBowlerID = nil
			inn.CurrentBowlerBalls = 0
		}
	}

	out.InningsCompleted = len(m.Innings) > 0
	out.MatchCompleted = true
	if result, err := ComputeResult(m); err == nil {
		m.Result = result
		out.Result = result
		out.say("%s", result)
		return out, transition(m, domain.StateCompleted)
	}
	m.Result = ManuallyEnded
	out.Result = ManuallyEnded
	out.say("%s", ManuallyEnded)
	return out, transition(m, domain.StateManuallyEnded)
}

// BabyOver voids the balls of the current over: the legal-ball count drops
// back to the start of the over, runs and wickets stay. It returns how many
// balls were voided.
func (e *Engine) BabyOver(m *domain.Match) (int, error) {
	inn, err := activeInnings(m, "baby over")
	if err != nil {
		return 0, err
	}
	voided := inn.LegalBalls % BallsPerOver
	inn.LegalBalls -= voided
	inn.CurrentBowlerBalls = 0
	return voided, nil
}

// Finalize credits career aggregates once per match. A finalized match
// yields no credits, so repeated calls are harmless.
func (e *Engine) Finalize(m *domain.Match) ([]domain.CareerCredit, error) {
	switch m.State {
	case domain.StateFinalized:
		return nil, nil
	case domain.StateCompleted, domain.StateManuallyEnded:
	default:
		return nil, preconditionf("finalize match", "match is still in progress (%s)", m.State)
	}

	credits := CareerCredits(m)
	if err := transition(m, domain.StateFinalized); err != nil {
		return nil, err
	}
	now := e.now()
	m.FinalizedAt = &now
	m.PendingCredits = credits
	return credits, nil
}

// CareerCredits sums a match into per-player deltas, counting the match once
// per distinct player in order of first appearance.
func CareerCredits(m *domain.Match) []domain.CareerCredit {
	idx := make(map[int64]int)
	var credits []domain.CareerCredit
	credit := func(playerID int64) *domain.CareerCredit {
		i, ok := idx[playerID]
		if !ok {
			i = len(credits)
			idx[playerID] = i
			credits = append(credits, domain.CareerCredit{PlayerID: playerID, Matches: 1})
		}
		return &credits[i]
	}
	for _, inn := range m.Innings {
		for _, pi := range inn.Batting {
			credit(pi.PlayerID).Runs += pi.Runs
		}
		for _, bi := range inn.Bowling {
			credit(bi.PlayerID).Wickets += bi.Wickets
		}
	}
	return credits
}

// ComputeResult settles a match whose two innings are both completed.
func ComputeResult(m *domain.Match) (string, error) {
	first, second := m.InningsByNumber(1), m.InningsByNumber(2)
	if first == nil || second == nil || !first.Completed || !second.Completed {
		return "", preconditionf("compute result", "both innings must be completed")
	}
	switch {
	case first.Runs > second.Runs:
		return fmt.Sprintf("%s won by %s", m.TeamName(first.BattingTeamID), plural(first.Runs-second.Runs, "run")), nil
	case second.Runs > first.Runs:
		return winByWickets(m, second), nil
	}
	return "Match tied", nil
}

// winByWickets uses the actual roster of the chasing side: wickets in hand are
// the batters left minus the one who cannot bat alone.
func winByWickets(m *domain.Match, chase *domain.Innings) string {
	left := m.RosterSize(chase.BattingTeamID) - 1 - chase.Wickets
	return fmt.Sprintf("%s won by %s", m.TeamName(chase.BattingTeamID), plural(left, "wicket"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
