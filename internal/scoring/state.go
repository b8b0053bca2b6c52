package scoring

import "cricket-scorer/internal/domain"

var transitions = map[domain.MatchState][]domain.MatchState{
	domain.StateAwaitingInnings1: {domain.StateInnings1Active, domain.StateManuallyEnded},
	domain.StateInnings1Active:   {domain.StateAwaitingInnings2, domain.StateCompleted, domain.StateManuallyEnded},
	domain.StateAwaitingInnings2: {domain.StateInnings2Active, domain.StateCompleted, domain.StateManuallyEnded},
	domain.StateInnings2Active:   {domain.StateCompleted, domain.StateManuallyEnded},
	domain.StateCompleted:        {domain.StateFinalized},
	domain.StateManuallyEnded:    {domain.StateFinalized},
}

func CanTransition(from, to domain.MatchState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func transition(m *domain.Match, to domain.MatchState) error {
	if !CanTransition(m.State, to) {
		return invariantf("match %d cannot move from %s to %s", m.ID, m.State, to)
	}
	m.State = to
	return nil
}

// IsOver reports whether no more scoring can happen in the match.
func IsOver(s domain.MatchState) bool {
	return s == domain.StateCompleted || s == domain.StateManuallyEnded || s == domain.StateFinalized
}

func activeState(number int) domain.MatchState {
	if number == 1 {
		return domain.StateInnings1Active
	}
	return domain.StateInnings2Active
}
