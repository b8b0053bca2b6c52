package scoring

import (
	"cricket-scorer/internal/domain"
)

// MinSidePlayers is the smallest side that can bat: one wicket in hand needs
// two batters.
const MinSidePlayers = 2

// AssignRoster fixes which players make up each side. The roster can be
// replaced until innings 1 starts.
func (e *Engine) AssignRoster(m *domain.Match, team1, team2 []domain.Player) error {
	if m.State != domain.StateAwaitingInnings1 {
		return preconditionf("assign players", "sides are fixed once the match has started")
	}
	if len(team1) < MinSidePlayers || len(team2) < MinSidePlayers {
		return invalid("players", "select at least %d players for each side", MinSidePlayers)
	}

	seen := make(map[int64]bool, len(team1)+len(team2))
	roster := make([]domain.TeamPlayer, 0, len(team1)+len(team2))
	add := func(team domain.Team, players []domain.Player) error {
		for _, p := range players {
			if seen[p.ID] {
				return invalid("players", "%s is selected more than once", p.Name)
			}
			seen[p.ID] = true
			roster = append(roster, domain.TeamPlayer{
				MatchID:    m.ID,
				TeamID:     team.ID,
				PlayerID:   p.ID,
				PlayerName: p.Name,
			})
		}
		return nil
	}
	if err := add(m.Team1, team1); err != nil {
		return err
	}
	if err := add(m.Team2, team2); err != nil {
		return err
	}
	m.SetRoster(roster)
	return nil
}

func (e *Engine) SetOpeners(m *domain.Match, strikerID, nonStrikerID int64) error {
	const op = "set openers"
	inn, err := activeInnings(m, op)
	if err != nil {
		return err
	}
	if strikerID == nonStrikerID {
		return invalid("openers", "choose two different openers")
	}
	for _, id := range []int64{strikerID, nonStrikerID} {
		if err := checkBatter(m, inn, id, op); err != nil {
			return err
		}
	}
	ensurePlayerInnings(inn, strikerID)
	ensurePlayerInnings(inn, nonStrikerID)
	inn.StrikerID, inn.NonStrikerID = &strikerID, &nonStrikerID
	inn.SyncCreaseFlags()
	return nil
}

// AddBatsman sends a new batter to the vacant end. With asStriker the new
// batter takes strike and the batter already in moves to the other end.
func (e *Engine) AddBatsman(m *domain.Match, playerID int64, asStriker bool) error {
	const op = "add batsman"
	inn, err := activeInnings(m, op)
	if err != nil {
		return err
	}
	if err := checkBatter(m, inn, playerID, op); err != nil {
		return err
	}
	if inn.AtCrease(playerID) {
		return preconditionf(op, "%s is already at the crease", playerLabel(m, playerID))
	}

	id := playerID
	switch {
	case inn.StrikerID == nil:
		inn.StrikerID = &id
	case inn.NonStrikerID == nil:
		if asStriker {
			inn.NonStrikerID = inn.StrikerID
			inn.StrikerID = &id
		} else {
			inn.NonStrikerID = &id
		}
	default:
		return preconditionf(op, "both ends are occupied")
	}
	ensurePlayerInnings(inn, playerID)
	inn.SyncCreaseFlags()
	return nil
}

// SetStriker gives strike to playerID. The non-striker swaps ends; anyone else
// replaces the current striker.
func (e *Engine) SetStriker(m *domain.Match, playerID int64) error {
	const op = "set striker"
	inn, err := activeInnings(m, op)
	if err != nil {
		return err
	}
	if err := checkBatter(m, inn, playerID, op); err != nil {
		return err
	}
	switch {
	case inn.StrikerID != nil && *inn.StrikerID == playerID:
	case inn.NonStrikerID != nil && *inn.NonStrikerID == playerID:
		swapEnds(inn)
	default:
		id := playerID
		inn.StrikerID = &id
		ensurePlayerInnings(inn, playerID)
	}
	inn.SyncCreaseFlags()
	return nil
}

func (e *Engine) RetireBatsman(m *domain.Match, playerID int64) error {
	const op = "retire batsman"
	inn, err := activeInnings(m, op)
	if err != nil {
		return err
	}
	pi := inn.PlayerInnings(playerID)
	if pi == nil {
		return preconditionf(op, "%s has not batted in this innings", playerLabel(m, playerID))
	}
	if pi.Out {
		return preconditionf(op, "%s is already out", playerLabel(m, playerID))
	}
	pi.Retired = true
	if inn.StrikerID != nil && *inn.StrikerID == playerID {
		inn.StrikerID = nil
	}
	if inn.NonStrikerID != nil && *inn.NonStrikerID == playerID {
		inn.NonStrikerID = nil
	}
	inn.SyncCreaseFlags()
	return nil
}

// checkBatter rejects players who may not come to the crease.
func checkBatter(m *domain.Match, inn *domain.Innings, playerID int64, op string) error {
	if !m.OnSide(inn.BattingTeamID, playerID) {
		return invalid("player", "player %d is not on the batting side", playerID)
	}
	if pi := inn.PlayerInnings(playerID); pi != nil {
		if pi.Out {
			return preconditionf(op, "%s is already out in this innings", playerLabel(m, playerID))
		}
		if pi.Retired {
			return preconditionf(op, "%s retired in this innings", playerLabel(m, playerID))
		}
	}
	return nil
}
