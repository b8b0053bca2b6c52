package domain

import (
	"time"
)

type MatchState string

const (
	StateAwaitingInnings1 MatchState = "awaiting_innings_1"
	StateInnings1Active   MatchState = "innings_1_active"
	StateAwaitingInnings2 MatchState = "awaiting_innings_2"
	StateInnings2Active   MatchState = "innings_2_active"
	StateCompleted        MatchState = "completed"
	StateManuallyEnded    MatchState = "manually_ended"
	StateFinalized        MatchState = "finalized"
)

type Team struct {
	ID   int64
	Name string
}

type Player struct {
	ID            int64
	Name          string
	CareerRuns    int
	CareerWickets int
	CareerMatches int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TeamPlayer binds a player to one side of a match.
type TeamPlayer struct {
	ID         int64
	MatchID    int64
	TeamID     int64
	PlayerID   int64
	PlayerName string
}

type Match struct {
	ID          int64
	Code        string
	Team1       Team
	Team2       Team
	Overs       int
	State       MatchState
	Result      string
	Innings     []*Innings
	Roster      []TeamPlayer
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FinalizedAt *time.Time

	// filled by finalization, applied and cleared by the store
	PendingCredits []CareerCredit
	rosterDirty    bool
}

type Innings struct {
	ID                 int64
	MatchID            int64
	Number             int
	BattingTeamID      int64
	BowlingTeamID      int64
	Runs               int
	Wickets            int
	LegalBalls         int
	Completed          bool
	Target             *int
	StrikerID          *int64
	NonStrikerID       *int64
	CurrentBowlerID    *int64
	CurrentBowlerBalls int
	LastOverBowlerID   *int64

	Batting []*PlayerInnings
	Bowling []*BowlingInnings
	Balls   []*BallEvent
}

type PlayerInnings struct {
	ID        int64
	InningsID int64
	PlayerID  int64
	Runs      int
	Balls     int
	Out       bool
	Retired   bool

	// derived from Innings.StrikerID / NonStrikerID
	OnStrike   bool
	NonStriker bool
}

type BowlingInnings struct {
	ID           int64
	InningsID    int64
	PlayerID     int64
	Balls        int
	RunsConceded int
	Wickets      int
}

type BallEvent struct {
	ID            int64
	InningsID     int64
	StrikerID     int64
	NonStrikerID  int64
	BowlerID      int64
	Runs          int
	Extras        string
	WicketType    string
	WicketTakerID *int64
	DismissedID   *int64
	Legal         bool
	CreatedAt     time.Time
}

// CareerCredit is what one finished match adds to a player's lifetime aggregates.
type CareerCredit struct {
	PlayerID int64
	Runs     int
	Wickets  int
	Matches  int
}

type MatchSummary struct {
	ID        int64
	Code      string
	Team1     Team
	Team2     Team
	Overs     int
	State     MatchState
	Result    string
	CreatedAt time.Time
}

func (m *Match) TeamName(teamID int64) string {
	switch teamID {
	case m.Team1.ID:
		return m.Team1.Name
	case m.Team2.ID:
		return m.Team2.Name
	}
	return ""
}

func (m *Match) RosterSize(teamID int64) int {
	n := 0
	for _, tp := range m.Roster {
		if tp.TeamID == teamID {
			n++
		}
	}
	return n
}

func (m *Match) OnSide(teamID, playerID int64) bool {
	for _, tp := range m.Roster {
		if tp.TeamID == teamID && tp.PlayerID == playerID {
			return true
		}
	}
	return false
}

func (m *Match) PlayerName(playerID int64) string {
	for _, tp := range m.Roster {
		if tp.PlayerID == playerID {
			return tp.PlayerName
		}
	}
	return ""
}

func (m *Match) InningsByNumber(n int) *Innings {
	for _, inn := range m.Innings {
		if inn.Number == n {
			return inn
		}
	}
	return nil
}

// ActiveInnings returns the lowest-numbered innings that is not completed.
func (m *Match) ActiveInnings() *Innings {
	var active *Innings
	for _, inn := range m.Innings {
		if inn.Completed {
			continue
		}
		if active == nil || inn.Number < active.Number {
			active = inn
		}
	}
	return active
}

func (m *Match) SetRoster(roster []TeamPlayer) {
	m.Roster = roster
	m.rosterDirty = true
}

func (m *Match) RosterDirty() bool {
	return m.rosterDirty
}

func (m *Match) MarkRosterSaved() {
	m.rosterDirty = false
}

func (inn *Innings) PlayerInnings(playerID int64) *PlayerInnings {
	for _, pi := range inn.Batting {
		if pi.PlayerID == playerID {
			return pi
		}
	}
	return nil
}

func (inn *Innings) BowlingInnings(playerID int64) *BowlingInnings {
	for _, bi := range inn.Bowling {
		if bi.PlayerID == playerID {
			return bi
		}
	}
	return nil
}

func (inn *Innings) AtCrease(playerID int64) bool {
	return (inn.StrikerID != nil && *inn.StrikerID == playerID) ||
		(inn.NonStrikerID != nil && *inn.NonStrikerID == playerID)
}

// SyncCreaseFlags recomputes the striker flags from the authoritative ids.
func (inn *Innings) SyncCreaseFlags() {
	for _, pi := range inn.Batting {
		pi.OnStrike = inn.StrikerID != nil && *inn.StrikerID == pi.PlayerID
		pi.NonStriker = inn.NonStrikerID != nil && *inn.NonStrikerID == pi.PlayerID
	}
}

func (m *Match) Summary() MatchSummary {
	return MatchSummary{
		ID:        m.ID,
		Code:      m.Code,
		Team1:     m.Team1,
		Team2:     m.Team2,
		Overs:     m.Overs,
		State:     m.State,
		Result:    m.Result,
		CreatedAt: m.CreatedAt,
	}
}
