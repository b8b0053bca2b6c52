package scoring

import (
	"cricket-scorer/internal/domain"
)

type Scorecard struct {
	MatchID int64         `json:"match_id"`
	Code    string        `json:"code"`
	Team1   string        `json:"team1"`
	Team2   string        `json:"team2"`
	Overs   int           `json:"overs"`
	State   string        `json:"state"`
	Result  string        `json:"result,omitempty"`
	Innings []InningsCard `json:"innings"`
}

type InningsCard struct {
	Number          int            `json:"number"`
	BattingTeam     string         `json:"batting_team"`
	BowlingTeam     string         `json:"bowling_team"`
	Runs            int            `json:"runs"`
	Wickets         int            `json:"wickets"`
	LegalBalls      int            `json:"legal_balls"`
	Overs           string         `json:"overs"`
	RunRate         float64        `json:"run_rate"`
	Extras          ExtrasTally    `json:"extras"`
	Completed       bool           `json:"completed"`
	Target          *int           `json:"target,omitempty"`
	RunsNeeded      *int           `json:"runs_needed,omitempty"`
	BallsRemaining  int            `json:"balls_remaining"`
	RequiredRunRate *float64       `json:"required_run_rate,omitempty"`
	StrikerID       *int64         `json:"striker_id"`
	NonStrikerID    *int64         `json:"non_striker_id"`
	CurrentBowlerID *int64         `json:"current_bowler_id"`
	BallsThisOver   int            `json:"balls_this_over"`
	Partnership     Partnership    `json:"partnership"`
	Batting         []BatterLine   `json:"batting"`
	Bowling         []BowlerLine   `json:"bowling"`
	FallOfWickets   []FallOfWicket `json:"fall_of_wickets"`
	YetToBat        []RosterLine   `json:"yet_to_bat"`
}

type ExtrasTally struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Total   int `json:"total"`
}

type BatterLine struct {
	PlayerID   int64   `json:"player_id"`
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	StrikeRate float64 `json:"strike_rate"`
	Out        bool    `json:"out"`
	HowOut     string  `json:"how_out,omitempty"`
	Retired    bool    `json:"retired"`
	OnStrike   bool    `json:"on_strike"`
	NonStriker bool    `json:"non_striker"`
}

type BowlerLine struct {
	PlayerID     int64   `json:"player_id"`
	Name         string  `json:"name"`
	Overs        string  `json:"overs"`
	Balls        int     `json:"balls"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Economy      float64 `json:"economy"`
}

type RosterLine struct {
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
}

func BuildScorecard(m *domain.Match) Scorecard {
	sc := Scorecard{
		MatchID: m.ID,
		Code:    m.Code,
		Team1:   m.Team1.Name,
		Team2:   m.Team2.Name,
		Overs:   m.Overs,
		State:   string(m.State),
		Result:  m.Result,
		Innings: make([]InningsCard, 0, len(m.Innings)),
	}
	for _, inn := range m.Innings {
		sc.Innings = append(sc.Innings, inningsCard(m, inn))
	}
	return sc
}

func inningsCard(m *domain.Match, inn *domain.Innings) InningsCard {
	card := InningsCard{
		Number:          inn.Number,
		BattingTeam:     m.TeamName(inn.BattingTeamID),
		BowlingTeam:     m.TeamName(inn.BowlingTeamID),
		Runs:            inn.Runs,
		Wickets:         inn.Wickets,
		LegalBalls:      inn.LegalBalls,
		Overs:           OversNotation(inn.LegalBalls),
		RunRate:         RunRate(inn.Runs, inn.LegalBalls),
		Completed:       inn.Completed,
		Target:          inn.Target,
		StrikerID:       inn.StrikerID,
		NonStrikerID:    inn.NonStrikerID,
		CurrentBowlerID: inn.CurrentBowlerID,
		BallsThisOver:   inn.CurrentBowlerBalls,
		Partnership:     CurrentPartnership(inn),
		FallOfWickets:   FallOfWickets(m, inn),
	}

	card.BallsRemaining = m.Overs*BallsPerOver - inn.LegalBalls
	if card.BallsRemaining < 0 {
		card.BallsRemaining = 0
	}
	if inn.Target != nil && !inn.Completed {
		need := *inn.Target - inn.Runs
		rrr := RequiredRunRate(*inn.Target, inn.Runs, card.BallsRemaining)
		card.RunsNeeded = &need
		card.RequiredRunRate = &rrr
	}

	howOut := make(map[int64]string)
	for _, ev := range inn.Balls {
		switch {
		case ev.Extras == "WD":
			card.Extras.Wides++
		case ev.Extras != "":
			card.Extras.NoBalls++
		}
		if ev.DismissedID != nil {
			howOut[*ev.DismissedID] = ev.WicketType
		}
	}
	card.Extras.Total = card.Extras.Wides + card.Extras.NoBalls

	batted := make(map[int64]bool, len(inn.Batting))
	for _, pi := range inn.Batting {
		batted[pi.PlayerID] = true
		card.Batting = append(card.Batting, BatterLine{
			PlayerID:   pi.PlayerID,
			Name:       m.PlayerName(pi.PlayerID),
			Runs:       pi.Runs,
			Balls:      pi.Balls,
			StrikeRate: StrikeRate(pi.Runs, pi.Balls),
			Out:        pi.Out,
			HowOut:     howOut[pi.PlayerID],
			Retired:    pi.Retired,
			OnStrike:   pi.OnStrike,
			NonStriker: pi.NonStriker,
		})
	}
	for _, bi := range inn.Bowling {
		card.Bowling = append(card.Bowling, BowlerLine{
			PlayerID:     bi.PlayerID,
			Name:         m.PlayerName(bi.PlayerID),
			Overs:        OversNotation(bi.Balls),
			Balls:        bi.Balls,
			RunsConceded: bi.RunsConceded,
			Wickets:      bi.Wickets,
			Economy:      Economy(bi.RunsConceded, bi.Balls),
		})
	}
	for _, tp := range m.Roster {
		if tp.TeamID == inn.BattingTeamID && !batted[tp.PlayerID] {
			card.YetToBat = append(card.YetToBat, RosterLine{PlayerID: tp.PlayerID, Name: tp.PlayerName})
		}
	}
	return card
}
