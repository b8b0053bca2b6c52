package scoring

import (
	"fmt"
	"math"

	"cricket-scorer/internal/domain"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func StrikeRate(runs, balls int) float64 {
	if balls == 0 {
		return 0
	}
	return round2(float64(runs) / float64(balls) * 100)
}

// Economy is runs conceded per six legal balls.
func Economy(runsConceded, balls int) float64 {
	if balls == 0 {
		return 0
	}
	return round2(float64(runsConceded) / float64(balls) * BallsPerOver)
}

func RunRate(runs, legalBalls int) float64 {
	return Economy(runs, legalBalls)
}

func RequiredRunRate(target, runs, ballsRemaining int) float64 {
	if ballsRemaining <= 0 {
		return 0
	}
	need := target - runs
	if need < 0 {
		need = 0
	}
	return round2(float64(need) / float64(ballsRemaining) * BallsPerOver)
}

// OversNotation renders legal balls the way scorers write them, e.g. 75 -> "12.3".
func OversNotation(legalBalls int) string {
	return fmt.Sprintf("%d.%d", legalBalls/BallsPerOver, legalBalls%BallsPerOver)
}

type Partnership struct {
	Runs  int `json:"runs"`
	Balls int `json:"balls"`
}

// CurrentPartnership totals runs and legal balls since the last wicket.
func CurrentPartnership(inn *domain.Innings) Partnership {
	var p Partnership
	for _, ev := range inn.Balls {
		if ev.WicketType != "" {
			p = Partnership{}
			continue
		}
		p.Runs += eventRuns(ev)
		if ev.Legal {
			p.Balls++
		}
	}
	return p
}

type FallOfWicket struct {
	Wicket   int    `json:"wicket"`
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Overs    string `json:"overs"`
}

func FallOfWickets(m *domain.Match, inn *domain.Innings) []FallOfWicket {
	var (
		fow   []FallOfWicket
		score int
		legal int
	)
	for _, ev := range inn.Balls {
		score += eventRuns(ev)
		if ev.Legal {
			legal++
		}
		if ev.WicketType == "" || ev.DismissedID == nil {
			continue
		}
		fow = append(fow, FallOfWicket{
			Wicket:   len(fow) + 1,
			PlayerID: *ev.DismissedID,
			Name:     m.PlayerName(*ev.DismissedID),
			Score:    score,
			Overs:    OversNotation(legal),
		})
	}
	return fow
}

// eventRuns is everything a ball added to the total: bat runs plus the
// one-run penalty of a wide or no-ball.
func eventRuns(ev *domain.BallEvent) int {
	if ev.Extras != "" {
		return ev.Runs + 1
	}
	return ev.Runs
}
