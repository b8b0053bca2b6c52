package scoring

import (
	"strconv"
	"strings"
)

const (
	BallsPerOver = 6
	MaxBatRuns   = 6
)

type ExtraKind int

const (
	NoExtra ExtraKind = iota
	Wide
	NoBall
)

// Extras is a parsed extras code: "", "WD", "NB" or "NB+<n>".
type Extras struct {
	Kind    ExtraKind
	Code    string
	BatRuns int
}

func (x Extras) Legal() bool { return x.Kind == NoExtra }

// Runs is the penalty run charged to the bowler, not credited to the batter.
func (x Extras) Runs() int {
	if x.Kind == NoExtra {
		return 0
	}
	return 1
}

// ParseExtras classifies an extras code. runs is the bat-runs input of the
// delivery and is used for plain and no-extra deliveries.
func ParseExtras(code string, runs int) (Extras, error) {
	if runs < 0 || runs > MaxBatRuns {
		return Extras{}, invalid("runs", "must be between 0 and %d, got %d", MaxBatRuns, runs)
	}
	c := strings.ToUpper(strings.TrimSpace(code))
	switch {
	case c == "":
		return Extras{Kind: NoExtra, BatRuns: runs}, nil
	case c == "WD":
		return Extras{Kind: Wide, Code: c}, nil
	case c == "NB":
		return Extras{Kind: NoBall, Code: c}, nil
	case strings.HasPrefix(c, "NB+"):
		n, err := strconv.Atoi(strings.TrimPrefix(c, "NB+"))
		if err != nil {
			return Extras{}, invalid("extras", "bad no-ball runs in %q", code)
		}
		if n < 0 || n > MaxBatRuns {
			return Extras{}, invalid("extras", "no-ball runs must be between 0 and %d, got %d", MaxBatRuns, n)
		}
		return Extras{Kind: NoBall, Code: "NB+" + strconv.Itoa(n), BatRuns: n}, nil
	}
	return Extras{}, invalid("extras", "unknown extras code %q", code)
}

const (
	Bowled    = "bowled"
	Caught    = "caught"
	LBW       = "lbw"
	RunOut    = "run-out"
	Stumped   = "stumped"
	HitWicket = "hit-wicket"
)

var dismissals = map[string]bool{
	Bowled: true, Caught: true, LBW: true, RunOut: true, Stumped: true, HitWicket: true,
}

var (
	offWide   = map[string]bool{RunOut: true, Stumped: true, HitWicket: true}
	offNoBall = map[string]bool{RunOut: true}
)

// NormalizeDismissal lowercases a dismissal and folds "_" and " " into "-".
func NormalizeDismissal(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "-", " ", "-").Replace(s)
}

func validateDismissal(kind string, x Extras) error {
	if !dismissals[kind] {
		return invalid("wicket_type", "unknown dismissal %q", kind)
	}
	switch x.Kind {
	case Wide:
		if !offWide[kind] {
			return invalid("wicket_type", "%s is not possible off a wide", kind)
		}
	case NoBall:
		if !offNoBall[kind] {
			return invalid("wicket_type", "%s is not possible off a no-ball", kind)
		}
	}
	return nil
}

// CreditsBowler reports whether the dismissal counts in the bowler's figures.
func CreditsBowler(kind string) bool {
	return kind != RunOut
}
