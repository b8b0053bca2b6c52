package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cricket-scorer/internal/api"
	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const usage = `usage: scorecli <command> [flags]

commands:
  match        create a match, pick both sides and start innings 1
  show         print the scorecard of a match
  openers      set the two opening batters
  ball         record one delivery
  batsman      send in a new batter
  end-innings  close the current innings early
  end          abandon the match
`

func main() {
	log := logger.Console(os.Stderr, zerolog.InfoLevel)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	baseURL := os.Getenv("SCORER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	client := api.NewScorerClient(baseURL)
	if err := run(ctx, client, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, c *api.ScorerClient, cmd string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	matchID := fs.Int64("match", 0, "match id")

	var st *api.State
	var err error
	switch cmd {
	case "match":
		overs := fs.Int("overs", 0, "overs per innings (0 uses the server default)")
		team1 := fs.String("team1", "", "comma separated player ids batting first")
		team2 := fs.String("team2", "", "comma separated player ids bowling first")
		if err := fs.Parse(args); err != nil {
			return err
		}
		t1, err := parseIDs(*team1)
		if err != nil {
			return err
		}
		t2, err := parseIDs(*team2)
		if err != nil {
			return err
		}
		if st, err = c.CreateMatch(ctx, *overs); err != nil {
			return err
		}
		id := st.Scorecard.MatchID
		if _, err = c.AssignRoster(ctx, id, t1, t2); err != nil {
			return err
		}
		if st, err = c.StartInnings(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(out, "match %d created, share code %s\n", id, st.Scorecard.Code)

	case "show":
		code := fs.String("code", "", "share code instead of -match")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *code != "" {
			st, err = c.MatchByCode(ctx, *code)
		} else if err = needMatch(*matchID); err == nil {
			st, err = c.Match(ctx, *matchID)
		}

	case "openers":
		striker := fs.Int64("striker", 0, "opening striker id")
		nonStriker := fs.Int64("non-striker", 0, "opening non-striker id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err = needMatch(*matchID); err == nil {
			st, err = c.SetOpeners(ctx, *matchID, *striker, *nonStriker)
		}

	case "ball":
		var b api.Ball
		runs := fs.Int("runs", 0, "runs off the bat")
		extras := fs.String("extras", "", "WD, NB or NB+<runs>")
		bowler := fs.Int64("bowler", 0, "bowler id, required at the start of an over")
		striker := fs.Int64("striker", 0, "striker override")
		wicket := fs.String("wicket", "", "bowled, caught, lbw, run-out, stumped or hit-wicket")
		taker := fs.Int64("taker", 0, "fielder credited with the dismissal")
		dismissed := fs.Int64("dismissed", 0, "batter dismissed, for run outs at the other end")
		if err := fs.Parse(args); err != nil {
			return err
		}
		b.Runs = *runs
		b.Extras = *extras
		b.WicketType = *wicket
		b.BowlerID = optional(*bowler)
		b.StrikerID = optional(*striker)
		b.WicketTakerID = optional(*taker)
		b.DismissedID = optional(*dismissed)
		if err = needMatch(*matchID); err == nil {
			st, err = c.RecordBall(ctx, *matchID, b)
		}

	case "batsman":
		player := fs.Int64("player", 0, "incoming batter id")
		asStriker := fs.Bool("striker", false, "take strike")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err = needMatch(*matchID); err == nil {
			st, err = c.AddBatsman(ctx, *matchID, *player, *asStriker)
		}

	case "end-innings", "end":
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err = needMatch(*matchID); err == nil {
			if cmd == "end" {
				st, err = c.EndMatch(ctx, *matchID)
			} else {
				st, err = c.EndInnings(ctx, *matchID)
			}
		}

	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	if err != nil {
		return err
	}
	printState(out, st)
	return nil
}

func needMatch(id int64) error {
	if id <= 0 {
		return fmt.Errorf("-match is required")
	}
	return nil
}

func optional(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid player id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printState(w io.Writer, st *api.State) {
	sc := st.Scorecard
	if st.Outcome != nil {
		for _, msg := range st.Outcome.Messages {
			fmt.Fprintln(w, msg)
		}
	}
	for _, inn := range sc.Innings {
		fmt.Fprintf(w, "%s %d/%d (%s ov, RR %.2f)", inn.BattingTeam, inn.Runs, inn.Wickets, inn.Overs, inn.RunRate)
		if inn.RunsNeeded != nil && !inn.Completed {
			fmt.Fprintf(w, " need %d off %d", *inn.RunsNeeded, inn.BallsRemaining)
		}
		fmt.Fprintln(w)
		if inn.Completed {
			continue
		}
		for _, b := range inn.Batting {
			if b.OnStrike || b.NonStriker {
				mark := " "
				if b.OnStrike {
					mark = "*"
				}
				fmt.Fprintf(w, "  %s%s %d (%d)\n", mark, b.Name, b.Runs, b.Balls)
			}
		}
		for _, b := range inn.Bowling {
			if inn.CurrentBowlerID != nil && b.PlayerID == *inn.CurrentBowlerID {
				fmt.Fprintf(w, "  %s %s-%d-%d\n", b.Name, b.Overs, b.RunsConceded, b.Wickets)
			}
		}
	}
	if sc.Result != "" {
		fmt.Fprintln(w, sc.Result)
	}
	fmt.Fprintf(w, "[match %d %s, %s]\n", sc.MatchID, sc.Code, sc.State)
}
