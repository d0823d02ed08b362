package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vytor/quizflash/internal/logger"
	"github.com/vytor/quizflash/internal/srs"
)

type simulateOptions struct {
	scale      string
	grades     []string
	responseMs int64
	start      string
	lateDays   int
}

func newSimulateCommand() *cobra.Command {
	opts := simulateOptions{}
	command := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a sequence of grades through the scheduler",
		Long: `Replay a sequence of grades for one card. Each review happens on the
day the previous one scheduled, optionally --late-days after it.`,
		Example: `  srsctl simulate --scale three --grades easy,easy,hard
  srsctl simulate --scale six --grades 5,4,2,5 --response-ms 12000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := simulate(cmd.OutOrStdout(), opts)
			return err
		},
	}

	command.Flags().StringVar(&opts.scale, "scale", "three", "grading scale: three or six")
	command.Flags().StringSliceVar(&opts.grades, "grades", nil, "comma separated grades (hard/medium/easy or 0-5)")
	command.Flags().Int64Var(&opts.responseMs, "response-ms", 5000, "response time of every review in milliseconds")
	command.Flags().StringVar(&opts.start, "start", time.Now().UTC().Format(time.DateOnly), "date of the first review (YYYY-MM-DD)")
	command.Flags().IntVar(&opts.lateDays, "late-days", 0, "days each review happens after it was due")
	_ = command.MarkFlagRequired("grades")

	return command
}

func parseGrades(scale srs.Scale, raw []string) ([]srs.Grade, error) {
	grades := make([]srs.Grade, 0, len(raw))
	for _, r := range raw {
		var (
			g   srs.Grade
			err error
		)
		switch scale {
		case srs.SixLevel:
			q, convErr := strconv.Atoi(strings.TrimSpace(r))
			if convErr != nil {
				return nil, fmt.Errorf("invalid quality %q: %w", r, convErr)
			}
			g, err = srs.GradeQuality(q)
		default:
			var d srs.Difficulty
			if d, err = srs.ParseDifficulty(r); err == nil {
				g, err = srs.GradeDifficulty(d)
			}
		}
		if err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, nil
}

// simulate prints one row per review and returns the results in order.
func simulate(w io.Writer, opts simulateOptions) ([]srs.Result, error) {
	log := logger.Default().WithPrefix("simulate")

	scale, err := srs.ParseScale(opts.scale)
	if err != nil {
		return nil, err
	}
	grades, err := parseGrades(scale, opts.grades)
	if err != nil {
		return nil, err
	}
	if len(grades) == 0 {
		return nil, fmt.Errorf("at least one grade is required")
	}
	at, err := time.ParseInLocation(time.DateOnly, opts.start, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", opts.start, err)
	}

	sched := srs.New(srs.WithClock(srs.ClockFunc(func() time.Time { return at })))
	state := srs.NewState()

	header := color.New(color.Bold)
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)

	header.Fprintf(w, "%-3s %-10s %-6s %-5s %-4s %-8s %-10s %-6s %-6s %s\n",
		"#", "reviewed", "grade", "ease", "reps", "interval", "due", "points", "streak", "total")

	results := make([]srs.Result, 0, len(grades))
	for i, g := range grades {
		res, err := sched.Review(state, srs.Event{Grade: g, ResponseTimeMs: opts.responseMs})
		if err != nil {
			return results, fmt.Errorf("review %d: %w", i+1, err)
		}
		log.Debug("review %d: %+v", i+1, res)

		row := pass
		if !res.Passed {
			row = fail
		}
		row.Fprintf(w, "%-3d %-10s %-6s %-5.2f %-4d %-8d %-10s %-6d %-6d %d\n",
			i+1,
			res.LastReviewed.Format(time.DateOnly),
			gradeLabel(g),
			res.EaseFactor,
			res.Repetitions,
			res.Interval,
			res.DueDate.Format(time.DateOnly),
			res.Points,
			res.Streak,
			res.TotalPoints,
		)

		results = append(results, res)
		state = res.State
		at = res.DueDate.AddDate(0, 0, opts.lateDays)
	}
	return results, nil
}

func gradeLabel(g srs.Grade) string {
	if g.Scale == srs.SixLevel {
		return strconv.Itoa(g.Quality)
	}
	return string(g.Difficulty)
}
