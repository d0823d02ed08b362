// Package srs implements the spaced-repetition scheduling engine.
//
// Everything here is pure: the caller loads a State, hands it to a Scheduler
// together with an Event and persists the returned Result. The scheduler never
// reads the wall clock directly; it asks its Clock.
package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/vytor/quizflash/internal/errors"
)

var (
	ErrInvalidInput = errors.ErrInvalidInput
	ErrInvalidState = errors.ErrInvalidState
)

// State is the scheduling state of one (user, item) pair.
type State struct {
	EaseFactor   float64
	Repetitions  int
	Interval     int
	Streak       int
	DueDate      time.Time
	LastReviewed time.Time
	TotalPoints  int
}

// NewState returns the state of an item that has never been reviewed.
func NewState() State {
	return State{
		EaseFactor: DefaultEaseFactor,
		Interval:   firstInterval,
	}
}

// Validate rejects states that break the scheduling invariants.
func (s State) Validate() error {
	switch {
	case math.IsNaN(s.EaseFactor) || math.IsInf(s.EaseFactor, 0):
		return errors.NewInvalidStateError("ease_factor", fmt.Sprintf("%v is not a finite number", s.EaseFactor))
	case s.EaseFactor < MinEaseFactor:
		return errors.NewInvalidStateError("ease_factor", fmt.Sprintf("%.2f is below %.1f", s.EaseFactor, MinEaseFactor))
	case s.Repetitions < 0:
		return errors.NewInvalidStateError("repetitions", "must not be negative")
	case s.Interval < 1:
		return errors.NewInvalidStateError("interval", "must be at least one day")
	case s.Streak < 0:
		return errors.NewInvalidStateError("streak", "must not be negative")
	case s.TotalPoints < 0:
		return errors.NewInvalidStateError("total_points", "must not be negative")
	}
	return nil
}

// Event is a single review submitted by the caller.
type Event struct {
	Grade          Grade
	ResponseTimeMs int64
}

// Result is the outcome of a review.
type Result struct {
	State
	Points int
	Passed bool
}

// Scheduler computes review outcomes.
type Scheduler struct {
	clock Clock
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// New creates a Scheduler reading time from the system clock unless overridden.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{clock: SystemClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// IsDue reports whether an item with the given state should be presented now.
func (s *Scheduler) IsDue(state State) bool {
	return IsDue(s.clock.Now(), state.DueDate)
}

// Review applies one review event to a state. On error the returned Result is
// the zero value and the input state must be kept as is.
func (s *Scheduler) Review(state State, ev Event) (Result, error) {
	if ev.ResponseTimeMs < 0 {
		return Result{}, errors.NewInvalidInputError("response_time_ms", "must not be negative")
	}
	g, err := regrade(ev.Grade)
	if err != nil {
		return Result{}, err
	}
	if err := state.Validate(); err != nil {
		return Result{}, err
	}

	now := s.clock.Now()
	ease := NextEaseFactor(state.EaseFactor, g)
	interval, reps := NextInterval(state.Repetitions, ease, g)
	points := Points(ev.ResponseTimeMs, g.Difficulty, state.Streak)

	next := State{
		EaseFactor:   ease,
		Repetitions:  reps,
		Interval:     interval,
		Streak:       NextStreak(state.Streak, g.Difficulty),
		LastReviewed: now,
		DueDate:      DueDate(now, interval),
		TotalPoints:  state.TotalPoints + points,
	}
	return Result{
		State:  next,
		Points: points,
		Passed: passed(g),
	}, nil
}

// regrade re-validates a grade that may have been built by hand.
func regrade(g Grade) (Grade, error) {
	switch g.Scale {
	case ThreeLevel:
		return GradeDifficulty(g.Difficulty)
	case SixLevel:
		return GradeQuality(g.Quality)
	default:
		return Grade{}, errors.NewInvalidInputError("scale", fmt.Sprintf("unknown scale %s", g.Scale))
	}
}

func passed(g Grade) bool {
	if g.Scale == SixLevel {
		return g.Quality >= passQuality
	}
	return g.Difficulty != Hard
}
