package srs

import (
	"fmt"
	"strings"

	"github.com/vytor/quizflash/internal/errors"
)

// Scale selects how a review outcome is expressed.
type Scale int

const (
	// ThreeLevel grades reviews as hard, medium or easy.
	ThreeLevel Scale = iota
	// SixLevel grades reviews with the SM-2 quality score 0-5.
	SixLevel
)

func (s Scale) String() string {
	switch s {
	case ThreeLevel:
		return "three"
	case SixLevel:
		return "six"
	default:
		return fmt.Sprintf("scale(%d)", int(s))
	}
}

// ParseScale accepts "three"/"3" and "six"/"6"/"sm2".
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "three", "3", "three-level":
		return ThreeLevel, nil
	case "six", "6", "six-level", "sm2", "sm-2":
		return SixLevel, nil
	default:
		return 0, errors.NewInvalidInputError("scale", fmt.Sprintf("unknown scale %q", s))
	}
}

// Difficulty is the reviewer's perceived difficulty on the three-level scale.
type Difficulty string

const (
	Hard   Difficulty = "hard"
	Medium Difficulty = "medium"
	Easy   Difficulty = "easy"
)

// ParseDifficulty validates a difficulty label.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Hard, Medium, Easy:
		return d, nil
	default:
		return "", errors.NewInvalidInputError("difficulty", fmt.Sprintf("must be one of hard, medium, easy (got %q)", s))
	}
}

// Multiplier is the points/interval weight of a difficulty.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case Hard:
		return 2.0
	case Medium:
		return 1.5
	default:
		return 1.0
	}
}

// Quality is the three-level numeric score of a difficulty.
func (d Difficulty) Quality() int {
	switch d {
	case Hard:
		return 0
	case Medium:
		return 1
	default:
		return 2
	}
}

const (
	minSM2Quality = 0
	maxSM2Quality = 5
	passQuality   = 3
)

// Grade is a review outcome mapped onto a scale.
type Grade struct {
	Scale      Scale
	Quality    int
	Difficulty Difficulty
}

// Multiplier returns the reward multiplier for the grade.
func (g Grade) Multiplier() float64 {
	return g.Difficulty.Multiplier()
}

// GradeDifficulty maps a three-level label to a Grade.
func GradeDifficulty(d Difficulty) (Grade, error) {
	d, err := ParseDifficulty(string(d))
	if err != nil {
		return Grade{}, err
	}
	return Grade{Scale: ThreeLevel, Quality: d.Quality(), Difficulty: d}, nil
}

// GradeQuality maps an SM-2 quality score to a Grade. Scores below the pass
// threshold count as hard, 3 as medium and 4-5 as easy.
func GradeQuality(q int) (Grade, error) {
	if q < minSM2Quality || q > maxSM2Quality {
		return Grade{}, errors.NewInvalidInputError("quality", fmt.Sprintf("must be between %d and %d (got %d)", minSM2Quality, maxSM2Quality, q))
	}
	d := Easy
	switch {
	case q < passQuality:
		d = Hard
	case q == passQuality:
		d = Medium
	}
	return Grade{Scale: SixLevel, Quality: q, Difficulty: d}, nil
}
