package srs_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/quizflash/internal/srs"
)

func TestGradeDifficulty(t *testing.T) {
	tests := []struct {
		in         srs.Difficulty
		quality    int
		multiplier float64
	}{
		{srs.Hard, 0, 2.0},
		{srs.Medium, 1, 1.5},
		{srs.Easy, 2, 1.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			g, err := srs.GradeDifficulty(tt.in)
			require.NoError(t, err)
			assert.Equal(t, srs.ThreeLevel, g.Scale)
			assert.Equal(t, tt.quality, g.Quality)
			assert.Equal(t, tt.multiplier, g.Multiplier())
		})
	}
}

func TestGradeQuality(t *testing.T) {
	for q := 0; q <= 5; q++ {
		g, err := srs.GradeQuality(q)
		require.NoError(t, err)
		assert.Equal(t, q, g.Quality)
	}

	for _, q := range []int{-1, 6, 100} {
		_, err := srs.GradeQuality(q)
		assert.ErrorIs(t, err, srs.ErrInvalidInput, "quality %d", q)
	}

	g, _ := srs.GradeQuality(2)
	assert.Equal(t, srs.Hard, g.Difficulty)
	g, _ = srs.GradeQuality(3)
	assert.Equal(t, srs.Medium, g.Difficulty)
	g, _ = srs.GradeQuality(5)
	assert.Equal(t, srs.Easy, g.Difficulty)
}

func TestParseDifficultyAndScale(t *testing.T) {
	d, err := srs.ParseDifficulty(" Easy ")
	require.NoError(t, err)
	assert.Equal(t, srs.Easy, d)

	_, err = srs.ParseDifficulty("impossible")
	assert.ErrorIs(t, err, srs.ErrInvalidInput)

	s, err := srs.ParseScale("sm2")
	require.NoError(t, err)
	assert.Equal(t, srs.SixLevel, s)

	s, err = srs.ParseScale("three")
	require.NoError(t, err)
	assert.Equal(t, srs.ThreeLevel, s)

	_, err = srs.ParseScale("ten")
	assert.ErrorIs(t, err, srs.ErrInvalidInput)
}

func TestNextEaseFactor(t *testing.T) {
	hard, _ := srs.GradeDifficulty(srs.Hard)
	medium, _ := srs.GradeDifficulty(srs.Medium)
	easy, _ := srs.GradeDifficulty(srs.Easy)

	assert.InDelta(t, 2.18, srs.NextEaseFactor(2.5, hard), 1e-9)
	assert.InDelta(t, 2.36, srs.NextEaseFactor(2.5, medium), 1e-9)
	assert.InDelta(t, 2.5, srs.NextEaseFactor(2.5, easy), 1e-9)
	assert.Equal(t, srs.MinEaseFactor, srs.NextEaseFactor(1.4, hard))

	q5, _ := srs.GradeQuality(5)
	q3, _ := srs.GradeQuality(3)
	q1, _ := srs.GradeQuality(1)
	assert.InDelta(t, 2.6, srs.NextEaseFactor(2.5, q5), 1e-9)
	assert.InDelta(t, 2.36, srs.NextEaseFactor(2.5, q3), 1e-9)
	assert.Equal(t, 2.5, srs.NextEaseFactor(2.5, q1), "failing quality leaves ease alone")
	assert.Equal(t, srs.MinEaseFactor, srs.NextEaseFactor(1.35, q3))
}

func TestNextInterval_ThreeLevel(t *testing.T) {
	tests := []struct {
		name         string
		repetitions  int
		ease         float64
		difficulty   srs.Difficulty
		wantInterval int
	}{
		{"first review easy", 0, 2.5, srs.Easy, 1},
		{"first review hard stays at one day", 0, 2.5, srs.Hard, 1},
		{"second review easy", 1, 2.5, srs.Easy, 6},
		{"second review medium", 1, 2.5, srs.Medium, 4},
		{"second review hard", 1, 2.5, srs.Hard, 3},
		{"nth review easy", 4, 2.5, srs.Easy, 10},
		{"nth review medium", 4, 2.5, srs.Medium, 7},
		{"nth review hard", 3, 1.3, srs.Hard, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := srs.GradeDifficulty(tt.difficulty)
			require.NoError(t, err)
			interval, reps := srs.NextInterval(tt.repetitions, tt.ease, g)
			assert.Equal(t, tt.wantInterval, interval)
			assert.Equal(t, tt.repetitions+1, reps)
		})
	}
}

func TestNextInterval_SixLevel(t *testing.T) {
	pass, _ := srs.GradeQuality(4)
	fail, _ := srs.GradeQuality(1)

	interval, reps := srs.NextInterval(0, 2.5, pass)
	assert.Equal(t, 1, interval)
	assert.Equal(t, 1, reps)

	interval, reps = srs.NextInterval(1, 2.5, pass)
	assert.Equal(t, 6, interval)
	assert.Equal(t, 2, reps)

	interval, reps = srs.NextInterval(6, 2.5, pass)
	assert.Equal(t, 15, interval)
	assert.Equal(t, 7, reps)

	interval, reps = srs.NextInterval(6, 2.5, fail)
	assert.Equal(t, 1, interval)
	assert.Equal(t, 0, reps)
}

func TestNextInterval_NegativeRepetitionsTreatedAsNew(t *testing.T) {
	g, _ := srs.GradeDifficulty(srs.Easy)
	interval, reps := srs.NextInterval(-4, 2.5, g)
	assert.Equal(t, 1, interval)
	assert.Equal(t, 1, reps)
}

func TestNextInterval_CappedAtMaximum(t *testing.T) {
	easy, _ := srs.GradeDifficulty(srs.Easy)
	hard, _ := srs.GradeDifficulty(srs.Hard)

	interval, _ := srs.NextInterval(4, 1e300, easy)
	assert.Equal(t, srs.MaxIntervalDays, interval)

	interval, _ = srs.NextInterval(4, 1e300, hard)
	assert.Equal(t, srs.MaxIntervalDays/2, interval)

	interval, _ = srs.NextInterval(4, math.NaN(), easy)
	assert.Equal(t, srs.MaxIntervalDays, interval)
}

func TestNextEaseFactor_NaNFallsToFloor(t *testing.T) {
	hard, _ := srs.GradeDifficulty(srs.Hard)
	assert.Equal(t, srs.MinEaseFactor, srs.NextEaseFactor(math.NaN(), hard))
}

func TestPoints(t *testing.T) {
	tests := []struct {
		name       string
		ms         int64
		difficulty srs.Difficulty
		streak     int
		want       int
	}{
		{"instant easy no streak", 0, srs.Easy, 0, 20},
		{"slow easy no streak", 60000, srs.Easy, 0, 10},
		{"exactly thirty seconds", 30000, srs.Medium, 0, 15},
		{"fifteen seconds medium streak three", 15000, srs.Medium, 3, 29},
		{"instant hard capped streak", 0, srs.Hard, 10, 80},
		{"streak beyond cap", 0, srs.Hard, 50, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, srs.Points(tt.ms, tt.difficulty, tt.streak))
		})
	}
}

func TestPoints_Bounded(t *testing.T) {
	for _, d := range []srs.Difficulty{srs.Hard, srs.Medium, srs.Easy} {
		for _, ms := range []int64{0, 1, 999, 15000, 29999, 30000, 45000, 10 * 60 * 1000} {
			for streak := 0; streak <= 25; streak++ {
				p := srs.Points(ms, d, streak)
				assert.GreaterOrEqual(t, p, 0)
				assert.LessOrEqual(t, p, 80)
			}
		}
	}
}

func TestMultipliers(t *testing.T) {
	assert.Equal(t, 2.0, srs.SpeedMultiplier(0))
	assert.Equal(t, 1.5, srs.SpeedMultiplier(15000))
	assert.Equal(t, 1.0, srs.SpeedMultiplier(90000))

	assert.Equal(t, 1.0, srs.StreakMultiplier(0))
	assert.InDelta(t, 1.5, srs.StreakMultiplier(5), 1e-9)
	assert.Equal(t, 2.0, srs.StreakMultiplier(10))
	assert.Equal(t, 2.0, srs.StreakMultiplier(40))
}

func TestNextStreak(t *testing.T) {
	assert.Equal(t, 0, srs.NextStreak(7, srs.Hard))
	assert.Equal(t, 8, srs.NextStreak(7, srs.Medium))
	assert.Equal(t, 1, srs.NextStreak(0, srs.Easy))
}

func TestIsDue(t *testing.T) {
	due := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, srs.IsDue(due, due), "due at the exact instant")
	assert.True(t, srs.IsDue(due.Add(time.Nanosecond), due))
	assert.False(t, srs.IsDue(due.Add(-time.Nanosecond), due))
	assert.Equal(t, srs.IsDue(due, due), srs.IsDue(due, due))
}

func TestDueDate(t *testing.T) {
	last := time.Date(2024, 2, 27, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 3, 18, 0, 0, 0, time.UTC), srs.DueDate(last, 5))
}
