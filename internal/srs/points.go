package srs

import "math"

const (
	// BasePoints is the award for a slow, easy review with no streak.
	BasePoints = 10

	fastAnswerWindowMs = 30000.0
	maxStreakBonus     = 2.0
	streakStep         = 0.1
)

// SpeedMultiplier rewards answers faster than 30s, up to 2x. Slow answers never
// drop below 1x.
func SpeedMultiplier(responseTimeMs int64) float64 {
	if responseTimeMs < 0 {
		responseTimeMs = 0
	}
	return math.Max(1, 2-float64(responseTimeMs)/fastAnswerWindowMs)
}

// StreakMultiplier caps at 2x after ten consecutive successes.
func StreakMultiplier(streak int) float64 {
	if streak < 0 {
		streak = 0
	}
	return math.Min(maxStreakBonus, 1+float64(streak)*streakStep)
}

// Points computes the reward for a review given the streak held before it.
func Points(responseTimeMs int64, d Difficulty, streak int) int {
	p := BasePoints * SpeedMultiplier(responseTimeMs) * d.Multiplier() * StreakMultiplier(streak)
	return int(math.Round(p))
}
