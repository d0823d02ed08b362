// Package achievements defines the gamification milestones unlocked from a
// user's accumulated review stats.
package achievements

import "github.com/vytor/quizflash/internal/models"

const (
	FirstReview = "first_review"
	Streak10    = "streak_10"
	Streak50    = "streak_50"
	Reviews100  = "reviews_100"
	Points1000  = "points_1000"
	Points10000 = "points_10000"
)

// Rule is a single milestone.
type Rule struct {
	Code        string
	Description string
	Met         func(models.UserStats) bool
}

// Rules lists every milestone in the order they are usually reached.
var Rules = []Rule{
	{FirstReview, "Reviewed a first card", func(s models.UserStats) bool { return s.ReviewsCount >= 1 }},
	{Streak10, "Ten reviews in a row without a hard answer", func(s models.UserStats) bool { return s.BestStreak >= 10 }},
	{Reviews100, "One hundred reviews", func(s models.UserStats) bool { return s.ReviewsCount >= 100 }},
	{Points1000, "Earned 1,000 points", func(s models.UserStats) bool { return s.TotalPoints >= 1000 }},
	{Streak50, "Fifty reviews in a row without a hard answer", func(s models.UserStats) bool { return s.BestStreak >= 50 }},
	{Points10000, "Earned 10,000 points", func(s models.UserStats) bool { return s.TotalPoints >= 10000 }},
}

// Earned returns the codes of every milestone the stats satisfy.
func Earned(s models.UserStats) []string {
	var codes []string
	for _, r := range Rules {
		if r.Met(s) {
			codes = append(codes, r.Code)
		}
	}
	return codes
}
