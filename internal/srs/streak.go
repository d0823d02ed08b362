package srs

// NextStreak continues the streak on easy and medium reviews and breaks it on hard.
func NextStreak(streak int, d Difficulty) int {
	if d == Hard {
		return 0
	}
	if streak < 0 {
		streak = 0
	}
	return streak + 1
}
