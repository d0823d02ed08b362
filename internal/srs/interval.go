package srs

import "math"

const (
	firstInterval   = 1
	secondInterval  = 6
	// MaxIntervalDays caps an interval at roughly a century.
	MaxIntervalDays = 36500
)

// baseInterval is the unscaled interval for the given repetition count.
func baseInterval(repetitions int, ease float64) int {
	switch repetitions {
	case 0:
		return firstInterval
	case 1:
		return secondInterval
	default:
		days := math.Round(float64(repetitions) * ease)
		if math.IsNaN(days) || days > MaxIntervalDays {
			return MaxIntervalDays
		}
		return int(days)
	}
}

// scaleInterval shrinks an interval by difficulty. Hard halves it, medium takes
// three quarters, easy keeps it.
func scaleInterval(days int, d Difficulty) int {
	var scaled int
	switch d {
	case Hard:
		scaled = int(math.Floor(float64(days) * 0.5))
	case Medium:
		scaled = int(math.Floor(float64(days) * 0.75))
	default:
		scaled = days
	}
	return atLeastOneDay(scaled)
}

func atLeastOneDay(days int) int {
	if days < 1 {
		return 1
	}
	return days
}

// NextInterval returns the next interval in days and the new repetition count.
//
// On the three-level scale repetitions always advance and difficulty only scales
// the interval. On the SM-2 scale a failed review resets repetitions to 0 and the
// interval to 1 day.
func NextInterval(repetitions int, ease float64, g Grade) (interval int, reps int) {
	if repetitions < 0 {
		repetitions = 0
	}
	switch g.Scale {
	case SixLevel:
		if g.Quality < passQuality {
			return firstInterval, 0
		}
		return atLeastOneDay(baseInterval(repetitions, ease)), repetitions + 1
	default:
		return scaleInterval(baseInterval(repetitions, ease), g.Difficulty), repetitions + 1
	}
}
