package srs

import "math"

const (
	// DefaultEaseFactor is the ease of an item that has never been reviewed.
	DefaultEaseFactor = 2.5
	// MinEaseFactor is the hard floor for the ease factor.
	MinEaseFactor = 1.3
)

// easeDelta is the SM-2 family adjustment centred on the top score of a scale.
func easeDelta(quality, top int) float64 {
	d := float64(top - quality)
	return 0.1 - d*(0.08+d*0.02)
}

func clampEase(ef float64) float64 {
	if math.IsNaN(ef) || ef < MinEaseFactor {
		return MinEaseFactor
	}
	return ef
}

// NextEaseFactor updates the ease factor for a grade.
//
// The three-level scale is centred at 3 and always recomputes. The SM-2 scale is
// centred at 5 and leaves the ease untouched when the review failed.
func NextEaseFactor(ease float64, g Grade) float64 {
	switch g.Scale {
	case SixLevel:
		if g.Quality < passQuality {
			return clampEase(ease)
		}
		return clampEase(ease + easeDelta(g.Quality, 5))
	default:
		return clampEase(ease + easeDelta(g.Quality, 3))
	}
}
