package srs

import "time"

// IsDue reports whether an item scheduled for due is eligible at now. An item
// is due at the exact scheduled instant.
func IsDue(now, due time.Time) bool {
	return !now.Before(due)
}

// DueDate is lastReviewed plus interval calendar days.
func DueDate(lastReviewed time.Time, interval int) time.Time {
	return lastReviewed.AddDate(0, 0, interval)
}
