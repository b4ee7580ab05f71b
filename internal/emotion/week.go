package emotion

import (
	"time"

	"github.com/your-org/emoup/internal/models"
)

// WeekBounds returns the Unix timestamps of the rolling week containing ref:
// Monday 00:00:00 in ref's location through the following Monday 00:00:00.
// Adjacent weeks produce contiguous ranges (end of week N equals start of
// week N+1). A pure function of ref; callers inject the clock.
func WeekBounds(ref time.Time) (start, end int64) {
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(ref.Weekday()) + 6) % 7
	y, m, d := ref.AddDate(0, 0, -offset).Date()
	monday := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
	return monday.Unix(), monday.AddDate(0, 0, 7).Unix()
}

// Aggregate folds a time-ordered emotion event sequence into a histogram of
// the events captured within [start, end]. The sequence is walked newest
// first and the scan stops at the first event outside the window: with
// append order equal to time order the remainder is guaranteed older, so
// nothing in the window is missed. Returns an empty histogram, never an
// error, when no events fall inside the window.
func Aggregate(states []models.EmotionEvent, start, end int64) models.Histogram {
	hist := make(models.Histogram)
	for i := len(states) - 1; i >= 0; i-- {
		e := states[i]
		if e.Captured < start || e.Captured > end {
			break
		}
		hist[e.Emotion]++
	}
	return hist
}
