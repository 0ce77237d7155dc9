// Package analytics computes derived views over journal history: trailing
// windows, streaks, averages, comparative insights and leaderboard points.
//
// Every function is pure. History is passed in by the caller and never
// modified; "today" is an explicit argument so results are reproducible.
package analytics

import (
	"sort"
	"time"

	"github.com/jgoulah/wakerefresh/internal/score"
	"github.com/jgoulah/wakerefresh/pkg/models"
)

// ScoredEntry pairs an entry with its derived score
type ScoredEntry struct {
	models.Entry
	RefreshScore int `json:"refreshScore"`
}

// Point is one sample of the trend chart
type Point struct {
	Label    string `json:"label"` // MM-DD
	Energy   int    `json:"energy"`
	Caffeine int    `json:"caffeine"`
	Refresh  int    `json:"refresh"`
}

// dayOf truncates t to its calendar date in t's own location
func dayOf(t time.Time) string {
	return t.Format(models.DateLayout)
}

// Recent returns the entries dated within the trailing windowDays days
// ending today (inclusive), in ascending date order. Entries with
// unparseable dates are skipped.
func Recent(history []models.Entry, windowDays int, today time.Time) []models.Entry {
	if windowDays <= 0 {
		return []models.Entry{}
	}

	last := dayOf(today)
	first := dayOf(today.AddDate(0, 0, -(windowDays - 1)))

	out := make([]models.Entry, 0, len(history))
	for _, e := range history {
		if _, ok := e.Day(); !ok {
			continue
		}
		// ISO dates order lexically
		if e.Date < first || e.Date > last {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// View returns the windowed history with scores attached
func View(history []models.Entry, windowDays int, today time.Time) []ScoredEntry {
	return WithScores(Recent(history, windowDays, today))
}

// WithScores pairs each entry with its score, preserving order
func WithScores(entries []models.Entry) []ScoredEntry {
	out := make([]ScoredEntry, len(entries))
	for i, e := range entries {
		out[i] = ScoredEntry{Entry: e, RefreshScore: score.Score(e)}
	}
	return out
}

// Series converts a scored view into chart points
func Series(view []ScoredEntry) []Point {
	points := make([]Point, len(view))
	for i, e := range view {
		label := e.Date
		if len(label) == len(models.DateLayout) {
			label = label[5:]
		}
		points[i] = Point{Label: label, Energy: e.Energy, Caffeine: e.CaffeineMg, Refresh: e.RefreshScore}
	}
	return points
}

// Streak counts consecutive logged days walking backward from today. A
// missing entry for today yields 0.
func Streak(history []models.Entry, today time.Time) int {
	dates := make(map[string]struct{}, len(history))
	for _, e := range history {
		dates[e.Date] = struct{}{}
	}

	streak := 0
	for d := today; ; d = d.AddDate(0, 0, -1) {
		if _, ok := dates[dayOf(d)]; !ok {
			return streak
		}
		streak++
	}
}

// LoggedToday reports whether history has an entry for today
func LoggedToday(history []models.Entry, today time.Time) bool {
	day := dayOf(today)
	for _, e := range history {
		if e.Date == day {
			return true
		}
	}
	return false
}
