package analytics

import (
	"sort"
	"time"

	"github.com/jgoulah/wakerefresh/internal/score"
	"github.com/jgoulah/wakerefresh/pkg/models"
)

// Points awarded per logged morning in the window, plus per streak day
const (
	HighMorningPoints = 8
	MorningPoints     = 4
	StreakDayPoints   = 2
)

// RankedCompetitor is a leaderboard row with its 1-based position
type RankedCompetitor struct {
	models.Competitor
	Position int `json:"position"`
}

// Points computes the challenge points for the user's own history
func Points(history []models.Entry, windowDays int, today time.Time) int {
	points := 0
	for _, e := range Recent(history, windowDays, today) {
		if score.High(score.Score(e)) {
			points += HighMorningPoints
		} else {
			points += MorningPoints
		}
	}
	return points + StreakDayPoints*Streak(history, today)
}

// Self builds the user's own leaderboard row from history
func Self(history []models.Entry, windowDays int, today time.Time) models.Competitor {
	return models.Competitor{
		Name:   "You",
		Emoji:  "⚡",
		Points: Points(history, windowDays, today),
		Streak: Streak(history, today),
		Self:   true,
	}
}

// Rank merges self into the roster and orders by points, highest first.
// The sort is stable and self goes in first, so it wins ties with
// competitors. limit <= 0 keeps every row.
func Rank(self models.Competitor, roster []models.Competitor, limit int) []RankedCompetitor {
	self.Self = true
	all := make([]models.Competitor, 0, len(roster)+1)
	all = append(all, self)
	for _, c := range roster {
		c.Self = false
		all = append(all, c)
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Points > all[j].Points })

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	ranked := make([]RankedCompetitor, len(all))
	for i, c := range all {
		ranked[i] = RankedCompetitor{Competitor: c, Position: i + 1}
	}
	return ranked
}
