package analytics

import (
	"fmt"
	"math"

	"github.com/jgoulah/wakerefresh/internal/score"
	"github.com/jgoulah/wakerefresh/pkg/models"
)

// Prompts returned instead of a number when a comparison has no data on one side
const (
	PromptNoData    = "Log a few days to unlock insights."
	PromptHydration = "Try alternating hydration packs every other day to compare impact."
	PromptSnooze    = "Aim for zero snoozes for one week to test impact."
)

// Summary holds the averages shown on the dashboard
type Summary struct {
	Count       int     `json:"count"`
	AvgEnergy   float64 `json:"avgEnergy"`
	AvgCaffeine float64 `json:"avgCaffeine"`
	AvgScore    float64 `json:"avgScore"`
}

// Insight is a comparison between two partitions of the window. When
// Comparable is false, Delta is zero and Message carries a prompt.
type Insight struct {
	Title      string  `json:"title"`
	Comparable bool    `json:"comparable"`
	Delta      float64 `json:"delta"`
	Message    string  `json:"message"`
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Summarize averages energy, caffeine and score over entries
func Summarize(entries []models.Entry) Summary {
	energy := make([]float64, len(entries))
	caffeine := make([]float64, len(entries))
	scores := make([]float64, len(entries))
	for i, e := range entries {
		energy[i] = float64(e.Energy)
		caffeine[i] = float64(e.CaffeineMg)
		scores[i] = float64(score.Score(e))
	}
	return Summary{
		Count:       len(entries),
		AvgEnergy:   Mean(energy),
		AvgCaffeine: Mean(caffeine),
		AvgScore:    Mean(scores),
	}
}

// meanScore averages the scores of entries matching keep
func meanScore(entries []models.Entry, keep func(models.Entry) bool) (float64, int) {
	var scores []float64
	for _, e := range entries {
		if keep(e) {
			scores = append(scores, float64(score.Score(e)))
		}
	}
	return Mean(scores), len(scores)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// compare builds an insight from the mean score difference between the
// entries matching better and those matching worse
func compare(entries []models.Entry, title, prompt, format string, better, worse func(models.Entry) bool) Insight {
	if len(entries) == 0 {
		return Insight{Title: title, Message: PromptNoData}
	}

	betterMean, betterCount := meanScore(entries, better)
	otherMean, otherCount := meanScore(entries, worse)
	if betterCount == 0 || otherCount == 0 {
		return Insight{Title: title, Message: prompt}
	}

	delta := roundTenth(betterMean - otherMean)
	return Insight{
		Title:      title,
		Comparable: true,
		Delta:      delta,
		Message:    fmt.Sprintf(format, delta),
	}
}

// HydrationInsight compares mornings with and without a hydration pack
// (hydrated minus not hydrated)
func HydrationInsight(entries []models.Entry) Insight {
	return compare(entries,
		"Personalized Insight",
		PromptHydration,
		"Hydration appears to boost your Refresh Score by %.1f points on average.",
		func(e models.Entry) bool { return e.HydrationPack },
		func(e models.Entry) bool { return !e.HydrationPack },
	)
}

// SnoozeInsight compares zero-snooze mornings with snoozed ones
// (zero snooze minus snoozed)
func SnoozeInsight(entries []models.Entry) Insight {
	return compare(entries,
		"Snooze Behavior",
		PromptSnooze,
		"Zero-snooze mornings correlate with %+.1f Refresh Score.",
		func(e models.Entry) bool { return e.Snooze == 0 },
		func(e models.Entry) bool { return e.Snooze > 0 },
	)
}
