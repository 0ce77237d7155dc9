// Package score derives the 0-100 refresh score from a single entry.
package score

import (
	"math"

	"github.com/jgoulah/wakerefresh/pkg/models"
)

const (
	// Min and Max bound every score
	Min = 0
	Max = 100

	// HighThreshold is the score at which a morning counts as a high refresh
	HighThreshold = 70

	base             = 50.0
	energyWeight     = 10.0
	caffeineDivisor  = 50.0
	snoozePenalty    = 5.0
	hydrationBonus   = 5.0
	lowBandThreshold = 50
)

// Band is a coarse label for displaying a score
type Band string

const (
	BandLow  Band = "low"
	BandOK   Band = "ok"
	BandHigh Band = "high"
)

// Raw returns the unrounded, unclamped score
func Raw(e models.Entry) float64 {
	raw := base +
		energyWeight*float64(e.Energy) -
		float64(e.CaffeineMg)/caffeineDivisor -
		snoozePenalty*float64(e.Snooze)
	if e.HydrationPack {
		raw += hydrationBonus
	}
	return raw
}

// Score returns the refresh score for an entry. Halves round away from zero,
// then the result is clamped to [Min, Max], so out-of-range inputs still
// produce a presentable value.
func Score(e models.Entry) int {
	rounded := math.Round(Raw(e))
	switch {
	case math.IsNaN(rounded) || rounded < Min:
		return Min
	case rounded > Max:
		return Max
	}
	return int(rounded)
}

// High reports whether the score meets HighThreshold
func High(s int) bool {
	return s >= HighThreshold
}

// BandOf returns the display band for a score
func BandOf(s int) Band {
	switch {
	case s >= HighThreshold:
		return BandHigh
	case s >= lowBandThreshold:
		return BandOK
	default:
		return BandLow
	}
}
