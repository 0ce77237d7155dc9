package history

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/jgoulah/wakerefresh/pkg/models"
)

// SeedDays is the length of the synthetic history
const SeedDays = 10

var (
	seedCaffeineDoses = []int{0, 80, 120, 160, 200, 260}
	seedMinutes       = []string{"00", "10", "20", "30", "40", "50"}
)

// Seeder generates plausible synthetic history for first use
type Seeder struct {
	rng   *rand.Rand
	newID func() string
}

// NewSeeder returns a seeder. A nil rng uses a time-seeded source and a nil
// newID uses random UUIDs.
func NewSeeder(rng *rand.Rand, newID func() string) *Seeder {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>1))
	}
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	return &Seeder{rng: rng, newID: newID}
}

// Seed returns SeedDays entries, one per day, ending today in ascending order
func (s *Seeder) Seed(today time.Time) []models.Entry {
	start := today.AddDate(0, 0, -(SeedDays - 1))

	entries := make([]models.Entry, 0, SeedDays)
	for i := 0; i < SeedDays; i++ {
		d := start.AddDate(0, 0, i)
		entries = append(entries, models.Entry{
			ID:            s.newID(),
			Date:          d.Format(models.DateLayout),
			WakeTime:      fmt.Sprintf("%02d:%s", 7+s.rng.IntN(2), seedMinutes[s.rng.IntN(len(seedMinutes))]),
			Snooze:        s.rng.IntN(3),
			Energy:        2 + s.rng.IntN(4),
			CaffeineMg:    seedCaffeineDoses[s.rng.IntN(len(seedCaffeineDoses))],
			HydrationPack: s.rng.IntN(2) == 1,
		})
	}
	return entries
}
