// Package history loads and saves the journal through a key-value store.
//
// The whole history lives under one key as a JSON array and is rewritten on
// every change. Missing or unreadable history is replaced by a seeded one
// rather than reported to the caller.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jgoulah/wakerefresh/internal/database"
	"github.com/jgoulah/wakerefresh/pkg/models"
)

// Storage keys
const (
	EntriesKey     = "wur.entries"
	PreferencesKey = "wur.pilotSurvey"
)

// Outcome tells the caller where loaded history came from
type Outcome int

const (
	// Loaded means history was read from the store
	Loaded Outcome = iota
	// Seeded means nothing usable was stored and a synthetic history was written
	Seeded
)

func (o Outcome) String() string {
	if o == Seeded {
		return "seeded"
	}
	return "loaded"
}

// LoadResult is the history returned by Load together with its origin
type LoadResult struct {
	Entries []models.Entry
	Outcome Outcome
}

// Gateway reads and writes journal state in a Store. Load, Save and Upsert
// are serialized, so each change is fully persisted before the next starts.
type Gateway struct {
	mu     sync.Mutex
	store  database.Store
	logger *zap.Logger
	now    func() time.Time
	seeder *Seeder
}

// Option customizes a Gateway
type Option func(*Gateway)

// WithLogger sets the logger used to report reseeding
func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithClock sets the source of "today" for seeding
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// WithSeeder replaces the synthetic history generator
func WithSeeder(s *Seeder) Option {
	return func(g *Gateway) { g.seeder = s }
}

// NewGateway creates a gateway over store
func NewGateway(store database.Store, opts ...Option) *Gateway {
	g := &Gateway{
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.seeder == nil {
		g.seeder = NewSeeder(nil, nil)
	}
	return g
}

// Load returns the stored history in insertion order. When nothing is
// stored, or the stored value is not a JSON array of entries, a 10-day
// history ending today is generated, persisted and returned with
// Outcome Seeded. Only store failures are returned as errors.
func (g *Gateway) Load(ctx context.Context) (LoadResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.load(ctx)
}

// Peek returns the stored history without seeding or writing anything.
// ok is false when nothing usable is stored.
func (g *Gateway) Peek(ctx context.Context) (entries []models.Entry, ok bool, err error) {
	raw, err := g.store.Get(ctx, EntriesKey)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("loading history: %w", err)
	}

	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		return nil, false, nil
	}
	return entries, true, nil
}

func (g *Gateway) load(ctx context.Context) (LoadResult, error) {
	raw, err := g.store.Get(ctx, EntriesKey)
	switch {
	case errors.Is(err, database.ErrNotFound):
		g.logger.Info("no stored history, seeding")
		return g.seed(ctx)
	case err != nil:
		return LoadResult{}, fmt.Errorf("loading history: %w", err)
	}

	var entries []models.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		g.logger.Warn("stored history unreadable, reseeding", zap.Error(err), zap.Int("bytes", len(raw)))
		return g.seed(ctx)
	}
	if entries == nil {
		// JSON null is not a sequence
		g.logger.Warn("stored history is not an array, reseeding")
		return g.seed(ctx)
	}

	return LoadResult{Entries: entries, Outcome: Loaded}, nil
}

func (g *Gateway) seed(ctx context.Context) (LoadResult, error) {
	entries := g.seeder.Seed(g.now())
	if err := g.save(ctx, entries); err != nil {
		return LoadResult{}, fmt.Errorf("saving seeded history: %w", err)
	}
	return LoadResult{Entries: entries, Outcome: Seeded}, nil
}

// Save persists the entire history
func (g *Gateway) Save(ctx context.Context, entries []models.Entry) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.save(ctx, entries)
}

func (g *Gateway) save(ctx context.Context, entries []models.Entry) error {
	if entries == nil {
		entries = []models.Entry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := g.store.Set(ctx, EntriesKey, data); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	return nil
}

// Upsert loads the history, replaces or appends e, persists the result and
// returns it
func (g *Gateway) Upsert(ctx context.Context, e models.Entry) ([]models.Entry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	loaded, err := g.load(ctx)
	if err != nil {
		return nil, err
	}

	updated := Upsert(loaded.Entries, e)
	if err := g.save(ctx, updated); err != nil {
		return nil, err
	}

	g.logger.Debug("entry saved", zap.String("date", e.Date), zap.Int("entries", len(updated)))
	return updated, nil
}

// Upsert returns a new history with any entry dated e.Date removed and e
// appended. The input slice is not modified.
func Upsert(history []models.Entry, e models.Entry) []models.Entry {
	out := make([]models.Entry, 0, len(history)+1)
	for _, existing := range history {
		if existing.Date != e.Date {
			out = append(out, existing)
		}
	}
	return append(out, e)
}

// LoadPreferences returns the saved pilot survey answers. Missing or
// unreadable answers yield the defaults.
func (g *Gateway) LoadPreferences(ctx context.Context) (models.PilotPreferences, error) {
	raw, err := g.store.Get(ctx, PreferencesKey)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return models.DefaultPilotPreferences(), nil
	case err != nil:
		return models.PilotPreferences{}, fmt.Errorf("loading preferences: %w", err)
	}

	var prefs models.PilotPreferences
	if err := json.Unmarshal(raw, &prefs); err != nil || string(raw) == "null" {
		g.logger.Warn("stored preferences unreadable, using defaults", zap.Error(err))
		return models.DefaultPilotPreferences(), nil
	}
	if prefs.Causes == nil {
		prefs.Causes = []string{}
	}

	return prefs, nil
}

// SavePreferences overwrites the stored pilot survey answers
func (g *Gateway) SavePreferences(ctx context.Context, prefs models.PilotPreferences) error {
	if prefs.Causes == nil {
		prefs.Causes = []string{}
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	if err := g.store.Set(ctx, PreferencesKey, data); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}

	return nil
}
