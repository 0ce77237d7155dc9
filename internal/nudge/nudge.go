// Package nudge emits periodic wake-up reminders.
//
// A Scheduler only reads derived values through its Status hook and never
// touches the journal itself.
package nudge

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// ErrNoMessages is returned by Run when there is nothing to send
var ErrNoMessages = errors.New("no nudge messages configured")

// Nudge is one reminder
type Nudge struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Config configures a Scheduler
type Config struct {
	Interval time.Duration
	Messages []string

	// Status, when set, is appended to every message (e.g. "streak 3 days").
	Status func() string

	// Rand picks the message. Defaults to a time-seeded PCG.
	Rand *rand.Rand

	Logger *zap.Logger
	Now    func() time.Time
}

// Scheduler sends a reminder every Interval until its context ends
type Scheduler struct {
	interval time.Duration
	messages []string
	status   func() string
	rng      *rand.Rand
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler. A zero interval falls back to 45 seconds.
func NewScheduler(cfg Config) *Scheduler {
	s := &Scheduler{
		interval: cfg.Interval,
		messages: append([]string(nil), cfg.Messages...),
		status:   cfg.Status,
		rng:      cfg.Rand,
		logger:   cfg.Logger,
		now:      cfg.Now,
	}
	if s.interval <= 0 {
		s.interval = 45 * time.Second
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Interval returns the time between reminders
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Next builds the reminder that would be sent now. It returns the zero
// Nudge when no messages are configured.
func (s *Scheduler) Next() Nudge {
	if len(s.messages) == 0 {
		return Nudge{}
	}
	msg := s.messages[s.rng.IntN(len(s.messages))]
	if s.status != nil {
		if st := s.status(); st != "" {
			msg += " (" + st + ")"
		}
	}
	return Nudge{Message: msg, At: s.now()}
}

// Run sends a reminder on out every interval until ctx is cancelled.
// Sends never block: a reminder is dropped when out is not ready.
// Run returns nil on cancellation.
func (s *Scheduler) Run(ctx context.Context, out chan<- Nudge) error {
	if len(s.messages) == 0 {
		return ErrNoMessages
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("nudge scheduler started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("nudge scheduler stopped")
			return nil
		case <-ticker.C:
			n := s.Next()
			select {
			case out <- n:
			default:
				s.logger.Debug("consumer busy, dropping nudge", zap.String("message", n.Message))
			}
		}
	}
}
