package nudge

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)

func TestNextPicksConfiguredMessage(t *testing.T) {
	messages := []string{"drink water", "stretch"}
	s := NewScheduler(Config{
		Messages: messages,
		Rand:     rand.New(rand.NewPCG(1, 2)),
		Now:      func() time.Time { return fixedNow },
	})

	for i := 0; i < 20; i++ {
		n := s.Next()
		assert.Contains(t, messages, n.Message)
		assert.Equal(t, fixedNow, n.At)
	}
}

func TestNextAppendsStatus(t *testing.T) {
	s := NewScheduler(Config{
		Messages: []string{"stretch"},
		Status:   func() string { return "streak 3 days" },
	})
	assert.Equal(t, "stretch (streak 3 days)", s.Next().Message)

	s = NewScheduler(Config{
		Messages: []string{"stretch"},
		Status:   func() string { return "" },
	})
	assert.Equal(t, "stretch", s.Next().Message)
}

func TestDefaultInterval(t *testing.T) {
	assert.Equal(t, 45*time.Second, NewScheduler(Config{}).Interval())
	assert.Equal(t, time.Minute, NewScheduler(Config{Interval: time.Minute}).Interval())
}

func TestNextWithoutMessages(t *testing.T) {
	s := NewScheduler(Config{Status: func() string { return "streak 3 days" }})
	assert.Equal(t, Nudge{}, s.Next())
}

func TestRunWithoutMessages(t *testing.T) {
	err := NewScheduler(Config{}).Run(context.Background(), make(chan Nudge))
	assert.ErrorIs(t, err, ErrNoMessages)
}

func TestRunEmitsUntilCancelled(t *testing.T) {
	s := NewScheduler(Config{Interval: 5 * time.Millisecond, Messages: []string{"drink water"}})
	out := make(chan Nudge, 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, out) }()

	for i := 0; i < 3; i++ {
		select {
		case n := <-out:
			assert.Equal(t, "drink water", n.Message)
		case <-time.After(2 * time.Second):
			t.Fatal("no nudge received")
		}
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestRunDropsWhenConsumerBusy(t *testing.T) {
	s := NewScheduler(Config{Interval: time.Millisecond, Messages: []string{"stretch"}})
	out := make(chan Nudge) // never read
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Returns after the timeout instead of blocking on the unbuffered send.
	require.NoError(t, s.Run(ctx, out))
}
