package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jgoulah/wakerefresh/internal/analytics"
	"github.com/jgoulah/wakerefresh/internal/history"
	"github.com/jgoulah/wakerefresh/internal/nudge"
	"github.com/jgoulah/wakerefresh/internal/publisher"
	"github.com/jgoulah/wakerefresh/internal/score"
	"github.com/jgoulah/wakerefresh/pkg/models"
)

var (
	nudgeInterval time.Duration
	nudgeCount    int
)

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Print wake-up reminders on an interval",
	Long: `Runs the reminder scheduler until interrupted (or until --count reminders were shown).
When MQTT is enabled in config, each reminder is also published to <topic_prefix>/nudge.`,
	Args: cobra.NoArgs,
	RunE: runNudge,
}

func init() {
	nudgeCmd.Flags().DurationVar(&nudgeInterval, "interval", 0, "Time between reminders (default from config, 45s)")
	nudgeCmd.Flags().IntVar(&nudgeCount, "count", 0, "Stop after this many reminders (0 = run until interrupted)")
	rootCmd.AddCommand(nudgeCmd)
}

// statusLine summarizes today's standing for a reminder suffix. It only
// reads: an empty journal is reported, never seeded.
func statusLine(gateway *history.Gateway) func() string {
	return func() string {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		entries, ok, err := gateway.Peek(ctx)
		if err != nil || !ok {
			return ""
		}
		now := today()
		streak := analytics.Streak(entries, now)
		for _, e := range entries {
			if e.Date == now.Format(models.DateLayout) {
				return fmt.Sprintf("today %d, streak %d", score.Score(e), streak)
			}
		}
		return "today not logged yet"
	}
}

func runNudge(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	interval := nudgeInterval
	if interval <= 0 {
		interval = s.cfg.GetNudgeInterval()
	}

	var pub *publisher.Publisher
	if s.cfg.MQTT.Enabled {
		pub, err = publisher.New(s.cfg.MQTT, s.cfg.GetTopicPrefix())
		if err != nil {
			return fmt.Errorf("creating publisher: %w", err)
		}
		defer pub.Close()
		fmt.Printf("Publishing reminders to %s\n", pub.Topic())
	}

	scheduler := nudge.NewScheduler(nudge.Config{
		Interval: interval,
		Messages: s.cfg.GetNudgeMessages(),
		Status:   statusLine(s.gateway),
		Logger:   s.log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Printf("Reminding every %s (Ctrl+C to stop)\n", interval)

	nudges := make(chan nudge.Nudge, 1)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scheduler.Run(ctx, nudges)
	})
	g.Go(func() error {
		shown := 0
		for {
			select {
			case <-ctx.Done():
				return nil
			case n := <-nudges:
				fmt.Printf("[%s] %s\n", n.At.Format("15:04:05"), n.Message)
				if pub != nil {
					if err := pub.Publish(n); err != nil {
						s.log.Warn("publishing nudge failed", zap.Error(err))
					}
				}
				shown++
				if nudgeCount > 0 && shown >= nudgeCount {
					cancel()
					return nil
				}
			}
		}
	})

	return g.Wait()
}
