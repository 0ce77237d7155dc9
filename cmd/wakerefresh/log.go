package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/wakerefresh/internal/analytics"
	"github.com/jgoulah/wakerefresh/internal/entry"
	"github.com/jgoulah/wakerefresh/internal/score"
)

var logForm = entry.DefaultCandidate(today())

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log this morning's wake-up",
	Long: `Saves a check-in for one day. Logging a date that already has an entry replaces it.
Any field not given keeps the check-in form default.`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	f := logCmd.Flags()
	f.StringVar(&logForm.Date, "date", logForm.Date, "Date of the check-in (YYYY-MM-DD)")
	f.StringVar(&logForm.WakeTime, "wake", logForm.WakeTime, "Wake time (HH:MM)")
	f.StringVar(&logForm.Bedtime, "bed", "", "Bedtime the night before (HH:MM, optional)")
	f.IntVar(&logForm.Snooze, "snooze", logForm.Snooze, "Number of snoozes")
	f.IntVar(&logForm.Energy, "energy", logForm.Energy, "Energy on waking, 1-5")
	f.IntVar(&logForm.CaffeineMg, "caffeine", logForm.CaffeineMg, "Caffeine in mg")
	f.BoolVar(&logForm.HydrationPack, "hydration", false, "Had a hydration pack")
	f.StringVar(&logForm.Notes, "notes", "", "Free-form notes")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	e, err := entry.Normalize(logForm)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	updated, err := s.gateway.Upsert(context.Background(), e)
	if err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}

	refresh := score.Score(e)
	fmt.Printf("✓ Logged %s: Refresh Score %d (%s)\n", e.Date, refresh, score.BandOf(refresh))
	if streak := analytics.Streak(updated, today()); streak > 1 {
		fmt.Printf("  %d-day streak, keep it going!\n", streak)
	}

	return nil
}
