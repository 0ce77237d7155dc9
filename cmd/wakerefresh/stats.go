package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/wakerefresh/internal/analytics"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show averages, streak and insights",
	Long:  `Summarizes the trailing window: average energy, caffeine and Refresh Score, the current streak, and what hydration and snoozing do to your score.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 0, "Trailing days to summarize (default from config, 14)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.gateway.Load(context.Background())
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	printSeeded(res)

	now := today()
	days := windowDays(statsDays, s.cfg)
	recent := analytics.Recent(res.Entries, days, now)
	summary := analytics.Summarize(recent)

	fmt.Printf("=== Last %d days (%d check-ins) ===\n", days, summary.Count)
	fmt.Printf("  Avg energy:        %.1f / 5\n", summary.AvgEnergy)
	fmt.Printf("  Avg caffeine:      %.0f mg\n", summary.AvgCaffeine)
	fmt.Printf("  Avg Refresh Score: %.0f\n", summary.AvgScore)

	streak := analytics.Streak(res.Entries, now)
	fmt.Printf("  Streak:            %d day(s)\n", streak)
	if !analytics.LoggedToday(res.Entries, now) {
		fmt.Println("  (Today isn't logged yet: run `wakerefresh log` to keep your streak.)")
	}

	for _, in := range []analytics.Insight{analytics.HydrationInsight(recent), analytics.SnoozeInsight(recent)} {
		fmt.Printf("\n%s\n  %s\n", in.Title, in.Message)
	}

	return nil
}
