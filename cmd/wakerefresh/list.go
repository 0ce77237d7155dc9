package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jgoulah/wakerefresh/internal/analytics"
)

var listDays int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent check-ins",
	Long:  `Displays the check-ins in the trailing window with their Refresh Scores.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listDays, "days", 0, "Trailing days to show (default from config, 14)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
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

	days := windowDays(listDays, s.cfg)
	view := analytics.View(res.Entries, days, today())
	if len(view) == 0 {
		fmt.Printf("No check-ins in the last %d days\n", days)
		return nil
	}

	fmt.Printf("Check-ins, last %d days:\n", days)
	fmt.Println("----------------------------------------------------------------")
	fmt.Printf("%-10s  %-5s  %-5s  %6s  %6s  %8s  %5s  %5s\n", "Date", "Wake", "Bed", "Snooze", "Energy", "Caffeine", "Hydr", "Score")
	fmt.Println("----------------------------------------------------------------")

	var caffeine int64
	for _, e := range view {
		hydrated := ""
		if e.HydrationPack {
			hydrated = "yes"
		}
		fmt.Printf("%-10s  %-5s  %-5s  %6d  %6d  %8d  %5s  %5d\n",
			e.Date, e.WakeTime, e.Bedtime, e.Snooze, e.Energy, e.CaffeineMg, hydrated, e.RefreshScore)
		if e.Notes != "" {
			fmt.Printf("            %s\n", e.Notes)
		}
		caffeine += int64(e.CaffeineMg)
	}

	fmt.Println("----------------------------------------------------------------")
	fmt.Printf("Total: %d check-ins, %s mg caffeine\n", len(view), humanize.Comma(caffeine))

	return nil
}
