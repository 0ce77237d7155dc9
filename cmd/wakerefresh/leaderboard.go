package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jgoulah/wakerefresh/internal/analytics"
)

var leaderboardDays int

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the campus challenge leaderboard",
	Long: `Ranks you against the campus challenge roster. You earn 8 points for each
high-scoring morning in the window, 4 for any other logged morning, and 2 per streak day.`,
	Args: cobra.NoArgs,
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardDays, "days", 0, "Trailing days that earn points (default from config, 14)")
	rootCmd.AddCommand(leaderboardCmd)
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
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

	days := windowDays(leaderboardDays, s.cfg)
	self := analytics.Self(res.Entries, days, today())
	rows := analytics.Rank(self, s.cfg.GetRoster(), s.cfg.GetLeaderboardLimit())

	fmt.Printf("Campus challenge, last %d days\n", days)
	fmt.Println("----------------------------------------")
	for _, r := range rows {
		marker := " "
		if r.Self {
			marker = "*"
		}
		fmt.Printf("%s %-5s %s %-18s %4d pts  %2d-day streak\n",
			marker, humanize.Ordinal(r.Position), r.Emoji, r.Name, r.Points, r.Streak)
	}
	fmt.Println("----------------------------------------")

	for _, r := range rows {
		if r.Self {
			return nil
		}
	}
	fmt.Printf("You: %d pts, %d-day streak (outside the top %d)\n", self.Points, self.Streak, len(rows))

	return nil
}
