package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jgoulah/wakerefresh/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal over a local JSON API",
	Long: `Starts a local HTTP server for a UI to read and write the journal.
Routes: /api/entries, /api/stats, /api/leaderboard, /api/export.csv, /api/survey, /healthz.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	addr := serveAddr
	if addr == "" {
		addr = s.cfg.GetServerAddr()
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(s.gateway, server.Options{
		WindowDays:       s.cfg.GetWindowDays(),
		Roster:           s.cfg.GetRoster(),
		LeaderboardLimit: s.cfg.GetLeaderboardLimit(),
		Logger:           s.log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving on http://%s (Ctrl+C to stop)\n", addr)
	return srv.Run(ctx, addr)
}
