package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jgoulah/wakerefresh/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults filled in",
	Long:  `Creates ./config.yaml (or --config) with the default window, leaderboard roster and nudge messages so they can be edited.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	defaults := &config.Config{
		Storage: config.StorageConfig{
			Driver: cfg.GetStorageDriver(),
			Path:   cfg.GetStoragePath(),
			Redis:  cfg.Storage.Redis,
		},
		WindowDays: cfg.GetWindowDays(),
		Leaderboard: config.LeaderboardConfig{
			Limit:  cfg.GetLeaderboardLimit(),
			Roster: cfg.GetRoster(),
		},
		Nudges: config.NudgeConfig{
			Interval: cfg.GetNudgeInterval(),
			Messages: cfg.GetNudgeMessages(),
		},
		MQTT:   cfg.MQTT,
		Server: config.ServerConfig{Addr: cfg.GetServerAddr()},
		Log:    cfg.Log,
	}

	if err := saveConfig(defaults); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("✓ Wrote %s\n", path)
	return nil
}
