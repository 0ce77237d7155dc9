package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jgoulah/wakerefresh/internal/config"
	"github.com/jgoulah/wakerefresh/internal/database"
	"github.com/jgoulah/wakerefresh/internal/history"
	"github.com/jgoulah/wakerefresh/internal/logger"
)

var (
	cfgFile string
	dbPath  string
)

// memoryPath selects the in-process store, mostly for trying things out
const memoryPath = ":memory:"

var rootCmd = &cobra.Command{
	Use:   "wakerefresh",
	Short: "Track morning wake-ups and your Refresh Score",
	Long: `Wake-Up Refresh is a local morning journal. Log how you woke up each day and
it derives a 0-100 Refresh Score, streaks, insights and a campus leaderboard.
History is kept in a local SQLite database (or redis) and never leaves the machine.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default is ./data.db, :memory: for a throwaway store)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// saveConfig saves the configuration file
func saveConfig(cfg *config.Config) error {
	return config.Save(getConfigPath(), cfg)
}

// storageOptions maps the config and --db flag onto store options
func storageOptions(cfg *config.Config) database.Options {
	opts := database.Options{
		Driver: cfg.GetStorageDriver(),
		Path:   cfg.GetStoragePath(),
		Redis: database.RedisOptions{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
			Prefix:   cfg.Storage.Redis.Prefix,
		},
	}
	if dbPath != "" {
		opts.Path = dbPath
	}
	if opts.Path == memoryPath {
		opts.Driver = database.DriverMemory
	}
	return opts
}

// openStore opens the configured key-value store
func openStore(cfg *config.Config) (database.Store, error) {
	opts := storageOptions(cfg)

	if opts.Driver == database.DriverSQLite {
		// Ensure directory exists
		dir := filepath.Dir(opts.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	return database.Open(opts)
}

// session bundles what most commands need
type session struct {
	cfg     *config.Config
	log     *zap.Logger
	store   database.Store
	gateway *history.Gateway
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Warn("closing store", zap.Error(err))
	}
	_ = s.log.Sync()
}

// openSession loads config, builds the logger and opens the history gateway
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &session{
		cfg:     cfg,
		log:     log,
		store:   store,
		gateway: history.NewGateway(store, history.WithLogger(log)),
	}, nil
}

// windowDays returns the --days flag value, or the configured default
func windowDays(flag int, cfg *config.Config) int {
	if flag > 0 {
		return flag
	}
	return cfg.GetWindowDays()
}

// printSeeded tells the user their journal was just filled with sample days
func printSeeded(res history.LoadResult) {
	if res.Outcome == history.Seeded {
		fmt.Printf("(No saved history found: started you off with %d sample days.)\n\n", len(res.Entries))
	}
}

func today() time.Time {
	return time.Now()
}
