package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jgoulah/wakerefresh/pkg/models"
)

// Config holds the application configuration
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	WindowDays  int               `yaml:"window_days,omitempty"` // Trailing days shown by default (fallback: 14)
	Leaderboard LeaderboardConfig `yaml:"leaderboard,omitempty"`
	Nudges      NudgeConfig       `yaml:"nudges,omitempty"`
	MQTT        MQTTConfig        `yaml:"mqtt,omitempty"`
	Server      ServerConfig      `yaml:"server,omitempty"`
	Log         LogConfig         `yaml:"log,omitempty"`
}

// StorageConfig selects where the journal is kept
type StorageConfig struct {
	Driver string      `yaml:"driver,omitempty"` // sqlite (default), redis or memory
	Path   string      `yaml:"path,omitempty"`   // SQLite file (fallback: data.db)
	Redis  RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig holds connection settings for the redis storage driver
type RedisConfig struct {
	Addr     string `yaml:"addr"` // e.g., "localhost:6379"
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

// LeaderboardConfig holds the campus challenge roster
type LeaderboardConfig struct {
	Limit  int                 `yaml:"limit,omitempty"` // Rows shown (fallback: 5)
	Roster []models.Competitor `yaml:"roster,omitempty"`
}

// NudgeConfig controls the reminder scheduler
type NudgeConfig struct {
	Interval time.Duration `yaml:"interval,omitempty"` // fallback: 45s
	Messages []string      `yaml:"messages,omitempty"`
}

// MQTTConfig holds broker settings for publishing nudges
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // e.g., "homeassistant.local:1883"
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // fallback: wakerefresh
	ClientID    string `yaml:"client_id,omitempty"`
}

// ServerConfig holds the local HTTP API settings
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"` // fallback: 127.0.0.1:8080
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // console or json
	Env    string `yaml:"env,omitempty"`    // development or production
}

// DefaultRoster is the mock campus challenge field
var DefaultRoster = []models.Competitor{
	{Name: "Ava (Whitman)", Emoji: "🧠", Points: 98, Streak: 5},
	{Name: "Noah (DPS)", Emoji: "🏃", Points: 110, Streak: 7},
	{Name: "Mia (Newhouse)", Emoji: "🎧", Points: 103, Streak: 6},
	{Name: "Liam (iSchool)", Emoji: "💻", Points: 95, Streak: 4},
}

// DefaultNudges are the reminder messages used when none are configured
var DefaultNudges = []string{
	"Hydration nudge: 6–8 oz of water helps kickstart energy.",
	"60-second stretch? Roll shoulders + neck to reduce sleep inertia.",
	"Morning light: open blinds for 5 minutes to anchor your clock.",
	"Micro-goal: tidy your desk for 2 minutes to build momentum.",
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetWindowDays returns the default analytics window with a fallback of 14 days
func (c *Config) GetWindowDays() int {
	if c.WindowDays <= 0 {
		return 14
	}
	return c.WindowDays
}

// GetStorageDriver returns the storage driver, defaulting to sqlite
func (c *Config) GetStorageDriver() string {
	if c.Storage.Driver == "" {
		return "sqlite"
	}
	return c.Storage.Driver
}

// GetStoragePath returns the SQLite file path, defaulting to data.db
func (c *Config) GetStoragePath() string {
	if c.Storage.Path == "" {
		return "data.db"
	}
	return c.Storage.Path
}

// GetLeaderboardLimit returns how many leaderboard rows to show
func (c *Config) GetLeaderboardLimit() int {
	if c.Leaderboard.Limit <= 0 {
		return 5
	}
	return c.Leaderboard.Limit
}

// GetRoster returns the configured competitors, or the mock roster
func (c *Config) GetRoster() []models.Competitor {
	if len(c.Leaderboard.Roster) == 0 {
		return DefaultRoster
	}
	return c.Leaderboard.Roster
}

// GetNudgeInterval returns the reminder interval with a fallback of 45 seconds
func (c *Config) GetNudgeInterval() time.Duration {
	if c.Nudges.Interval <= 0 {
		return 45 * time.Second
	}
	return c.Nudges.Interval
}

// GetNudgeMessages returns the configured reminder messages, or the defaults
func (c *Config) GetNudgeMessages() []string {
	if len(c.Nudges.Messages) == 0 {
		return DefaultNudges
	}
	return c.Nudges.Messages
}

// GetTopicPrefix returns the MQTT topic prefix, defaulting to wakerefresh
func (c *Config) GetTopicPrefix() string {
	if c.MQTT.TopicPrefix == "" {
		return "wakerefresh"
	}
	return c.MQTT.TopicPrefix
}

// GetServerAddr returns the listen address for the local API
func (c *Config) GetServerAddr() string {
	if c.Server.Addr == "" {
		return "127.0.0.1:8080"
	}
	return c.Server.Addr
}
