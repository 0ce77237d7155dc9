package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/wakerefresh/internal/config"
	"github.com/jgoulah/wakerefresh/internal/database"
	"github.com/jgoulah/wakerefresh/internal/history"
	"github.com/jgoulah/wakerefresh/pkg/models"
)

func withDBPath(t *testing.T, path string) {
	t.Helper()
	old := dbPath
	dbPath = path
	t.Cleanup(func() { dbPath = old })
}

func TestStorageOptionsDefaults(t *testing.T) {
	withDBPath(t, "")
	opts := storageOptions(&config.Config{})
	assert.Equal(t, database.DriverSQLite, opts.Driver)
	assert.Equal(t, "data.db", opts.Path)
}

func TestStorageOptionsDBFlagOverridesConfig(t *testing.T) {
	withDBPath(t, "/tmp/elsewhere.db")
	opts := storageOptions(&config.Config{Storage: config.StorageConfig{Path: "mine.db"}})
	assert.Equal(t, "/tmp/elsewhere.db", opts.Path)
}

func TestStorageOptionsMemory(t *testing.T) {
	withDBPath(t, memoryPath)
	opts := storageOptions(&config.Config{})
	assert.Equal(t, database.DriverMemory, opts.Driver)

	store, err := openStore(&config.Config{})
	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &database.MemoryStore{}, store)
}

func TestStorageOptionsRedis(t *testing.T) {
	withDBPath(t, "")
	cfg := &config.Config{Storage: config.StorageConfig{
		Driver: "redis",
		Redis:  config.RedisConfig{Addr: "localhost:6380", DB: 2, Prefix: "me:"},
	}}
	opts := storageOptions(cfg)
	assert.Equal(t, database.DriverRedis, opts.Driver)
	assert.Equal(t, database.RedisOptions{Addr: "localhost:6380", DB: 2, Prefix: "me:"}, opts.Redis)
}

func TestWindowDays(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, 14, windowDays(0, cfg))
	assert.Equal(t, 7, windowDays(7, cfg))
	assert.Equal(t, 30, windowDays(0, &config.Config{WindowDays: 30}))
}

func TestStatusLineDoesNotWrite(t *testing.T) {
	store := database.NewMemoryStore()
	gateway := history.NewGateway(store)
	ctx := context.Background()

	assert.Equal(t, "", statusLine(gateway)())
	_, err := store.Get(ctx, history.EntriesKey)
	assert.ErrorIs(t, err, database.ErrNotFound)

	require.NoError(t, gateway.Save(ctx, nil))
	assert.Equal(t, "today not logged yet", statusLine(gateway)())

	date := today().Format(models.DateLayout)
	require.NoError(t, gateway.Save(ctx, []models.Entry{{ID: "a", Date: date, WakeTime: "07:00", Energy: 3, CaffeineMg: 100}}))
	// 50 + 30 - 2 = 78
	assert.Equal(t, "today 78, streak 1", statusLine(gateway)())
}
