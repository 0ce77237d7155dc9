package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "wur.entries")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "wur.entries", []byte(`[]`)))
	got, err := s.Get(ctx, "wur.entries")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Set(ctx, "wur.entries", []byte(`[{"date":"2025-03-01"}]`)))
	got, err = s.Get(ctx, "wur.entries")
	require.NoError(t, err)
	assert.Equal(t, `[{"date":"2025-03-01"}]`, string(got))

	_, err = s.Get(ctx, "wur.pilotSurvey")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, s.Set(context.Background(), "k", value))
	value[0] = 'z'

	got, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteStore(t *testing.T) {
	db, err := New(":memory:")
	require.NoError(t, err)
	defer db.Close()

	exerciseStore(t, db)
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")

	db, err := New(path)
	require.NoError(t, err)
	require.NoError(t, db.Set(context.Background(), "k", []byte("v1")))
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))
}

func TestSQLiteStoreErrors(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv").WillReturnResult(sqlmock.NewResult(0, 0))
	db, err := NewWithConn(conn)
	require.NoError(t, err)

	diskErr := errors.New("disk I/O error")

	mock.ExpectQuery(`SELECT value FROM kv WHERE key = \?`).
		WithArgs("wur.entries").
		WillReturnError(diskErr)
	_, err = db.Get(context.Background(), "wur.entries")
	assert.ErrorIs(t, err, diskErr)
	assert.NotErrorIs(t, err, ErrNotFound)

	mock.ExpectQuery(`SELECT value FROM kv WHERE key = \?`).
		WithArgs("wur.entries").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	_, err = db.Get(context.Background(), "wur.entries")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec("INSERT INTO kv").
		WithArgs("wur.entries", []byte("[]"), sqlmock.AnyArg()).
		WillReturnError(diskErr)
	err = db.Set(context.Background(), "wur.entries", []byte("[]"))
	assert.ErrorIs(t, err, diskErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteSchemaError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv").WillReturnError(errors.New("read-only database"))
	_, err = NewWithConn(conn)
	assert.ErrorContains(t, err, "initializing schema")
}

func TestOpen(t *testing.T) {
	s, err := Open(Options{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(Options{Path: filepath.Join(t.TempDir(), "data.db")})
	require.NoError(t, err)
	assert.IsType(t, &DB{}, s)
	require.NoError(t, s.Close())

	_, err = Open(Options{Driver: "dynamo"})
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("WAKEREFRESH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("WAKEREFRESH_TEST_REDIS_ADDR not set")
	}

	s, err := NewRedisStore(RedisOptions{Addr: addr, Prefix: "wakerefresh-test:" + t.Name() + ":"})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	s.client.Del(ctx, s.prefix+"wur.entries")
	defer s.client.Del(ctx, s.prefix+"wur.entries")

	exerciseStore(t, s)
}
