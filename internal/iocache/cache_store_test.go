package iocache

import (
	"path/filepath"
	"testing"

	"github.com/gitdebt/gitdebt/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	valid := []string{"activity_cache", "debt_runs", "Cache1", "_private"}
	for _, name := range valid {
		assert.NoError(t, validateTableName(name), "expected %q to be valid", name)
	}

	invalid := []string{"", "bad-name", "1table", "drop table", "a;b", `a"b`}
	for _, name := range invalid {
		assert.Error(t, validateTableName(name), "expected %q to be rejected", name)
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`activity_cache`", quoteTableName("activity_cache", schema.MySQLBackend))
	assert.Equal(t, `"activity_cache"`, quoteTableName("activity_cache", schema.PostgreSQLBackend))
	assert.Equal(t, `"activity_cache"`, quoteTableName("activity_cache", schema.SQLiteBackend))
}

func TestCacheStore_SQLiteRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(historyTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Missing key surfaces as an error so callers treat it as a miss
	data, version, ts, err := store.Get("missing")
	assert.Error(t, err)
	assert.Nil(t, data)
	assert.Equal(t, 0, version)
	assert.Equal(t, int64(0), ts)

	// Set then Get round-trips
	payload := []byte(`{"files":{"a.go":{"commit_count":3}}}`)
	err = store.Set("repo:abc123", payload, 1, 1756400000)
	require.NoError(t, err)

	data, version, ts, err = store.Get("repo:abc123")
	assert.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(1756400000), ts)

	// Overwrite replaces the previous entry
	updated := []byte(`{"files":{}}`)
	err = store.Set("repo:abc123", updated, 2, 1756500000)
	require.NoError(t, err)

	data, version, ts, err = store.Get("repo:abc123")
	assert.NoError(t, err)
	assert.Equal(t, updated, data)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(1756500000), ts)
}

func TestCacheStore_GetStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(historyTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store
	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalEntries)

	// Two entries with distinct timestamps
	require.NoError(t, store.Set("k1", []byte("v1"), 1, 1756400000))
	require.NoError(t, store.Set("k2", []byte("v2"), 1, 1756500000))

	status, err = store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, int64(1756500000), status.LastEntryTime.Unix())
	assert.Equal(t, int64(1756400000), status.OldestEntryTime.Unix())
}

func TestCacheStore_InvalidTableName(t *testing.T) {
	_, err := NewCacheStore("bad-name; drop", schema.SQLiteBackend, ":memory:")
	assert.Error(t, err)
}
