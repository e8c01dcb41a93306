package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	// 每次呼叫往前推一秒，讓排序可預期
	clock := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	var journalMode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var fk int
	require.NoError(t, s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	for _, table := range []string{"recipe", "recipe_ingredient", "meal_plan_entry"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}

	assert.NoError(t, s.Ping(context.Background()))
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "grocery.db")
	s, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, s.Close())
	assert.FileExists(t, path)
}

func TestTimeRoundTripKeepsOrder(t *testing.T) {
	a := time.Date(2024, 6, 10, 8, 0, 5, 100000000, time.UTC)
	b := time.Date(2024, 6, 10, 8, 0, 5, 120000000, time.UTC)
	assert.Less(t, formatTime(a), formatTime(b))

	parsed, err := parseTime(formatTime(a))
	require.NoError(t, err)
	assert.True(t, a.Equal(parsed))
}
