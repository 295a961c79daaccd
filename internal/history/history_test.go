package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vita/internal/db"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Migrate())
	return NewStore(database)
}

func TestSaveAndRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTurn(ctx, "first question", []string{"get_profile_overview", "get_experience"}, "ollama", "first answer"))
	require.NoError(t, s.SaveTurn(ctx, "second question", []string{"search_profile_content"}, "formatter", "second answer"))

	turns, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, turns, 2)

	// Newest first.
	assert.Equal(t, "second question", turns[0].Query)
	assert.Equal(t, []string{"search_profile_content"}, turns[0].Tools)
	assert.Equal(t, "formatter", turns[0].Backend)

	assert.Equal(t, "first question", turns[1].Query)
	assert.Equal(t, []string{"get_profile_overview", "get_experience"}, turns[1].Tools)
	assert.WithinDuration(t, time.Now().UTC(), turns[1].CreatedAt, time.Minute)
}

func TestRecentHonorsLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveTurn(ctx, "q", nil, "formatter", "a"))
	}

	turns, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, turns, 3)
}

func TestNoToolsRoundTripsAsNil(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTurn(ctx, "q", nil, "formatter", "a"))

	turns, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Nil(t, turns[0].Tools)
}
