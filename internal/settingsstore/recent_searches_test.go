package settingsstore

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentSearchesKey(t *testing.T) {
	assert.Equal(t, "hikam.recent_searches.7", RecentSearchesKey(7))
}

func TestRecentSearches(t *testing.T) {
	repo := setupTestDB(t)
	recent := NewRecentSearches(repo, 3)

	list, err := recent.List(1)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	t.Run("most recent first", func(t *testing.T) {
		_, err := recent.Add(1, "صبر")
		require.NoError(t, err)
		list, err := recent.Add(1, "علم")
		require.NoError(t, err)
		assert.Equal(t, []string{"علم", "صبر"}, list)
	})

	t.Run("normalized duplicates move to front", func(t *testing.T) {
		list, err := recent.Add(1, " صَبْر ")
		require.NoError(t, err)
		assert.Equal(t, []string{"صَبْر", "علم"}, list)
	})

	t.Run("blank queries ignored", func(t *testing.T) {
		list, err := recent.Add(1, "   ")
		require.NoError(t, err)
		assert.Equal(t, []string{"صَبْر", "علم"}, list)
	})

	t.Run("capped", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			_, err := recent.Add(1, fmt.Sprintf("query %d", i))
			require.NoError(t, err)
		}
		list, err := recent.List(1)
		require.NoError(t, err)
		assert.Equal(t, []string{"query 4", "query 3", "query 2"}, list)
	})

	t.Run("per user", func(t *testing.T) {
		list, err := recent.List(2)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, recent.Clear(1))
		list, err := recent.List(1)
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.NoError(t, recent.Clear(1))
	})
}

func TestRecentSearches_CorruptValue(t *testing.T) {
	repo := setupTestDB(t)
	require.NoError(t, repo.SetSetting(RecentSearchesKey(1), "{not json"))

	recent := NewRecentSearches(repo, 0)
	list, err := recent.List(1)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = recent.Add(1, "حكمة")
	require.NoError(t, err)
	assert.Equal(t, []string{"حكمة"}, list)
}
