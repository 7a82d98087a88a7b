package settingsstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/hikam/internal/database"
	"github.com/mrlokans/hikam/internal/database/settings"
)

func setupTestDB(t *testing.T) *settings.Repository {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return settings.NewRepository(db.DB)
}

func TestNew(t *testing.T) {
	repo := setupTestDB(t)
	store := New(repo)

	assert.NotNil(t, store)
	assert.Equal(t, repo, store.db)
}

func TestLookupPriority(t *testing.T) {
	repo := setupTestDB(t)
	store := New(repo)

	value, source := store.lookup("some_key", "HIKAM_TEST_SOME_KEY", "fallback")
	assert.Equal(t, "fallback", value)
	assert.Equal(t, SourceDefault, source)

	t.Setenv("HIKAM_TEST_SOME_KEY", "from-env")
	value, source = store.lookup("some_key", "HIKAM_TEST_SOME_KEY", "fallback")
	assert.Equal(t, "from-env", value)
	assert.Equal(t, SourceEnvironment, source)

	require.NoError(t, repo.SetSetting("some_key", "from-db"))
	value, source = store.lookup("some_key", "HIKAM_TEST_SOME_KEY", "fallback")
	assert.Equal(t, "from-db", value)
	assert.Equal(t, SourceDatabase, source)
}
