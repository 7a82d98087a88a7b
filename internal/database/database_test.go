package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/hikam/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDatabaseInitialization(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"users", "quotes", "books", "book_pages", "reading_progress", "settings", "analytics_events"} {
		assert.True(t, db.DB.Migrator().HasTable(table), table)
	}
}

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Zero(t, stats.Quotes)

	require.NoError(t, db.DB.Create(&entities.User{Username: "reader", Email: "r@example.com"}).Error)
	require.NoError(t, db.DB.Create(&entities.Quote{UserID: 1, Text: "العلم نور"}).Error)
	require.NoError(t, db.DB.Create(&entities.Quote{UserID: 1, Text: "الصبر مفتاح الفرج"}).Error)
	require.NoError(t, db.DB.Create(&entities.Book{Title: "الأذكار"}).Error)

	stats, err = db.GetStats()
	require.NoError(t, err)
	assert.Equal(t, Stats{Users: 1, Quotes: 2, Books: 1}, stats)
}

func TestQuoteIDAssigned(t *testing.T) {
	db := setupTestDB(t)

	q := entities.Quote{UserID: 1, Text: "العلم نور"}
	require.NoError(t, db.DB.Create(&q).Error)
	assert.Len(t, q.ID, 36)

	fixed := entities.Quote{ID: "fixed-id", UserID: 1, Text: "نص"}
	require.NoError(t, db.DB.Create(&fixed).Error)
	assert.Equal(t, "fixed-id", fixed.ID)
}
