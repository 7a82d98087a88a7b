package entrypoint

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/hikam/internal/config"
	"github.com/mrlokans/hikam/internal/database"
	"github.com/mrlokans/hikam/internal/entities"
	"github.com/mrlokans/hikam/internal/services"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	database.LogLevel = logger.Silent
	cfg := config.NewConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "hikam.db")
	cfg.Analytics.Enabled = true
	cfg.Analytics.FlushInterval = 10 * time.Millisecond
	return cfg
}

func TestNewApp_SearchRoundTrip(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)
	defer app.Close()

	ctx := context.Background()
	_, err = app.Quotes.Create(ctx, 0, services.QuoteInput{Text: "الصبر مفتاح الفرج", Category: "صبر"})
	require.NoError(t, err)
	_, err = app.Quotes.Create(ctx, 0, services.QuoteInput{Text: "العلم نور والجهل ظلام", Category: "علم"})
	require.NoError(t, err)

	require.NoError(t, app.Quotes.RefreshIndexNow(ctx, 0))
	resp, err := app.Quotes.Search(ctx, 0, services.SearchRequest{Query: "صبر"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "الصبر مفتاح الفرج", resp.Results[0].Quote.Text)
}

func TestNewApp_AnalyticsFlushedOnClose(t *testing.T) {
	cfg := testConfig(t)
	app, err := NewApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app.Events)

	assert.True(t, app.Events.Track(entities.AnalyticsEvent{UserID: 0, Type: entities.AnalyticsEventView, QuoteID: "q1"}))
	require.NoError(t, app.Close())

	reopened, err := NewApp(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	counts, err := reopened.Analytics.CountByType(0, time.Time{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[entities.AnalyticsEventView])
}

func TestNewApp_AnalyticsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analytics.Enabled = false
	app, err := NewApp(cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.Events)
}

func TestApp_ResolveUser(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)
	defer app.Close()

	reader := &entities.User{Username: "reader", Email: "reader@example.com"}
	require.NoError(t, app.DB.DB.Create(reader).Error)

	for _, ref := range []string{"", "0"} {
		id, err := app.ResolveUser(ref)
		require.NoError(t, err)
		assert.Zero(t, id)
	}

	id, err := app.ResolveUser("reader")
	require.NoError(t, err)
	assert.Equal(t, reader.ID, id)

	id, err = app.ResolveUser(strconv.FormatUint(uint64(reader.ID), 10))
	require.NoError(t, err)
	assert.Equal(t, reader.ID, id)

	_, err = app.ResolveUser("ghost")
	assert.ErrorContains(t, err, "unknown user")
}

func TestStartMaintenance_SchedulesCleanup(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)
	defer app.Close()

	c := startMaintenance(app, nil)
	defer c.Stop()

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Next.After(time.Now()))
}
