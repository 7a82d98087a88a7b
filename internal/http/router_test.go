package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/hikam/internal/analytics"
	"github.com/mrlokans/hikam/internal/auth"
	"github.com/mrlokans/hikam/internal/cache"
	"github.com/mrlokans/hikam/internal/config"
	"github.com/mrlokans/hikam/internal/database"
	analyticsdb "github.com/mrlokans/hikam/internal/database/analytics"
	"github.com/mrlokans/hikam/internal/database/favourites"
	"github.com/mrlokans/hikam/internal/database/quotes"
	"github.com/mrlokans/hikam/internal/database/reading"
	"github.com/mrlokans/hikam/internal/database/settings"
	"github.com/mrlokans/hikam/internal/entities"
	"github.com/mrlokans/hikam/internal/exporters"
	"github.com/mrlokans/hikam/internal/search"
	"github.com/mrlokans/hikam/internal/services"
	"github.com/mrlokans/hikam/internal/settingsstore"
)

type recordedEvents struct {
	mu     sync.Mutex
	events []entities.AnalyticsEvent
}

func (r *recordedEvents) Track(event entities.AnalyticsEvent) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return true
}

func (r *recordedEvents) ofType(t entities.AnalyticsEventType) []entities.AnalyticsEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.AnalyticsEvent
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type testServer struct {
	router  *gin.Engine
	db      *database.Database
	quotes  *services.QuoteService
	reading *reading.Repository
	events  *recordedEvents
}

func setupServer(t *testing.T, opts ...func(*RouterConfig)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	database.LogLevel = logger.Silent

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "hikam.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	c, err := cache.New(time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	registry := search.NewRegistry(search.BindingConfig{Delay: 5 * time.Millisecond})
	t.Cleanup(registry.Close)

	events := &recordedEvents{}
	quoteRepo := quotes.NewRepository(db.DB)
	favouriteRepo := favourites.NewRepository(db.DB)
	settingsRepo := settings.NewRepository(db.DB)
	quoteService := services.NewQuoteService(services.QuoteServiceDeps{
		Quotes:     quoteRepo,
		Favourites: favouriteRepo,
		Registry:   registry,
		Cache:      c,
		Recent:     settingsstore.NewRecentSearches(settingsRepo, 5),
		Events:     events,
	})
	readingRepo := reading.NewRepository(db.DB)

	routerCfg := RouterConfig{
		Quotes:             quoteService,
		Importer:           services.NewImportService(quoteService),
		Database:           db,
		Reading:            readingRepo,
		Events:             events,
		Stats:              analytics.NewService(analyticsdb.NewRepository(db.DB), quoteRepo, favouriteRepo),
		DailyQuoteSettings: settingsstore.New(settingsRepo),
		AuthMiddleware:     auth.NewMiddleware(nil, nil, config.Auth{Mode: config.AuthModeNone}),
		Version:            "test",
	}
	for _, opt := range opts {
		opt(&routerCfg)
	}
	router := NewRouter(routerCfg)

	return &testServer{router: router, db: db, quotes: quoteService, reading: readingRepo, events: events}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *testServer) createQuote(t *testing.T, text, category string) entities.Quote {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/quotes", services.QuoteInput{Text: text, Category: category})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[entities.Quote](t, w)
}

// searchUntilReady repeats the query until the index has been built.
func (s *testServer) searchUntilReady(t *testing.T, path string) services.SearchResponse {
	t.Helper()
	var resp services.SearchResponse
	require.Eventually(t, func() bool {
		w := s.do(t, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			return false
		}
		resp = decode[services.SearchResponse](t, w)
		return !resp.Indexing && resp.State == search.StateReady.String()
	}, 2*time.Second, 10*time.Millisecond)
	return resp
}

func TestRouter_HealthAndPing(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")

	w = s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[HealthResponse](t, w)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "ok", health.Checks["database"])
	assert.Equal(t, "test", health.Version)
	assert.NotContains(t, health.Checks, "tasks")
}

type stubWorker struct{ running bool }

func (w stubWorker) Running() bool { return w.running }
func (w stubWorker) Status(context.Context, string) (backlite.TaskStatus, error) {
	return backlite.TaskStatusNotFound, nil
}

type countingEvents struct{ recordedEvents }

func (e *countingEvents) Saved() int64   { return 3 }
func (e *countingEvents) Dropped() int64 { return 1 }
func (e *countingEvents) Failed() int64  { return 0 }

func TestRouter_HealthReportsWorkers(t *testing.T) {
	s := setupServer(t, func(cfg *RouterConfig) {
		cfg.Tasks = stubWorker{running: true}
		cfg.Events = &countingEvents{}
	})

	w := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[HealthResponse](t, w)
	assert.Equal(t, "running", health.Checks["tasks"])
	assert.Equal(t, "saved=3 dropped=1 failed=0", health.Checks["analytics"])
	assert.Equal(t, "healthy", health.Status)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	s := setupServer(t)
	w := s.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestQuotesAPI_CRUD(t *testing.T) {
	s := setupServer(t)

	created := s.createQuote(t, "الصبر مفتاح الفرج", "صبر")
	assert.NotEmpty(t, created.ID)

	w := s.do(t, http.MethodGet, "/api/quotes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "الصبر مفتاح الفرج", decode[entities.Quote](t, w).Text)

	w = s.do(t, http.MethodPut, "/api/quotes/"+created.ID, services.QuoteInput{Text: "العلم نور", Category: "علم"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "علم", decode[entities.Quote](t, w).Category)

	w = s.do(t, http.MethodGet, "/api/quotes/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"علم"}, decode[map[string][]string](t, w)["categories"])

	w = s.do(t, http.MethodDelete, "/api/quotes/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/quotes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuotesAPI_Validation(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/api/quotes", services.QuoteInput{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "empty_text", decode[ErrorResponse](t, w).Code)

	w = s.do(t, http.MethodGet, "/api/quotes?favorites=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/quotes/missing", services.QuoteInput{Text: "نص"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuotesAPI_ListFilters(t *testing.T) {
	s := setupServer(t)
	first := s.createQuote(t, "الصبر مفتاح الفرج", "صبر")
	s.createQuote(t, "العلم نور", "علم")

	w := s.do(t, http.MethodPost, "/api/quotes/"+first.ID+"/favourite", nil)
	require.Equal(t, http.StatusOK, w.Code)

	type listResponse struct {
		Quotes []entities.Quote `json:"quotes"`
		Total  int              `json:"total"`
	}

	w = s.do(t, http.MethodGet, "/api/quotes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[listResponse](t, w).Total)

	w = s.do(t, http.MethodGet, "/api/quotes?category=علم", nil)
	require.Equal(t, http.StatusOK, w.Code)
	byCategory := decode[listResponse](t, w)
	require.Len(t, byCategory.Quotes, 1)
	assert.Equal(t, "العلم نور", byCategory.Quotes[0].Text)

	w = s.do(t, http.MethodGet, "/api/quotes?favorites=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	favs := decode[listResponse](t, w)
	require.Len(t, favs.Quotes, 1)
	assert.Equal(t, first.ID, favs.Quotes[0].ID)
}

func TestQuotesAPI_TodayAndSchedule(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodGet, "/api/quotes/today", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	quote := s.createQuote(t, "خير الكلام ما قل ودل", "")

	w = s.do(t, http.MethodPut, "/api/quotes/"+quote.ID+"/schedule", gin.H{"date": "not-a-date"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/quotes/"+quote.ID+"/schedule", gin.H{"date": time.Now().UTC().Format(time.DateOnly)})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/quotes/today", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, quote.ID, decode[entities.Quote](t, w).ID)
}

func TestQuotesAPI_Import(t *testing.T) {
	s := setupServer(t)
	s.createQuote(t, "العلم نور", "")

	w := s.do(t, http.MethodPost, "/api/quotes/import", []services.QuoteInput{
		{Text: "العلم نور"},
		{Text: "الوقت كالسيف"},
		{Text: "الوقت كالسيف"},
		{Text: ""},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[services.ImportResult](t, w)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)

	w = s.do(t, http.MethodPost, "/api/quotes/import", gin.H{"text": "not an array"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuotesAPI_Export(t *testing.T) {
	s := setupServer(t)
	s.createQuote(t, "الصبر مفتاح الفرج", "صبر")
	s.createQuote(t, "العلم نور", "علم")

	w := s.do(t, http.MethodGet, "/api/quotes/export?format=json", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".json")
	exported := decode[[]exporters.ExportedQuote](t, w)
	assert.Len(t, exported, 2)

	w = s.do(t, http.MethodGet, "/api/quotes/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, w.Body.String(), "## صبر")
	assert.Contains(t, w.Body.String(), "> العلم نور")

	w = s.do(t, http.MethodGet, "/api/quotes/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavouritesAPI(t *testing.T) {
	s := setupServer(t)
	a := s.createQuote(t, "الصبر مفتاح الفرج", "")
	b := s.createQuote(t, "العلم نور", "")

	for _, id := range []string{a.ID, b.ID} {
		w := s.do(t, http.MethodPost, "/api/quotes/"+id+"/favourite", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[entities.Quote](t, w).IsFavorite)
	}

	w := s.do(t, http.MethodGet, "/api/favourites/count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode[map[string]int](t, w)["count"])

	w = s.do(t, http.MethodGet, "/api/favourites?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[PaginatedResponse](t, w)
	assert.EqualValues(t, 2, page.Total)
	assert.True(t, page.HasMore)

	w = s.do(t, http.MethodDelete, "/api/quotes/"+a.ID+"/favourite", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[entities.Quote](t, w).IsFavorite)

	w = s.do(t, http.MethodPost, "/api/quotes/"+a.ID+"/favourite/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[entities.Quote](t, w).IsFavorite)
	w = s.do(t, http.MethodPost, "/api/quotes/"+a.ID+"/favourite/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[entities.Quote](t, w).IsFavorite)

	assert.Len(t, s.events.ofType(entities.AnalyticsEventFavorite), 3)
	assert.Len(t, s.events.ofType(entities.AnalyticsEventUnfavorite), 2)

	w = s.do(t, http.MethodPost, "/api/quotes/missing/favourite", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/favourites?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchAPI(t *testing.T) {
	s := setupServer(t)
	s.createQuote(t, "الصبر مفتاح الفرج", "صبر")
	s.createQuote(t, "من صبر ظفر", "صبر")
	s.createQuote(t, "العلم نور والجهل ظلام", "علم")

	resp := s.searchUntilReady(t, "/api/search?q=صبر")
	assert.Equal(t, "صبر", resp.Query)
	assert.Equal(t, 2, resp.Total)
	for _, r := range resp.Results {
		assert.Contains(t, r.Quote.Text, "صبر")
		assert.Positive(t, r.Score)
	}

	w := s.do(t, http.MethodGet, "/api/search?q=%20%20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	blank := decode[services.SearchResponse](t, w)
	assert.Empty(t, blank.Results)

	w = s.do(t, http.MethodGet, "/api/search?q=صبر&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[services.SearchResponse](t, w).Results, 1)

	w = s.do(t, http.MethodGet, "/api/search?q=صبر&limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/search?q=صبر&exact=false&semantic=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[services.SearchResponse](t, w).Results)

	assert.NotEmpty(t, s.events.ofType(entities.AnalyticsEventSearch))
}

func TestSearchAPI_ZeroMinScore(t *testing.T) {
	s := setupServer(t)
	s.createQuote(t, "يكتب "+strings.Repeat("كلام ", 30), "")
	s.createQuote(t, "كتاب مفيد", "")

	resp := s.searchUntilReady(t, "/api/search?q=كتاب")
	assert.Equal(t, 1, resp.Total)

	w := s.do(t, http.MethodGet, "/api/search?q=كتاب&min_score=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[services.SearchResponse](t, w)
	require.Equal(t, 2, all.Total)
	assert.Zero(t, all.Results[1].Score)

	w = s.do(t, http.MethodGet, "/api/search?q=كتاب&min_score=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchAPI_RecentSuggestStatus(t *testing.T) {
	s := setupServer(t)
	s.createQuote(t, "الصبر مفتاح الفرج", "")

	s.searchUntilReady(t, "/api/search?q=الفرج")

	w := s.do(t, http.MethodGet, "/api/search/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "الفرج", decode[map[string][]string](t, w)["recent"][0])

	w = s.do(t, http.MethodDelete, "/api/search/recent", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, "/api/search/recent", nil)
	assert.Empty(t, decode[map[string][]string](t, w)["recent"])

	w = s.do(t, http.MethodGet, "/api/search/suggest?prefix=مفت", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[map[string][]string](t, w)["suggestions"], "مفتاح")

	w = s.do(t, http.MethodGet, "/api/search/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[services.IndexStatus](t, w)
	assert.Equal(t, search.StateReady.String(), status.State)
	assert.True(t, status.Ready)
	assert.Equal(t, 1, status.Quotes)

	w = s.do(t, http.MethodPost, "/api/search/reindex", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestBooksAPI(t *testing.T) {
	s := setupServer(t)
	book := &entities.Book{
		Title: "الأذكار",
		Kind:  entities.BookKindDevotional,
		Pages: []entities.BookPage{
			{Number: 1, Content: "أذكار الصباح"},
			{Number: 2, Content: "أذكار المساء"},
		},
	}
	require.NoError(t, s.reading.CreateBook(book))
	id := strconvUint(book.ID)

	w := s.do(t, http.MethodGet, "/api/books?kind=devotional", nil)
	require.Equal(t, http.StatusOK, w.Code)
	books := decode[map[string][]entities.Book](t, w)["books"]
	require.Len(t, books, 1)
	assert.Equal(t, 2, books[0].PageCount)

	w = s.do(t, http.MethodGet, "/api/books?kind=novel", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/books/"+id+"/pages/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "أذكار المساء", decode[entities.BookPage](t, w).Content)
	assert.Len(t, s.events.ofType(entities.AnalyticsEventRead), 1)

	w = s.do(t, http.MethodGet, "/api/books/"+id+"/pages/3", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/books/999/pages/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/books/"+id+"/progress", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, "/api/books/"+id+"/progress", gin.H{"page": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/books/"+id+"/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[entities.ReadingProgress](t, w).Page)

	w = s.do(t, http.MethodPut, "/api/books/"+id+"/progress", gin.H{"page": 7})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsAPI(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/api/analytics/events", gin.H{"type": "share", "quote_id": "q1"})
	assert.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, s.events.ofType(entities.AnalyticsEventShare), 1)
	assert.Equal(t, "q1", s.events.ofType(entities.AnalyticsEventShare)[0].QuoteID)

	w = s.do(t, http.MethodPost, "/api/analytics/events", gin.H{"type": "explode"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.createQuote(t, "العلم نور", "")
	w = s.do(t, http.MethodGet, "/api/analytics/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[analytics.Stats](t, w).TotalQuotes)
}

func TestSettingsAPI_DailyQuote(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodGet, "/api/settings/daily-quote", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPut, "/api/settings/daily-quote", gin.H{"schedule": "every now and then"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/settings/daily-quote", gin.H{"schedule": "30 5 * * *", "enabled": false})
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[dailyQuoteResponse](t, w)
	assert.Equal(t, "30 5 * * *", info.Schedule)
	assert.Equal(t, "database", info.ScheduleSource)
	assert.False(t, info.Enabled)

	w = s.do(t, http.MethodDelete, "/api/settings/daily-quote", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "database", decode[dailyQuoteResponse](t, w).ScheduleSource)

	w = s.do(t, http.MethodPost, "/api/settings/daily-quote/run", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_DemoModeBlocksWrites(t *testing.T) {
	s := setupServer(t, func(cfg *RouterConfig) { cfg.DemoMode = true })
	quote, err := s.quotes.Create(context.Background(), 0, services.QuoteInput{Text: "العلم نور"})
	require.NoError(t, err)

	w := s.do(t, http.MethodPost, "/api/quotes", services.QuoteInput{Text: "من جد وجد"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodDelete, "/api/quotes/"+quote.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/quotes/"+quote.ID+"/favourite", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/quotes", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
