package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
)

func strconvUint(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func runHelper(t *testing.T, target string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/items/:id", handler)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		name   string
		target string
		wantOK bool
		wantID uint
	}{
		{"valid", "/items/42", true, 42},
		{"zero", "/items/0", false, 0},
		{"negative", "/items/-1", false, 0},
		{"text", "/items/abc", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID uint
			var gotOK bool
			w := runHelper(t, tt.target, func(c *gin.Context) {
				gotID, gotOK = parseIDParam(c, "id")
				if gotOK {
					c.Status(http.StatusOK)
				}
			})
			assert.Equal(t, tt.wantOK, gotOK)
			assert.Equal(t, tt.wantID, gotID)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestParseIntQuery(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		want   int
		wantOK bool
	}{
		{"absent uses fallback", "", 10, true},
		{"in range", "?n=5", 5, true},
		{"below range", "?n=0", 0, false},
		{"above range", "?n=101", 0, false},
		{"not a number", "?n=x", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int
			var ok bool
			runHelper(t, "/items/1"+tt.query, func(c *gin.Context) {
				got, ok = parseIntQuery(c, "n", 10, 1, 100)
			})
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBoolQuery(t *testing.T) {
	var got *bool
	var ok bool
	runHelper(t, "/items/1", func(c *gin.Context) { got, ok = parseBoolQuery(c, "flag") })
	assert.True(t, ok)
	assert.Nil(t, got)

	runHelper(t, "/items/1?flag=false", func(c *gin.Context) { got, ok = parseBoolQuery(c, "flag") })
	assert.True(t, ok)
	if assert.NotNil(t, got) {
		assert.False(t, *got)
	}

	w := runHelper(t, "/items/1?flag=perhaps", func(c *gin.Context) { got, ok = parseBoolQuery(c, "flag") })
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskStatusToString(t *testing.T) {
	assert.Equal(t, "pending", taskStatusToString(backlite.TaskStatusPending))
	assert.Equal(t, "success", taskStatusToString(backlite.TaskStatusSuccess))
	assert.Equal(t, "not_found", taskStatusToString(backlite.TaskStatusNotFound))
}
