package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/services"
)

func setupStatsRouter() (*gin.Engine, *MockItemRepoHTTP, *MockSessionRepoHTTP) {
	gin.SetMode(gin.TestMode)

	itemRepo := new(MockItemRepoHTTP)
	sessionRepo := new(MockSessionRepoHTTP)

	handler := NewStatsHandler(services.NewStatsService(itemRepo, sessionRepo))

	r := gin.New()
	r.Use(fakeAuth())

	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)

	return r, itemRepo, sessionRepo
}

func TestStatsHandler_GetProgressStats(t *testing.T) {
	t.Run("Success: Returns 200 with the aggregated snapshot", func(t *testing.T) {
		r, itemRepo, sessionRepo := setupStatsRouter()

		itemRepo.On("ListByUserID", mock.Anything, "user-1").Return([]*domain.TrackableItem{}, nil)
		sessionRepo.On("ListByUserID", mock.Anything, "user-1").Return([]*domain.ProgressSession{}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/stats/progress?category=reading&goal=500", nil)
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "progress_this_week")
		assert.Contains(t, w.Body.String(), "current_streak")
		assert.Contains(t, w.Body.String(), "goal_percentage")

		var stats domain.ProgressStats
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, "Pages", stats.ProgressLabel)
	})

	t.Run("Fail: Returns 400 on a negative goal", func(t *testing.T) {
		r, _, _ := setupStatsRouter()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/stats/progress?goal=-10", nil)
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: Returns 401 without a user", func(t *testing.T) {
		r, _, _ := setupStatsRouter()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/stats/progress", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: Returns 500 when the repo fails", func(t *testing.T) {
		r, itemRepo, _ := setupStatsRouter()

		itemRepo.On("ListByUserID", mock.Anything, "user-1").Return(nil, errors.New("db down"))

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/stats/progress", nil)
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestStatsHandler_GetProgressGraph(t *testing.T) {
	t.Run("Success: Returns 200 with the requested window", func(t *testing.T) {
		r, _, sessionRepo := setupStatsRouter()

		sessionRepo.On("ListByUserID", mock.Anything, "user-1").Return([]*domain.ProgressSession{}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/stats/graph?days=7", nil)
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var graph domain.GraphData
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &graph))
		assert.Len(t, graph.Days, 7)
		assert.Equal(t, 7, graph.TotalDays)
	})

	t.Run("Security: Returns 400 on an oversized window", func(t *testing.T) {
		r, _, _ := setupStatsRouter()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/stats/graph?days=100000", nil)
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "too large")
	})

	t.Run("Fail: Returns 400 on a non-numeric days param", func(t *testing.T) {
		r, _, _ := setupStatsRouter()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/stats/graph?days=soon", nil)
		req.Header.Set("X-User-ID", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
