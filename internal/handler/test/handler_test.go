package test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	handlers "newsboard/internal/handler"
	"newsboard/internal/metrics"
	"newsboard/internal/service"
)

func newTestHandlers(post *MockPostService, comment *MockCommentService) *handlers.Handlers {
	log, _ := logtest.NewNullLogger()
	return &handlers.Handlers{
		PostService:    post,
		CommentService: comment,
		StatsService:   new(MockStatsService),
		Log:            log,
	}
}

func serve(h *handlers.Handlers, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handlers.NewRouter(h).ServeHTTP(rr, req)
	return rr
}

func TestNewHandlers(t *testing.T) {
	mockPostService := new(MockPostService)
	mockCommentService := new(MockCommentService)
	mockStatsService := new(MockStatsService)
	mockHealth := new(MockHealthChecker)
	log, _ := logtest.NewNullLogger()

	services := &service.Service{
		Post:    mockPostService,
		Comment: mockCommentService,
		Stats:   mockStatsService,
	}

	handler := handlers.NewHandlers(services, mockHealth, metrics.New(), log)

	assert.NotNil(t, handler.PostService)
	assert.NotNil(t, handler.CommentService)
	assert.NotNil(t, handler.StatsService)
	assert.NotNil(t, handler.Health)
	assert.NotNil(t, handler.Metrics)
	assert.NotNil(t, handler.Log)
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	handlers.WriteError(rr, "Too many requests", http.StatusTooManyRequests)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Too many requests"}`, rr.Body.String())
}

func TestRouterUnknownRoutes(t *testing.T) {
	h := newTestHandlers(new(MockPostService), new(MockCommentService))

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "non-numeric post id", method: http.MethodGet, path: "/posts/abc", expectedStatus: http.StatusNotFound},
		{name: "negative post id", method: http.MethodGet, path: "/posts/-1", expectedStatus: http.StatusNotFound},
		{name: "non-numeric comment id", method: http.MethodPost, path: "/comments/x/like", expectedStatus: http.StatusNotFound},
		{name: "unknown path", method: http.MethodGet, path: "/nothing", expectedStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodDelete, path: "/posts/1", expectedStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(h, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), `"error"`)
		})
	}
}
