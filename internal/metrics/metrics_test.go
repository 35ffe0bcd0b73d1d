package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLike(t *testing.T) {
	m := New()

	m.RecordLike("post")
	m.RecordLike("post")
	m.RecordLike("comment")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.likes.WithLabelValues("post")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.likes.WithLabelValues("comment")))
}

func TestRecordHTTPRequest(t *testing.T) {
	m := New()

	m.RecordHTTPRequest(http.MethodGet, "/posts", http.StatusOK, 10*time.Millisecond)
	m.IncrementInFlight()
	m.DecrementInFlight()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/posts", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RecordCreated("post")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "newsboard_content_created_total")
}
