package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsboard/internal/config"
	handlers "newsboard/internal/handler"
	"newsboard/internal/repository/memory"
	"newsboard/internal/service"
)

func newAPIHandler(t *testing.T) http.Handler {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	cfg := config.LoadConfig()
	return APIHandler(cfg, service.NewService(memory.NewRepository()), nil, log)
}

func doPost(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	// every presentation-client request comes from the same address
	req.RemoteAddr = "127.0.0.1:50000"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAPIHandler_DefaultConfigAppliesEveryConcurrentLike(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("RATE_LIMIT_BURST", "")
	h := newAPIHandler(t)

	rr := doPost(t, h, "/posts", `{"author":"Ada Lovelace","title":"Hello","content":"World"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created handlers.PostResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doPost(t, h, fmt.Sprintf("/posts/%d/comments", created.ID), `{"author":"Bob X","content":"Nice!"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var comment handlers.CommentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &comment))

	// well above the burst of the opt-in limiter
	const n = 250
	var wg sync.WaitGroup
	var mu sync.Mutex
	codes := map[int]int{}
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			code := doPost(t, h, fmt.Sprintf("/posts/%d/like", created.ID), "").Code
			mu.Lock()
			codes[code]++
			mu.Unlock()
		}()
		go func() {
			defer wg.Done()
			code := doPost(t, h, fmt.Sprintf("/comments/%d/like", comment.ID), "").Code
			mu.Lock()
			codes[code]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, map[int]int{http.StatusOK: 2 * n}, codes)

	var like handlers.LikeResponse
	rr = doPost(t, h, fmt.Sprintf("/posts/%d/like", created.ID), "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &like))
	assert.Equal(t, int64(n+1), like.Likes)

	rr = doPost(t, h, fmt.Sprintf("/comments/%d/like", comment.ID), "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &like))
	assert.Equal(t, int64(n+1), like.Likes)
}

func TestAPIHandler_RateLimitIsOptIn(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("RATE_LIMIT_RPS", "1")
	t.Setenv("RATE_LIMIT_BURST", "2")
	h := newAPIHandler(t)

	rr := doPost(t, h, "/posts", `{"author":"Ada Lovelace","title":"Hello","content":"World"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created handlers.PostResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	path := fmt.Sprintf("/posts/%d/like", created.ID)
	codes := []int{doPost(t, h, path, "").Code, doPost(t, h, path, "").Code}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
