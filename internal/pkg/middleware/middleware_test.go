package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"biblioteca/internal/pkg/cache"
	"biblioteca/internal/pkg/logger"
	"biblioteca/internal/pkg/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequestID(t *testing.T) {
	t.Run("gera quando ausente", func(t *testing.T) {
		var seen string
		h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.RequestIDFromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("reaproveita o recebido", func(t *testing.T) {
		h := middleware.RequestID(okHandler)
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
	})
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := middleware.AccessLog(logger.FromZap(zap.New(core)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/authors", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/authors", fields["path"])
	assert.EqualValues(t, http.StatusCreated, fields["status"])
}

func TestRecoverer(t *testing.T) {
	h := middleware.Recoverer(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":500,"category":"INTERNAL_ERROR","message":"Erro interno do servidor"}`, rec.Body.String())
}

// counterCache simula o INCR do Redis.
type counterCache struct {
	cache.NopClient
	counts map[string]int64
	err    error
}

func (c *counterCache) IncrWindow(_ context.Context, key string, _ time.Duration) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.counts[key]++
	return c.counts[key], nil
}

func doRequests(h http.Handler, n int) []*httptest.ResponseRecorder {
	recs := make([]*httptest.ResponseRecorder, 0, n)
	for i := 0; i < n; i++ {
		req := httptest.NewRequest(http.MethodGet, "/authors", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		recs = append(recs, rec)
	}
	return recs
}

func TestRateLimiter_Redis(t *testing.T) {
	cc := &counterCache{counts: map[string]int64{}}
	h := middleware.RateLimiter(middleware.NewRedisLimiter(cc, 2, time.Minute), 2, logger.NewNop())(okHandler)

	recs := doRequests(h, 3)

	assert.Equal(t, http.StatusOK, recs[0].Code)
	assert.Equal(t, "1", recs[0].Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, recs[1].Code)
	assert.Equal(t, http.StatusTooManyRequests, recs[2].Code)
	assert.Contains(t, recs[2].Body.String(), "RATE_LIMITED")
	assert.Equal(t, int64(3), cc.counts["biblioteca:rate-limit:10.0.0.1"])
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	cc := &counterCache{counts: map[string]int64{}, err: errors.New("redis indisponível")}
	h := middleware.RateLimiter(middleware.NewRedisLimiter(cc, 1, time.Minute), 1, logger.NewNop())(okHandler)

	for _, rec := range doRequests(h, 3) {
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_Memory(t *testing.T) {
	h := middleware.RateLimiter(middleware.NewMemoryLimiter(2, time.Hour), 2, logger.NewNop())(okHandler)

	recs := doRequests(h, 3)

	assert.Equal(t, http.StatusOK, recs[0].Code)
	assert.Equal(t, http.StatusOK, recs[1].Code)
	assert.Equal(t, http.StatusTooManyRequests, recs[2].Code)
}
