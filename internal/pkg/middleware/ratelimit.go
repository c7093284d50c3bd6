package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"biblioteca/internal/pkg/cache"
	"biblioteca/internal/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Limiter decide se a chave ainda tem cota na janela corrente.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
}

// RedisLimiter conta requisições por janela fixa no Redis, compartilhado entre instâncias.
type RedisLimiter struct {
	client cache.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(client cache.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	count, err := l.client.IncrWindow(ctx, "biblioteca:rate-limit:"+key, l.window)
	if err != nil {
		return true, l.limit, err
	}
	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return count <= int64(l.limit), remaining, nil
}

// MemoryLimiter usa um token bucket por chave, local ao processo.
// Chaves ociosas por uma janela inteira já estariam com o balde cheio e são descartadas.
type MemoryLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     int
	every     rate.Limit
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type visitor struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		visitors:  make(map[string]*visitor),
		limit:     limit,
		every:     rate.Every(window / time.Duration(limit)),
		window:    window,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, int, error) {
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(now)
	}
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.every, l.limit)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	allowed := v.lim.AllowN(now, 1)
	remaining := int(v.lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining, nil
}

// sweep exige l.mu.
func (l *MemoryLimiter) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.window {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// RateLimiter limita requisições por IP. Falhas do Limiter deixam a requisição passar.
func RateLimiter(l Limiter, limit int, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			allowed, remaining, err := l.Allow(r.Context(), ip)
			if err != nil {
				log.Warn("Falha no rate limiter, requisição liberada.", map[string]interface{}{"ip": ip, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				log.Warn("Limite de requisições excedido.", map[string]interface{}{"ip": ip, "path": r.URL.Path})
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Limite de requisições excedido")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
