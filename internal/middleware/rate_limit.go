package middleware

import (
	"net"
	"net/http"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/PauloHFS/blogicum/internal/logging"
	"github.com/PauloHFS/blogicum/internal/metrics"
)

// Quantos IPs distintos ficam em memória; os menos recentes saem primeiro.
const defaultLimiterCacheSize = 10_000

type RateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	rps      rate.Limit
	burst    int
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	cache, err := lru.New[string, *rate.Limiter](defaultLimiterCacheSize)
	if err != nil {
		// só falha com tamanho <= 0
		panic(err)
	}
	return &RateLimiter{limiters: cache, rps: rate.Limit(rps), burst: burst}
}

func (l *RateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.limiters.Get(ip); ok {
		return lim
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	l.limiters.Add(ip, lim)
	return lim
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		if !l.limiter(ip).Allow() {
			metrics.RateLimited.Inc()
			logging.Get().Warn("rate limited", "ip", ip, "path", r.URL.Path)
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
