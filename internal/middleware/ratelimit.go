package middleware

import (
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultMaxClients bounds the number of per-client limiters kept at once.
const DefaultMaxClients = 10000

// RateLimitMiddleware limits requests per client IP with a token bucket
// per client.
type RateLimitMiddleware struct {
	limit      rate.Limit
	burst      int
	ttl        time.Duration
	sweepEvery time.Duration
	maxClients int
	proxies    TrustedProxies
	now        func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimitMiddleware allows rps requests per second per client with
// bursts of burst. An rps of zero or less disables limiting. Clients idle
// for ten minutes are forgotten. Forwarding headers are honored only from
// proxies.
func NewRateLimitMiddleware(rps float64, burst int, proxies TrustedProxies) *RateLimitMiddleware {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitMiddleware{
		limit:      rate.Limit(rps),
		burst:      burst,
		ttl:        10 * time.Minute,
		sweepEvery: time.Minute,
		maxClients: DefaultMaxClients,
		proxies:    proxies,
		now:        time.Now,
		clients:    make(map[string]*client),
	}
}

// Enabled reports whether requests are limited at all.
func (m *RateLimitMiddleware) Enabled() bool { return m.limit > 0 }

// RateLimit applies rate limiting based on IP address
func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	if !m.Enabled() {
		log.Info("Inbound rate limiting disabled")
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter(m.proxies.ClientIP(r)).AllowN(m.now(), 1) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) limiter(ip string) *rate.Limiter {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clients[ip]
	if !ok {
		if now.Sub(m.lastSweep) >= m.sweepEvery || len(m.clients) >= m.maxClients {
			m.sweep(now)
		}
		if len(m.clients) >= m.maxClients {
			m.evictOldest()
		}
		c = &client{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

// sweep forgets idle clients. Callers hold mu.
func (m *RateLimitMiddleware) sweep(now time.Time) {
	for key, c := range m.clients {
		if now.Sub(c.lastSeen) > m.ttl {
			delete(m.clients, key)
		}
	}
	m.lastSweep = now
}

// evictOldest drops the least recently seen client. Callers hold mu.
func (m *RateLimitMiddleware) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, c := range m.clients {
		if oldestKey == "" || c.lastSeen.Before(oldest) {
			oldestKey, oldest = key, c.lastSeen
		}
	}
	delete(m.clients, oldestKey)
}
