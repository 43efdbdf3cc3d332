package serve

import (
	"math"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the per-request id on every response
const RequestIDHeader = "X-Request-ID"

const contentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self'; img-src 'self' data: https:"

// requestID tags the response and the request logger with a fresh id
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)

		logger := s.logger.With().Str("request_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

// logRequests logs one line per request and counts it
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.stats.requests.Add(1)

		level := zerolog.InfoLevel
		switch {
		case rec.status >= 500:
			level = zerolog.ErrorLevel
		case rec.status >= 400:
			level = zerolog.WarnLevel
		}
		zerolog.Ctx(r.Context()).WithLevel(level).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// securityHeaders sets the response headers browsers use to restrict content
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// cors allows credentialed requests from the configured origins. "*" in
// origins allows any origin.
func cors(origins []string, next http.Handler) http.Handler {
	anyOrigin := slices.Contains(origins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin != "" && (anyOrigin || slices.Contains(origins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ipLimiter holds one token bucket per client address. A bucket admits max
// requests at once and refills at max per window.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	window   time.Duration
	max      int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(window time.Duration, max int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*clientLimiter),
		window:   window,
		max:      max,
	}
}

// allow reports whether the client may make another request now
func (l *ipLimiter) allow(client string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.limiters[client]
	if !ok {
		l.prune(now)
		c = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.max)), l.max),
		}
		l.limiters[client] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// prune drops clients idle for a full window; their buckets are full again
func (l *ipLimiter) prune(now time.Time) {
	for client, c := range l.limiters {
		if now.Sub(c.lastSeen) > l.window {
			delete(l.limiters, client)
		}
	}
}

// retryAfter is the window length in whole seconds
func (l *ipLimiter) retryAfter() int {
	return int(math.Ceil(l.window.Seconds()))
}

// rateLimit applies the per-client limiter to paths under prefix
func (s *server) rateLimit(prefix string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, prefix) || s.limiter.allow(clientIP(r, s.cfg.API.TrustedProxies), time.Now()) {
			next.ServeHTTP(w, r)
			return
		}

		s.stats.rateLimited.Add(1)
		s.sendError(w, http.StatusTooManyRequests, ErrorResponse{
			Error:      "Rate limit exceeded",
			Message:    "Too many requests from this IP, please try again later.",
			RetryAfter: s.limiter.retryAfter(),
		})
	})
}

// clientIP identifies the client for rate limiting. Each trusted proxy
// appends the address it received the request from to X-Forwarded-For, so
// the entry trusted hops from the right is the first one not written by a
// proxy of ours. Without trusted proxies the header is ignored.
func clientIP(r *http.Request, trusted int) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if trusted <= 0 {
		return host
	}

	var hops []string
	for _, fwd := range r.Header.Values("X-Forwarded-For") {
		for _, part := range strings.Split(fwd, ",") {
			if part = strings.TrimSpace(part); part != "" {
				hops = append(hops, part)
			}
		}
	}
	if len(hops) == 0 {
		return host
	}
	return hops[max(len(hops)-trusted, 0)]
}
