package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimit describes a token bucket: Requests per Window, with Burst
// requests available up front.
type RateLimit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

var (
	// LoginLimit guards credential checks.
	LoginLimit = RateLimit{Requests: 5, Window: time.Minute, Burst: 5}

	// WriteLimit guards record creation and updates.
	WriteLimit = RateLimit{Requests: 60, Window: time.Minute, Burst: 20}
)

// OrDefault fills zero fields from def.
func (l RateLimit) OrDefault(def RateLimit) RateLimit {
	if l.Requests <= 0 {
		l.Requests = def.Requests
	}
	if l.Window <= 0 {
		l.Window = def.Window
	}
	if l.Burst <= 0 {
		l.Burst = def.Burst
	}
	return l
}

// KeyExtractor groups requests into rate limit buckets.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor returns the client IP, honouring X-Forwarded-For and
// X-Real-IP from a fronting proxy.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// SubjectKeyExtractor returns the authenticated account id, if any.
func SubjectKeyExtractor(r *http.Request) string {
	return SubjectFromContext(r.Context())
}

// CompositeKeyExtractor joins the non-empty keys of several extractors.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		var parts []string
		for _, ex := range extractors {
			if key := ex(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

type limiterSet struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

func (s *limiterSet) get(key string) *rate.Limiter {
	if l, ok := s.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}
	actual, _ := s.limiters.LoadOrStore(key, rate.NewLimiter(s.rate, s.burst))
	s.sweep()
	return actual.(*rate.Limiter)
}

// sweep drops idle buckets (full of tokens) at most every five minutes.
func (s *limiterSet) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Since(s.lastCleanup) < 5*time.Minute {
		return
	}
	s.lastCleanup = time.Now()

	s.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(s.burst) {
			s.limiters.Delete(key)
		}
		return true
	})
}

// RateLimitMiddleware rejects requests with 429 once the bucket for their
// key is empty. Requests without a key pass through.
func RateLimitMiddleware(limit RateLimit, key KeyExtractor) Middleware {
	set := &limiterSet{
		rate:        rate.Limit(float64(limit.Requests) / limit.Window.Seconds()),
		burst:       limit.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			k := key(r)
			if k == "" {
				log.Warn("rate limit: no key for request, allowing")
				next.ServeHTTP(w, r)
				return
			}

			limiter := set.get(k)
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := limiter.Reserve()
			retryAfter := max(int(res.Delay().Seconds()), 1)
			res.Cancel()

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.Requests))
			w.Header().Set("X-RateLimit-Window", limit.Window.String())

			log.Warn("rate limit exceeded", "key", k, "path", r.URL.Path, "retry_after", retryAfter)
			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
		})
	}
}

// RateLimitByIP limits by client IP.
func RateLimitByIP(limit RateLimit) Middleware {
	return RateLimitMiddleware(limit, IPKeyExtractor)
}

// RateLimitBySubject limits by authenticated account, falling back to IP.
func RateLimitBySubject(limit RateLimit) Middleware {
	return RateLimitMiddleware(limit, CompositeKeyExtractor(":", SubjectKeyExtractor, IPKeyExtractor))
}
