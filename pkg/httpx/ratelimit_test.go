package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func hit(h http.Handler, remote string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("remote addr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("X-Real-IP without X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestCompositeKeyExtractorSkipsEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1"

	ex := httpx.CompositeKeyExtractor(":", httpx.SubjectKeyExtractor, httpx.IPKeyExtractor)
	require.Equal(t, "10.0.0.1", ex(req))

	req = req.WithContext(httpx.WithSubject(req.Context(), "acct-1"))
	require.Equal(t, "acct-1:10.0.0.1", ex(req))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows the burst then blocks", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimit{Requests: 3, Window: time.Minute, Burst: 3})(okHandler)

		for i := range 3 {
			require.Equal(t, http.StatusOK, hit(h, "192.168.1.1:1").Code, "request %d", i+1)
		}
		require.Equal(t, http.StatusTooManyRequests, hit(h, "192.168.1.1:1").Code)
	})

	t.Run("buckets are per key", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimit{Requests: 1, Window: time.Minute, Burst: 1})(okHandler)

		require.Equal(t, http.StatusOK, hit(h, "192.168.1.1:1").Code)
		require.Equal(t, http.StatusTooManyRequests, hit(h, "192.168.1.1:1").Code)
		require.Equal(t, http.StatusOK, hit(h, "192.168.1.2:1").Code)
	})

	t.Run("requests without a key pass", func(t *testing.T) {
		none := func(*http.Request) string { return "" }
		h := httpx.RateLimitMiddleware(httpx.RateLimit{Requests: 1, Window: time.Minute, Burst: 1}, none)(okHandler)

		for range 5 {
			require.Equal(t, http.StatusOK, hit(h, "192.168.1.1:1").Code)
		}
	})

	t.Run("subject buckets", func(t *testing.T) {
		h := httpx.RateLimitBySubject(httpx.RateLimit{Requests: 1, Window: time.Minute, Burst: 1})(okHandler)
		as := func(sub string) func(*http.Request) {
			return func(r *http.Request) {
				*r = *r.WithContext(httpx.WithSubject(r.Context(), sub))
			}
		}

		require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", as("a")).Code)
		require.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1", as("a")).Code)
		require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", as("b")).Code)
	})
}

func TestRateLimitHeaders(t *testing.T) {
	h := httpx.RateLimitByIP(httpx.RateLimit{Requests: 1, Window: time.Minute, Burst: 1})(okHandler)

	require.Equal(t, http.StatusOK, hit(h, "192.168.1.1:1").Code)
	rec := hit(h, "192.168.1.1:1")

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
	require.Contains(t, rec.Body.String(), "rate_limit_exceeded")
	require.Contains(t, rec.Body.String(), "error_description")
}

func TestRateLimitOrDefault(t *testing.T) {
	got := httpx.RateLimit{Requests: 10}.OrDefault(httpx.LoginLimit)
	require.Equal(t, 10, got.Requests)
	require.Equal(t, httpx.LoginLimit.Window, got.Window)
	require.Equal(t, httpx.LoginLimit.Burst, got.Burst)

	require.Less(t, httpx.LoginLimit.Requests, httpx.WriteLimit.Requests)
}

func BenchmarkRateLimitMiddleware(b *testing.B) {
	h := httpx.RateLimitByIP(httpx.RateLimit{Requests: 1_000_000, Window: time.Minute, Burst: 1000})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"

	for b.Loop() {
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
}
