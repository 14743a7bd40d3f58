package requestmeta

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"enquiries/pkg/requestcontext"
)

func TestMiddleware(t *testing.T) {
	var gotRequestID, gotIP string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = requestcontext.RequestID(r.Context())
		gotIP = requestcontext.ClientIP(r.Context())
		assert.False(t, requestcontext.Now(r.Context()).IsZero())
	})

	t.Run("generates request id when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		Middleware(inner).ServeHTTP(rr, req)

		assert.NotEmpty(t, gotRequestID)
		assert.Equal(t, gotRequestID, rr.Header().Get("X-Request-ID"))
	})

	t.Run("propagates supplied request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rr := httptest.NewRecorder()
		Middleware(inner).ServeHTTP(rr, req)

		assert.Equal(t, "req-123", gotRequestID)
	})

	t.Run("prefers forwarded-for over remote addr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		rr := httptest.NewRecorder()
		Middleware(inner).ServeHTTP(rr, req)

		assert.Equal(t, "203.0.113.9", gotIP)
	})
}

func TestSummarizeUserAgent(t *testing.T) {
	t.Run("summarizes a browser string", func(t *testing.T) {
		const chrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
		got := SummarizeUserAgent(chrome)
		assert.Contains(t, got, "Chrome")
		assert.Contains(t, got, "Windows")
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		assert.Equal(t, "", SummarizeUserAgent(""))
	})
}
