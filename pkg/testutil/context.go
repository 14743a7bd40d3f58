package testutil

import (
	"net/http"
	"time"

	id "enquiries/pkg/domain"
	"enquiries/pkg/requestcontext"
)

// WithOfficer adds an authenticated officer ID to the request context,
// simulating what the auth middleware does. Invalid IDs are silently ignored
// so tests can exercise the unauthenticated path with a bad string.
func WithOfficer(req *http.Request, officerID string) *http.Request {
	parsed, err := id.ParseOfficerID(officerID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithOfficerID(req.Context(), parsed))
}

// WithRequestTime pins the request-scoped clock, so assertions on computed
// dates are deterministic.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithRequestID stamps a fixed request ID for log assertions.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
