package domain

import "errors"

// Upstream failure taxonomy. Adapter errors wrap one of these sentinels so
// the boundary can branch without inspecting provider-specific detail.
var (
	// ErrUpstreamUnavailable covers transport failures, timeouts, and
	// non-success HTTP statuses from either upstream call.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedResponse covers successful responses missing expected
	// fields, or bodies that do not decode.
	ErrMalformedResponse = errors.New("malformed upstream response")
)
