package domain

import "errors"

// Sentinel errors for the lookup pipeline. Transport layers translate these
// into HTTP status codes or tool errors with errors.Is.
var (
	// ErrInvalidFormat means the input failed E.164 validation. Raised
	// before any network call.
	ErrInvalidFormat = errors.New("invalid phone number format, must be E.164")

	// ErrNumberNotFound means the provider reports the number does not exist.
	ErrNumberNotFound = errors.New("phone number not found")

	// ErrProviderAuth means our provider credentials were rejected.
	ErrProviderAuth = errors.New("provider authentication failed")

	// ErrRateLimited means the provider is throttling us.
	ErrRateLimited = errors.New("provider rate limit exceeded")

	// ErrUpstreamUnavailable covers network-level failures reaching the
	// provider (timeout, connection reset). Never retried automatically.
	ErrUpstreamUnavailable = errors.New("error contacting provider")

	// ErrUpstreamError covers any other non-2xx provider response.
	ErrUpstreamError = errors.New("unexpected provider response")

	// ErrScoreUnavailable means the provider answered but the spam score
	// add-on result was missing. Only the strict classify path raises it.
	ErrScoreUnavailable = errors.New("spam score not available")

	// ErrReportNotFound means fetch was asked for an id the cache has
	// never seen.
	ErrReportNotFound = errors.New("report not found")
)
