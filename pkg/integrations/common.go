package integrations

import (
	"net/http"
	"time"

	"github.com/glyphgap/glyphgap/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// Sentinel failures. Each carries an error code, so callers may match either
// the sentinel with errors.Is or the code with [errors.Is].
var (
	// ErrNotFound is returned when the remote resource doesn't exist.
	ErrNotFound = errors.New(errors.ErrCodeNotFound, "resource not found")

	// ErrNetwork is returned for connection errors and unexpected statuses.
	ErrNetwork = errors.New(errors.ErrCodeNetwork, "network error")

	// ErrTimeout is returned when a request exceeds the client timeout.
	ErrTimeout = errors.New(errors.ErrCodeTimeout, "request timed out")

	// ErrRateLimited is returned for 429 responses.
	ErrRateLimited = errors.New(errors.ErrCodeRateLimited, "rate limited")
)

// NewHTTPClient creates an HTTP client with the given timeout.
// A zero timeout selects the default of 30 seconds.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
