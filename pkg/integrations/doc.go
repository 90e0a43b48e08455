// Package integrations provides the HTTP plumbing for remote data feeds.
//
// [Client] wraps a [net/http.Client] with response caching through a
// [cache.Cache], bounded retry with exponential backoff (see
// [httputil.Retry]) and request pacing with golang.org/x/time/rate.
// Feed-specific clients embed it:
//
//	type Client struct {
//	    *integrations.Client
//	    url string
//	}
//
// The only feed today is the Google Fonts family metadata, in subpackage
// gfonts.
//
// Failures are reported as [ErrNotFound], [ErrRateLimited], [ErrTimeout] or
// [ErrNetwork], wrapped with context. Each carries the matching code from
// package errors; use errors.Is to classify them.
//
// [cache.Cache]: github.com/glyphgap/glyphgap/pkg/cache.Cache
// [httputil.Retry]: github.com/glyphgap/glyphgap/pkg/httputil.Retry
package integrations
