// Package httputil provides retry helpers for the remote feeds glyphgap
// reads.
//
// [Retry] re-runs an operation with exponential backoff while it fails with
// a [RetryableError]. Clients classify failures themselves, typically with
// [Retryable] for network errors and [RetryableStatus] for responses:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    defer resp.Body.Close()
//	    if httputil.RetryableStatus(resp.StatusCode) {
//	        return httputil.Retryable(fmt.Errorf("status %d", resp.StatusCode))
//	    }
//	    return decode(resp.Body)
//	})
//
// Only 429 and 5xx responses are worth retrying; anything else fails on the
// first attempt.
package httputil
