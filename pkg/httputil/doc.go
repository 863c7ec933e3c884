// Package httputil provides retry scheduling for API clients.
//
// A [Backoff] wraps operations with automatic retry for transient failures.
// Wrap errors that warrant another attempt in [RetryableError]:
//
//	err := httputil.APIBackoff.Retry(ctx, func() error {
//	    resp, err := http.Get(url)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}  // Retry network errors
//	    }
//	    if resp.StatusCode >= 500 {
//	        return &httputil.RetryableError{Err: errServer}  // Retry 5xx
//	    }
//	    return processResponse(resp)  // Other errors fail immediately
//	})
//
// Only errors wrapped in [RetryableError] trigger retries; everything else
// returns to the caller on the first attempt.
package httputil
