// Package httputil provides helpers for calls to remote services.
//
// [Retry] re-runs an operation with exponential backoff while it keeps
// failing with a [RetryableError]. Wrap transient failures with [Retryable]:
//
//	err := httputil.Retry(ctx, 3, 500*time.Millisecond, func() error {
//	    resp, err := call(ctx)
//	    if err != nil && httputil.RetryableStatus(statusOf(err)) {
//	        return httputil.Retryable(err)
//	    }
//	    return err
//	})
//
// Which statuses count as transient is decided by [RetryableStatus]:
// 408, 429 and every 5xx.
package httputil
