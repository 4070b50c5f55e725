// Package httputil holds small HTTP helpers shared by the gallery client
// and the preview server.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff. Only errors
// wrapped with [Retryable] are retried, so a 403 or a malformed response
// fails immediately while a 502 or a dropped connection gets another try:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetch(ctx)
//	})
//
// The gallery answers 429 when a client sends too many requests. Such
// errors carry the server's Retry-After through [RetryAfter], and [Retry]
// waits at least that long before the next attempt.
//
// # Cookies
//
// [CookieValue] reads a cookie the server set on a response. The token
// servlet answers a successful redeem with Set-Cookie: token=...
package httputil
