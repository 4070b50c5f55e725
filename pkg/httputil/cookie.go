package httputil

import "net/http"

// CookieValue returns the value of the named cookie from a response's
// Set-Cookie headers. An empty or deleted cookie reports ok=false.
func CookieValue(resp *http.Response, name string) (string, bool) {
	for _, c := range resp.Cookies() {
		if c.Name == name && c.Value != "" && c.MaxAge >= 0 {
			return c.Value, true
		}
	}
	return "", false
}
