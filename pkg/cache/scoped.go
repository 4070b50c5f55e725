package cache

import "net/url"

// Keyer builds cache keys for gallery requests.
type Keyer interface {
	// HTTPKey is a plain namespaced key, e.g. "http:tags:".
	HTTPKey(namespace, key string) string

	// RequestKey identifies a GET by path and query. Parameter order does
	// not matter.
	RequestKey(path string, params url.Values) string
}

// DefaultKeyer is the unscoped key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

func (DefaultKeyer) RequestKey(path string, params url.Values) string {
	// Encode sorts by key.
	return hashKey("req", path, params.Encode())
}

// ScopedKeyer prefixes every key. The CLI scopes by server and token jar,
// since the same browse query returns different pictures to different
// token holders.
//
//	k := NewScopedKeyer(nil, ServerScope("https://photos.example.com", jar.String()))
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k *ScopedKeyer) RequestKey(path string, params url.Values) string {
	return k.prefix + k.inner.RequestKey(path, params)
}

// ServerScope returns a short prefix derived from a base URL and the
// credentials in use.
func ServerScope(baseURL, tokens string) string {
	return "srv:" + Hash([]byte(baseURL + "\x00" + tokens))[:16] + ":"
}
