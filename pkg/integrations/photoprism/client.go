package photoprism

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photogrid/pkg/cache"
	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
	"github.com/matzehuels/photogrid/pkg/integrations"
)

// Endpoint paths.
const (
	pathBrowse  = "/servlet/browserest"
	pathToken   = "/servlet/token"
	pathEdit    = "/rest/edit"
	pathSuggest = "/rest/suggest"
	pathTag     = "/rest/tag"
	pathUpload  = "/rest/upload"
)

// DefaultTTL is how long tag listings and suggestions stay cached.
const DefaultTTL = 10 * time.Minute

// Options configure a Client. Zero values are usable.
type Options struct {
	Cache   cache.Cache
	TTL     time.Duration
	Timeout time.Duration
	// Retries is the number of attempts for GETs; 0 keeps the default.
	Retries int
	// Refresh bypasses cached responses (they are still written).
	Refresh bool
	Jar     *gallery.TokenJar
	Logger  *log.Logger
}

// Client talks to one gallery server.
type Client struct {
	base    string
	api     *integrations.Client
	keyer   cache.Keyer
	jar     *gallery.TokenJar
	refresh bool
	logger  *log.Logger
}

// New returns a client for the server at baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	if err := errors.ValidateBaseURL(baseURL); err != nil {
		return nil, err
	}
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Jar == nil {
		opts.Jar = gallery.ParseJar("")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	c := &Client{
		base:    baseURL,
		api:     integrations.NewClient(opts.Cache, "", opts.TTL, nil),
		refresh: opts.Refresh,
		logger:  opts.Logger,
	}
	if opts.Timeout > 0 {
		c.api.SetTimeout(opts.Timeout)
	}
	if opts.Retries > 0 {
		c.api.SetRetry(opts.Retries, time.Second)
	}
	c.SetJar(opts.Jar)
	return c, nil
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string { return c.base }

// Jar returns the token jar in use.
func (c *Client) Jar() *gallery.TokenJar { return c.jar }

// SetJar replaces the token jar. The cookie header and the cache scope
// follow it.
func (c *Client) SetJar(j *gallery.TokenJar) {
	c.jar = j
	if j.Len() == 0 {
		c.api.SetHeader("Cookie", "")
	} else {
		c.api.SetHeader("Cookie", gallery.CookieName+"="+j.String())
	}
	c.keyer = cache.NewScopedKeyer(nil, cache.ServerScope(c.base, j.String()))
}

func (c *Client) url(path string, q url.Values) string {
	return integrations.JoinURL(c.base, path, q)
}

// Browse fetches the pictures a browse query selects.
func (c *Client) Browse(ctx context.Context, q gallery.BrowseQuery) (*gallery.Collection, error) {
	data, err := c.api.GetBytes(ctx, c.url(pathBrowse, q.Values()))
	if err != nil {
		return nil, err
	}
	coll, err := gallery.DecodeBrowse(data)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("browse", "query", q.Fragment(), "pictures", coll.Len())
	return coll, nil
}

// Notifications returns the number of pictures flagged new.
func (c *Client) Notifications(ctx context.Context) (int, error) {
	var resp struct {
		N int `json:"n"`
	}
	q := url.Values{"mode": {gallery.ModeNew}}
	if err := c.api.Get(ctx, c.url(pathBrowse, q), &resp); err != nil {
		return 0, err
	}
	return resp.N, nil
}

// GetPicture loads the full record of one picture.
func (c *Client) GetPicture(ctx context.Context, id int64) (*gallery.Picture, error) {
	var p gallery.Picture
	q := url.Values{"img": {strconv.FormatInt(id, 10)}}
	if err := c.api.Get(ctx, c.url(pathEdit, q), &p); err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.Wrap(errors.ErrCodePictureNotFound, err, "picture %d", id)
		}
		return nil, err
	}
	return &p, nil
}

// Edit posts one command and returns what the server changed.
func (c *Client) Edit(ctx context.Context, cmd gallery.Command) (*gallery.Partial, error) {
	var partial gallery.Partial
	if _, err := c.api.PostForm(ctx, c.url(pathEdit, nil), cmd.Form(), &partial); err != nil {
		return nil, err
	}
	return &partial, nil
}

// SuggestQuery picks which suggestion lists to fetch. Loc selects the
// location node whose parents and children are returned.
type SuggestQuery struct {
	Watermark bool
	Timezone  bool
	Loc       int64
}

func (q SuggestQuery) values() url.Values {
	v := url.Values{}
	if q.Watermark {
		v.Set("wmk", "1")
	}
	if q.Timezone {
		v.Set("tmz", "1")
	}
	if q.Loc > 0 {
		v.Set("loc", strconv.FormatInt(q.Loc, 10))
	}
	return v
}

// Suggest fetches remembered values. Results are cached.
func (c *Client) Suggest(ctx context.Context, q SuggestQuery) (*gallery.Suggestions, error) {
	u := c.url(pathSuggest, q.values())
	var s gallery.Suggestions
	key := c.keyer.RequestKey(pathSuggest, q.values())
	err := c.api.Cached(ctx, key, c.refresh, &s, func() error {
		s = gallery.Suggestions{}
		return c.api.Get(ctx, u, &s)
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Tags lists the tags the cookie grants access to. verbose adds tag
// descriptions, counts and the codes attached to each tag.
func (c *Client) Tags(ctx context.Context, verbose bool) ([]gallery.TagInfo, error) {
	q := tagQuery(verbose)
	u := c.url(pathTag, q)
	var tags []gallery.TagInfo
	err := c.api.Cached(ctx, c.keyer.RequestKey(pathTag, q), c.refresh, &tags, func() error {
		tags = nil
		return c.api.Get(ctx, u, &tags)
	})
	return tags, err
}

func tagQuery(verbose bool) url.Values {
	if verbose {
		return url.Values{"v": {"1"}}
	}
	return nil
}

// invalidateTags drops cached tag listings after token changes.
func (c *Client) invalidateTags(ctx context.Context) {
	for _, v := range []bool{false, true} {
		_ = c.api.Invalidate(ctx, c.keyer.RequestKey(pathTag, tagQuery(v)))
	}
}
