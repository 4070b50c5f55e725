package photoprism

import (
	"context"
	"net/url"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
	"github.com/matzehuels/photogrid/pkg/httputil"
)

// Redeem exchanges an access code for a token. The server answers with a
// Set-Cookie holding the whole jar; its tokens are merged into ours. A
// rejected code is CODE_REJECTED, not REAUTHENTICATE.
func (c *Client) Redeem(ctx context.Context, code string) (*gallery.TokenJar, error) {
	if err := errors.ValidateRedeemCode(code); err != nil {
		return nil, err
	}
	resp, err := c.api.PostForm(ctx, c.url(pathToken, nil), url.Values{"rc": {code}}, nil)
	if err != nil {
		if errors.Is(err, errors.ErrCodeReauthenticate) {
			return nil, errors.New(errors.ErrCodeCodeRejected, "code not accepted")
		}
		return nil, err
	}
	value, ok := httputil.CookieValue(resp, gallery.CookieName)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "server accepted the code but set no %s cookie", gallery.CookieName)
	}
	before := c.jar.Len()
	jar := gallery.ParseJar(c.jar.String())
	jar.Merge(gallery.ParseJar(value))
	c.SetJar(jar)
	c.invalidateTags(ctx)
	c.logger.Debug("code redeemed", "code", gallery.RedactCode(code), "tokens", jar.Len(), "new", jar.Len()-before)
	return jar, nil
}

// CreateToken mints a new access code for a tag. The code itself shows up
// in the verbose tag listing.
func (c *Client) CreateToken(ctx context.Context, t gallery.NewToken) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, err := c.api.PostForm(ctx, c.url(pathToken, nil), t.Form(), nil); err != nil {
		if errors.Is(err, errors.ErrCodeReauthenticate) {
			return errors.Wrap(errors.ErrCodeForbidden, err, "cannot create codes for tag %d", t.Tag)
		}
		return err
	}
	c.invalidateTags(ctx)
	return nil
}

// DeleteToken revokes the access code rc.
func (c *Client) DeleteToken(ctx context.Context, rc string) error {
	if err := errors.ValidateRedeemCode(rc); err != nil {
		return err
	}
	if _, err := c.api.PostForm(ctx, c.url(pathToken, nil), url.Values{"del": {rc}}, nil); err != nil {
		if errors.Is(err, errors.ErrCodeReauthenticate) {
			return errors.Wrap(errors.ErrCodeForbidden, err, "cannot delete code %s", gallery.RedactCode(rc))
		}
		return err
	}
	c.invalidateTags(ctx)
	return nil
}

// Logout forgets every token.
func (c *Client) Logout(ctx context.Context) {
	c.invalidateTags(ctx)
	c.SetJar(gallery.ParseJar(""))
}
