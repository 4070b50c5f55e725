package gallery

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/photogrid/pkg/errors"
)

// Level is the permission a token grants on a tag.
type Level int

// Permission levels, ordered.
const (
	LevelNone Level = iota
	LevelRead
	LevelDownload
	LevelWrite
	LevelManage
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelRead:
		return "read"
	case LevelDownload:
		return "download"
	case LevelWrite:
		return "write"
	case LevelManage:
		return "manage"
	}
	return "unknown"
}

// Token is one access code attached to a tag, as listed by the tag endpoint.
type Token struct {
	ID    int64  `json:"id"`
	Tag   int64  `json:"tag"`
	Token string `json:"tok"`
	// Expires is the server's timestamp text, empty for never.
	Expires Text  `json:"exp,omitempty"`
	Code    Text  `json:"rc"`
	Uses    int   `json:"n"`
	MaxUses int   `json:"max"`
	Level   Level `json:"lvl"`
}

// Kind is "Edit" for codes granting more than write, "View" otherwise.
func (t Token) Kind() string {
	if t.Level > LevelWrite {
		return "Edit"
	}
	return "View"
}

// TagInfo is one tag visible to the current cookie.
type TagInfo struct {
	ID          int64   `json:"id"`
	Tag         string  `json:"tag"`
	Description string  `json:"dsc,omitempty"`
	Pictures    int     `json:"n,omitempty"`
	Level       Level   `json:"lvl"`
	Tokens      []Token `json:"tok,omitempty"`
}

// CanWrite reports whether any tag grants at least write access.
func CanWrite(tags []TagInfo) bool {
	for _, t := range tags {
		if t.Level >= LevelWrite {
			return true
		}
	}
	return false
}

// RedactCode keeps the first and last characters of code and replaces
// everything between with a middle dot.
func RedactCode(code string) string {
	r := []rune(code)
	for i := 1; i < len(r)-1; i++ {
		r[i] = '·'
	}
	return string(r)
}

var expiryUnits = map[string]int{"d": 1, "w": 7, "m": 30, "y": 365}

// ExpiryFrom returns now plus n units, where unit is d, w, m or y.
func ExpiryFrom(now time.Time, n int, unit string) (time.Time, error) {
	days, ok := expiryUnits[unit]
	if !ok {
		return time.Time{}, errors.New(errors.ErrCodeInvalidInput, "unknown expiry unit %q (want d, w, m or y)", unit)
	}
	if n <= 0 {
		return time.Time{}, errors.New(errors.ErrCodeInvalidInput, "expiry must be positive, got %d", n)
	}
	return now.Add(time.Duration(n*days) * 24 * time.Hour), nil
}

// CookieName is the cookie that carries the token jar.
const CookieName = "token"

// TokenJar is the ordered set of tokens held in the token cookie.
type TokenJar struct {
	tokens []string
}

// ParseJar parses a ':'-joined cookie value. Empty segments and duplicates
// are dropped.
func ParseJar(value string) *TokenJar {
	j := &TokenJar{}
	for _, t := range strings.Split(value, ":") {
		j.Add(t)
	}
	return j
}

// Add inserts a token unless it is empty or already present.
func (j *TokenJar) Add(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" || j.Has(token) {
		return false
	}
	j.tokens = append(j.tokens, token)
	return true
}

// Merge adds every token of other.
func (j *TokenJar) Merge(other *TokenJar) {
	for _, t := range other.tokens {
		j.Add(t)
	}
}

// Has reports whether token is held.
func (j *TokenJar) Has(token string) bool {
	for _, t := range j.tokens {
		if t == token {
			return true
		}
	}
	return false
}

// Clear empties the jar, which logs the client out.
func (j *TokenJar) Clear() { j.tokens = nil }

// Len returns the number of tokens held.
func (j *TokenJar) Len() int { return len(j.tokens) }

// Tokens returns a copy of the held tokens.
func (j *TokenJar) Tokens() []string { return append([]string(nil), j.tokens...) }

// String returns the cookie value.
func (j *TokenJar) String() string { return strings.Join(j.tokens, ":") }

// JustLoggedIn reports whether a successful redeem left exactly one token,
// meaning the client went from no access to some.
func (j *TokenJar) JustLoggedIn() bool { return len(j.tokens) == 1 }

// NewToken describes an access code to mint for a tag. Codes above write
// level cannot be created through the token servlet.
type NewToken struct {
	Tag   int64 `validate:"gt=0"`
	Level Level `validate:"min=1,max=3"`
	// Uses caps redemptions; 0 is unlimited.
	Uses int `validate:"gte=0"`
	// Expires is zero for never.
	Expires time.Time
}

// Validate checks the tag id, level and use count.
func (n NewToken) Validate() error {
	if err := validate.Struct(n); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return errors.New(errors.ErrCodeInvalidInput, "new token: %s fails %s=%s", verrs[0].Field(), verrs[0].Tag(), verrs[0].Param())
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "new token")
	}
	return nil
}

// Form returns the token servlet's fields for creating the code.
func (n NewToken) Form() url.Values {
	v := url.Values{
		"new": {"1"},
		"tag": {strconv.FormatInt(n.Tag, 10)},
		"lvl": {strconv.Itoa(int(n.Level))},
	}
	if n.Uses > 0 {
		v.Set("cnt", strconv.Itoa(n.Uses))
	}
	if !n.Expires.IsZero() {
		v.Set("exp", strconv.FormatInt(n.Expires.UnixMilli(), 10))
	}
	return v
}
