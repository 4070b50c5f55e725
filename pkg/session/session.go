// Package session persists the token jar between CLI invocations.
//
// A session belongs to one gallery server and holds the token cookie the
// server handed out, so a redeemed code keeps working until the user logs
// out or the session expires.
//
// # Usage
//
//	store, err := session.NewCLIStore("")  // ~/.config/photogrid/sessions/
//	jar, err := store.Jar(ctx, "https://photos.example.com")
//	// ... redeem, which grows the jar ...
//	err = store.SaveJar(ctx, "https://photos.example.com", jar)
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/matzehuels/photogrid/pkg/gallery"
)

// Session stores the token cookie for one server.
type Session struct {
	ID        string    `json:"id"`
	Server    string    `json:"server"`
	Tokens    string    `json:"tokens"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Jar parses the stored cookie value.
func (s *Session) Jar() *gallery.TokenJar {
	if s == nil {
		return gallery.ParseJar("")
	}
	return gallery.ParseJar(s.Tokens)
}

// Store persists sessions by id.
type Store interface {
	// Get returns nil, nil for unknown or expired sessions.
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
	// Cleanup removes expired sessions and reports how many it removed.
	Cleanup(ctx context.Context) (int, error)
}

// DefaultTTL is how long a saved jar is kept without being refreshed.
const DefaultTTL = 90 * 24 * time.Hour

// IDFor derives the session id for a server URL. Trailing slashes and
// letter case in the URL do not matter.
func IDFor(server string) string {
	norm := strings.ToLower(strings.TrimRight(server, "/"))
	sum := sha256.Sum256([]byte(norm))
	return hex.EncodeToString(sum[:8])
}

// New creates a session holding jar for server.
func New(server string, jar *gallery.TokenJar, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        IDFor(server),
		Server:    server,
		Tokens:    jar.String(),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}
