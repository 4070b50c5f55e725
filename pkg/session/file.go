package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/photogrid/pkg/gallery"
)

const sessionExt = ".json"

// FileStore keeps one JSON file per session in a directory. Files are
// 0600 since they hold live tokens and are replaced atomically.
type FileStore struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

// NewFileStore opens dir, creating it if needed. An empty dir means
// ~/.config/photogrid/sessions.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "photogrid", "sessions")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Path returns the session directory.
func (s *FileStore) Path() string { return s.dir }

func (s *FileStore) file(id string) string {
	return filepath.Join(s.dir, filepath.Base(id)+sessionExt)
}

// load reads one session file. A missing file is (nil, nil).
func load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", filepath.Base(path), err)
	}
	return &sess, nil
}

// Get returns the session, or nil once it has expired. Expired files are
// removed on the way.
func (s *FileStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := load(s.file(id))
	if sess == nil || err != nil {
		return nil, err
	}
	if s.now().After(sess.ExpiresAt) {
		_ = os.Remove(s.file(id))
		return nil, nil
	}
	return sess, nil
}

func (s *FileStore) Set(ctx context.Context, sess *Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(s.dir, ".session-*")
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp.Name(), s.file(sess.ID))
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.file(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// List returns the live sessions, soonest expiry first. Unreadable files
// are skipped.
func (s *FileStore) List(ctx context.Context) ([]*Session, error) {
	var live []*Session
	err := s.walk(ctx, func(path string, sess *Session) {
		if !s.now().After(sess.ExpiresAt) {
			live = append(live, sess)
		}
	})
	sort.Slice(live, func(i, j int) bool { return live[i].ExpiresAt.Before(live[j].ExpiresAt) })
	return live, err
}

// Cleanup removes expired sessions and reports how many went.
func (s *FileStore) Cleanup(ctx context.Context) (int, error) {
	n := 0
	err := s.walk(ctx, func(path string, sess *Session) {
		if s.now().After(sess.ExpiresAt) && os.Remove(path) == nil {
			n++
		}
	})
	return n, err
}

func (s *FileStore) walk(ctx context.Context, fn func(path string, sess *Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read session dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), sessionExt) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(s.dir, e.Name())
		if sess, err := load(path); err == nil && sess != nil {
			fn(path, sess)
		}
	}
	return nil
}

var _ Store = (*FileStore)(nil)

// ===== Per-server jars =====

// CLIStore maps gallery server URLs to their saved token jar.
type CLIStore struct {
	store *FileStore
	ttl   time.Duration
}

// NewCLIStore opens the store in dir (the default directory when empty).
func NewCLIStore(dir string) (*CLIStore, error) {
	store, err := NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return &CLIStore{store: store, ttl: DefaultTTL}, nil
}

// Jar returns the saved jar for server, or an empty jar.
func (c *CLIStore) Jar(ctx context.Context, server string) (*gallery.TokenJar, error) {
	sess, err := c.store.Get(ctx, IDFor(server))
	if err != nil {
		return nil, err
	}
	return sess.Jar(), nil
}

// SaveJar stores jar for server and pushes its expiry out by the TTL. An
// empty jar deletes the session.
func (c *CLIStore) SaveJar(ctx context.Context, server string, jar *gallery.TokenJar) error {
	if jar.Len() == 0 {
		return c.DeleteSession(ctx, server)
	}
	return c.store.Set(ctx, New(server, jar, c.ttl))
}

// DeleteSession forgets server.
func (c *CLIStore) DeleteSession(ctx context.Context, server string) error {
	return c.store.Delete(ctx, IDFor(server))
}

// Sessions lists every server with a live jar.
func (c *CLIStore) Sessions(ctx context.Context) ([]*Session, error) {
	return c.store.List(ctx)
}

// Prune drops expired sessions of all servers.
func (c *CLIStore) Prune(ctx context.Context) (int, error) {
	return c.store.Cleanup(ctx)
}

// Path returns the session file for server.
func (c *CLIStore) Path(server string) string {
	return c.store.file(IDFor(server))
}
