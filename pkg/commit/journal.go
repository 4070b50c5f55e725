package commit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/photogrid/pkg/gallery"
)

// Entry is the journal record of one run. Commands holds the whole run
// and Applied counts how many of them landed, so Commands[Applied:] is
// what a resume sends. Failed and Error are set when the run stopped on a
// failing command.
type Entry struct {
	RunID      string            `json:"run_id" bson:"_id"`
	StartedAt  time.Time         `json:"started_at" bson:"started_at"`
	FinishedAt time.Time         `json:"finished_at" bson:"finished_at"`
	Total      int               `json:"total" bson:"total"`
	Applied    int               `json:"applied" bson:"applied"`
	Commands   []gallery.Command `json:"commands" bson:"commands"`
	Failed     *gallery.Command  `json:"failed,omitempty" bson:"failed,omitempty"`
	Error      string            `json:"error,omitempty" bson:"error,omitempty"`
}

// Pending returns the commands the run did not apply.
func (e Entry) Pending() []gallery.Command {
	if e.Applied >= len(e.Commands) {
		return nil
	}
	return e.Commands[e.Applied:]
}

// Journal stores commit run records, keyed by run id. Recording an entry
// again replaces it, which is how a resumed run updates its record.
type Journal interface {
	// Record stores or replaces the entry for e.RunID.
	Record(ctx context.Context, e Entry) error

	// Get returns one run, or ok=false if it is unknown.
	Get(ctx context.Context, runID string) (Entry, bool, error)

	// List returns up to limit runs, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Entry, error)

	Close() error
}

// NopJournal records nothing.
type NopJournal struct{}

func (NopJournal) Record(context.Context, Entry) error { return nil }
func (NopJournal) Get(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, nil
}
func (NopJournal) List(context.Context, int) ([]Entry, error) { return nil, nil }
func (NopJournal) Close() error                               { return nil }

// FileJournal keeps one JSON file per run in a directory.
type FileJournal struct {
	dir string
}

// NewFileJournal creates a journal in dir, creating the directory if needed.
func NewFileJournal(dir string) (*FileJournal, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileJournal{dir: dir}, nil
}

// Dir returns the journal directory.
func (j *FileJournal) Dir() string { return j.dir }

func (j *FileJournal) path(runID string) string {
	return filepath.Join(j.dir, filepath.Base(runID)+".json")
}

// Record writes the entry, replacing an earlier one with the same id.
func (j *FileJournal) Record(ctx context.Context, e Entry) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	tmp := j.path(e.RunID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, j.path(e.RunID))
}

// Get reads one run.
func (j *FileJournal) Get(ctx context.Context, runID string) (Entry, bool, error) {
	data, err := os.ReadFile(j.path(runID))
	if os.IsNotExist(err) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// List reads every run file, newest first. Unreadable files are skipped.
func (j *FileJournal) List(ctx context.Context, limit int) ([]Entry, error) {
	files, err := os.ReadDir(j.dir)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, ok, err := j.Get(ctx, strings.TrimSuffix(f.Name(), ".json"))
		if err != nil || !ok {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].StartedAt.After(out[b].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close does nothing for the file journal.
func (j *FileJournal) Close() error { return nil }

var (
	_ Journal = NopJournal{}
	_ Journal = (*FileJournal)(nil)
)
