package commit

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/photogrid/pkg/gallery"
)

func TestFileJournal(t *testing.T) {
	ctx := context.Background()
	j, err := NewFileJournal(filepath.Join(t.TempDir(), "journal"))
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		e := Entry{
			RunID:     id,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Total:     1,
			Commands:  []gallery.Command{gallery.NewCommand(int64(i)).Set("cap", id)},
		}
		if err := j.Record(ctx, e); err != nil {
			t.Fatalf("Record(%s): %v", id, err)
		}
	}

	list, err := j.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].RunID != "c" || list[1].RunID != "b" {
		t.Errorf("List(2) = %v", list)
	}

	// replacing keeps a single file per run
	if err := j.Record(ctx, Entry{RunID: "a", StartedAt: base, Applied: 1, Total: 1}); err != nil {
		t.Fatal(err)
	}
	e, ok, _ := j.Get(ctx, "a")
	if !ok || e.Applied != 1 {
		t.Errorf("Get(a) = %+v, %v", e, ok)
	}
	all, _ := j.List(ctx, 0)
	if len(all) != 3 {
		t.Errorf("List(0) = %d entries, want 3", len(all))
	}

	if _, ok, err := j.Get(ctx, "missing"); ok || err != nil {
		t.Errorf("Get(missing) = %v, %v", ok, err)
	}
}

func TestFileJournalSkipsGarbage(t *testing.T) {
	dir := t.TempDir()
	j, _ := NewFileJournal(dir)
	if err := os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	_ = j.Record(context.Background(), Entry{RunID: "ok"})
	list, err := j.List(context.Background(), 0)
	if err != nil || len(list) != 1 {
		t.Errorf("List() = %v, %v", list, err)
	}
}
