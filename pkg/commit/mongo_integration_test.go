//go:build integration

package commit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/photogrid/pkg/gallery"
)

func TestMongoJournal(t *testing.T) {
	uri := os.Getenv("PHOTOGRID_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PHOTOGRID_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	j, err := NewMongoJournal(ctx, uri, "photogrid_test")
	if err != nil {
		t.Fatalf("NewMongoJournal: %v", err)
	}
	defer j.Close()

	id := uuid.NewString()
	e := Entry{
		RunID:     id,
		StartedAt: time.Now().UTC().Truncate(time.Millisecond),
		Total:     2,
		Applied:   1,
		Commands:  []gallery.Command{gallery.NewCommand(1).Set("cap", "x"), gallery.NewCommand(1).Set("tag", "5")},
	}
	if err := j.Record(ctx, e); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, ok, err := j.Get(ctx, id)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if got.Applied != 1 || len(got.Commands) != 2 || got.Commands[1].Fields["tag"] != "5" {
		t.Errorf("round trip = %+v", got)
	}
	list, err := j.List(ctx, 1)
	if err != nil || len(list) != 1 {
		t.Errorf("List(1) = %v, %v", list, err)
	}
}
