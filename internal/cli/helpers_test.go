package cli

import (
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/matzehuels/photogrid/pkg/batch"
	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    gallery.Level
		wantErr bool
	}{
		{"read", gallery.LevelRead, false},
		{"Write", gallery.LevelWrite, false},
		{"2", gallery.LevelDownload, false},
		{"admin", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestParseExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"3d", 3 * 24 * time.Hour},
		{"2W", 14 * 24 * time.Hour},
		{" 1m ", 30 * 24 * time.Hour},
		{"1y", 365 * 24 * time.Hour},
	}
	for _, tt := range tests {
		got, err := parseExpiry(now, tt.in)
		if err != nil || got.Sub(now) != tt.want {
			t.Errorf("parseExpiry(%q) = %v, %v", tt.in, got, err)
		}
	}
	for _, bad := range []string{"", "2", "w", "0d", "2h"} {
		if _, err := parseExpiry(now, bad); err == nil {
			t.Errorf("parseExpiry(%q) should fail", bad)
		}
	}
}

func TestEditFlagsBuild(t *testing.T) {
	parse := func(args ...string) (*gallery.EditFields, error) {
		var ef editFlags
		fs := pflag.NewFlagSet("edit", pflag.ContinueOnError)
		ef.register(fs)
		if err := fs.Parse(args); err != nil {
			t.Fatal(err)
		}
		return ef.build(fs)
	}

	f, err := parse("--cap", "", "--rot", "90", "--tag", "5,6", "--del=false")
	if err != nil {
		t.Fatal(err)
	}
	cmds := f.Commands(3)
	want := []string{`img=3 cap="" del="false" rot="90"`, `img=3 tag="5"`, `img=3 tag="6"`}
	if len(cmds) != len(want) {
		t.Fatalf("Commands() = %v", cmds)
	}
	for i := range want {
		if cmds[i].String() != want[i] {
			t.Errorf("cmds[%d] = %s, want %s", i, cmds[i], want[i])
		}
	}
	if f.Title != nil || f.Flash != nil {
		t.Error("flags that were not given must stay unset")
	}

	if _, err := parse("--rot", "45"); !errors.Is(err, errors.ErrCodeInvalidField) {
		t.Errorf("bad rotation = %v, want INVALID_FIELD", err)
	}
}

func TestIsJPEG(t *testing.T) {
	for path, want := range map[string]bool{
		"a.jpg":           true,
		"dir/B.JPEG":      true,
		"c.png":           false,
		"dir/.hidden.jpg": false,
		"noext":           false,
	} {
		if got := isJPEG(path); got != want {
			t.Errorf("isJPEG(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestParseIDAndTruncate(t *testing.T) {
	if id, err := parseID("#42", "IMG"); err != nil || id != 42 {
		t.Errorf("parseID(#42) = %d, %v", id, err)
	}
	for _, bad := range []string{"0", "-3", "x"} {
		if _, err := parseID(bad, "IMG"); err == nil {
			t.Errorf("parseID(%q) should fail", bad)
		}
	}
	if got := truncate("Ocean Beach", 6); got != "Ocean…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Oslo", 6); got != "Oslo" {
		t.Errorf("truncate = %q", got)
	}
}

func TestCompleteFragment(t *testing.T) {
	tests := []struct {
		prefix string
		want   int
	}{
		{"", len(fragmentHints)},
		{"#dd", 5},
		{"ddt", 1},
		{"#x", 0},
	}
	for _, tt := range tests {
		got, _ := completeFragment(nil, nil, tt.prefix)
		if len(got) != tt.want {
			t.Errorf("completeFragment(%q) = %v, want %d hits", tt.prefix, got, tt.want)
		}
	}
	if got, _ := completeFragment(nil, []string{"#dr"}, ""); got != nil {
		t.Errorf("second argument completed: %v", got)
	}
}

func TestIsNumericCell(t *testing.T) {
	for s, want := range map[string]bool{
		"12": true, "3/4": true, "640x480": true, "-": true,
		"beach": false, "2024-05-01": false, "#dr": false,
	} {
		if got := isNumericCell(s); got != want {
			t.Errorf("isNumericCell(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestCheckRemovals(t *testing.T) {
	st := batch.Summarize([]gallery.Picture{{ID: 1, Tags: []gallery.Entry{{ID: 5, Text: "beach", Active: true}}}})
	ok := []batch.EntryToggle{
		{Kind: gallery.KindTag, ID: 5, Pending: batch.Remove},
		{Kind: gallery.KindTag, ID: 9, Pending: batch.Add},
	}
	if err := checkRemovals(st, ok); err != nil {
		t.Errorf("checkRemovals(known) = %v", err)
	}
	bad := []batch.EntryToggle{{Kind: gallery.KindTag, ID: 9, Pending: batch.Remove}}
	if err := checkRemovals(st, bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("checkRemovals(unknown) = %v, want INVALID_INPUT", err)
	}
}
