package commit_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/photogrid/pkg/commit"
	"github.com/matzehuels/photogrid/pkg/gallery"
)

// acceptAll is an Applier that takes every edit.
type acceptAll struct{}

func (acceptAll) Edit(context.Context, gallery.Command) (*gallery.Partial, error) {
	return &gallery.Partial{}, nil
}

func (acceptAll) GetPicture(_ context.Context, id int64) (*gallery.Picture, error) {
	return &gallery.Picture{ID: id}, nil
}

func ExampleRunner_Run() {
	cmds := []gallery.Command{
		gallery.NewCommand(1).Set("cap", "shore"),
		gallery.NewCommand(2).Set("cap", "shore"),
	}
	r := commit.NewRunner(acceptAll{}, nil, commit.Options{
		Progress: func(applied, total int) { fmt.Printf("%d/%d\n", applied, total) },
	})
	res, err := r.Run(context.Background(), cmds)
	fmt.Println(res.Done(), err)
	// Output:
	// 1/2
	// 2/2
	// true <nil>
}

func ExampleEntry_Pending() {
	e := commit.Entry{
		Total:   3,
		Applied: 1,
		Commands: []gallery.Command{
			gallery.NewCommand(1).Set("cap", "shore"),
			gallery.NewCommand(2).Set("cap", "shore"),
			gallery.NewCommand(2).Set("tag", "8"),
		},
	}
	for _, c := range e.Pending() {
		fmt.Println(c)
	}
	// Output:
	// img=2 cap="shore"
	// img=2 tag="8"
}
