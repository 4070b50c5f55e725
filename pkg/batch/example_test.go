package batch_test

import (
	"fmt"

	"github.com/matzehuels/photogrid/pkg/batch"
	"github.com/matzehuels/photogrid/pkg/gallery"
)

func examplePictures() []gallery.Picture {
	return []gallery.Picture{
		{ID: 1, Caption: "beach", Tags: []gallery.Entry{
			{ID: 7, Text: "sea", Active: true},
			{ID: 8, Text: "dog", Active: true},
		}},
		{ID: 2, Caption: "hill", Tags: []gallery.Entry{
			{ID: 7, Text: "sea", Active: true},
			{ID: 8, Text: "dog"}, // suggestion only
		}},
	}
}

func ExampleSummarize() {
	st := batch.Summarize(examplePictures())
	fmt.Println(st.Count, "pictures, caption varies:", st.Scalars["cap"].Varies)
	for _, e := range st.Tags {
		fmt.Printf("%s varies=%v\n", e.Text, e.Varies)
	}
	// Output:
	// 2 pictures, caption varies: true
	// sea varies=false
	// dog varies=true
}

func ExampleBuildUpdateList() {
	pics := examplePictures()
	st := batch.Summarize(pics)
	_ = st.RecordEdit("cap", "shore")
	next, _ := st.ToggleTag(gallery.KindTag, 8)
	fmt.Println("dog:", next)

	for _, c := range batch.BuildUpdateList(pics, st) {
		fmt.Println(c)
	}
	// Output:
	// dog: add
	// img=1 cap="shore"
	// img=1 tag="8"
	// img=2 cap="shore"
	// img=2 tag="8"
}
