package layout_test

import (
	"fmt"

	"github.com/matzehuels/photogrid/pkg/layout"
)

func ExampleCompute() {
	vp := layout.Viewport{
		Width: 1440, Height: 900, Chrome: 56,
		OuterWidth: 1440, InnerWidth: 1425, ContentWidth: 1425,
		DPR: 1, Rem: 16,
	}
	res := layout.Compute(vp, layout.State{})
	fmt.Println(res.Orientation, res.BBox, res.RenderSize, res.State.Scrollbar)
	// Output: wide 828 1024 15
}

func ExampleFitBox() {
	f := layout.FitBox(1920, 1080, 192)
	fmt.Printf("%dx%d top=%d bottom=%d\n", f.Width, f.Height, f.Margins.Top, f.Margins.Bottom)
	// Output: 192x108 top=42 bottom=42
}
