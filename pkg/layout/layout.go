package layout

import (
	"fmt"
	"math"
	"strings"
)

// Orientation tells whether metadata sits beside the image or below it.
type Orientation string

const (
	Wide Orientation = "wide"
	Tall Orientation = "tall"
)

const (
	// DefaultScrollbar is assumed until a real scrollbar has been measured.
	DefaultScrollbar = 14
	// MaxRenderSize is requested when the box beats every smaller size.
	MaxRenderSize = 1920
	minSidebar    = 144
	tallDataRoom  = 192
)

// RenderSizes is the scan order for picking a render size. Every size that
// still exceeds the box's device pixels overwrites the choice, so the last
// match wins.
var RenderSizes = []int{1440, 1024, 640, 350}

// Viewport is one measurement of the display surface, in CSS pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Chrome is the height of the fixed header above the content.
	Chrome int `json:"chrome"`
	// OuterWidth and InnerWidth differ by the scrollbar when one is shown.
	OuterWidth int `json:"outer_width"`
	InnerWidth int `json:"inner_width"`
	// ContentWidth is the measured width of the content area.
	ContentWidth int     `json:"content_width"`
	DPR          float64 `json:"dpr"`
	Rem          int     `json:"rem"`
}

// State is carried between layouts.
type State struct {
	// Scrollbar is the last measured scrollbar width; 0 means never seen.
	Scrollbar int `json:"scrollbar"`
}

// Rule is one style rule: a selector and its ordered declarations.
type Rule struct {
	Selector     string
	Declarations [][2]string
}

// Result is the outcome of one layout.
type Result struct {
	BBox        int         `json:"bbox"`
	RenderSize  int         `json:"render_size"`
	Orientation Orientation `json:"orientation"`
	// Sidebar is the metadata column width; zero when tall.
	Sidebar int    `json:"sidebar"`
	State   State  `json:"state"`
	Rules   []Rule `json:"-"`
}

// Compute lays out a viewport. It never fails; callers thread Result.State
// into the next call.
//
// # Orientation
//
// The available area is the content width by the window height minus the
// chrome. When it is wider than tall the metadata panel goes beside the
// image (Wide): the panel takes a fifth of the width, at least 144px, and
// the box gets what is left of the width or the height, whichever is
// smaller. Otherwise the panel goes below (Tall) and the box is bounded by
// the content width and by the height minus room for the panel.
//
// # Scrollbar
//
// A difference between OuterWidth and InnerWidth is taken as the
// scrollbar width and stored in the returned State. When no difference is
// visible, the stored width (or 14px if none was ever seen) is still
// subtracted so the layout does not jump when a scrollbar appears.
//
// For a 1440x900 window with a 15px scrollbar and 56px of chrome the
// result is a wide layout with an 828px box and 1024px renditions.
func Compute(in Viewport, st State) Result {
	contentX := in.ContentWidth
	if in.OuterWidth != in.InnerWidth {
		st.Scrollbar = in.OuterWidth - in.InnerWidth
	} else {
		sb := st.Scrollbar
		if sb == 0 {
			sb = DefaultScrollbar
		}
		contentX -= sb
	}
	contentY := in.Height - in.Chrome
	rem := in.Rem

	res := Result{State: st}
	res.Rules = append(res.Rules, Rule{
		Selector: "img.pp-bigimage",
		Declarations: [][2]string{
			{"margin-bottom", "1rem !important"},
			{"margin-top", "1rem !important"},
		},
	})

	if contentX > contentY {
		res.Orientation = Wide
		res.Sidebar = int(math.Floor(math.Max(minSidebar, float64(contentX)/5))) - rem
		res.BBox = min(contentY-rem, contentX-res.Sidebar-rem-1)
		res.Rules = append(res.Rules, Rule{
			Selector: "div.pp-data",
			Declarations: [][2]string{
				{"margin-left", "1rem"},
				{"margin-top", "1rem"},
				{"width", fmt.Sprintf("%dpx", res.Sidebar)},
				{"vertical-align", "top"},
				{"display", "inline-block"},
			},
		})
	} else {
		res.Orientation = Tall
		res.BBox = min(contentX, contentY-tallDataRoom)
	}

	res.RenderSize = RenderSize(res.BBox, in.DPR)
	return res
}

// RenderSize picks the pre-rendered size to request for a box of bbox CSS
// pixels on a display with the given pixel ratio. Ratios below 1 count as 1.
func RenderSize(bbox int, dpr float64) int {
	if dpr < 1 || math.IsNaN(dpr) {
		dpr = 1
	}
	pixels := float64(bbox) * dpr
	size := MaxRenderSize
	for _, s := range RenderSizes {
		if pixels < float64(s) {
			size = s
		}
	}
	return size
}

// CSS renders the result's style rules as a stylesheet, one rule per line.
func (r Result) CSS() string {
	var b strings.Builder
	for _, rule := range r.Rules {
		vals := make([]string, len(rule.Declarations))
		for i, d := range rule.Declarations {
			vals[i] = d[0] + ": " + d[1] + ";"
		}
		fmt.Fprintf(&b, "%s { %s }\n", rule.Selector, strings.Join(vals, " "))
	}
	return b.String()
}
