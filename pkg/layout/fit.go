package layout

import (
	"fmt"
	"math"
)

// Margins are the offsets that center a fitted image in its box.
type Margins struct {
	Top, Right, Bottom, Left int
}

// Fit is an image scaled into a square box.
type Fit struct {
	Width   int
	Height  int
	Margins Margins
}

// FitBox scales a w x h image into a b x b box, preserving aspect ratio.
// The long side becomes b; the short side is centered with equal margins.
// Margins round down, so an odd leftover leaves one pixel unassigned.
// w, h and b must be positive.
//
//	FitBox(1920, 1080, 192) // 192x108, top and bottom margins 42
func FitBox(w, h, b int) Fit {
	if w > h {
		rh := int(math.Floor(float64(h) * (float64(b) / float64(w))))
		f := Fit{Width: b, Height: rh}
		if m := float64(b-rh) / 2; m > 0 {
			f.Margins.Top = int(math.Floor(m))
			f.Margins.Bottom = f.Margins.Top
		}
		return f
	}
	rw := int(math.Floor(float64(w) * (float64(b) / float64(h))))
	f := Fit{Width: rw, Height: b}
	if m := float64(b-rw) / 2; m > 0 {
		f.Margins.Left = int(math.Floor(m))
		f.Margins.Right = f.Margins.Left
	}
	return f
}

// Image is a fitted picture ready for display.
type Image struct {
	ID int64 `json:"id"`
	Fit
	URL          string `json:"url"`
	NativeWidth  int    `json:"native_width"`
	NativeHeight int    `json:"native_height"`
	CanEdit      bool   `json:"can_edit"`
}

// ImageURL is the server path of a pre-rendered picture.
func ImageURL(id int64, renderSize int) string {
	return fmt.Sprintf("/img/%d/%d.jpg", renderSize, id)
}

// FitImage fits picture id of native size w x h into a bbox box and points
// it at the renderSize rendition.
func FitImage(id int64, w, h, bbox, renderSize int, canEdit bool) Image {
	return Image{
		ID:           id,
		Fit:          FitBox(w, h, bbox),
		URL:          ImageURL(id, renderSize),
		NativeWidth:  w,
		NativeHeight: h,
		CanEdit:      canEdit,
	}
}

// Slide geometry: a 24x36mm transparency in a 50mm mount, drawn in a 192
// pixel frame.
const (
	SlideFrame      = 192
	SlideBBox       = 36 * SlideFrame / 50 // 138
	SlidePadding    = 7 * SlideFrame / 50  // 26
	SlideRenderSize = 350
)

// SlideImage is a picture mounted as a slide.
type SlideImage struct {
	Image
	Frame   int `json:"frame"`
	Padding int `json:"padding"`
}

// Slide fits a picture into a slide mount: a SlideBBox square at the
// SlideRenderSize rendition, padded by SlidePadding on every side.
func Slide(id int64, w, h int, canEdit bool) SlideImage {
	return SlideImage{
		Image:   FitImage(id, w, h, SlideBBox, SlideRenderSize, canEdit),
		Frame:   SlideFrame,
		Padding: SlidePadding,
	}
}

// ThumbnailSize is both the box and the render size of navigation entries.
const ThumbnailSize = 192

// Thumbnail fits a navigation entry's representative picture.
func Thumbnail(id int64, w, h int) Image {
	return FitImage(id, w, h, ThumbnailSize, ThumbnailSize, false)
}
