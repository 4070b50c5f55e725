package layout

// SpyThreshold is how far above the viewport top an image may start and
// still count as the current one.
const SpyThreshold = -80

// TopFunc reports the viewport-relative top edge of the image with the
// given id, or ok=false when the image is no longer displayed.
type TopFunc func(id int64) (top float64, ok bool)

// CurrentImage returns the first id, in display order, whose top edge lies
// below SpyThreshold. It reports ok=false when no image qualifies or when
// an image is missing; a missing image means the page changed under the
// caller and tracking should stop.
//
// With tops of -300, -90 and 40 for ids 1, 2 and 3 the current image is 3:
// an image counts as scrolled past once its top is more than 80px above
// the viewport.
func CurrentImage(ids []int64, top TopFunc) (id int64, ok bool) {
	for _, id := range ids {
		y, found := top(id)
		if !found {
			return 0, false
		}
		if y > SpyThreshold {
			return id, true
		}
	}
	return 0, false
}
