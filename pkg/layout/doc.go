// Package layout computes responsive display geometry for the gallery.
//
// Everything here is a pure function of its inputs. [Compute] turns a
// measured [Viewport] into an image bounding box, an orientation and a
// render size, plus the handful of style rules a presentation layer needs
// to apply. [Fit] places an image of arbitrary aspect ratio centered inside
// a square box. [Slide] and [Thumbnail] are fixed-size variants of Fit used
// for slide mounts and navigation entries.
//
// # Scrollbar compensation
//
// A visible vertical scrollbar shrinks every measured width except the
// outer window width. Compute infers the scrollbar width whenever it can
// see one (outer and inner widths differ) and remembers it in [State] so
// that later layouts without a scrollbar still leave room for it. Callers
// thread the returned State into the next call.
//
// # Render sizes
//
// The server pre-renders every picture at a fixed ladder of sizes
// (see [RenderSizes]). Compute picks the size to request from the bounding
// box scaled by the device pixel ratio.
package layout
