// Package server is a small HTTP preview service over the layout, fit and
// batch packages.
//
// It exposes the pure computations as JSON endpoints so a browser page or
// another tool can ask for a layout without linking Go code:
//
//	GET  /healthz
//	POST /api/layout         viewport + state -> result + stylesheet
//	POST /api/fit            picture size + box -> fitted image
//	POST /api/spy            image tops -> the image being looked at
//	POST /api/batch/summary  selected pictures -> batch state
//	POST /api/batch/updates  selected pictures + edits -> edit commands
//
// Every endpoint is a pure function of its request body. The server keeps
// no state, so instances can run behind a balancer without coordination.
package server
