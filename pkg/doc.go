// Package pkg holds the photogrid libraries.
//
// # Overview
//
// photogrid is a client for a servlet-based photo gallery. The libraries
// split into pure computations that need no server and the plumbing that
// talks to one:
//
//  1. [layout] - responsive box sizing, image fitting, slides and thumbnails
//  2. [gallery] - pictures, browse fragments, edit commands, tokens
//  3. [batch] - aggregating a selection and planning the edits for it
//  4. [commit] - applying edit commands one at a time, with a journal
//  5. [debounce] - leading and trailing edge throttling
//
// # Architecture
//
// A batch edit flows through the packages like this:
//
//	browse page ([integrations/photoprism])
//	         ↓
//	[gallery.Collection] (selection)
//	         ↓
//	[batch.State] (what the selection shares, plus pending edits)
//	         ↓
//	[]gallery.Command
//	         ↓
//	[commit.Runner] (one request at a time, stop at the first failure)
//
// # Quick Start
//
//	res := layout.Compute(layout.Viewport{Width: 1280, Height: 800, Rem: 16, DPR: 1}, layout.State{})
//	img := layout.FitImage(42, 4000, 3000, res.BBox, res.RenderSize, false)
//
//	state, cmds, err := batch.Plan(selected, batch.Edits{Scalars: map[string]string{"cap": "Oslo"}})
//
// # Supporting Packages
//
// [cache] - response cache with file, Redis and null backends.
//
// [config] - TOML file plus PHOTOGRID_* environment overrides.
//
// [errors] - coded errors shared by every package.
//
// [httputil] - retry with backoff and cookie helpers.
//
// [integrations] - the shared HTTP transport and the gallery REST client.
//
// [session] - token jars saved per server.
//
// [server] - the HTTP preview API over layout, fit and batch planning.
//
// [render/locgraph] - location hierarchy diagrams.
//
// [observability] - hooks for counting requests and commits.
//
// [buildinfo] - version information set at build time.
//
// [layout]: github.com/matzehuels/photogrid/pkg/layout
// [gallery]: github.com/matzehuels/photogrid/pkg/gallery
// [gallery.Collection]: github.com/matzehuels/photogrid/pkg/gallery.Collection
// [batch]: github.com/matzehuels/photogrid/pkg/batch
// [batch.State]: github.com/matzehuels/photogrid/pkg/batch.State
// [commit]: github.com/matzehuels/photogrid/pkg/commit
// [commit.Runner]: github.com/matzehuels/photogrid/pkg/commit.Runner
// [debounce]: github.com/matzehuels/photogrid/pkg/debounce
// [cache]: github.com/matzehuels/photogrid/pkg/cache
// [config]: github.com/matzehuels/photogrid/pkg/config
// [errors]: github.com/matzehuels/photogrid/pkg/errors
// [httputil]: github.com/matzehuels/photogrid/pkg/httputil
// [integrations]: github.com/matzehuels/photogrid/pkg/integrations
// [integrations/photoprism]: github.com/matzehuels/photogrid/pkg/integrations/photoprism
// [session]: github.com/matzehuels/photogrid/pkg/session
// [server]: github.com/matzehuels/photogrid/pkg/server
// [render/locgraph]: github.com/matzehuels/photogrid/pkg/render/locgraph
// [observability]: github.com/matzehuels/photogrid/pkg/observability
// [buildinfo]: github.com/matzehuels/photogrid/pkg/buildinfo
package pkg
