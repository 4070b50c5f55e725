package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/photogrid/pkg/batch"
	"github.com/matzehuels/photogrid/pkg/buildinfo"
	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
	"github.com/matzehuels/photogrid/pkg/layout"
)

// =============================================================================
// Request and response bodies
// =============================================================================

type viewportRequest struct {
	Width        int     `json:"width" validate:"gt=0"`
	Height       int     `json:"height" validate:"gt=0"`
	Chrome       int     `json:"chrome" validate:"gte=0"`
	OuterWidth   int     `json:"outer_width" validate:"gte=0"`
	InnerWidth   int     `json:"inner_width" validate:"gte=0"`
	ContentWidth int     `json:"content_width" validate:"gt=0"`
	DPR          float64 `json:"dpr"`
	Rem          int     `json:"rem" validate:"gte=0"`
}

type layoutRequest struct {
	Viewport viewportRequest `json:"viewport"`
	State    layout.State    `json:"state"`
}

type layoutResponse struct {
	layout.Result
	CSS string `json:"css"`
}

type fitRequest struct {
	ID     int64 `json:"id" validate:"gte=0"`
	Width  int   `json:"width" validate:"gt=0"`
	Height int   `json:"height" validate:"gt=0"`
	// Box is the square to fit into; zero means the thumbnail size.
	Box        int  `json:"box" validate:"gte=0"`
	RenderSize int  `json:"render_size" validate:"gte=0"`
	Slide      bool `json:"slide"`
	CanEdit    bool `json:"can_edit"`
}

// spyRequest lists the displayed images in order with their current top
// edges; an id missing from Tops is no longer on the page.
type spyRequest struct {
	IDs  []int64           `json:"ids" validate:"required,min=1"`
	Tops map[int64]float64 `json:"tops"`
}

type spyResponse struct {
	ID    int64 `json:"id,omitempty"`
	Found bool  `json:"found"`
}

type summaryRequest struct {
	Pictures []gallery.Picture `json:"pictures" validate:"required,min=1"`
}

type updatesRequest struct {
	Pictures []gallery.Picture `json:"pictures" validate:"required,min=1"`
	Edits    batch.Edits       `json:"edits"`
}

type updatesResponse struct {
	State    *batch.State      `json:"state"`
	Commands []gallery.Command `json:"commands"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req.Viewport); err != nil {
		s.fail(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid viewport"))
		return
	}

	v := req.Viewport
	res := layout.Compute(layout.Viewport{
		Width: v.Width, Height: v.Height, Chrome: v.Chrome,
		OuterWidth: v.OuterWidth, InnerWidth: v.InnerWidth,
		ContentWidth: v.ContentWidth, DPR: v.DPR, Rem: v.Rem,
	}, req.State)
	data, err := json.Marshal(layoutResponse{Result: res, CSS: res.CSS()})
	if err != nil {
		s.fail(w, errors.Wrap(errors.ErrCodeInternal, err, "encode layout"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) fit(w http.ResponseWriter, r *http.Request) {
	var req fitRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.fail(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid fit request"))
		return
	}
	switch {
	case req.Slide:
		s.respond(w, http.StatusOK, layout.Slide(req.ID, req.Width, req.Height, req.CanEdit))
	case req.Box == 0:
		s.respond(w, http.StatusOK, layout.Thumbnail(req.ID, req.Width, req.Height))
	default:
		size := req.RenderSize
		if size == 0 {
			size = layout.RenderSize(req.Box, 1)
		}
		s.respond(w, http.StatusOK, layout.FitImage(req.ID, req.Width, req.Height, req.Box, size, req.CanEdit))
	}
}

func (s *Server) spy(w http.ResponseWriter, r *http.Request) {
	var req spyRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.fail(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "no images"))
		return
	}
	id, ok := layout.CurrentImage(req.IDs, func(id int64) (float64, bool) {
		top, ok := req.Tops[id]
		return top, ok
	})
	s.respond(w, http.StatusOK, spyResponse{ID: id, Found: ok})
}

func (s *Server) batchSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.fail(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "no pictures selected"))
		return
	}
	s.respond(w, http.StatusOK, batch.Summarize(req.Pictures))
}

func (s *Server) batchUpdates(w http.ResponseWriter, r *http.Request) {
	var req updatesRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.fail(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "no pictures selected"))
		return
	}
	st, cmds, err := batch.Plan(req.Pictures, req.Edits)
	if err != nil {
		s.fail(w, err)
		return
	}
	if cmds == nil {
		cmds = []gallery.Command{}
	}
	s.respond(w, http.StatusOK, updatesResponse{State: st, Commands: cmds})
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		s.fail(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body"))
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response failed", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := errors.GetCodeOr(err, errors.ErrCodeInternal)
	status := code.HTTPStatus()
	if status >= 500 {
		s.logger.Error("request failed", "error", err)
	}
	s.respond(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}
