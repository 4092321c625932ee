package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/sunburst/pkg/buildinfo"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/session"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// renderRequest is the body for render and gallery save endpoints.
type renderRequest struct {
	Name     string          `json:"name,omitempty"`
	Tree     json.RawMessage `json:"tree"`
	Config   sunburst.Config `json:"config"`
	VizType  string          `json:"viz_type,omitempty"`
	Format   string          `json:"format,omitempty"`
	Detailed bool            `json:"detailed,omitempty"`
	Refresh  bool            `json:"refresh,omitempty"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidWeight,
		errors.ErrCodeInconsistentOverride,
		errors.ErrCodeMissingStructure,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidVizType,
		errors.ErrCodeInvalidConfig,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestIDFromContext(r.Context()))
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleRender runs the pipeline for a posted tree and returns the
// artifact in the requested format.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if len(req.Tree) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "tree is required"))
		return
	}
	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Input:    req.Tree,
		Config:   req.Config,
		VizType:  req.VizType,
		Formats:  []string{format},
		Detailed: req.Detailed,
		Refresh:  req.Refresh,
		Logger:   s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.Header().Set("X-Tree-Hash", result.TreeHash)
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// handleSaveDiagram renders a tree and stores the result in the gallery.
func (s *Server) handleSaveDiagram(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if len(req.Tree) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "tree is required"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Input:   req.Tree,
		Config:  req.Config,
		Formats: []string{pipeline.FormatSVG},
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := req.Name
	if name == "" {
		name = result.Tree.Name
	}
	doc := &StoredDiagram{
		ID:        uuid.NewString(),
		Name:      name,
		TreeHash:  result.TreeHash,
		Tree:      req.Tree,
		SVG:       result.Artifacts[pipeline.FormatSVG],
		CreatedAt: time.Now().UTC(),
	}
	if err := s.diagrams.Save(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}

	doc.SVG = nil
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDiagrams(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "%s", "invalid limit: "+v))
			return
		}
		limit = parsed
	}

	diagrams, err := s.diagrams.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"diagrams": diagrams})
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.diagrams.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == pipeline.FormatSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(doc.SVG)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.diagrams.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleShare creates a share link for a stored diagram.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.diagrams.Get(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := session.New(id, session.DefaultTTL)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "create share token"))
		return
	}
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store share token"))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"token":      sess.ID,
		"url":        "/v1/shared/" + sess.ID,
		"expires_at": sess.ExpiresAt,
	})
}

// handleShared resolves a share token and serves the stored SVG.
func (s *Server) handleShared(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	sess, err := s.sessions.Get(r.Context(), token)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "resolve share token"))
		return
	}
	if sess == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "unknown or expired share token"))
		return
	}

	doc, err := s.diagrams.Get(r.Context(), sess.DiagramID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(doc.SVG)
}
