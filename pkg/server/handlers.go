package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pagecraft-hq/callisto/pkg/library"
)

// handleExtract parses a template export from the request body and
// returns its placeholder registry.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if len(req.Template) == 0 {
		s.writeError(w, http.StatusBadRequest, "missing_template", "Request body must include a template")
		return
	}

	doc, err := s.parser.ParseBytes(req.Template, "request")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_template", err.Error())
		return
	}

	start := time.Now()
	registry := s.engine.Extract(doc)
	if s.recorder != nil {
		s.recorder.RecordExtraction(r.Context(), doc.TemplateID, "", registry.Count(), false, time.Since(start))
	}

	s.writeJSON(w, http.StatusOK, registry)
}

// handleSubstitute parses a template export, applies the value map, and
// returns the substituted document.
func (s *Server) handleSubstitute(w http.ResponseWriter, r *http.Request) {
	var req SubstituteRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if len(req.Template) == 0 {
		s.writeError(w, http.StatusBadRequest, "missing_template", "Request body must include a template")
		return
	}

	doc, err := s.parser.ParseBytes(req.Template, "request")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_template", err.Error())
		return
	}

	start := time.Now()
	result := s.engine.Substitute(doc, req.Values)
	unresolved := s.engine.Unresolved(result)
	if s.recorder != nil {
		s.recorder.RecordSubstitution(r.Context(), doc.TemplateID, "", len(req.Values), len(unresolved), time.Since(start))
	}

	s.writeJSON(w, http.StatusOK, SubstituteResponse{
		Document:   result,
		Unresolved: unresolved,
	})
}

// handleListTemplates lists the stored templates.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.manager.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to list templates")
		return
	}

	summaries := make([]TemplateSummary, 0, len(templates))
	for _, tmpl := range templates {
		count := 0
		if tmpl.Placeholders != nil {
			count = tmpl.Placeholders.Count()
		}
		summaries = append(summaries, TemplateSummary{
			ID:           tmpl.ID,
			Revision:     tmpl.Revision,
			Name:         tmpl.Name,
			Placeholders: count,
			UpdatedAt:    tmpl.UpdatedAt,
		})
	}

	s.writeJSON(w, http.StatusOK, TemplateListResponse{
		Templates: summaries,
		Count:     len(summaries),
	})
}

// handleGetTemplate returns one stored template, document included.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := s.lookupTemplate(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, tmpl)
}

// handleTemplatePlaceholders returns the placeholder registry of a
// stored template.
func (s *Server) handleTemplatePlaceholders(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := s.lookupTemplate(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, tmpl.Placeholders)
}

// handleTemplateSubstitute applies a value map to a stored template.
func (s *Server) handleTemplateSubstitute(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := s.lookupTemplate(w, r)
	if !ok {
		return
	}

	var req TemplateSubstituteRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	start := time.Now()
	result := s.engine.Substitute(tmpl.Document, req.Values)
	unresolved := s.engine.Unresolved(result)
	if s.recorder != nil {
		s.recorder.RecordSubstitution(r.Context(), tmpl.ID, tmpl.Revision, len(req.Values), len(unresolved), time.Since(start))
	}

	s.writeJSON(w, http.StatusOK, SubstituteResponse{
		Document:   result,
		Unresolved: unresolved,
	})
}

// handleReload re-scans the templates directory.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	loaded, err := s.manager.Reload(r.Context())
	if s.recorder != nil {
		s.recorder.RecordReload(r.Context(), loaded, time.Since(start), err)
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "reload_failed", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, ReloadResponse{Loaded: loaded})
}

// lookupTemplate fetches the template named by the {id} path segment,
// writing the error response itself when the lookup fails.
func (s *Server) lookupTemplate(w http.ResponseWriter, r *http.Request) (*library.Template, bool) {
	id := r.PathValue("id")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, "missing_id", "Template ID is required")
		return nil, false
	}

	tmpl, err := s.manager.Get(r.Context(), id)
	if errors.Is(err, library.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "not_found", "No template with ID "+id)
		return nil, false
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to load template")
		return nil, false
	}
	return tmpl, true
}

// decodeBody decodes the request body into dst, enforcing the configured
// size limit. It writes the error response itself on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "Request body exceeds the size limit")
			return false
		}
		s.writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
}
