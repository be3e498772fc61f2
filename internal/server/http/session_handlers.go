package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/scholarstack/paper-catalog-service/internal/browse"
)

// patchFilterRequest is the JSON body for PATCH /sessions/{id}/filter.
// Absent fields are left untouched; every present field resets the session
// to page 1.
type patchFilterRequest struct {
	Query        *string `json:"query,omitempty"`
	Year         *int    `json:"year,omitempty" validate:"omitempty,min=0"`
	Venue        *string `json:"venue,omitempty"`
	CodeOnly     *bool   `json:"code_only,omitempty"`
	SelectedOnly *bool   `json:"selected_only,omitempty"`
}

// pageOpRequest is the JSON body for goto and size page operations.
type pageOpRequest struct {
	N *int `json:"n"`
}

// sessionView computes the session's current view and records the filter
// evaluation behind it as a session-kind search.
func (s *Server) sessionView(sess *browse.Session) browse.View {
	started := time.Now()
	view := sess.View()
	if s.metrics != nil {
		s.metrics.RecordSearch("session", view.TotalMatches, time.Since(started).Seconds())
	}
	return view
}

// createSession handles POST /sessions.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id, sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, viewToResponse(id.String(), s.sessionView(sess), sess, nil))
}

// getSessionView handles GET /sessions/{sessionID}.
func (s *Server) getSessionView(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	renderer := s.renderer
	if r.URL.Query().Get("render") != "true" {
		renderer = nil
	}
	writeJSON(w, http.StatusOK, viewToResponse(id.String(), s.sessionView(sess), sess, renderer))
}

// deleteSession handles DELETE /sessions/{sessionID}.
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	s.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// patchSessionFilter handles PATCH /sessions/{sessionID}/filter.
func (s *Server) patchSessionFilter(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req patchFilterRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter fields")
		return
	}

	if req.Query != nil {
		sess.SetQuery(*req.Query)
	}
	if req.Year != nil {
		sess.SetYear(*req.Year)
	}
	if req.Venue != nil {
		sess.SetVenue(*req.Venue)
	}
	if req.CodeOnly != nil {
		sess.SetCodeOnly(*req.CodeOnly)
	}
	if req.SelectedOnly != nil {
		sess.SetSelectedOnly(*req.SelectedOnly)
	}

	writeJSON(w, http.StatusOK, viewToResponse(id.String(), s.sessionView(sess), sess, nil))
}

// toggleSessionTag handles POST /sessions/{sessionID}/tags/{tag}/toggle.
func (s *Server) toggleSessionTag(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	tag, err := url.PathUnescape(chi.URLParam(r, "tag"))
	if err != nil || tag == "" {
		writeError(w, http.StatusBadRequest, "tag is required")
		return
	}

	state := sess.ToggleTag(tag)
	writeJSON(w, http.StatusOK, toggleTagResponse{Tag: tag, State: state.String()})
}

// sessionPageOp handles POST /sessions/{sessionID}/page/{op} where op is
// one of next, previous, goto, size. Non-numeric input for goto and size is
// rejected with the current page left unchanged; out-of-range page numbers
// saturate into the valid range.
func (s *Server) sessionPageOp(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	switch op := chi.URLParam(r, "op"); op {
	case "next":
		sess.NextPage()
	case "previous":
		sess.PreviousPage()
	case "goto":
		n, ok := s.decodePageOpN(w, r)
		if !ok {
			return
		}
		if n < 1 {
			writeError(w, http.StatusBadRequest, "page number must be at least 1")
			return
		}
		sess.GoToPage(n)
	case "size":
		n, ok := s.decodePageOpN(w, r)
		if !ok {
			return
		}
		if n < 1 || n > s.limits.MaxPageSize {
			writeError(w, http.StatusBadRequest,
				"page size must be between 1 and "+strconv.Itoa(s.limits.MaxPageSize))
			return
		}
		sess.SetPageSize(n)
	default:
		writeError(w, http.StatusBadRequest, "unknown page operation: "+op)
		return
	}

	writeJSON(w, http.StatusOK, viewToResponse(id.String(), s.sessionView(sess), sess, nil))
}

// toggleSessionSelection handles POST /sessions/{sessionID}/selection/{title}.
func (s *Server) toggleSessionSelection(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	title, err := url.PathUnescape(chi.URLParam(r, "title"))
	if err != nil || title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	selected := sess.ToggleSelection(title)
	writeJSON(w, http.StatusOK, toggleSelectionResponse{
		Title:    title,
		Selected: selected,
		Count:    s.sessionView(sess).SelectedCount,
	})
}

// clearSessionSelection handles DELETE /sessions/{sessionID}/selection.
func (s *Server) clearSessionSelection(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	sess.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

// sessionFromRequest resolves the session named in the URL, writing an
// error response when the id is malformed or unknown.
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, *browse.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "session_id must be a valid UUID")
		return uuid.Nil, nil, false
	}

	sess, err := s.sessions.Get(id)
	if err != nil {
		writeDomainError(w, err)
		return uuid.Nil, nil, false
	}
	return id, sess, true
}

// decodeBody decodes a JSON request body into v, writing a 400 response on
// malformed input.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "request body is required")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return false
	}
	return true
}

// decodePageOpN extracts the numeric operand for goto and size operations.
func (s *Server) decodePageOpN(w http.ResponseWriter, r *http.Request) (int, bool) {
	var req pageOpRequest
	if !s.decodeBody(w, r, &req) {
		return 0, false
	}
	if req.N == nil {
		writeError(w, http.StatusBadRequest, "n must be an integer")
		return 0, false
	}
	return *req.N, true
}
