package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/scholarstack/paper-catalog-service/internal/browse"
	"github.com/scholarstack/paper-catalog-service/internal/domain"
	"github.com/scholarstack/paper-catalog-service/internal/observability"
)

// Request body limit.
const maxRequestBodySize = 1 << 20 // 1 MB

// papersQuery is the decoded query string for GET /papers.
type papersQuery struct {
	Query    string `validate:"max=1000"`
	Year     int    `validate:"min=0"`
	Venue    string `validate:"max=200"`
	Include  []string
	Exclude  []string
	CodeOnly bool
	Page     int `validate:"min=0"`
	PageSize int `validate:"min=0"`
	Render   bool
}

// listPapers handles GET /papers. It evaluates the filter over the whole
// collection in one shot and returns the requested page.
func (s *Server) listPapers(w http.ResponseWriter, r *http.Request) {
	q, ok := s.parsePapersQuery(w, r)
	if !ok {
		return
	}

	filter := browse.NewFilterState()
	filter.Query = q.Query
	filter.Year = q.Year
	filter.Venue = q.Venue
	for _, tag := range q.Include {
		if key := domain.NormalizeTag(tag); key != "" {
			filter.IncludedTags[key] = struct{}{}
		}
	}
	for _, tag := range q.Exclude {
		key := domain.NormalizeTag(tag)
		if key == "" {
			continue
		}
		if _, dup := filter.IncludedTags[key]; dup {
			writeError(w, http.StatusBadRequest, "tag cannot be both included and excluded: "+key)
			return
		}
		filter.ExcludedTags[key] = struct{}{}
	}
	filter.CodeOnly = q.CodeOnly

	started := time.Now()
	matched := browse.Apply(s.cat.Papers(), filter)
	if s.metrics != nil {
		s.metrics.RecordSearch("query", len(matched), time.Since(started).Seconds())
	}

	pageSize := q.PageSize
	if pageSize == 0 {
		pageSize = s.limits.DefaultPageSize
	}
	pg := browse.Paginate(len(matched), pageSize, q.Page)

	renderer := s.renderer
	if !q.Render {
		renderer = nil
	}

	reqLog := observability.WithRequestContext(s.logger, correlationIDFromContext(r.Context()), r.URL.Path)
	reqLog.Debug().
		Int("matches", len(matched)).
		Int("page", pg.Number).
		Msg("papers query evaluated")

	writeJSON(w, http.StatusOK, listPapersResponse{
		Papers:       papersToResponse(matched[pg.Start:pg.End], renderer),
		TotalMatches: len(matched),
		Page:         pg.Number,
		PageSize:     pageSize,
		TotalPages:   pg.TotalPages,
		Window:       windowToResponse(browse.Window(pg.Number, pg.TotalPages)),
	})
}

// getFacets handles GET /facets.
func (s *Server) getFacets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, facetsResponse{
		Years:  s.cat.Years(),
		Venues: s.cat.Venues(),
		Tags:   s.cat.TagCounts(),
	})
}

// getSuggestions handles GET /suggest.
func (s *Server) getSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := s.limits.SuggestionLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	suggestions := browse.Suggest(s.cat.Papers(), query, limit)
	if s.metrics != nil {
		s.metrics.RecordSuggestion()
	}

	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
}

// parsePapersQuery decodes and validates the /papers query string, writing
// a 400 response on invalid input.
func (s *Server) parsePapersQuery(w http.ResponseWriter, r *http.Request) (papersQuery, bool) {
	values := r.URL.Query()
	q := papersQuery{
		Query:   values.Get("q"),
		Venue:   values.Get("venue"),
		Include: values["include"],
		Exclude: values["exclude"],
	}

	var ok bool
	if q.Year, ok = parseIntParam(w, values.Get("year"), "year"); !ok {
		return q, false
	}
	if q.Page, ok = parseIntParam(w, values.Get("page"), "page"); !ok {
		return q, false
	}
	if q.PageSize, ok = parseIntParam(w, values.Get("page_size"), "page_size"); !ok {
		return q, false
	}
	if q.PageSize > s.limits.MaxPageSize {
		writeError(w, http.StatusBadRequest, "page_size exceeds maximum of "+strconv.Itoa(s.limits.MaxPageSize))
		return q, false
	}
	q.CodeOnly = values.Get("code_only") == "true"
	q.Render = values.Get("render") == "true"

	if err := s.validate.Struct(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query parameters")
		return q, false
	}
	return q, true
}

// parseIntParam parses a non-negative integer query parameter, writing a
// 400 response if the value is present but not a valid integer.
func parseIntParam(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		writeError(w, http.StatusBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return parsed, true
}

// writeDomainError maps domain errors to HTTP status codes and writes a
// JSON error response. Internal error details are not leaked to clients.
func writeDomainError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrInvalidInput):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
		} else {
			writeError(w, http.StatusBadRequest, "invalid input")
		}
	case errors.Is(err, domain.ErrSourceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
