package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarstack/paper-catalog-service/internal/browse"
	"github.com/scholarstack/paper-catalog-service/internal/catalog"
	"github.com/scholarstack/paper-catalog-service/internal/domain"
	"github.com/scholarstack/paper-catalog-service/internal/latex"
)

func testPapers() []domain.Paper {
	return []domain.Paper{
		{
			Title:    "Attention Is All You Need",
			Venue:    "NeurIPS",
			Year:     2017,
			Authors:  "Ashish Vaswani, Noam Shazeer",
			Keywords: "deep learning; transformers",
			Abstract: "We propose the Transformer architecture.",
			CodeLink: "https://github.com/tensorflow/tensor2tensor",
		},
		{
			Title:    "Scaling Laws for Loss $L(N)$ Prediction",
			Venue:    "ICML",
			Year:     2020,
			Authors:  "Jared Kaplan",
			Keywords: "scaling; deep learning",
			Abstract: "Loss scales as a power law.",
		},
		{
			Title:    "A Survey of Graph Neural Networks",
			Venue:    "ICLR",
			Year:     2020,
			Authors:  "Zonghan Wu",
			Keywords: "graphs",
			Abstract: "Graph neural networks generalize convolutions.",
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cat := catalog.New(testPapers(), 0)
	store := browse.NewStore(cat, browse.StoreConfig{PageSize: 2}, zerolog.Nop(), nil)
	renderer := latex.NewTextRenderer(latex.Markup{}, zerolog.Nop(), nil)

	return NewServer(
		Config{Address: "127.0.0.1:0"},
		cat,
		store,
		renderer,
		Limits{DefaultPageSize: 2, MaxPageSize: 100, SuggestionLimit: 5},
		nil,
		zerolog.Nop(),
	)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.SetReady()

	rec = doRequest(t, s, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListPapers_Defaults(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/papers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listPapersResponse
	decodeResponse(t, rec, &resp)

	assert.Equal(t, 3, resp.TotalMatches)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 2, resp.PageSize)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Papers, 2)
	assert.Equal(t, "Attention Is All You Need", resp.Papers[0].Title)
}

func TestListPapers_Filters(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantTitles []string
	}{
		{
			name:       "free text query",
			query:      "q=transformer",
			wantTitles: []string{"Attention Is All You Need"},
		},
		{
			name:       "year filter",
			query:      "year=2020",
			wantTitles: []string{"Scaling Laws for Loss $L(N)$ Prediction", "A Survey of Graph Neural Networks"},
		},
		{
			name:       "venue filter",
			query:      "venue=ICLR",
			wantTitles: []string{"A Survey of Graph Neural Networks"},
		},
		{
			name:       "include tag",
			query:      "include=deep+learning",
			wantTitles: []string{"Attention Is All You Need", "Scaling Laws for Loss $L(N)$ Prediction"},
		},
		{
			name:       "exclude tag",
			query:      "exclude=deep+learning",
			wantTitles: []string{"A Survey of Graph Neural Networks"},
		},
		{
			name:       "code only",
			query:      "code_only=true",
			wantTitles: []string{"Attention Is All You Need"},
		},
		{
			name:       "combined narrows with AND",
			query:      "year=2020&include=graphs",
			wantTitles: []string{"A Survey of Graph Neural Networks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			rec := doRequest(t, s, http.MethodGet, "/api/v1/papers?page_size=10&"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)

			var resp listPapersResponse
			decodeResponse(t, rec, &resp)

			got := make([]string, len(resp.Papers))
			for i, p := range resp.Papers {
				got[i] = p.Title
			}
			assert.Equal(t, tt.wantTitles, got)
		})
	}
}

func TestListPapers_Pagination(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/papers?page=2&page_size=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listPapersResponse
	decodeResponse(t, rec, &resp)

	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Papers, 1)
	assert.NotEmpty(t, resp.Window)

	// Out-of-range page saturates instead of failing.
	rec = doRequest(t, s, http.MethodGet, "/api/v1/papers?page=99&page_size=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeResponse(t, rec, &resp)
	assert.Equal(t, 2, resp.Page)
}

func TestListPapers_InvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "non-numeric year", query: "year=abc"},
		{name: "non-numeric page", query: "page=two"},
		{name: "negative page size", query: "page_size=-5"},
		{name: "page size above cap", query: "page_size=5000"},
		{name: "tag both included and excluded", query: "include=graphs&exclude=graphs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			rec := doRequest(t, s, http.MethodGet, "/api/v1/papers?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListPapers_RenderFormulas(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/papers?q=scaling&render=true", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listPapersResponse
	decodeResponse(t, rec, &resp)

	require.Len(t, resp.Papers, 1)
	assert.Equal(t, `Scaling Laws for Loss <span class="formula">L(N)</span> Prediction`, resp.Papers[0].Title)
}

func TestGetFacets(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/facets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp facetsResponse
	decodeResponse(t, rec, &resp)

	assert.Equal(t, []int{2020, 2017}, resp.Years)
	assert.Equal(t, []string{"ICLR", "ICML", "NeurIPS"}, resp.Venues)
	require.NotEmpty(t, resp.Tags)
	assert.Equal(t, "deep learning", resp.Tags[0].Tag)
	assert.Equal(t, 2, resp.Tags[0].Count)
}

func TestGetSuggestions(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/suggest?q=graph", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp suggestResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, []string{"A Survey of Graph Neural Networks", "graphs"}, resp.Suggestions)
}

func TestGetSuggestions_InvalidLimit(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/suggest?q=graph&limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
