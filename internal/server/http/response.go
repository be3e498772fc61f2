package httpserver

import (
	"github.com/scholarstack/paper-catalog-service/internal/browse"
	"github.com/scholarstack/paper-catalog-service/internal/catalog"
	"github.com/scholarstack/paper-catalog-service/internal/domain"
	"github.com/scholarstack/paper-catalog-service/internal/latex"
)

// Response types for JSON serialization.

type paperResponse struct {
	Venue             string   `json:"venue,omitempty"`
	Year              int      `json:"year,omitempty"`
	Title             string   `json:"title"`
	TitleLocalized    string   `json:"title_localized,omitempty"`
	Abstract          string   `json:"abstract,omitempty"`
	AbstractLocalized string   `json:"abstract_localized,omitempty"`
	Authors           []string `json:"authors,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	CodeLink          string   `json:"code_link,omitempty"`
	PdfLink           string   `json:"pdf_link,omitempty"`
	DiscussionLink    string   `json:"discussion_link,omitempty"`
	Selected          bool     `json:"selected,omitempty"`
}

type pageWindowMark struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

type listPapersResponse struct {
	Papers       []paperResponse  `json:"papers"`
	TotalMatches int              `json:"total_matches"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
	TotalPages   int              `json:"total_pages"`
	Window       []pageWindowMark `json:"window"`
}

type facetsResponse struct {
	Years  []int              `json:"years"`
	Venues []string           `json:"venues"`
	Tags   []catalog.TagCount `json:"tags"`
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

type sessionViewResponse struct {
	SessionID    string           `json:"session_id"`
	Papers       []paperResponse  `json:"papers"`
	TotalMatches int              `json:"total_matches"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
	TotalPages   int              `json:"total_pages"`
	Window       []pageWindowMark `json:"window"`
	Filter       filterResponse   `json:"filter"`
	SelectedOnly bool             `json:"selected_only"`
	Selected     int              `json:"selected_count"`
}

type filterResponse struct {
	Query        string   `json:"query,omitempty"`
	Year         int      `json:"year,omitempty"`
	Venue        string   `json:"venue,omitempty"`
	IncludedTags []string `json:"included_tags,omitempty"`
	ExcludedTags []string `json:"excluded_tags,omitempty"`
	CodeOnly     bool     `json:"code_only,omitempty"`
}

type toggleTagResponse struct {
	Tag   string `json:"tag"`
	State string `json:"state"`
}

type toggleSelectionResponse struct {
	Title    string `json:"title"`
	Selected bool   `json:"selected"`
	Count    int    `json:"selected_count"`
}

// Converter functions

// domainPaperToResponse converts a paper, optionally rendering LaTeX
// formulas in the title and abstract fields.
func domainPaperToResponse(p *domain.Paper, renderer *latex.TextRenderer) paperResponse {
	resp := paperResponse{
		Venue:             p.Venue,
		Year:              p.Year,
		Title:             p.Title,
		TitleLocalized:    p.TitleLocalized,
		Abstract:          p.Abstract,
		AbstractLocalized: p.AbstractLocalized,
		Authors:           p.AuthorList(),
		Tags:              p.Tags(),
		CodeLink:          p.CodeLink,
		PdfLink:           p.PDFLink,
		DiscussionLink:    p.DiscussionLink,
	}
	if renderer != nil {
		resp.Title = renderer.RenderText(resp.Title)
		resp.TitleLocalized = renderer.RenderText(resp.TitleLocalized)
		resp.Abstract = renderer.RenderText(resp.Abstract)
		resp.AbstractLocalized = renderer.RenderText(resp.AbstractLocalized)
	}
	return resp
}

func papersToResponse(papers []domain.Paper, renderer *latex.TextRenderer) []paperResponse {
	out := make([]paperResponse, len(papers))
	for i := range papers {
		out[i] = domainPaperToResponse(&papers[i], renderer)
	}
	return out
}

func windowToResponse(marks []browse.PageMark) []pageWindowMark {
	out := make([]pageWindowMark, len(marks))
	for i, m := range marks {
		out[i] = pageWindowMark{Page: m.Page, Ellipsis: m.Ellipsis}
	}
	return out
}

func viewToResponse(sessionID string, v browse.View, sess *browse.Session, renderer *latex.TextRenderer) sessionViewResponse {
	papers := papersToResponse(v.Papers, renderer)
	for i := range v.Papers {
		papers[i].Selected = sess.Selected(v.Papers[i].Title)
	}
	return sessionViewResponse{
		SessionID:    sessionID,
		Papers:       papers,
		TotalMatches: v.TotalMatches,
		Page:         v.Page,
		PageSize:     v.PageSize,
		TotalPages:   v.TotalPages,
		Window:       windowToResponse(v.Window),
		Filter: filterResponse{
			Query:        v.Query,
			Year:         v.Year,
			Venue:        v.Venue,
			IncludedTags: v.IncludedTags,
			ExcludedTags: v.ExcludedTags,
			CodeOnly:     v.CodeOnly,
		},
		SelectedOnly: v.SelectedOnly,
		Selected:     v.SelectedCount,
	}
}
