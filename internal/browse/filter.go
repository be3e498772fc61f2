// Package browse implements the catalog browse pipeline: filtering,
// suggestions, pagination, selection tracking, and the session state that
// ties them together.
package browse

import (
	"strings"

	"github.com/scholarstack/paper-catalog-service/internal/domain"
)

// YearAll and VenueAll are the zero values meaning "no constraint".
const (
	YearAll  = 0
	VenueAll = ""
)

// TagState is the position of a tag in the three-state toggle cycle.
type TagState int

// Toggle cycle states. Each activation advances neutral -> included ->
// excluded -> neutral, so a tag can never be in both sets at once.
const (
	TagNeutral TagState = iota
	TagIncluded
	TagExcluded
)

// String returns the wire name of the state.
func (t TagState) String() string {
	switch t {
	case TagIncluded:
		return "included"
	case TagExcluded:
		return "excluded"
	default:
		return "neutral"
	}
}

// FilterState is the full set of user-controlled filter criteria.
// Tag sets hold normalized tags and are owned by the state; mutate them only
// through ToggleTag so the mutual-exclusion invariant holds.
type FilterState struct {
	Query        string
	Year         int
	Venue        string
	IncludedTags map[string]struct{}
	ExcludedTags map[string]struct{}
	CodeOnly     bool
}

// NewFilterState returns an empty filter state matching every paper.
func NewFilterState() FilterState {
	return FilterState{
		Year:         YearAll,
		Venue:        VenueAll,
		IncludedTags: make(map[string]struct{}),
		ExcludedTags: make(map[string]struct{}),
	}
}

// TagState reports where the tag currently sits in the toggle cycle.
func (s *FilterState) TagState(tag string) TagState {
	key := domain.NormalizeTag(tag)
	if _, ok := s.IncludedTags[key]; ok {
		return TagIncluded
	}
	if _, ok := s.ExcludedTags[key]; ok {
		return TagExcluded
	}
	return TagNeutral
}

// ToggleTag advances the tag one step through the cycle and returns the new
// state: neutral -> included -> excluded -> neutral.
func (s *FilterState) ToggleTag(tag string) TagState {
	key := domain.NormalizeTag(tag)
	if key == "" {
		return TagNeutral
	}

	switch s.TagState(key) {
	case TagNeutral:
		s.IncludedTags[key] = struct{}{}
		return TagIncluded
	case TagIncluded:
		delete(s.IncludedTags, key)
		s.ExcludedTags[key] = struct{}{}
		return TagExcluded
	default:
		delete(s.ExcludedTags, key)
		return TagNeutral
	}
}

// Matches reports whether the paper satisfies every active criterion.
// Text matching is a case-insensitive substring test over the base
// (non-localized) title, authors, abstract, keywords, and venue fields.
func Matches(p *domain.Paper, s FilterState) bool {
	if q := strings.ToLower(strings.TrimSpace(s.Query)); q != "" {
		if !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Authors), q) &&
			!strings.Contains(strings.ToLower(p.Abstract), q) &&
			!strings.Contains(strings.ToLower(p.Keywords), q) &&
			!strings.Contains(strings.ToLower(p.Venue), q) {
			return false
		}
	}

	if s.Year != YearAll && p.Year != s.Year {
		return false
	}
	if s.Venue != VenueAll && p.Venue != s.Venue {
		return false
	}

	if len(s.IncludedTags) > 0 || len(s.ExcludedTags) > 0 {
		tags := make(map[string]struct{})
		for _, t := range p.Tags() {
			tags[t] = struct{}{}
		}
		for want := range s.IncludedTags {
			if _, ok := tags[want]; !ok {
				return false
			}
		}
		for avoid := range s.ExcludedTags {
			if _, ok := tags[avoid]; ok {
				return false
			}
		}
	}

	if s.CodeOnly && !p.HasCode() {
		return false
	}

	return true
}

// Apply evaluates the filter over the collection and returns the matching
// subsequence. Relative order is preserved and papers are never duplicated.
func Apply(papers []domain.Paper, s FilterState) []domain.Paper {
	matched := make([]domain.Paper, 0, len(papers))
	for i := range papers {
		if Matches(&papers[i], s) {
			matched = append(matched, papers[i])
		}
	}
	return matched
}
