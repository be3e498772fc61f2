// Package domain provides the paper catalog's domain model and the pure
// derivations (tag splitting, normalization, display casing) built on it.
package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// whitespaceRegex matches one or more whitespace characters (spaces, tabs, newlines).
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Paper is one catalog entry. The field layout mirrors the source dataset
// documents, including their quirks: Keywords is a semicolon-separated list
// (not comma-separated), Authors is comma-separated, and link fields may be
// empty strings. Papers are immutable after load.
//
// Title doubles as the paper's identifier for selection state: the dataset
// does not mint numeric IDs, so two papers with identical titles are
// indistinguishable to selection tracking. This is an accepted limitation
// of the source data, not something to paper over here.
type Paper struct {
	Venue             string `json:"venue"`
	Year              int    `json:"year"`
	Title             string `json:"title"`
	TitleLocalized    string `json:"title_localized"`
	Abstract          string `json:"abstract"`
	AbstractLocalized string `json:"abstract_localized"`
	Keywords          string `json:"keywords"`
	Authors           string `json:"authors"`
	CodeLink          string `json:"code_link"`
	PDFLink           string `json:"pdf_link"`
	DiscussionLink    string `json:"discussion_link"`
	VenueID           string `json:"venue_id"`
}

// Tags returns the paper's normalized tag set: Keywords split on ";", each
// piece trimmed, lower-cased and whitespace-collapsed, empty pieces dropped.
// All tag comparisons in the service operate on this normalized form.
func (p *Paper) Tags() []string {
	if strings.TrimSpace(p.Keywords) == "" {
		return nil
	}

	parts := strings.Split(p.Keywords, ";")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := NormalizeTag(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// HasTag reports whether the normalized form of tag is in the paper's tag set.
func (p *Paper) HasTag(tag string) bool {
	want := NormalizeTag(tag)
	if want == "" {
		return false
	}
	for _, t := range p.Tags() {
		if t == want {
			return true
		}
	}
	return false
}

// AuthorList returns the individual author names: Authors split on ",",
// trimmed, empty pieces dropped. Order follows the source string.
func (p *Paper) AuthorList() []string {
	if strings.TrimSpace(p.Authors) == "" {
		return nil
	}

	parts := strings.Split(p.Authors, ",")
	authors := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

// HasCode reports whether the paper carries a non-blank code link.
func (p *Paper) HasCode() bool {
	return strings.TrimSpace(p.CodeLink) != ""
}

// NormalizeTag normalizes a raw keyword piece by trimming surrounding
// whitespace, lower-casing, and collapsing internal whitespace runs into a
// single space. The normalized form is the comparison key everywhere;
// DisplayTag exists for presentation only.
func NormalizeTag(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")

	return s
}

// DisplayTag formats a raw keyword piece for display: surrounding whitespace
// is trimmed, internal runs collapse to one space, and the first letter of
// every word is upper-cased ("deep learning" -> "Deep Learning", "NLP" stays
// "NLP"). Case outside word initials is preserved, so callers should pass a
// raw keyword piece rather than the normalized tag. The result is never used
// in comparisons.
func DisplayTag(tag string) string {
	words := strings.Fields(tag)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
