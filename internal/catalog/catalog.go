// Package catalog holds the immutable in-memory paper collection and the
// facet index derived from it.
package catalog

import (
	"sort"
	"strings"

	"github.com/scholarstack/paper-catalog-service/internal/domain"
)

// DefaultTagCap is the default display cap for the ranked tag list.
const DefaultTagCap = 40

// TagCount is one entry of the ranked tag list.
type TagCount struct {
	// Tag is the normalized tag used for all comparisons and filtering.
	Tag string `json:"tag"`

	// Display is the presentation form: the first raw spelling encountered
	// in the collection, word initials upper-cased.
	Display string `json:"display"`

	// Count is the number of papers carrying the tag.
	Count int `json:"count"`
}

// Catalog owns the flat paper collection and its derived facet views. The
// collection is fixed at construction; every derivation is computed once and
// served read-only, so a Catalog is safe for concurrent use.
type Catalog struct {
	papers    []domain.Paper
	years     []int
	venues    []string
	tagCounts []TagCount
}

// New builds a catalog over the given collection. tagCap bounds the ranked
// tag list; values < 1 fall back to DefaultTagCap. The cap limits display
// only — tags beyond it remain valid filter values.
func New(papers []domain.Paper, tagCap int) *Catalog {
	if tagCap < 1 {
		tagCap = DefaultTagCap
	}

	c := &Catalog{papers: papers}
	c.years = distinctYears(papers)
	c.venues = distinctVenues(papers)
	c.tagCounts = rankTags(papers, tagCap)
	return c
}

// Papers returns the flat collection in load order. Callers must not mutate
// the returned slice.
func (c *Catalog) Papers() []domain.Paper {
	return c.papers
}

// Len returns the number of papers in the collection.
func (c *Catalog) Len() int {
	return len(c.papers)
}

// Years returns the distinct publication years, most recent first.
func (c *Catalog) Years() []int {
	return c.years
}

// Venues returns the distinct non-empty venues in ascending lexicographic order.
func (c *Catalog) Venues() []string {
	return c.venues
}

// TagCounts returns the ranked tag list: count descending, ties broken by
// ascending lexicographic order on the normalized tag, truncated to the cap.
func (c *Catalog) TagCounts() []TagCount {
	return c.tagCounts
}

func distinctYears(papers []domain.Paper) []int {
	seen := make(map[int]struct{})
	var years []int
	for i := range papers {
		y := papers[i].Year
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

func distinctVenues(papers []domain.Paper) []string {
	seen := make(map[string]struct{})
	var venues []string
	for i := range papers {
		v := papers[i].Venue
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		venues = append(venues, v)
	}
	sort.Strings(venues)
	return venues
}

func rankTags(papers []domain.Paper, limit int) []TagCount {
	counts := make(map[string]int)
	display := make(map[string]string)
	for i := range papers {
		for _, piece := range strings.Split(papers[i].Keywords, ";") {
			tag := domain.NormalizeTag(piece)
			if tag == "" {
				continue
			}
			counts[tag]++
			// The first-encountered raw spelling is the display
			// representative, so acronym casing survives folding.
			if _, ok := display[tag]; !ok {
				display[tag] = domain.DisplayTag(piece)
			}
		}
	}

	ranked := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		ranked = append(ranked, TagCount{
			Tag:     tag,
			Display: display[tag],
			Count:   count,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Tag < ranked[j].Tag
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
