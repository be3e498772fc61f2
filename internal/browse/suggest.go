package browse

import (
	"strings"

	"github.com/scholarstack/paper-catalog-service/internal/domain"
)

// DefaultSuggestionLimit caps the number of returned completions.
const DefaultSuggestionLimit = 5

// Suggest scans the collection for candidate completions of query: whole
// titles, individual comma-split author names, and individual semicolon-split
// keywords containing the trimmed query case-insensitively. The result is
// de-duplicated and capped at limit (DefaultSuggestionLimit when limit < 1).
// Scan order is collection order with authors and keywords in their split
// order, so the result is deterministic for a fixed collection and query.
func Suggest(papers []domain.Paper, query string, limit int) []string {
	if limit < 1 {
		limit = DefaultSuggestionLimit
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string

	add := func(candidate string) bool {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || !strings.Contains(strings.ToLower(candidate), q) {
			return false
		}
		if _, dup := seen[candidate]; dup {
			return false
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
		return len(out) >= limit
	}

	for i := range papers {
		p := &papers[i]
		if add(p.Title) {
			return out
		}
		for _, author := range strings.Split(p.Authors, ",") {
			if add(author) {
				return out
			}
		}
		for _, keyword := range strings.Split(p.Keywords, ";") {
			if add(keyword) {
				return out
			}
		}
	}

	return out
}
