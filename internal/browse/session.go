package browse

import (
	"sort"
	"sync"
	"time"

	"github.com/scholarstack/paper-catalog-service/internal/catalog"
	"github.com/scholarstack/paper-catalog-service/internal/domain"
)

// Session is the explicit application-state struct behind one browsing
// client: filter criteria, pagination state, and the selection set. Every
// filter mutation and every page-size change resets the current page to 1
// before the next view is computed, so a narrowed filter can never leave the
// client stranded on an empty page.
//
// A Session locks itself; it is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	cat          *catalog.Catalog
	filter       FilterState
	pageSize     int
	page         int
	selection    Selection
	selectedOnly bool
	lastAccess   time.Time
}

// View is a snapshot of everything the rendering side needs: the current
// page of the filtered subsequence plus the pagination geometry around it.
type View struct {
	Papers        []domain.Paper
	TotalMatches  int
	Page          int
	PageSize      int
	TotalPages    int
	Window        []PageMark
	Query         string
	Year          int
	Venue         string
	IncludedTags  []string
	ExcludedTags  []string
	CodeOnly      bool
	SelectedOnly  bool
	SelectedCount int
}

// NewSession creates a session over the catalog with the given page size
// (DefaultPageSize when size < 1).
func NewSession(cat *catalog.Catalog, pageSize int) *Session {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Session{
		cat:        cat,
		filter:     NewFilterState(),
		pageSize:   pageSize,
		page:       1,
		selection:  NewSelection(),
		lastAccess: time.Now(),
	}
}

// SetQuery replaces the free-text query and resets to page 1.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Query = query
	s.touchAndReset()
}

// SetYear replaces the year constraint (YearAll for none) and resets to page 1.
func (s *Session) SetYear(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Year = year
	s.touchAndReset()
}

// SetVenue replaces the venue constraint (VenueAll for none) and resets to page 1.
func (s *Session) SetVenue(venue string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Venue = venue
	s.touchAndReset()
}

// SetCodeOnly sets the code-link constraint and resets to page 1.
func (s *Session) SetCodeOnly(codeOnly bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.CodeOnly = codeOnly
	s.touchAndReset()
}

// SetSelectedOnly restricts the visible set to selected papers and resets to
// page 1.
func (s *Session) SetSelectedOnly(selectedOnly bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedOnly = selectedOnly
	s.touchAndReset()
}

// ToggleTag advances the tag through the three-state cycle and resets to
// page 1. It returns the tag's new state.
func (s *Session) ToggleTag(tag string) TagState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.filter.ToggleTag(tag)
	s.touchAndReset()
	return state
}

// ToggleSelection flips the paper's membership in the selection set and
// reports whether it is now selected. Selection never affects pagination,
// so the current page is kept.
func (s *Session) ToggleSelection(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return s.selection.Toggle(title)
}

// ClearSelection empties the selection set.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	s.selection.Clear()
}

// NextPage advances one page, saturating at the last page.
func (s *Session) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	s.page = Paginate(s.matchCount(), s.pageSize, s.page+1).Number
}

// PreviousPage steps back one page, saturating at page 1.
func (s *Session) PreviousPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	s.page = Paginate(s.matchCount(), s.pageSize, s.page-1).Number
}

// GoToPage jumps to page n, clamped into the valid range.
func (s *Session) GoToPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	s.page = Paginate(s.matchCount(), s.pageSize, n).Number
}

// SetPageSize changes the page size (DefaultPageSize when size < 1) and
// resets to page 1.
func (s *Session) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size < 1 {
		size = DefaultPageSize
	}
	s.pageSize = size
	s.touchAndReset()
}

// View computes the current page snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()

	matched := s.matches()
	pg := Paginate(len(matched), s.pageSize, s.page)
	s.page = pg.Number

	return View{
		Papers:        matched[pg.Start:pg.End],
		TotalMatches:  len(matched),
		Page:          pg.Number,
		PageSize:      s.pageSize,
		TotalPages:    pg.TotalPages,
		Window:        Window(pg.Number, pg.TotalPages),
		Query:         s.filter.Query,
		Year:          s.filter.Year,
		Venue:         s.filter.Venue,
		IncludedTags:  sortedKeys(s.filter.IncludedTags),
		ExcludedTags:  sortedKeys(s.filter.ExcludedTags),
		CodeOnly:      s.filter.CodeOnly,
		SelectedOnly:  s.selectedOnly,
		SelectedCount: s.selection.Len(),
	}
}

// TagState reports the toggle state of a tag without mutating it.
func (s *Session) TagState(tag string) TagState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.TagState(tag)
}

// Selected reports whether the paper is in the selection set.
func (s *Session) Selected(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Contains(title)
}

// LastAccess returns the time of the most recent session operation.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// matches evaluates the filter (and the selected-only restriction) over the
// collection. Callers must hold s.mu.
func (s *Session) matches() []domain.Paper {
	matched := Apply(s.cat.Papers(), s.filter)
	if !s.selectedOnly {
		return matched
	}

	kept := matched[:0:0]
	for i := range matched {
		if s.selection.Contains(matched[i].Title) {
			kept = append(kept, matched[i])
		}
	}
	return kept
}

// matchCount returns the size of the current filtered set. Callers must hold s.mu.
func (s *Session) matchCount() int {
	return len(s.matches())
}

// touchAndReset stamps the access time and resets pagination to page 1.
// Callers must hold s.mu.
func (s *Session) touchAndReset() {
	s.lastAccess = time.Now()
	s.page = 1
}

// sortedKeys returns the set's members in ascending order for stable output.
func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
