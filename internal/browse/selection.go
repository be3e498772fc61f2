package browse

// Selection tracks the set of user-selected papers, keyed by title (the
// dataset's de-facto identifier). It is fully decoupled from filtering and
// pagination: a selected paper stays selected when a filter change removes
// it from view. Membership checks are O(1).
type Selection map[string]struct{}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return make(Selection)
}

// Toggle flips membership of title and reports whether it is now selected.
func (s Selection) Toggle(title string) bool {
	if _, ok := s[title]; ok {
		delete(s, title)
		return false
	}
	s[title] = struct{}{}
	return true
}

// Contains reports whether title is selected.
func (s Selection) Contains(title string) bool {
	_, ok := s[title]
	return ok
}

// Clear empties the selection.
func (s Selection) Clear() {
	for title := range s {
		delete(s, title)
	}
}

// Len returns the number of selected papers.
func (s Selection) Len() int {
	return len(s)
}
