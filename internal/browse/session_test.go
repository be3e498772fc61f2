package browse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarstack/paper-catalog-service/internal/catalog"
	"github.com/scholarstack/paper-catalog-service/internal/domain"
)

// corpus builds n papers, half of them tagged "wide" for easy narrowing.
func corpus(n int) *catalog.Catalog {
	papers := make([]domain.Paper, n)
	for i := range papers {
		keywords := "narrow"
		if i%2 == 0 {
			keywords = "wide"
		}
		papers[i] = domain.Paper{
			Title:    fmt.Sprintf("Paper %03d", i),
			Venue:    "NeurIPS",
			Year:     2023,
			Keywords: keywords,
		}
	}
	return catalog.New(papers, 0)
}

func TestSession_ViewFirstPage(t *testing.T) {
	sess := NewSession(corpus(45), 20)

	view := sess.View()

	assert.Equal(t, 45, view.TotalMatches)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 3, view.TotalPages)
	require.Len(t, view.Papers, 20)
	assert.Equal(t, "Paper 000", view.Papers[0].Title)
}

func TestSession_NavigationSaturates(t *testing.T) {
	sess := NewSession(corpus(45), 20)

	sess.PreviousPage()
	assert.Equal(t, 1, sess.View().Page)

	sess.NextPage()
	sess.NextPage()
	sess.NextPage()
	sess.NextPage()
	assert.Equal(t, 3, sess.View().Page)

	sess.GoToPage(99)
	assert.Equal(t, 3, sess.View().Page)

	sess.GoToPage(-4)
	assert.Equal(t, 1, sess.View().Page)

	sess.GoToPage(2)
	view := sess.View()
	assert.Equal(t, 2, view.Page)
	assert.Equal(t, "Paper 020", view.Papers[0].Title)
}

func TestSession_FilterChangeResetsPage(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(s *Session)
	}{
		{"query", func(s *Session) { s.SetQuery("paper") }},
		{"year", func(s *Session) { s.SetYear(2023) }},
		{"venue", func(s *Session) { s.SetVenue("NeurIPS") }},
		{"tag toggle", func(s *Session) { s.ToggleTag("wide") }},
		{"code only", func(s *Session) { s.SetCodeOnly(false) }},
		{"selected only", func(s *Session) { s.SetSelectedOnly(false) }},
		{"page size", func(s *Session) { s.SetPageSize(10) }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			sess := NewSession(corpus(45), 20)
			sess.GoToPage(3)
			require.Equal(t, 3, sess.View().Page)

			tt.mutate(sess)

			assert.Equal(t, 1, sess.View().Page)
		})
	}
}

func TestSession_NarrowingNeverStrandsOnEmptyPage(t *testing.T) {
	// 120 matches at size 50 -> page 3; narrowing to 10 matches must land on
	// page 1 of 1.
	papers := make([]domain.Paper, 120)
	for i := range papers {
		title := fmt.Sprintf("Common %03d", i)
		if i < 10 {
			title = fmt.Sprintf("Rare %03d", i)
		}
		papers[i] = domain.Paper{Title: title, Year: 2023}
	}
	sess := NewSession(catalog.New(papers, 0), 50)

	sess.GoToPage(3)
	view := sess.View()
	require.Equal(t, 3, view.Page)
	require.Equal(t, 3, view.TotalPages)

	sess.SetQuery("rare")

	view = sess.View()
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, 10, view.TotalMatches)
}

func TestSession_PagesPartitionFilteredSequence(t *testing.T) {
	sess := NewSession(corpus(45), 10)

	var all []string
	view := sess.View()
	for page := 1; page <= view.TotalPages; page++ {
		sess.GoToPage(page)
		for _, p := range sess.View().Papers {
			all = append(all, p.Title)
		}
	}

	require.Len(t, all, 45)
	for i, title := range all {
		assert.Equal(t, fmt.Sprintf("Paper %03d", i), title)
	}
}

func TestSession_SelectionSurvivesFiltering(t *testing.T) {
	sess := NewSession(corpus(10), 20)

	assert.True(t, sess.ToggleSelection("Paper 001"))
	require.True(t, sess.Selected("Paper 001"))

	// Narrow to a filter that hides the selected paper.
	sess.ToggleTag("wide")
	view := sess.View()
	for _, p := range view.Papers {
		assert.NotEqual(t, "Paper 001", p.Title)
	}

	// Still selected.
	assert.True(t, sess.Selected("Paper 001"))
	assert.Equal(t, 1, view.SelectedCount)
}

func TestSession_SelectedOnlyMode(t *testing.T) {
	sess := NewSession(corpus(10), 20)

	sess.ToggleSelection("Paper 002")
	sess.ToggleSelection("Paper 005")
	sess.SetSelectedOnly(true)

	view := sess.View()
	require.Len(t, view.Papers, 2)
	assert.Equal(t, "Paper 002", view.Papers[0].Title)
	assert.Equal(t, "Paper 005", view.Papers[1].Title)
	assert.True(t, view.SelectedOnly)

	sess.ClearSelection()
	view = sess.View()
	assert.Empty(t, view.Papers)
	assert.Zero(t, view.SelectedCount)
}

func TestSession_ViewReportsTagSets(t *testing.T) {
	sess := NewSession(corpus(10), 20)

	sess.ToggleTag("wide")
	sess.ToggleTag("narrow")
	sess.ToggleTag("narrow")

	view := sess.View()
	assert.Equal(t, []string{"wide"}, view.IncludedTags)
	assert.Equal(t, []string{"narrow"}, view.ExcludedTags)
}
