package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarstack/paper-catalog-service/internal/domain"
)

func testPapers() []domain.Paper {
	return []domain.Paper{
		{Title: "Attention Mechanisms Revisited", Venue: "NeurIPS", Year: 2023, Keywords: "Deep Learning; NLP"},
		{Title: "Vision Backbones at Scale", Venue: "CVPR", Year: 2024, Keywords: "deep learning; Vision"},
		{Title: "Sparse Retrieval", Venue: "ACL", Year: 2023, Keywords: "NLP"},
		{Title: "Untethered Venue Paper", Venue: "", Year: 2022, Keywords: ""},
	}
}

func TestCatalog_Years(t *testing.T) {
	c := New(testPapers(), 0)

	assert.Equal(t, []int{2024, 2023, 2022}, c.Years())
}

func TestCatalog_Venues(t *testing.T) {
	c := New(testPapers(), 0)

	// Empty venues are excluded; order is ascending lexicographic.
	assert.Equal(t, []string{"ACL", "CVPR", "NeurIPS"}, c.Venues())
}

func TestCatalog_TagCounts(t *testing.T) {
	t.Run("case folded counts with deterministic tie order", func(t *testing.T) {
		papers := []domain.Paper{
			{Title: "a", Keywords: "Deep Learning; NLP"},
			{Title: "b", Keywords: "deep learning; Vision"},
		}
		c := New(papers, 0)

		require.Len(t, c.TagCounts(), 3)
		assert.Equal(t, TagCount{Tag: "deep learning", Display: "Deep Learning", Count: 2}, c.TagCounts()[0])
		assert.Equal(t, TagCount{Tag: "nlp", Display: "NLP", Count: 1}, c.TagCounts()[1])
		assert.Equal(t, TagCount{Tag: "vision", Display: "Vision", Count: 1}, c.TagCounts()[2])
	})

	t.Run("display keeps first raw spelling", func(t *testing.T) {
		papers := []domain.Paper{
			{Title: "a", Keywords: "NLP; 深度学习"},
			{Title: "b", Keywords: "nlp"},
		}
		c := New(papers, 0)

		require.Len(t, c.TagCounts(), 2)
		assert.Equal(t, TagCount{Tag: "nlp", Display: "NLP", Count: 2}, c.TagCounts()[0])
		assert.Equal(t, TagCount{Tag: "深度学习", Display: "深度学习", Count: 1}, c.TagCounts()[1])
	})

	t.Run("cap truncates the ranked list", func(t *testing.T) {
		papers := []domain.Paper{
			{Title: "a", Keywords: "alpha; beta; gamma; delta"},
		}
		c := New(papers, 2)

		require.Len(t, c.TagCounts(), 2)
		// All counts equal, so the tie-break keeps the lexicographically
		// smallest tags.
		assert.Equal(t, "alpha", c.TagCounts()[0].Tag)
		assert.Equal(t, "beta", c.TagCounts()[1].Tag)
	})

	t.Run("empty collection", func(t *testing.T) {
		c := New(nil, 0)

		assert.Empty(t, c.TagCounts())
		assert.Empty(t, c.Years())
		assert.Empty(t, c.Venues())
		assert.Zero(t, c.Len())
	})
}

func TestCatalog_PapersPreserveLoadOrder(t *testing.T) {
	papers := testPapers()
	c := New(papers, 0)

	require.Equal(t, len(papers), c.Len())
	for i := range papers {
		assert.Equal(t, papers[i].Title, c.Papers()[i].Title)
	}
}
