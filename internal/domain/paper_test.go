package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase conversion",
			input:    "Deep Learning",
			expected: "deep learning",
		},
		{
			name:     "trim both ends",
			input:    "  reinforcement learning  ",
			expected: "reinforcement learning",
		},
		{
			name:     "collapse internal whitespace",
			input:    "graph   neural   networks",
			expected: "graph neural networks",
		},
		{
			name:     "tabs and newlines",
			input:    "large\t\nlanguage models",
			expected: "large language models",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "  \t  ",
			expected: "",
		},
		{
			name:     "hyphenated terms preserved",
			input:    "Few-Shot Learning",
			expected: "few-shot learning",
		},
		{
			name:     "unicode preserved",
			input:    "Rényi divergence",
			expected: "rényi divergence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTag(tt.input))
		})
	}
}

func TestPaper_Tags(t *testing.T) {
	tests := []struct {
		name     string
		keywords string
		expected []string
	}{
		{
			name:     "semicolon separated",
			keywords: "Deep Learning; NLP; Vision",
			expected: []string{"deep learning", "nlp", "vision"},
		},
		{
			name:     "empty pieces dropped",
			keywords: "transformers;; ;attention",
			expected: []string{"transformers", "attention"},
		},
		{
			name:     "commas are not separators",
			keywords: "graphs, trees; optimization",
			expected: []string{"graphs, trees", "optimization"},
		},
		{
			name:     "empty keywords",
			keywords: "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			keywords: "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Paper{Keywords: tt.keywords}
			assert.Equal(t, tt.expected, p.Tags())
		})
	}
}

func TestPaper_HasTag(t *testing.T) {
	p := &Paper{Keywords: "Deep Learning; NLP"}

	assert.True(t, p.HasTag("deep learning"))
	assert.True(t, p.HasTag("DEEP LEARNING"))
	assert.True(t, p.HasTag("  nlp "))
	assert.False(t, p.HasTag("vision"))
	assert.False(t, p.HasTag(""))
}

func TestPaper_AuthorList(t *testing.T) {
	tests := []struct {
		name     string
		authors  string
		expected []string
	}{
		{
			name:     "comma separated",
			authors:  "Ada Lovelace, Alan Turing,Grace Hopper",
			expected: []string{"Ada Lovelace", "Alan Turing", "Grace Hopper"},
		},
		{
			name:     "empty pieces dropped",
			authors:  "Kurt Gödel,, ",
			expected: []string{"Kurt Gödel"},
		},
		{
			name:     "empty string",
			authors:  "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Paper{Authors: tt.authors}
			assert.Equal(t, tt.expected, p.AuthorList())
		})
	}
}

func TestPaper_HasCode(t *testing.T) {
	assert.True(t, (&Paper{CodeLink: "https://github.com/x/y"}).HasCode())
	assert.False(t, (&Paper{CodeLink: ""}).HasCode())
	assert.False(t, (&Paper{CodeLink: "   "}).HasCode())
}

func TestDisplayTag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "multi word",
			input:    "deep learning",
			expected: "Deep Learning",
		},
		{
			name:     "single word",
			input:    "vision",
			expected: "Vision",
		},
		{
			name:     "already capitalized",
			input:    "NLP",
			expected: "NLP",
		},
		{
			name:     "raw piece with surrounding whitespace",
			input:    "  graph   neural networks ",
			expected: "Graph Neural Networks",
		},
		{
			name:     "multi byte first letter",
			input:    "深度学习",
			expected: "深度学习",
		},
		{
			name:     "accented first letter",
			input:    "école polytechnique",
			expected: "École Polytechnique",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayTag(tt.input))
		})
	}
}

func TestSourceError_Unwrap(t *testing.T) {
	err := NewSourceError("papers.json", errors.New("connection refused"))

	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "papers.json")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestValidationError_Unwrap(t *testing.T) {
	err := NewValidationError("page", "must be a positive integer")

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "page")
}
