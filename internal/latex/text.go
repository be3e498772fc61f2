package latex

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/scholarstack/paper-catalog-service/internal/observability"
)

// TextRenderer is the service-level wrapper around a Renderer. It applies
// RenderText semantics and records per-formula outcome metrics.
type TextRenderer struct {
	renderer Renderer
	logger   zerolog.Logger
	metrics  *observability.Metrics
}

// NewTextRenderer creates a TextRenderer. metrics may be nil.
func NewTextRenderer(r Renderer, logger zerolog.Logger, metrics *observability.Metrics) *TextRenderer {
	if r == nil {
		r = Passthrough{}
	}
	return &TextRenderer{
		renderer: r,
		logger:   logger.With().Str("component", "latex").Logger(),
		metrics:  metrics,
	}
}

// RenderText renders every formula in text, falling back to the delimited
// source for formulas the renderer rejects.
func (t *TextRenderer) RenderText(text string) string {
	segments := Split(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, seg := range segments {
		if !seg.Formula {
			b.WriteString(seg.Raw)
			continue
		}
		out, err := t.renderer.Render(seg.Body, seg.Display)
		if err != nil {
			t.logger.Debug().Err(err).Str("formula", seg.Raw).Msg("formula degraded to source text")
			if t.metrics != nil {
				t.metrics.RecordFormulaFailed()
			}
			b.WriteString(seg.Raw)
			continue
		}
		if t.metrics != nil {
			t.metrics.RecordFormulaRendered()
		}
		b.WriteString(out)
	}
	return b.String()
}
