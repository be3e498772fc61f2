// Package latex locates LaTeX formulas inside paper titles and abstracts
// and substitutes rendered markup in place. Rendering itself is delegated
// to a Renderer; a formula whose rendering fails degrades to its original
// delimited source text so that malformed input never breaks the response.
package latex

import (
	"fmt"
	"html"
	"strings"

	"github.com/scholarstack/paper-catalog-service/internal/domain"
)

// Renderer turns a formula source (without delimiters) into renderable
// markup. displayMode distinguishes block formulas from inline ones.
type Renderer interface {
	Render(src string, displayMode bool) (string, error)
}

// Passthrough returns the formula source unchanged. It is the default
// renderer for callers that want segmentation without markup.
type Passthrough struct{}

// Render implements Renderer.
func (Passthrough) Render(src string, _ bool) (string, error) {
	return src, nil
}

// Markup wraps formulas in semantic HTML elements, escaping the source so
// it is safe to embed. A client-side math library picks the elements up by
// class. Formulas with unbalanced braces are rejected.
type Markup struct{}

// Render implements Renderer.
func (Markup) Render(src string, displayMode bool) (string, error) {
	if err := checkBraces(src); err != nil {
		return "", err
	}

	escaped := html.EscapeString(src)
	if displayMode {
		return `<div class="formula formula-display">` + escaped + `</div>`, nil
	}
	return `<span class="formula">` + escaped + `</span>`, nil
}

func checkBraces(src string) error {
	depth := 0
	escaped := false
	for _, r := range src {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("unbalanced closing brace: %w", domain.ErrRenderFailed)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%d unclosed braces: %w", depth, domain.ErrRenderFailed)
	}
	return nil
}

// RenderText substitutes every formula in text with the renderer's output.
// A formula the renderer rejects is left as its original delimited source;
// literal text between formulas is never altered.
func RenderText(text string, r Renderer) string {
	segments := Split(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, seg := range segments {
		if !seg.Formula {
			b.WriteString(seg.Raw)
			continue
		}
		out, err := r.Render(seg.Body, seg.Display)
		if err != nil {
			b.WriteString(seg.Raw)
			continue
		}
		b.WriteString(out)
	}
	return b.String()
}
