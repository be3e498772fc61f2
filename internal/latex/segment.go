package latex

import "strings"

// Segment is a run of literal text or a single delimited formula.
type Segment struct {
	// Raw is the original slice of the input, delimiters included.
	Raw string

	// Body is the formula source without delimiters. Empty for literals.
	Body string

	// Formula marks the segment as a formula.
	Formula bool

	// Display marks a block formula ($$…$$ or \[…\]).
	Display bool
}

// delimiters in matching priority order. Display-mode pairs come first so
// that $$…$$ is never consumed as two empty inline formulas.
var delimiters = []struct {
	open    string
	close   string
	display bool
}{
	{"$$", "$$", true},
	{`\[`, `\]`, true},
	{"$", "$", false},
	{`\(`, `\)`, false},
}

// Split partitions text into literal and formula segments. An opening
// delimiter with no matching closer is treated as literal text.
// Concatenating every segment's Raw reproduces the input exactly.
func Split(text string) []Segment {
	var segments []Segment

	litStart := 0
	i := 0
	for i < len(text) {
		seg, next, ok := matchFormula(text, i)
		if !ok {
			i++
			continue
		}
		if litStart < i {
			segments = append(segments, Segment{Raw: text[litStart:i]})
		}
		segments = append(segments, seg)
		i = next
		litStart = next
	}
	if litStart < len(text) {
		segments = append(segments, Segment{Raw: text[litStart:]})
	}
	return segments
}

// matchFormula tries each delimiter pair at position i and returns the
// formula segment plus the index just past its closing delimiter.
func matchFormula(text string, i int) (Segment, int, bool) {
	for _, d := range delimiters {
		if !strings.HasPrefix(text[i:], d.open) {
			continue
		}
		bodyStart := i + len(d.open)
		rel := strings.Index(text[bodyStart:], d.close)
		if rel < 0 {
			continue
		}
		end := bodyStart + rel + len(d.close)
		seg := Segment{
			Raw:     text[i:end],
			Body:    text[bodyStart : bodyStart+rel],
			Formula: true,
			Display: d.display,
		}
		return seg, end, true
	}
	return Segment{}, 0, false
}
