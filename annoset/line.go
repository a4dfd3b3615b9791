package annoset

import "strings"

// commentPrefix marks a full-line comment. Comment lines are treated as
// blank; the marker has no meaning elsewhere on a line, since delimiters
// and free-text values may legitimately contain it.
const commentPrefix = "#"

// LineKind classifies one input line.
type LineKind string

const (
	// LineBlank is an empty, whitespace-only, or comment line.
	LineBlank LineKind = "blank"

	// LineSectionHeader is a line of the form [Name], name verbatim.
	LineSectionHeader LineKind = "section_header"

	// LineKeyValue is a line containing a key, "=", and a raw value.
	LineKeyValue LineKind = "key_value"

	// LineRawEntry is any other non-blank line. Inside [Values] every
	// non-blank line is treated as a raw entry regardless of shape.
	LineRawEntry LineKind = "raw_entry"
)

// Line is one classified input line. Text always carries the trimmed
// raw text so the parser can reinterpret a key-value-shaped line as a
// values row.
type Line struct {
	// Number is the 1-based position in the input.
	Number int

	// Kind is the classification.
	Kind LineKind

	// Section is the bracketed name for section headers.
	Section string

	// Key and Value are the split halves for key-value lines. The
	// split is on the first "=" only.
	Key   string
	Value string

	// Text is the trimmed line text.
	Text string
}

// ClassifyLines splits raw text into classified lines. Classification
// is pure and restartable: running it twice over the same input yields
// the same result. Leading and trailing whitespace is trimmed; no other
// normalization is applied.
func ClassifyLines(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for i, r := range raw {
		lines = append(lines, classifyLine(i+1, r))
	}
	return lines
}

func classifyLine(number int, raw string) Line {
	text := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
	line := Line{Number: number, Text: text}

	switch {
	case text == "" || strings.HasPrefix(text, commentPrefix):
		line.Kind = LineBlank
		line.Text = ""

	case strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]"):
		line.Kind = LineSectionHeader
		line.Section = text[1 : len(text)-1]

	default:
		if key, value, ok := strings.Cut(text, "="); ok && strings.TrimSpace(key) != "" {
			line.Kind = LineKeyValue
			line.Key = strings.TrimSpace(key)
			line.Value = strings.TrimSpace(value)
		} else {
			line.Kind = LineRawEntry
		}
	}
	return line
}
