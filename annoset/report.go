package annoset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKind identifies a class of validation failure.
type ErrKind string

const (
	// ErrMalformedLine is a line that does not match the grammar for
	// its context.
	ErrMalformedLine ErrKind = "malformed_line"

	// ErrUnknownSection is an unrecognized section header, reported
	// only under Options.StrictSections.
	ErrUnknownSection ErrKind = "unknown_section"

	// ErrUnknownKey is an unrecognized key within a recognized
	// section, reported only under Options.StrictKeys.
	ErrUnknownKey ErrKind = "unknown_key"

	// ErrMissingRequiredField is a required key absent from its
	// section. All missing keys are reported together.
	ErrMissingRequiredField ErrKind = "missing_required_field"

	// ErrInvalidBooleanLiteral is a flag value outside the accepted
	// truthy/falsy token set.
	ErrInvalidBooleanLiteral ErrKind = "invalid_boolean_literal"

	// ErrInvalidTimestamp is a date-time value that does not parse per
	// ISO-8601.
	ErrInvalidTimestamp ErrKind = "invalid_timestamp"

	// ErrInvalidEnum is a value outside a closed enumeration, such as
	// an unrecognized TypeString.
	ErrInvalidEnum ErrKind = "invalid_enum"

	// ErrInconsistentRowWidth is a Values row whose field count
	// disagrees with the rest of the section.
	ErrInconsistentRowWidth ErrKind = "inconsistent_row_width"

	// ErrProcessingOrderViolation means Values rows could not be split
	// because no usable delimiter was resolved from [Processing].
	ErrProcessingOrderViolation ErrKind = "processing_order_violation"

	// ErrDocumentIncomplete means input ended with required sections
	// unvisited.
	ErrDocumentIncomplete ErrKind = "document_incomplete"
)

// Issue is one validation finding.
type Issue struct {
	// Line is the 1-based input line, or 0 when the issue is not tied
	// to a single line (a missing section, for example).
	Line int `json:"line"`

	// Kind classifies the failure.
	Kind ErrKind `json:"kind"`

	// Message describes the failure.
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", i.Line, i.Kind, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// ErrorReport aggregates every validation failure found in one parse
// pass. It implements error; a report returned from Parse is never
// empty.
type ErrorReport struct {
	Issues []Issue `json:"issues"`
}

// Error summarizes the first few issues.
func (r *ErrorReport) Error() string {
	const maxShown = 3
	n := len(r.Issues)
	if n == 0 {
		return "annotation set: no issues"
	}
	b := &strings.Builder{}
	b.WriteString("annotation set: ")
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(r.Issues[i].String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (%d issues total)", n)
	}
	return b.String()
}

// Has reports whether the report contains at least one issue of the
// given kind.
func (r *ErrorReport) Has(kind ErrKind) bool {
	for _, i := range r.Issues {
		if i.Kind == kind {
			return true
		}
	}
	return false
}

// add appends a formatted issue.
func (r *ErrorReport) add(line int, kind ErrKind, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Line:    line,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// AsReport extracts an ErrorReport from an error chain.
func AsReport(err error) (*ErrorReport, bool) {
	var report *ErrorReport
	if errors.As(err, &report) {
		return report, true
	}
	return nil, false
}
