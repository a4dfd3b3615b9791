package annoset

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorReport_ErrorSummarizesFirstFew(t *testing.T) {
	report := &ErrorReport{}
	for i := 1; i <= 5; i++ {
		report.add(i, ErrMalformedLine, "problem %d", i)
	}

	msg := report.Error()
	assert.Contains(t, msg, "line 1")
	assert.Contains(t, msg, "line 3")
	assert.NotContains(t, msg, "problem 4")
	assert.Contains(t, msg, "(5 issues total)")
}

func TestIssue_String(t *testing.T) {
	withLine := Issue{Line: 7, Kind: ErrInvalidTimestamp, Message: "bad date"}
	assert.Equal(t, "line 7: invalid_timestamp: bad date", withLine.String())

	noLine := Issue{Kind: ErrDocumentIncomplete, Message: "missing [Values]"}
	assert.Equal(t, "document_incomplete: missing [Values]", noLine.String())
}

func TestAsReport(t *testing.T) {
	report := &ErrorReport{Issues: []Issue{{Kind: ErrMalformedLine, Message: "x"}}}
	wrapped := fmt.Errorf("parse annotations: %w", report)

	got, ok := AsReport(wrapped)
	require.True(t, ok)
	assert.Same(t, report, got)

	_, ok = AsReport(errors.New("plain"))
	assert.False(t, ok)

	_, ok = AsReport(nil)
	assert.False(t, ok)
}

func TestTypeString_Valid(t *testing.T) {
	assert.True(t, TypeList.Valid())
	assert.False(t, TypeString("tree").Valid())
	assert.False(t, TypeString("").Valid())
}

func TestSectionName_Recognized(t *testing.T) {
	for _, name := range recognizedSections {
		assert.True(t, name.Recognized())
	}
	assert.False(t, SectionName("values").Recognized(), "matching is case-sensitive")
	assert.False(t, SectionName("Extra").Recognized())
}
