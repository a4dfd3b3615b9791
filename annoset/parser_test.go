package annoset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestParse_Fixture(t *testing.T) {
	doc, err := Parse(loadFixture(t, "mesh-disease.belanno"), Options{})
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "MeSHDisease", doc.Definition.Keyword)
	assert.Equal(t, TypeList, doc.Definition.Type)
	assert.Equal(t, "20150611", doc.Definition.Version)
	assert.Equal(t, time.Date(2015, 6, 11, 19, 51, 19, 0, time.UTC), doc.Definition.Created)

	assert.Equal(t, "OpenBEL", doc.Author.Name)
	assert.Equal(t, "info@openbel.org", doc.Author.ContactInfo)

	assert.Equal(t, "MeSH", doc.Citation.Name)
	assert.Equal(t, "2015", doc.Citation.PublishedVersion)
	assert.Equal(t, "http://www.nlm.nih.gov/mesh/", doc.Citation.ReferenceURL)

	assert.True(t, doc.Processing.CaseSensitive)
	assert.Equal(t, "|", doc.Processing.Delimiter)
	assert.True(t, doc.Processing.Cacheable)

	require.Len(t, doc.Values, 3)
	assert.Equal(t, ValueEntry{Term: "22q11 Deletion Syndrome", Identifiers: []string{"D058165"}}, doc.Values[0])
	assert.Equal(t, ValueEntry{Term: "46, XX Disorders of Sex Development", Identifiers: []string{"D058489"}}, doc.Values[1])
	assert.Equal(t, ValueEntry{Term: "46, XX Testicular Disorders of Sex Development", Identifiers: []string{"D058531"}}, doc.Values[2])
	assert.Equal(t, "D058165", doc.Values[0].Identifier())

	assert.Empty(t, doc.Warnings)
}

func TestParse_PreservesValueOrder(t *testing.T) {
	text := minimalDocument("zebra|Z1\napple|A1\nmango|M1")
	doc, err := Parse(text, Options{})
	require.NoError(t, err)

	terms := make([]string, 0, len(doc.Values))
	for _, v := range doc.Values {
		terms = append(terms, v.Term)
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, terms)
}

func TestParse_EmptyValuesSectionIsValid(t *testing.T) {
	doc, err := Parse(minimalDocument(""), Options{})
	require.NoError(t, err)
	assert.Empty(t, doc.Values)
}

func TestParse_ValuesBeforeProcessing(t *testing.T) {
	// Physical section order is free: the delimiter is resolved from
	// [Processing] before any Values row is split.
	text := "[AnnotationDefinition]\nKeyword=Test\nTypeString=list\n\n" +
		"[Author]\n\n[Citation]\n\n" +
		"[Values]\nterm one|T1\nterm two|T2\n\n" +
		"[Processing]\nCaseSensitiveFlag=yes\nDelimiterString=|\nCacheableFlag=no\n"

	doc, err := Parse(text, Options{})
	require.NoError(t, err)
	require.Len(t, doc.Values, 2)
	assert.Equal(t, "term one", doc.Values[0].Term)
	assert.False(t, doc.Processing.Cacheable)
}

func TestParse_MissingProcessingSection(t *testing.T) {
	text := "[AnnotationDefinition]\nKeyword=Test\nTypeString=list\n\n" +
		"[Author]\n\n[Citation]\n\n[Values]\nterm|T1\n"

	doc, err := Parse(text, Options{})
	assert.Nil(t, doc)

	report, ok := AsReport(err)
	require.True(t, ok)
	assert.True(t, report.Has(ErrDocumentIncomplete))
	assert.True(t, report.Has(ErrProcessingOrderViolation), "rows cannot be split without a delimiter")
}

func TestParse_MissingRequiredKeysReportedTogether(t *testing.T) {
	text := "[AnnotationDefinition]\nDescriptionString=no keyword or type\n\n" +
		"[Author]\n\n[Citation]\n\n" +
		"[Processing]\nDelimiterString=|\n\n[Values]\n"

	doc, err := Parse(text, Options{})
	assert.Nil(t, doc)

	report, ok := AsReport(err)
	require.True(t, ok)

	var missing []string
	for _, issue := range report.Issues {
		if issue.Kind == ErrMissingRequiredField {
			missing = append(missing, issue.Message)
		}
	}
	require.Len(t, missing, 4, "Keyword, TypeString, CaseSensitiveFlag, CacheableFlag")
	assert.Contains(t, strings.Join(missing, "\n"), "Keyword")
	assert.Contains(t, strings.Join(missing, "\n"), "CacheableFlag")
}

func TestParse_RowMissingDelimiter(t *testing.T) {
	text := minimalDocument("good term|G1\nbare term without identifier\nanother|A1|extra")

	doc, err := Parse(text, Options{})
	assert.Nil(t, doc)

	report, ok := AsReport(err)
	require.True(t, ok)
	require.Len(t, report.Issues, 2, "both row problems surface in one pass")

	assert.Equal(t, ErrMalformedLine, report.Issues[0].Kind)
	assert.Equal(t, 16, report.Issues[0].Line)
	assert.Equal(t, ErrInconsistentRowWidth, report.Issues[1].Kind)
	assert.Equal(t, 17, report.Issues[1].Line)
}

func TestParse_InconsistentRowWidth(t *testing.T) {
	text := minimalDocument("a|A1\nb|B1|B2")
	doc, err := Parse(text, Options{})
	assert.Nil(t, doc)

	report, ok := AsReport(err)
	require.True(t, ok)
	assert.True(t, report.Has(ErrInconsistentRowWidth))
}

func TestParse_UniformMultiIdentifierRows(t *testing.T) {
	doc, err := Parse(minimalDocument("a|A1|A2\nb|B1|B2"), Options{})
	require.NoError(t, err)
	require.Len(t, doc.Values, 2)
	assert.Equal(t, []string{"A1", "A2"}, doc.Values[0].Identifiers)
}

func TestParse_FieldsPerRowOption(t *testing.T) {
	_, err := Parse(minimalDocument("a|A1|A2\nb|B1|B2"), Options{FieldsPerRow: 2})
	report, ok := AsReport(err)
	require.True(t, ok)
	assert.True(t, report.Has(ErrInconsistentRowWidth))
}

func TestParse_ValuesRowContainingEquals(t *testing.T) {
	// Key-value-shaped lines inside [Values] are still rows.
	doc, err := Parse(minimalDocument("p=q syndrome|D000001"), Options{})
	require.NoError(t, err)
	require.Len(t, doc.Values, 1)
	assert.Equal(t, "p=q syndrome", doc.Values[0].Term)
}

func TestParse_InvalidBooleanLiteral(t *testing.T) {
	text := strings.Replace(minimalDocument("a|A1"), "CaseSensitiveFlag=yes", "CaseSensitiveFlag=maybe", 1)
	_, err := Parse(text, Options{})
	report, ok := AsReport(err)
	require.True(t, ok)
	assert.True(t, report.Has(ErrInvalidBooleanLiteral))
}

func TestParse_InvalidTimestamp(t *testing.T) {
	text := strings.Replace(loadFixture(t, "mesh-disease.belanno"),
		"CreatedDateTime=2015-06-11T19:51:19", "CreatedDateTime=June 2015", 1)
	_, err := Parse(text, Options{})
	report, ok := AsReport(err)
	require.True(t, ok)
	assert.True(t, report.Has(ErrInvalidTimestamp))
}

func TestParse_InvalidTypeString(t *testing.T) {
	text := strings.Replace(minimalDocument("a|A1"), "TypeString=list", "TypeString=tree", 1)
	_, err := Parse(text, Options{})
	report, ok := AsReport(err)
	require.True(t, ok)
	assert.True(t, report.Has(ErrInvalidEnum))
}

func TestParse_BlankDelimiter(t *testing.T) {
	text := strings.Replace(minimalDocument("a|A1"), "DelimiterString=|", "DelimiterString=   ", 1)
	_, err := Parse(text, Options{})
	report, ok := AsReport(err)
	require.True(t, ok)
	assert.True(t, report.Has(ErrProcessingOrderViolation))
}

func TestParse_RawEntryInMetadataSection(t *testing.T) {
	text := strings.Replace(minimalDocument("a|A1"), "[Author]\n", "[Author]\nthis is not a key value line\n", 1)
	_, err := Parse(text, Options{})
	report, ok := AsReport(err)
	require.True(t, ok)
	assert.True(t, report.Has(ErrMalformedLine))
}

func TestParse_ContentBeforeFirstSection(t *testing.T) {
	_, err := Parse("stray text\n"+minimalDocument("a|A1"), Options{})
	report, ok := AsReport(err)
	require.True(t, ok)
	require.NotEmpty(t, report.Issues)
	assert.Equal(t, ErrMalformedLine, report.Issues[0].Kind)
	assert.Equal(t, 1, report.Issues[0].Line)
}

func TestParse_UnknownSectionTolerant(t *testing.T) {
	text := minimalDocument("a|A1") + "\n[FutureExtension]\nAnything=goes\n"
	doc, err := Parse(text, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, doc.Warnings)
	assert.Contains(t, doc.Warnings[0].Message, "FutureExtension")
}

func TestParse_UnknownSectionStrict(t *testing.T) {
	text := minimalDocument("a|A1") + "\n[FutureExtension]\nAnything=goes\n"
	_, err := Parse(text, Options{StrictSections: true})
	report, ok := AsReport(err)
	require.True(t, ok)
	assert.True(t, report.Has(ErrUnknownSection))
}

func TestParse_UnknownKeyTolerantWarnsStrictRejects(t *testing.T) {
	text := strings.Replace(minimalDocument("a|A1"), "[Author]\n", "[Author]\nFavoriteColor=blue\n", 1)

	doc, err := Parse(text, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, doc.Warnings)
	assert.Contains(t, doc.Warnings[0].Message, "FavoriteColor")

	_, err = Parse(text, Options{StrictKeys: true})
	report, ok := AsReport(err)
	require.True(t, ok)
	assert.True(t, report.Has(ErrUnknownKey))
}

func TestParse_InvalidReferenceURLIsWarning(t *testing.T) {
	text := strings.Replace(loadFixture(t, "mesh-disease.belanno"),
		"ReferenceURL=http://www.nlm.nih.gov/mesh/", "ReferenceURL=not a url", 1)
	doc, err := Parse(text, Options{})
	require.NoError(t, err, "bad URL syntax is tolerated")
	require.NotEmpty(t, doc.Warnings)
	assert.Contains(t, doc.Warnings[0].Message, "ReferenceURL")
}

func TestParse_DuplicateSection(t *testing.T) {
	text := minimalDocument("a|A1") + "\n[Author]\nNameString=Again\n"
	_, err := Parse(text, Options{})
	report, ok := AsReport(err)
	require.True(t, ok)
	assert.True(t, report.Has(ErrMalformedLine))
}

func TestParse_EmptyInput(t *testing.T) {
	doc, err := Parse("", Options{})
	assert.Nil(t, doc)
	report, ok := AsReport(err)
	require.True(t, ok)
	assert.True(t, report.Has(ErrDocumentIncomplete))
}

func TestParse_NeverBothDocumentAndError(t *testing.T) {
	inputs := []string{
		"",
		loadFixture(t, "mesh-disease.belanno"),
		minimalDocument("bad row"),
		"[Processing]\nDelimiterString=|\n",
	}
	for _, input := range inputs {
		doc, err := Parse(input, Options{})
		if err != nil {
			assert.Nil(t, doc)
			report, ok := AsReport(err)
			require.True(t, ok)
			assert.NotEmpty(t, report.Issues)
		} else {
			assert.NotNil(t, doc)
		}
	}
}

func TestParseFile_Fixture(t *testing.T) {
	doc, err := ParseFile(filepath.Join("testdata", "mesh-disease.belanno"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "MeSHDisease", doc.Definition.Keyword)
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(loadFixture(t, "mesh-disease.belanno")), Options{})
	require.NoError(t, err)
	assert.Equal(t, "MeSHDisease", doc.Definition.Keyword)
}

// minimalDocument builds a complete document with the given [Values]
// body. The [Values] section starts at line 14, so the first row is
// line 15.
func minimalDocument(values string) string {
	text := "[AnnotationDefinition]\nKeyword=Test\nTypeString=list\n\n" +
		"[Author]\n\n" +
		"[Citation]\n\n" +
		"[Processing]\nCaseSensitiveFlag=yes\nDelimiterString=|\nCacheableFlag=yes\n\n" +
		"[Values]\n"
	if values != "" {
		text += values + "\n"
	}
	return text
}
