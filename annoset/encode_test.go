package annoset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_RoundTrip(t *testing.T) {
	original, err := Parse(loadFixture(t, "mesh-disease.belanno"), Options{})
	require.NoError(t, err)

	reparsed, err := Parse(original.Encode(), Options{})
	require.NoError(t, err)

	assert.Equal(t, original.Definition, reparsed.Definition)
	assert.Equal(t, original.Author, reparsed.Author)
	assert.Equal(t, original.Citation, reparsed.Citation)
	assert.Equal(t, original.Processing, reparsed.Processing)
	assert.Equal(t, original.Values, reparsed.Values)
}

func TestEncode_RoundTripEmptyValues(t *testing.T) {
	original, err := Parse(minimalDocument(""), Options{})
	require.NoError(t, err)

	reparsed, err := Parse(original.Encode(), Options{})
	require.NoError(t, err)
	assert.Empty(t, reparsed.Values)
	assert.Equal(t, original.Processing, reparsed.Processing)
}

func TestEncode_CanonicalOrder(t *testing.T) {
	doc, err := Parse(loadFixture(t, "mesh-disease.belanno"), Options{})
	require.NoError(t, err)

	text := doc.Encode()
	lines := ClassifyLines(text)

	var sections []string
	for _, line := range lines {
		if line.Kind == LineSectionHeader {
			sections = append(sections, line.Section)
		}
	}
	assert.Equal(t, []string{"AnnotationDefinition", "Author", "Citation", "Processing", "Values"}, sections)
}

func TestEncode_BooleanTokens(t *testing.T) {
	doc, err := Parse(minimalDocument("a|A1"), Options{})
	require.NoError(t, err)

	text := doc.Encode()
	assert.Contains(t, text, "CaseSensitiveFlag=yes")
	assert.Contains(t, text, "CacheableFlag=yes")
	assert.NotContains(t, text, "=true")
}
