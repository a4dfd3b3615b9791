package annoset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaTable_MatchesKeyOrder(t *testing.T) {
	for section, schema := range sectionSchemas {
		order := sectionKeyOrder[section]
		require.Len(t, order, len(schema), "section %s", section)
		for _, key := range order {
			_, ok := schema[key]
			assert.True(t, ok, "ordered key %s missing from [%s] schema", key, section)
		}
	}
}

func TestSchemaTable_RequiredKeys(t *testing.T) {
	tests := []struct {
		section  SectionName
		required []string
	}{
		{SectionDefinition, []string{KeyKeyword, KeyTypeString}},
		{SectionAuthor, nil},
		{SectionCitation, nil},
		{SectionProcessing, []string{KeyCaseSensitiveFlag, KeyDelimiterString, KeyCacheableFlag}},
	}
	for _, tt := range tests {
		t.Run(string(tt.section), func(t *testing.T) {
			missing := missingRequiredKeys(tt.section, map[string]bool{})
			assert.Equal(t, tt.required, missing)
		})
	}
}

func TestSchemaTable_FieldKinds(t *testing.T) {
	// Typed keys drive coercion: flags are booleans, date keys are
	// timestamps, and the delimiter gets its own usability check.
	assert.Equal(t, kindBool, sectionSchemas[SectionProcessing][KeyCaseSensitiveFlag].kind)
	assert.Equal(t, kindBool, sectionSchemas[SectionProcessing][KeyCacheableFlag].kind)
	assert.Equal(t, kindDelimiter, sectionSchemas[SectionProcessing][KeyDelimiterString].kind)
	assert.Equal(t, kindTimestamp, sectionSchemas[SectionDefinition][KeyCreatedDateTime].kind)
	assert.Equal(t, kindTimestamp, sectionSchemas[SectionCitation][KeyPublishedDate].kind)
	assert.Equal(t, kindType, sectionSchemas[SectionDefinition][KeyTypeString].kind)
	assert.Equal(t, kindURL, sectionSchemas[SectionCitation][KeyReferenceURL].kind)
	assert.Equal(t, kindString, sectionSchemas[SectionAuthor][KeyNameString].kind)
}

func TestMissingRequiredKeys_SeenKeysExcluded(t *testing.T) {
	missing := missingRequiredKeys(SectionProcessing, map[string]bool{KeyDelimiterString: true})
	assert.Equal(t, []string{KeyCaseSensitiveFlag, KeyCacheableFlag}, missing)
}
