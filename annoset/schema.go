package annoset

// fieldKind is the expected value type of a metadata key.
type fieldKind int

const (
	kindString fieldKind = iota
	kindBool
	kindTimestamp
	kindType
	kindDelimiter
	kindURL
)

// fieldSpec is one row of the schema table: the expected kind and
// requiredness of a recognized key.
type fieldSpec struct {
	kind     fieldKind
	required bool
}

// Recognized keys of the [AnnotationDefinition] section.
const (
	KeyKeyword           = "Keyword"
	KeyTypeString        = "TypeString"
	KeyDescriptionString = "DescriptionString"
	KeyUsageString       = "UsageString"
	KeyVersionString     = "VersionString"
	KeyCreatedDateTime   = "CreatedDateTime"
)

// Recognized keys of the [Author] section.
const (
	KeyNameString        = "NameString"
	KeyCopyrightString   = "CopyrightString"
	KeyContactInfoString = "ContactInfoString"
)

// Recognized keys of the [Citation] section. NameString and
// DescriptionString are shared with [Author].
const (
	KeyPublishedVersionString = "PublishedVersionString"
	KeyPublishedDate          = "PublishedDate"
	KeyReferenceURL           = "ReferenceURL"
)

// Recognized keys of the [Processing] section.
const (
	KeyCaseSensitiveFlag = "CaseSensitiveFlag"
	KeyDelimiterString   = "DelimiterString"
	KeyCacheableFlag     = "CacheableFlag"
)

// sectionSchemas is the fixed schema table: one entry per recognized
// key, per section. [Values] has no keys and is absent by design.
var sectionSchemas = map[SectionName]map[string]fieldSpec{
	SectionDefinition: {
		KeyKeyword:           {kind: kindString, required: true},
		KeyTypeString:        {kind: kindType, required: true},
		KeyDescriptionString: {kind: kindString},
		KeyUsageString:       {kind: kindString},
		KeyVersionString:     {kind: kindString},
		KeyCreatedDateTime:   {kind: kindTimestamp},
	},
	SectionAuthor: {
		KeyNameString:        {kind: kindString},
		KeyCopyrightString:   {kind: kindString},
		KeyContactInfoString: {kind: kindString},
	},
	SectionCitation: {
		KeyNameString:             {kind: kindString},
		KeyDescriptionString:      {kind: kindString},
		KeyPublishedVersionString: {kind: kindString},
		KeyPublishedDate:          {kind: kindTimestamp},
		KeyReferenceURL:           {kind: kindURL},
	},
	SectionProcessing: {
		KeyCaseSensitiveFlag: {kind: kindBool, required: true},
		KeyDelimiterString:   {kind: kindDelimiter, required: true},
		KeyCacheableFlag:     {kind: kindBool, required: true},
	},
}

// sectionKeyOrder gives the canonical key order used when encoding a
// document back to text.
var sectionKeyOrder = map[SectionName][]string{
	SectionDefinition: {
		KeyKeyword,
		KeyTypeString,
		KeyDescriptionString,
		KeyUsageString,
		KeyVersionString,
		KeyCreatedDateTime,
	},
	SectionAuthor: {
		KeyNameString,
		KeyCopyrightString,
		KeyContactInfoString,
	},
	SectionCitation: {
		KeyNameString,
		KeyDescriptionString,
		KeyPublishedVersionString,
		KeyPublishedDate,
		KeyReferenceURL,
	},
	SectionProcessing: {
		KeyCaseSensitiveFlag,
		KeyDelimiterString,
		KeyCacheableFlag,
	},
}

// missingRequiredKeys returns the required keys of a section absent
// from the seen set, in canonical order.
func missingRequiredKeys(section SectionName, seen map[string]bool) []string {
	schema := sectionSchemas[section]
	var missing []string
	for _, key := range sectionKeyOrder[section] {
		if schema[key].required && !seen[key] {
			missing = append(missing, key)
		}
	}
	return missing
}
