package annoset

// TypeString represents the vocabulary representation declared by the
// TypeString key of the [AnnotationDefinition] section.
type TypeString string

const (
	// TypeList is a flat, ordered list of term rows. This is the only
	// representation observed in published annotation sets.
	TypeList TypeString = "list"
)

// Valid reports whether the value is a recognized vocabulary type.
func (t TypeString) Valid() bool {
	return t == TypeList
}

func (t TypeString) String() string {
	return string(t)
}

// SectionName identifies one of the recognized sections of an
// annotation set file. Matching is case-sensitive.
type SectionName string

const (
	// SectionDefinition declares the vocabulary identity.
	SectionDefinition SectionName = "AnnotationDefinition"

	// SectionAuthor declares authorship metadata.
	SectionAuthor SectionName = "Author"

	// SectionCitation declares provenance metadata.
	SectionCitation SectionName = "Citation"

	// SectionProcessing declares processing directives.
	SectionProcessing SectionName = "Processing"

	// SectionValues holds the vocabulary rows.
	SectionValues SectionName = "Values"
)

// recognizedSections lists the sections in canonical file order. All
// five are required for a complete document.
var recognizedSections = []SectionName{
	SectionDefinition,
	SectionAuthor,
	SectionCitation,
	SectionProcessing,
	SectionValues,
}

// Recognized reports whether the name is one of the five known
// sections.
func (s SectionName) Recognized() bool {
	switch s {
	case SectionDefinition, SectionAuthor, SectionCitation, SectionProcessing, SectionValues:
		return true
	}
	return false
}

func (s SectionName) String() string {
	return string(s)
}
