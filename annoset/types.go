package annoset

import "time"

// Document is a fully parsed annotation set file. Assembly produces a
// complete document or none at all; treat a Document as read-only once
// returned from Parse.
type Document struct {
	// Definition holds the vocabulary identity and versioning metadata.
	Definition AnnotationDefinition `json:"definition"`

	// Author holds optional authorship metadata.
	Author Author `json:"author"`

	// Citation holds optional provenance metadata.
	Citation Citation `json:"citation"`

	// Processing holds the directives that control how the file is
	// interpreted and whether consumers may cache it.
	Processing ProcessingOptions `json:"processing"`

	// Values is the vocabulary itself, in file order. Order is
	// semantically meaningful and preserved exactly.
	Values []ValueEntry `json:"values"`

	// Warnings are non-fatal findings from the parse (unknown keys in
	// tolerant mode, a syntactically invalid reference URL).
	Warnings []Warning `json:"warnings,omitempty"`
}

// AnnotationDefinition identifies the vocabulary.
type AnnotationDefinition struct {
	// Keyword is the unique identifier for the vocabulary.
	Keyword string `json:"keyword"`

	// Type discriminates the vocabulary representation.
	Type TypeString `json:"type"`

	// Description is a human-readable summary.
	Description string `json:"description,omitempty"`

	// Usage is guidance text for annotators.
	Usage string `json:"usage,omitempty"`

	// Version is a free-form version string.
	Version string `json:"version,omitempty"`

	// Created is when the vocabulary was generated. Zero when the file
	// omits CreatedDateTime.
	Created time.Time `json:"created,omitempty"`
}

// Author holds authorship metadata. All fields are optional free text.
type Author struct {
	Name        string `json:"name,omitempty"`
	Copyright   string `json:"copyright,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
}

// Citation holds provenance metadata for the upstream source.
type Citation struct {
	Name             string `json:"name,omitempty"`
	Description      string `json:"description,omitempty"`
	PublishedVersion string `json:"published_version,omitempty"`

	// Published is when the upstream source was published. Zero when
	// the file omits PublishedDate.
	Published time.Time `json:"published,omitempty"`

	// ReferenceURL points at the upstream source. A syntactically
	// invalid URL is a warning, not an error.
	ReferenceURL string `json:"reference_url,omitempty"`
}

// ProcessingOptions holds the processing directives.
type ProcessingOptions struct {
	// CaseSensitive controls whether term lookups respect case.
	CaseSensitive bool `json:"case_sensitive"`

	// Delimiter separates fields within a Values row. Never empty or
	// whitespace-only in a valid document.
	Delimiter string `json:"delimiter"`

	// Cacheable indicates whether consumers may retain the parsed set.
	Cacheable bool `json:"cacheable"`
}

// ValueEntry is one vocabulary row: a term plus one or more identifiers.
type ValueEntry struct {
	// Term is the first field of the row.
	Term string `json:"term"`

	// Identifiers are the remaining fields, in row order. At least one.
	Identifiers []string `json:"identifiers"`
}

// Identifier returns the primary (first) identifier of the entry.
func (v ValueEntry) Identifier() string {
	if len(v.Identifiers) == 0 {
		return ""
	}
	return v.Identifiers[0]
}

// Warning is a non-fatal finding attached to a successfully parsed
// document.
type Warning struct {
	// Line is the 1-based input line the warning refers to.
	Line int `json:"line"`

	// Message describes the finding.
	Message string `json:"message"`
}
