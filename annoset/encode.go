package annoset

import (
	"strings"
	"time"
)

// timestamps without a zone offset parse as UTC, so UTC instants encode
// back to the zoneless form and everything else keeps its offset.
func formatTimestamp(t time.Time) string {
	if t.Location() == time.UTC {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format(time.RFC3339)
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Encode serializes the document back to annotation set text in
// canonical section and key order. Optional keys with zero values are
// omitted. Re-parsing the output yields an equivalent document.
func (d *Document) Encode() string {
	b := &strings.Builder{}

	writeSection(b, SectionDefinition, map[string]string{
		KeyKeyword:           d.Definition.Keyword,
		KeyTypeString:        string(d.Definition.Type),
		KeyDescriptionString: d.Definition.Description,
		KeyUsageString:       d.Definition.Usage,
		KeyVersionString:     d.Definition.Version,
		KeyCreatedDateTime:   encodeTime(d.Definition.Created),
	})
	writeSection(b, SectionAuthor, map[string]string{
		KeyNameString:        d.Author.Name,
		KeyCopyrightString:   d.Author.Copyright,
		KeyContactInfoString: d.Author.ContactInfo,
	})
	writeSection(b, SectionCitation, map[string]string{
		KeyNameString:             d.Citation.Name,
		KeyDescriptionString:      d.Citation.Description,
		KeyPublishedVersionString: d.Citation.PublishedVersion,
		KeyPublishedDate:          encodeTime(d.Citation.Published),
		KeyReferenceURL:           d.Citation.ReferenceURL,
	})
	writeSection(b, SectionProcessing, map[string]string{
		KeyCaseSensitiveFlag: formatBool(d.Processing.CaseSensitive),
		KeyDelimiterString:   d.Processing.Delimiter,
		KeyCacheableFlag:     formatBool(d.Processing.Cacheable),
	})

	b.WriteString("[")
	b.WriteString(string(SectionValues))
	b.WriteString("]\n")
	for _, entry := range d.Values {
		fields := append([]string{entry.Term}, entry.Identifiers...)
		b.WriteString(strings.Join(fields, d.Processing.Delimiter))
		b.WriteString("\n")
	}
	return b.String()
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return formatTimestamp(t)
}

// writeSection emits one metadata section in canonical key order,
// skipping empty values. Required boolean and delimiter keys are never
// empty on a document that came out of Parse.
func writeSection(b *strings.Builder, name SectionName, values map[string]string) {
	b.WriteString("[")
	b.WriteString(string(name))
	b.WriteString("]\n")
	for _, key := range sectionKeyOrder[name] {
		if v := values[key]; v != "" {
			b.WriteString(key)
			b.WriteString("=")
			b.WriteString(v)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}
