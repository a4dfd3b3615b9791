package annoset

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Options controls parser strictness.
type Options struct {
	// StrictSections rejects unrecognized section headers instead of
	// capturing and ignoring them.
	StrictSections bool

	// StrictKeys rejects unrecognized keys within recognized sections
	// instead of warning.
	StrictKeys bool

	// FieldsPerRow fixes the expected field count of Values rows.
	// Zero infers the count from the first row; all rows must agree
	// either way.
	FieldsPerRow int
}

// Parse parses an annotation set document. It returns either a complete
// Document or a non-empty *ErrorReport, never both. Recoverable
// problems are accumulated so one pass surfaces every issue.
func Parse(text string, opts Options) (*Document, error) {
	p := &parser{opts: opts, sections: make(map[SectionName]*sectionBody)}
	return p.run(text)
}

// ParseReader parses an annotation set document from a reader.
func ParseReader(r io.Reader, opts Options) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read annotation set: %w", err)
	}
	return Parse(string(data), opts)
}

// ParseFile parses an annotation set file from disk.
func ParseFile(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read annotation file: %w", err)
	}
	return Parse(string(data), opts)
}

// sectionBody is the collected content of one section: its header line
// number and the classified lines that followed it.
type sectionBody struct {
	header int
	lines  []Line
}

// parser carries the state of one parse. A parser is used once; Parse
// allocates a fresh instance per call, so independent documents may be
// parsed concurrently.
type parser struct {
	opts     Options
	report   ErrorReport
	warnings []Warning
	sections map[SectionName]*sectionBody
}

func (p *parser) warn(line int, format string, args ...any) {
	p.warnings = append(p.warnings, Warning{Line: line, Message: fmt.Sprintf(format, args...)})
}

// run drives the two passes: collect raw section bodies, then resolve
// [Processing] and build typed records. Values rows are never split
// until the delimiter is known, so physical section order is free.
func (p *parser) run(text string) (*Document, error) {
	p.collect(ClassifyLines(text))

	var missing []string
	for _, name := range recognizedSections {
		if _, ok := p.sections[name]; !ok {
			missing = append(missing, string(name))
		}
	}
	if len(missing) > 0 {
		p.report.add(0, ErrDocumentIncomplete, "missing required section(s): %s", strings.Join(missing, ", "))
	}

	// Processing resolves first: Values splitting depends on its
	// delimiter regardless of where the sections sit in the file.
	processing, delimOK := p.buildProcessing(p.collectKeyValues(SectionProcessing))

	doc := &Document{
		Definition: p.buildDefinition(p.collectKeyValues(SectionDefinition)),
		Author:     p.buildAuthor(p.collectKeyValues(SectionAuthor)),
		Citation:   p.buildCitation(p.collectKeyValues(SectionCitation)),
		Processing: processing,
		Values:     p.buildValues(p.sections[SectionValues], processing.Delimiter, delimOK),
	}

	if len(p.report.Issues) > 0 {
		return nil, &p.report
	}
	doc.Warnings = p.warnings
	return doc, nil
}

// collect is the first pass: group classified lines under their section
// headers. Unknown sections are captured but ignored in tolerant mode
// and rejected under StrictSections.
func (p *parser) collect(lines []Line) {
	var current *sectionBody
	inUnknown := false

	for _, line := range lines {
		switch line.Kind {
		case LineBlank:
			continue

		case LineSectionHeader:
			name := SectionName(line.Section)
			if !name.Recognized() {
				if p.opts.StrictSections {
					p.report.add(line.Number, ErrUnknownSection, "unrecognized section [%s]", line.Section)
				} else {
					p.warn(line.Number, "ignoring unrecognized section [%s]", line.Section)
				}
				current = nil
				inUnknown = true
				continue
			}
			if existing, ok := p.sections[name]; ok {
				p.report.add(line.Number, ErrMalformedLine, "duplicate section [%s]", line.Section)
				current = existing
			} else {
				current = &sectionBody{header: line.Number}
				p.sections[name] = current
			}
			inUnknown = false

		default:
			if current == nil {
				if !inUnknown {
					p.report.add(line.Number, ErrMalformedLine, "content before first section header")
				}
				continue
			}
			current.lines = append(current.lines, line)
		}
	}
}

// rawSection holds the recognized key-value pairs collected from one
// metadata section, with the line each key appeared on.
type rawSection struct {
	present bool
	header  int
	values  map[string]string
	lines   map[string]int
}

// get returns the raw value of a key and whether it was present.
func (s rawSection) get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// line returns the input line a key appeared on, falling back to the
// section header.
func (s rawSection) line(key string) int {
	if n, ok := s.lines[key]; ok {
		return n
	}
	return s.header
}

// collectKeyValues is the shared metadata-section walk: enforce the
// key-value grammar, apply the schema table, and report missing
// required keys together.
func (p *parser) collectKeyValues(name SectionName) rawSection {
	raw := rawSection{
		values: make(map[string]string),
		lines:  make(map[string]int),
	}
	body, ok := p.sections[name]
	if !ok {
		return raw
	}
	raw.present = true
	raw.header = body.header
	schema := sectionSchemas[name]

	for _, line := range body.lines {
		if line.Kind != LineKeyValue {
			p.report.add(line.Number, ErrMalformedLine, "[%s] expects Key=Value lines, got %q", name, line.Text)
			continue
		}
		if _, known := schema[line.Key]; !known {
			if p.opts.StrictKeys {
				p.report.add(line.Number, ErrUnknownKey, "unrecognized key %q in [%s]", line.Key, name)
			} else {
				p.warn(line.Number, "ignoring unrecognized key %q in [%s]", line.Key, name)
			}
			continue
		}
		if _, dup := raw.values[line.Key]; dup {
			p.warn(line.Number, "duplicate key %q in [%s] overrides earlier value", line.Key, name)
		}
		raw.values[line.Key] = line.Value
		raw.lines[line.Key] = line.Number
	}

	if raw.present {
		seen := make(map[string]bool, len(raw.values))
		for key := range raw.values {
			seen[key] = true
		}
		for _, key := range missingRequiredKeys(name, seen) {
			p.report.add(body.header, ErrMissingRequiredField, "[%s] is missing required key %s", name, key)
		}
	}
	return raw
}

func (p *parser) buildDefinition(raw rawSection) AnnotationDefinition {
	var def AnnotationDefinition

	if v, ok := raw.get(KeyKeyword); ok {
		if strings.TrimSpace(v) == "" {
			p.report.add(raw.line(KeyKeyword), ErrMissingRequiredField, "Keyword must be non-empty")
		}
		def.Keyword = v
	}
	if v, ok := raw.get(KeyTypeString); ok {
		def.Type = TypeString(v)
		if !def.Type.Valid() {
			p.report.add(raw.line(KeyTypeString), ErrInvalidEnum, "unrecognized TypeString %q", v)
		}
	}
	def.Description, _ = raw.get(KeyDescriptionString)
	def.Usage, _ = raw.get(KeyUsageString)
	def.Version, _ = raw.get(KeyVersionString)

	if v, ok := raw.get(KeyCreatedDateTime); ok {
		t, ok := parseTimestamp(v)
		if !ok {
			p.report.add(raw.line(KeyCreatedDateTime), ErrInvalidTimestamp, "CreatedDateTime %q is not ISO-8601", v)
		}
		def.Created = t
	}
	return def
}

func (p *parser) buildAuthor(raw rawSection) Author {
	var a Author
	a.Name, _ = raw.get(KeyNameString)
	a.Copyright, _ = raw.get(KeyCopyrightString)
	a.ContactInfo, _ = raw.get(KeyContactInfoString)
	return a
}

func (p *parser) buildCitation(raw rawSection) Citation {
	var c Citation
	c.Name, _ = raw.get(KeyNameString)
	c.Description, _ = raw.get(KeyDescriptionString)
	c.PublishedVersion, _ = raw.get(KeyPublishedVersionString)

	if v, ok := raw.get(KeyPublishedDate); ok {
		t, ok := parseTimestamp(v)
		if !ok {
			p.report.add(raw.line(KeyPublishedDate), ErrInvalidTimestamp, "PublishedDate %q is not ISO-8601", v)
		}
		c.Published = t
	}
	if v, ok := raw.get(KeyReferenceURL); ok {
		if v != "" && !validURL(v) {
			p.warn(raw.line(KeyReferenceURL), "ReferenceURL %q is not a valid URL", v)
		}
		c.ReferenceURL = v
	}
	return c
}

// buildProcessing coerces the [Processing] directives. The second
// return reports whether a usable delimiter was resolved; without one
// the Values section cannot be split.
func (p *parser) buildProcessing(raw rawSection) (ProcessingOptions, bool) {
	var opts ProcessingOptions
	delimOK := false

	if v, ok := raw.get(KeyCaseSensitiveFlag); ok {
		b, ok := parseBool(v)
		if !ok {
			p.report.add(raw.line(KeyCaseSensitiveFlag), ErrInvalidBooleanLiteral, "CaseSensitiveFlag %q is not a boolean token", v)
		}
		opts.CaseSensitive = b
	}
	if v, ok := raw.get(KeyCacheableFlag); ok {
		b, ok := parseBool(v)
		if !ok {
			p.report.add(raw.line(KeyCacheableFlag), ErrInvalidBooleanLiteral, "CacheableFlag %q is not a boolean token", v)
		}
		opts.Cacheable = b
	}
	if v, ok := raw.get(KeyDelimiterString); ok {
		opts.Delimiter = v
		if usableDelimiter(v) {
			delimOK = true
		} else {
			p.report.add(raw.line(KeyDelimiterString), ErrProcessingOrderViolation, "DelimiterString %q cannot split rows", v)
		}
	}
	return opts, delimOK
}

// buildValues splits the [Values] rows with the resolved delimiter.
// An empty section is valid and yields no entries. Every row must
// carry the same field count: the first field is the term, the rest
// are identifiers.
func (p *parser) buildValues(body *sectionBody, delim string, delimOK bool) []ValueEntry {
	if body == nil {
		return nil
	}

	var rows []Line
	for _, line := range body.lines {
		if line.Kind != LineBlank {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if !delimOK {
		p.report.add(rows[0].Number, ErrProcessingOrderViolation, "cannot split %d values row(s): no usable delimiter resolved from [Processing]", len(rows))
		return nil
	}

	expected := p.opts.FieldsPerRow
	entries := make([]ValueEntry, 0, len(rows))
	for _, row := range rows {
		// Reinterpret the trimmed text: a row that happens to contain
		// "=" is still a values row inside this section.
		fields := strings.Split(row.Text, delim)
		if len(fields) < 2 {
			p.report.add(row.Number, ErrMalformedLine, "values row has no %q delimiter: %q", delim, row.Text)
			continue
		}
		if expected == 0 {
			expected = len(fields)
		} else if len(fields) != expected {
			p.report.add(row.Number, ErrInconsistentRowWidth, "row has %d fields, expected %d", len(fields), expected)
			continue
		}
		entries = append(entries, ValueEntry{Term: fields[0], Identifiers: fields[1:]})
	}
	return entries
}
