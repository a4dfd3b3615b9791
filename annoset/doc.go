// Package annoset parses and validates annotation set definition files.
//
// An annotation set file is a line-oriented, section-based UTF-8 text
// document describing a controlled vocabulary (for example a disease
// term list) together with its provenance and processing directives.
// A file contains five recognized sections:
//
//	[AnnotationDefinition]  keyword, type, description, versioning
//	[Author]                name, copyright, contact info
//	[Citation]              source publication and reference URL
//	[Processing]            case sensitivity, value delimiter, cacheability
//	[Values]                one vocabulary row per line, fields split
//	                        by the declared delimiter
//
// Parsing is a single forward transformation: raw text is classified
// into lines, lines are grouped into sections, section fields are
// coerced into typed values, and the result is assembled into an
// immutable Document. Validation problems are accumulated into a single
// ErrorReport so one pass surfaces every problem; callers receive
// either a complete Document or a non-empty report, never both.
//
// Parsing resolves the [Processing] section before splitting [Values]
// rows, so the physical order of sections in the file does not matter.
//
// # Usage
//
//	doc, err := annoset.Parse(text, annoset.Options{})
//	if err != nil {
//	    if report, ok := annoset.AsReport(err); ok {
//	        for _, issue := range report.Issues {
//	            fmt.Println(issue)
//	        }
//	    }
//	    return err
//	}
//	fmt.Println(doc.Definition.Keyword, len(doc.Values))
package annoset
