package annoset

import (
	"net/url"
	"strings"
	"time"
)

// Boolean token sets accepted by flag keys, matched case-insensitively.
var (
	truthyTokens = map[string]bool{"yes": true, "true": true, "1": true, "on": true}
	falsyTokens  = map[string]bool{"no": true, "false": true, "0": true, "off": true}
)

// parseBool coerces a raw flag value. The second return is false when
// the token is outside the accepted set.
func parseBool(raw string) (value, ok bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if truthyTokens[token] {
		return true, true
	}
	if falsyTokens[token] {
		return false, true
	}
	return false, false
}

// timestampLayouts are the accepted ISO-8601 forms, tried in order.
// Published files commonly use the second-resolution local form without
// a zone offset.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp coerces a raw date-time value per ISO-8601.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// validURL reports whether the value is a syntactically valid absolute
// URL. Failures are warnings, not errors.
func validURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	return err == nil && u.Scheme != "" && u.Host != ""
}

// usableDelimiter reports whether a declared delimiter can split rows:
// non-empty and not whitespace-only.
func usableDelimiter(d string) bool {
	return d != "" && strings.TrimSpace(d) != ""
}
