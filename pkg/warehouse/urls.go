package warehouse

import (
	"strings"
	"unicode"
)

// allowedSchemes is the fixed set of URL schemes collectors may mark usable.
//
//nolint:gochecknoglobals // Read-only lookup table.
var allowedSchemes = []string{"http", "https", "mailto", "tel"}

// AllowedSchemes returns a copy of the scheme allowlist.
func AllowedSchemes() []string {
	out := make([]string, len(allowedSchemes))
	copy(out, allowedSchemes)
	return out
}

// ValidateURL reports whether raw may be used by downstream consumers.
//
// Accepted: absolute URLs with an allowlisted scheme, relative references
// ("docs/a.md", "../x", "/abs", "?q") and fragments ("#anchor").
// Rejected: empty input, any control or whitespace character, protocol-relative
// forms ("//host", "\\host", "/\host"), schemes that are percent-encoded or
// entity-encoded, and every scheme outside the allowlist.
func ValidateURL(raw string) bool {
	if raw == "" {
		return false
	}

	for _, r := range raw {
		if unicode.IsControl(r) || unicode.IsSpace(r) || r == unicode.ReplacementChar {
			return false
		}
	}

	if isProtocolRelative(raw) {
		return false
	}

	if raw[0] == '#' {
		return true
	}

	colon := strings.IndexByte(raw, ':')
	if colon < 0 {
		return true
	}

	// A colon after a path or query delimiter is not a scheme separator.
	if delim := strings.IndexAny(raw, "/?"); delim >= 0 && delim < colon {
		return true
	}

	scheme := raw[:colon]

	// Colon inside a plain fragment ("page#a:b"). An '&' or '%' before the '#'
	// means an encoded scheme such as "&#106;avascript:".
	if hash := strings.IndexByte(scheme, '#'); hash >= 0 && !strings.ContainsAny(scheme[:hash], "&%") {
		return true
	}

	if !isSchemeSyntax(scheme) {
		return false
	}

	scheme = strings.ToLower(scheme)
	for _, allowed := range allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}

func isProtocolRelative(raw string) bool {
	if len(raw) < 2 {
		return false
	}
	first, second := raw[0], raw[1]
	return (first == '/' || first == '\\') && (second == '/' || second == '\\')
}

// isSchemeSyntax checks scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
// Anything else before the first colon ("java%73cript", "&#106;avascript")
// is treated as an obfuscated scheme.
func isSchemeSyntax(scheme string) bool {
	if scheme == "" {
		return false
	}
	for i := 0; i < len(scheme); i++ {
		c := scheme[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
