// Package token defines the placeholder token grammar.
//
// A token is a maximal, non-overlapping match of {{KEY}} where KEY is one or
// more uppercase-letter/underscore groups optionally separated by dots
// (e.g. {{BUSINESS_NAME}}, {{CONTACT.PHONE}}). Text that does not match the
// grammar exactly (lowercase keys, stray single braces, unterminated
// tokens) is never treated as a token.
//
// Every function here runs an isolated matching pass over its input. There
// is no shared match cursor, so concurrent calls over different (or the
// same) strings are safe.
package token

import "regexp"

var (
	// pattern matches a complete token and captures its key.
	pattern = regexp.MustCompile(`\{\{([A-Z_]+(?:\.[A-Z_]+)*)\}\}`)

	// keyPattern matches a bare key with nothing around it.
	keyPattern = regexp.MustCompile(`^[A-Z_]+(?:\.[A-Z_]+)*$`)
)

// Match is one token occurrence within a text value.
type Match struct {
	// Key is the token's key, without the surrounding braces.
	Key string

	// Start and End are the byte offsets of the full token in the text,
	// including the braces.
	Start int
	End   int
}

// Find returns all token matches in text, in order of appearance.
// A text with no tokens returns nil.
func Find(text string) []Match {
	idx := pattern.FindAllStringSubmatchIndex(text, -1)
	if idx == nil {
		return nil
	}
	matches := make([]Match, len(idx))
	for i, m := range idx {
		matches[i] = Match{
			Key:   text[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		}
	}
	return matches
}

// Keys returns the keys of all tokens in text, in order, with duplicates kept.
func Keys(text string) []string {
	matches := Find(text)
	if matches == nil {
		return nil
	}
	keys := make([]string, len(matches))
	for i, m := range matches {
		keys[i] = m.Key
	}
	return keys
}

// Contains reports whether text contains at least one token.
func Contains(text string) bool {
	return pattern.MatchString(text)
}

// IsKey reports whether s is a well-formed bare token key.
func IsKey(s string) bool {
	return keyPattern.MatchString(s)
}

// Wrap returns the literal token text for a key.
func Wrap(key string) string {
	return "{{" + key + "}}"
}

// Replace substitutes values for tokens in text. Each token whose key is
// present in values is replaced by the mapped value; tokens with no value
// are left as literal {{KEY}} text. Repeated tokens are replaced
// independently.
func Replace(text string, values map[string]string) string {
	if len(values) == 0 || !Contains(text) {
		return text
	}
	return pattern.ReplaceAllStringFunc(text, func(tok string) string {
		key := tok[2 : len(tok)-2]
		if v, ok := values[key]; ok {
			return v
		}
		return tok
	})
}
