// Package ident canonicalizes model identifiers for comparison. All
// functions are pure and never fail; an empty input yields empty output.
package ident

import "strings"

// Normalize lowercases the identifier and strips any variant tag after the
// first ":" (e.g. "meta-llama/llama-3-8b:free" -> "meta-llama/llama-3-8b").
func Normalize(id string) string {
	base, _, _ := strings.Cut(id, ":")
	return strings.ToLower(strings.TrimSpace(base))
}

// Suffix returns the last "/" segment of the normalized identifier, or the
// whole normalized identifier when it has no path component.
func Suffix(id string) string {
	norm := Normalize(id)
	if i := strings.LastIndex(norm, "/"); i >= 0 {
		return norm[i+1:]
	}
	return norm
}

// Tokens splits the normalized identifier on runs of non-alphanumeric
// characters, discarding empty pieces. Used for set-similarity scoring.
func Tokens(id string) []string {
	return strings.FieldsFunc(Normalize(id), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}
