package index

import "strings"

// Tokenize lowercases text and splits it on whitespace. No stemming and
// no stop-word removal: exact-term matching is what the lexical side of
// the hybrid score is for.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
