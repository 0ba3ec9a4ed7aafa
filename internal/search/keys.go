// Package search builds the prefix tokens stored in the SearchKeys column
// of articles and kalaam.
//
// Every word of every searchable field contributes all of its prefixes, so
// a LIKE '%nab%' lookup against the joined keys finds "Ya Nabi" while the
// user is still typing. Queries run the same tokenizer over the search term.
package search

import (
	"strings"
)

// Keys returns the lowercase prefixes of every word in text, in first-seen
// order without duplicates. Prefixes are cut on rune boundaries so Urdu and
// Arabic words produce valid UTF-8.
func Keys(text string) []string {
	seen := make(map[string]struct{})
	var keys []string
	appendWordKeys(&keys, seen, text)
	return keys
}

// RecordKeys tokenizes every field and joins the union of the keys with
// single spaces, ready to be stored in SearchKeys.
func RecordKeys(fields ...string) string {
	seen := make(map[string]struct{})
	var keys []string
	for _, field := range fields {
		appendWordKeys(&keys, seen, field)
	}
	return strings.Join(keys, " ")
}

// Normalize lowercases text and collapses runs of whitespace into a single
// space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func appendWordKeys(keys *[]string, seen map[string]struct{}, text string) {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		runes := []rune(word)
		for i := 1; i <= len(runes); i++ {
			prefix := string(runes[:i])
			if _, ok := seen[prefix]; ok {
				continue
			}
			seen[prefix] = struct{}{}
			*keys = append(*keys, prefix)
		}
	}
}
