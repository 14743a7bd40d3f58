// Package search decides how a listing search term is executed: against the
// full-text index when the store offers one and the term is long enough to
// be selective, otherwise as a substring scan.
package search

import (
	"strings"
	"unicode/utf8"

	"enquiries/internal/enquiry/store"
)

// MinIndexedTermLength is the shortest term worth sending to the full-text
// index; anything shorter scans as a substring.
const MinIndexedTermLength = 3

// DefaultMatchLimit caps an un-narrowed search to the most recent matches so
// a bare one-word search cannot drag the whole table through the listing.
const DefaultMatchLimit = 500

// Plan shapes a search term into a spec plus the match cap to apply.
// The cap only applies when the term is the sole restriction; any other
// active criterion already narrows the result set.
func Plan(term string, caps store.Capabilities, narrowed bool) (store.SearchSpec, int) {
	term = strings.TrimSpace(term)
	if term == "" {
		return store.SearchSpec{}, 0
	}

	spec := store.SearchSpec{Term: term, Mode: store.SearchSubstring}
	if caps.IndexedSearch && utf8.RuneCountInString(term) >= MinIndexedTermLength {
		words := strings.Fields(term)
		if len(words) > 1 {
			// Multi-word terms match as an exact phrase. No wildcard: the
			// user has been specific, so be specific back.
			spec = store.SearchSpec{Term: strings.Join(words, " "), Mode: store.SearchPhrase}
		} else {
			// A single token gets a trailing wildcard so partial words
			// still find their completions.
			spec = store.SearchSpec{Term: words[0], Mode: store.SearchPrefix}
		}
	}

	limit := 0
	if !narrowed {
		limit = DefaultMatchLimit
	}
	return spec, limit
}
