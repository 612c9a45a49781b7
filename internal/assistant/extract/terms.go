// Package extract derives search entities (terms, price range, category and
// brand hints) from a raw chat message. Nothing here can fail: absence of a
// match yields an empty value.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

var stopWords = map[string]struct{}{
	"i": {}, "want": {}, "need": {}, "find": {}, "search": {}, "show": {},
	"me": {}, "for": {}, "a": {}, "an": {}, "the": {}, "is": {}, "are": {},
	"can": {}, "you": {}, "please": {}, "looking": {}, "good": {}, "best": {},
	"get": {}, "buy": {}, "under": {}, "over": {}, "around": {}, "about": {},
	"with": {}, "without": {}, "have": {}, "has": {},
}

// minTermRunes is the shortest token kept as a search term.
const minTermRunes = 3

// Terms lowercases message, splits it into alphanumeric runs and drops stop
// words and tokens shorter than three runes. Order and duplicates are kept.
func Terms(message string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(message), -1)
	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < minTermRunes {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		terms = append(terms, tok)
	}
	return terms
}

// isStopWord reports whether word (lowercase) is filtered by Terms.
func isStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
