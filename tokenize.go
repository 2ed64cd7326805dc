package sigstub

import "strings"

// starters are the keywords that open a new declaration.
var starters = map[string]bool{
	"type":      true,
	"eqtype":    true,
	"datatype":  true,
	"exception": true,
	"val":       true,
	"structure": true,
	"signature": true,
	"functor":   true,
	"include":   true,
}

// precedesType are the words that glue a following "type" to the
// declaration before it, as in "where type" or "sharing type".
var precedesType = map[string]bool{
	"where":   true,
	"and":     true,
	"sharing": true,
}

// IsStarter reports whether word opens a new declaration.
func IsStarter(word string) bool {
	return starters[word]
}

// LeadingWord returns the first space-separated word of s.
func LeadingWord(s string) string {
	word, _, _ := strings.Cut(strings.TrimSpace(s), " ")
	return word
}

// Tokenize splits a normalized run of concatenated declarations into one
// declaration per line.
//
// The split is lexical: a line starts at every starter keyword (except a
// "type" glued to "where", "and" or "sharing") and at every "end". This
// holds only as long as no identifier collides with a keyword.
//
// The last buffer is always flushed, so the result is never empty.
func Tokenize(text string) []string {
	var lines []string
	var cur []string
	var prev string
	for _, tok := range strings.Fields(text) {
		if startsDeclaration(tok, prev) {
			if len(cur) != 0 {
				lines = append(lines, strings.Join(cur, " "))
			}
			cur = []string{tok}
		} else {
			cur = append(cur, tok)
		}
		prev = tok
	}
	return append(lines, strings.Join(cur, " "))
}

func startsDeclaration(tok, prev string) bool {
	if tok == "end" {
		return true
	}
	if !starters[tok] {
		return false
	}
	return tok != "type" || !precedesType[prev]
}

// CanonicalName returns the identifier a declaration or documented name is
// keyed by: its first word that is neither a starter keyword nor a type
// variable. It returns an ESTRUCTURE error when there is no such word.
func CanonicalName(s string) (string, error) {
	for _, word := range strings.Fields(s) {
		if starters[word] || strings.HasPrefix(word, "'") {
			continue
		}
		return word, nil
	}
	return "", Errorf(ESTRUCTURE, "couldn't get name for: %q", s)
}
