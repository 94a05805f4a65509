package ats

import (
	"strings"
	"unicode"
)

// Title upper-cases the first letter of every run of letters and lower-cases
// the rest, so "ci/cd" becomes "Ci/Cd" and "problem-solving" becomes "Problem-Solving".
func Title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if inWord {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			inWord = true
			continue
		}
		inWord = false
		b.WriteRune(r)
	}
	return b.String()
}
