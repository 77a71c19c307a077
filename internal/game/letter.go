package game

import (
	"unicode"
	"unicode/utf8"
)

// Letter is a single validated, lowercased letter.
type Letter rune

// ParseLetter validates s as exactly one letter and lowercases it.
func ParseLetter(s string) (Letter, bool) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return 0, false
	}
	return Letter(unicode.ToLower(r)), true
}

// String returns the letter as a string.
func (l Letter) String() string {
	return string(l)
}
