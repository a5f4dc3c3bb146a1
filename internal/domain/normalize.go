package domain

import (
	"strings"
	"unicode"
)

// NormalizeText lowercases text and collapses every run of whitespace,
// including tabs and newlines, into a single space. Leading and trailing
// whitespace is dropped. Diacritics, hyphens and apostrophes are kept.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// ContainsPhrase reports whether phrase occurs in text as whole words,
// ignoring case and whitespace differences. Letters and digits form words,
// so "cep" does not match "ceps".
func ContainsPhrase(text, phrase string) bool {
	text, phrase = NormalizeText(text), NormalizeText(phrase)
	if phrase == "" {
		return false
	}

	for start := 0; start <= len(text)-len(phrase); {
		i := strings.Index(text[start:], phrase)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(phrase)
		if !isWordRune(lastRune(text[:i])) && !isWordRune(firstRune(text[end:])) {
			return true
		}
		start = i + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

func lastRune(s string) rune {
	if s == "" {
		return ' '
	}
	r := []rune(s)
	return r[len(r)-1]
}
