// Package profanity masks obscene words, keeping the first letter.
package profanity

import (
	"regexp"
	"strings"
	"unicode"
)

var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:хер|ху[йея][\p{L}\d_-]*|пизд[\p{L}\d_-]*|еб[аоыу][\p{L}\d_-]*|ебн[\p{L}\d_-]*|бл[я@]д[\p{L}\d_-]*|сук[аи][\p{L}\d_-]*|муд[ао][\p{L}\d_-]*)$`),
	regexp.MustCompile(`(?i)^(?:f[u*@][c*]?[k*][\w*-]*|sh[i1*!]t[\w-]*|b[i1*]tch[\w-]*|a[s$*]{2}hole[\w-]*|bastard[\w-]*)$`),
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("*@$!_-", r)
}

// Mask replaces every obscene word in text. Mask(Mask(s)) == Mask(s).
func Mask(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))

	runes := []rune(text)
	for i := 0; i < len(runes); {
		if !isWordRune(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && isWordRune(runes[j]) {
			j++
		}
		b.WriteString(maskWord(runes[i:j]))
		i = j
	}
	return b.String()
}

func maskWord(word []rune) string {
	s := string(word)
	for _, p := range patterns {
		if !p.MatchString(s) {
			continue
		}
		if len(word) <= 2 {
			return strings.Repeat("*", len(word))
		}
		return string(word[0]) + strings.Repeat("*", len(word)-1)
	}
	return s
}
