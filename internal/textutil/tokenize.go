package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// wordPattern matches letter/digit runs joined by single apostrophes
// ("don't", "rock'n'roll"). Leading fragments such as "'re" are handled
// separately by Tokenize.
var wordPattern = regexp.MustCompile(`'?[\p{L}\p{N}]+(?:'[\p{L}\p{N}]+)*`)

var apostropheReplacer = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"ʼ", "'",
	"`", "'",
)

// Normalize applies NFKC, folds apostrophe variants and lowercases s.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = apostropheReplacer.Replace(s)
	return strings.ToLower(s)
}

// Tokenize returns the normalized word tokens of text in order of
// appearance. Punctuation other than word-internal apostrophes is dropped.
// A token starting with an apostrophe is kept only when it looks like a
// contraction fragment ("'re", "'ll"); otherwise the apostrophe is trimmed.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	raw := wordPattern.FindAllString(normalized, -1)
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		if strings.HasPrefix(token, "'") && !IsContractionFragment(token) {
			token = strings.TrimLeft(token, "'")
		}
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// WordSet returns the distinct tokens of text.
func WordSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// NormalizeWord canonicalizes a single vocabulary entry: normalized, trimmed
// of surrounding punctuation and whitespace.
func NormalizeWord(word string) string {
	return StripPunctuation(Normalize(strings.TrimSpace(word)))
}

// StripPunctuation trims leading and trailing characters that are neither
// letters, digits nor apostrophes, then trims apostrophes that are not part
// of a contraction fragment.
func StripPunctuation(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool {
		return !isWordRune(r) && r != '\''
	})
	if strings.HasPrefix(s, "'") && !IsContractionFragment(s) {
		s = strings.TrimLeft(s, "'")
	}
	return strings.TrimRight(s, "'")
}

// RemovePunctuation drops every character that is not a letter or digit.
func RemovePunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if isWordRune(r) {
			return r
		}
		return -1
	}, s)
}

var fragments = map[string]struct{}{
	"n't": {}, "'re": {}, "'ll": {}, "'ve": {}, "'d": {}, "'m": {}, "'s": {}, "'em": {},
}

// IsContractionFragment reports whether token is a bare clitic such as "n't"
// or "'ll".
func IsContractionFragment(token string) bool {
	_, ok := fragments[token]
	return ok
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
