package corpus

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	sentencePattern   = regexp.MustCompile(`[^.!?]+(?:[.!?]+|$)`)
)

// CleanStats counts what Clean removed.
type CleanStats struct {
	Empty      int `json:"empty"`
	Duplicates int `json:"duplicates"`
}

// Clean strips markup, collapses whitespace, and drops empty entries and
// case-insensitive duplicates. The first occurrence of a duplicate is kept so
// output order follows input order.
func Clean(texts []string) ([]string, CleanStats) {
	var stats CleanStats
	seen := make(map[string]struct{}, len(texts))
	out := make([]string, 0, len(texts))
	for _, text := range texts {
		cleaned := CleanText(text)
		if cleaned == "" {
			stats.Empty++
			continue
		}
		key := strings.ToLower(cleaned)
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cleaned)
	}
	return out, stats
}

// CleanText removes markup from a single entry and collapses whitespace.
func CleanText(text string) string {
	if strings.ContainsRune(text, '<') || strings.ContainsRune(text, '&') {
		text = StripHTML(text)
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// StripHTML returns the text content of an HTML fragment with entities
// decoded. Script and style bodies are dropped.
func StripHTML(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF or a tokenizer error both end the fragment.
			return b.String()
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style":
				skip++
			case "br", "p", "div", "li":
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			case "p", "div", "li":
				b.WriteByte(' ')
			}
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(tokenizer.Text())
			}
		}
	}
}

// SplitSentences splits text after runs of terminal punctuation.
func SplitSentences(text string) []string {
	var out []string
	for _, part := range sentencePattern.FindAllString(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
