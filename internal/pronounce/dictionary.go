package pronounce

import (
	"sort"
	"strings"

	"phonocover/internal/phoneme"
)

// Dictionary maps lowercase words to their ordered pronunciation variants.
// Variants hold canonical phonemes only: stress digits are stripped and
// symbols outside the inventory are dropped when an entry is added.
type Dictionary struct {
	entries map[string][][]phoneme.Phoneme
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{entries: make(map[string][][]phoneme.Phoneme)}
}

// Add appends a pronunciation variant for word. Codes are canonicalized; a
// variant left empty after canonicalization is ignored. Add reports whether
// a variant was stored.
func (d *Dictionary) Add(word string, codes []string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false
	}
	seq := make([]phoneme.Phoneme, 0, len(codes))
	for _, code := range codes {
		if p, ok := phoneme.Canonicalize(code); ok {
			seq = append(seq, p)
		}
	}
	if len(seq) == 0 {
		return false
	}
	d.entries[word] = append(d.entries[word], seq)
	return true
}

// Lookup returns all pronunciation variants for a word in load order.
func (d *Dictionary) Lookup(word string) [][]phoneme.Phoneme {
	if d == nil {
		return nil
	}
	return d.entries[word]
}

// First returns the first pronunciation variant for word.
func (d *Dictionary) First(word string) ([]phoneme.Phoneme, bool) {
	variants := d.Lookup(word)
	if len(variants) == 0 {
		return nil, false
	}
	return variants[0], true
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Words returns all words in the dictionary, sorted.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}
	words := make([]string, 0, len(d.entries))
	for w := range d.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// raw converts the dictionary to plain strings for serialization.
func (d *Dictionary) raw() map[string][][]string {
	out := make(map[string][][]string, len(d.entries))
	for word, variants := range d.entries {
		converted := make([][]string, len(variants))
		for i, seq := range variants {
			codes := make([]string, len(seq))
			for j, p := range seq {
				codes[j] = string(p)
			}
			converted[i] = codes
		}
		out[word] = converted
	}
	return out
}

func fromRaw(raw map[string][][]string) *Dictionary {
	d := NewDictionary()
	words := make([]string, 0, len(raw))
	for word := range raw {
		words = append(words, word)
	}
	sort.Strings(words)
	for _, word := range words {
		for _, codes := range raw[word] {
			d.Add(word, codes)
		}
	}
	return d
}
