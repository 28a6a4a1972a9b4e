package phoneme

import "strings"

// Phoneme is a canonical ARPAbet symbol with stress markers removed.
type Phoneme string

// Class separates vowels from consonants.
type Class int

const (
	ClassUnknown Class = iota
	ClassVowel
	ClassConsonant
)

func (c Class) String() string {
	switch c {
	case ClassVowel:
		return "vowel"
	case ClassConsonant:
		return "consonant"
	default:
		return "unknown"
	}
}

var vowels = []Phoneme{
	"AA", "AE", "AH", "AO", "AW", "AY", "EH", "ER", "EY", "IH", "IY", "OW", "OY", "UH", "UW",
}

var consonants = []Phoneme{
	"B", "CH", "D", "DH", "F", "G", "HH", "JH", "K", "L", "M", "N", "NG", "P", "R", "S", "SH", "T", "TH", "V", "W", "Y", "Z", "ZH",
}

// Size is the number of canonical symbols.
const Size = 39

var (
	inventory []Phoneme
	classes   map[Phoneme]Class
	positions map[Phoneme]int
)

func init() {
	inventory = make([]Phoneme, 0, Size)
	inventory = append(inventory, vowels...)
	inventory = append(inventory, consonants...)
	classes = make(map[Phoneme]Class, Size)
	positions = make(map[Phoneme]int, Size)
	for i, p := range inventory {
		positions[p] = i
		if i < len(vowels) {
			classes[p] = ClassVowel
		} else {
			classes[p] = ClassConsonant
		}
	}
}

// Inventory returns the canonical symbols: 15 vowels followed by 24
// consonants, each group in alphabetical order. The slice is a copy.
func Inventory() []Phoneme {
	out := make([]Phoneme, len(inventory))
	copy(out, inventory)
	return out
}

// Vowels returns the 15 vowel symbols.
func Vowels() []Phoneme {
	out := make([]Phoneme, len(vowels))
	copy(out, vowels)
	return out
}

// Consonants returns the 24 consonant symbols.
func Consonants() []Phoneme {
	out := make([]Phoneme, len(consonants))
	copy(out, consonants)
	return out
}

// IsCanonical reports whether p is one of the 39 symbols.
func IsCanonical(p Phoneme) bool {
	_, ok := classes[p]
	return ok
}

// ClassOf returns the class of p, or ClassUnknown.
func ClassOf(p Phoneme) Class {
	return classes[p]
}

// Index returns the inventory position of p, or -1.
func Index(p Phoneme) int {
	if i, ok := positions[p]; ok {
		return i
	}
	return -1
}

// StripStress removes numeric stress markers ("AH0" -> "AH").
func StripStress(code string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, code)
}

// Canonicalize strips stress, uppercases the code and reports whether the
// result is part of the inventory.
func Canonicalize(code string) (Phoneme, bool) {
	p := Phoneme(strings.ToUpper(strings.TrimSpace(StripStress(code))))
	if !IsCanonical(p) {
		return "", false
	}
	return p, true
}

// Join renders a sequence as space separated symbols.
func Join(seq []Phoneme) string {
	parts := make([]string, len(seq))
	for i, p := range seq {
		parts[i] = string(p)
	}
	return strings.Join(parts, " ")
}
