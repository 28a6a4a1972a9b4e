package pronounce

import (
	"strings"
	"sync"

	"phonocover/internal/phoneme"
	"phonocover/internal/textutil"
)

// ContractionRule rewrites a clitic suffix to the word it stands for.
type ContractionRule struct {
	Suffix      string
	Replacement string
}

// DefaultContractions is applied first-match in this order.
var DefaultContractions = []ContractionRule{
	{Suffix: "n't", Replacement: "not"},
	{Suffix: "'re", Replacement: "are"},
	{Suffix: "'ll", Replacement: "will"},
	{Suffix: "'ve", Replacement: "have"},
	{Suffix: "'d", Replacement: "would"},
	{Suffix: "'m", Replacement: "am"},
	{Suffix: "'s", Replacement: "is"},
	{Suffix: "'em", Replacement: "them"},
}

type resolution struct {
	phonemes []phoneme.Phoneme
	ok       bool
}

// Resolver maps tokens to canonical phoneme sequences. It is safe for
// concurrent use; results, misses included, are memoized per token and the
// memo only grows.
type Resolver struct {
	dict  *Dictionary
	rules []ContractionRule

	mu    sync.RWMutex
	cache map[string]resolution
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithContractions replaces the contraction table.
func WithContractions(rules []ContractionRule) Option {
	return func(r *Resolver) {
		r.rules = append([]ContractionRule(nil), rules...)
	}
}

// NewResolver builds a resolver over dict.
func NewResolver(dict *Dictionary, opts ...Option) *Resolver {
	if dict == nil {
		dict = NewDictionary()
	}
	r := &Resolver{
		dict:  dict,
		rules: DefaultContractions,
		cache: make(map[string]resolution),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dictionary returns the underlying dictionary.
func (r *Resolver) Dictionary() *Dictionary {
	return r.dict
}

// Resolve returns the phoneme sequence for token, or (nil, false) when no
// lookup candidate is in the dictionary. The token is lowercased and
// stripped of surrounding punctuation, then candidates are tried in order:
// the contraction-substituted form (every part must resolve), the stripped
// token, the lowercase original, and the token with all punctuation removed. The first pronunciation
// variant wins. The returned slice must not be modified.
func (r *Resolver) Resolve(token string) ([]phoneme.Phoneme, bool) {
	r.mu.RLock()
	cached, hit := r.cache[token]
	r.mu.RUnlock()
	if hit {
		return cached.phonemes, cached.ok
	}

	res := r.resolve(token)

	r.mu.Lock()
	if existing, ok := r.cache[token]; ok {
		res = existing
	} else {
		r.cache[token] = res
	}
	r.mu.Unlock()
	return res.phonemes, res.ok
}

func (r *Resolver) resolve(token string) resolution {
	lower := textutil.Normalize(strings.TrimSpace(token))
	stripped := textutil.StripPunctuation(lower)
	if stripped == "" {
		return resolution{}
	}

	if parts, ok := r.Expand(stripped); ok {
		if seq, ok := r.lookupAll(parts); ok {
			return resolution{phonemes: seq, ok: true}
		}
	}
	for _, candidate := range []string{stripped, lower, textutil.RemovePunctuation(stripped)} {
		if candidate == "" {
			continue
		}
		if seq, ok := r.dict.First(candidate); ok {
			return resolution{phonemes: seq, ok: true}
		}
	}
	return resolution{}
}

// Expand applies the first matching contraction rule to a lowercase token.
// A bare fragment ("n't") becomes its replacement; a contracted word
// ("don't") becomes its base and the replacement. ok is false when no rule
// matches.
func (r *Resolver) Expand(token string) ([]string, bool) {
	for _, rule := range r.rules {
		if token == rule.Suffix {
			return []string{rule.Replacement}, true
		}
		if strings.HasSuffix(token, rule.Suffix) && len(token) > len(rule.Suffix) {
			base := strings.TrimRight(token[:len(token)-len(rule.Suffix)], "'")
			if base == "" {
				return []string{rule.Replacement}, true
			}
			return []string{base, rule.Replacement}, true
		}
	}
	return nil, false
}

func (r *Resolver) lookupAll(parts []string) ([]phoneme.Phoneme, bool) {
	var seq []phoneme.Phoneme
	for _, part := range parts {
		p, ok := r.dict.First(part)
		if !ok {
			return nil, false
		}
		seq = append(seq, p...)
	}
	return seq, true
}

// CacheSize returns the number of memoized tokens.
func (r *Resolver) CacheSize() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}
