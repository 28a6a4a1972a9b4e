// Package textutil normalizes and tokenizes candidate sentences and provides
// term-frequency fingerprints for near-duplicate detection.
//
// Every component that needs words out of a sentence (the coverage index, the
// frequency analyzer, the corpus cleaner) goes through Tokenize so that a word
// counted in one report is the same word matched in another. Normalization
// applies NFKC, folds typographic apostrophes to ASCII, lowercases, and keeps
// word-internal apostrophes so contractions reach the pronunciation resolver
// intact.
package textutil
