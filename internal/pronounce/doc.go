// Package pronounce maps word tokens to canonical phoneme sequences.
//
// A Dictionary holds every pronunciation variant loaded from CMUdict text,
// JSON, or a gob cache of either. A Resolver layers English contraction
// handling and a concurrent-safe memo on top of a Dictionary; a miss is
// reported as (nil, false) and never as an error.
package pronounce
