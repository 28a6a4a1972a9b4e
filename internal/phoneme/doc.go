// Package phoneme defines the canonical 39-symbol ARPAbet inventory of spoken
// English used throughout phonocover.
//
// Symbols are stored without stress markers. Use Canonicalize to turn a raw
// dictionary code such as "AH0" into its canonical form, and Inventory for a
// stable ordering when reporting coverage.
package phoneme
