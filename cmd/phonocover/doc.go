// Package main hosts the phonocover CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration lazily, reads corpus and
// vocabulary files, and hands them to the internal packages: select runs the
// greedy coverage selector, analyze and resolve expose the frequency analyzer
// and pronunciation resolver, similar flags near-duplicate sentences, picks
// manages the persisted pick list, and runs browses saved selections.
//
// Keep this package thin: behaviour belongs in internal packages and is
// surfaced here as flags and output formatting.
package main
