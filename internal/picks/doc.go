// Package picks persists the user's ordered list of picked words or
// sentences.
//
// The list is append-only from the user's point of view, deduplicated
// case-insensitively, and stored as a JSON array. Every mutation re-reads
// the file, applies the change, and rewrites the whole file atomically while
// holding an OS file lock, so concurrent CLI invocations never interleave.
package picks
