// Package corpus turns external files into candidate sentences and target
// vocabularies.
//
// Loaders accept plain text, JSON, TSV, and HTML articles. Every sentence
// passes through one cleaning stage (markup removal, whitespace collapse,
// case-insensitive de-duplication) before it receives its id, so ids are
// positions in the cleaned list. Malformed records are skipped and counted in
// LoadStats rather than failing the load.
package corpus
