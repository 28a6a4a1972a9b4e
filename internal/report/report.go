// Package report renders a selection run and its frequency analysis as JSON
// or as a plain-text summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"phonocover/internal/fileutil"
	"phonocover/internal/frequency"
	"phonocover/internal/runstore"
	"phonocover/internal/selector"
)

// DefaultTopWords bounds the word lists in text output.
const DefaultTopWords = 15

// Report bundles a run with its frequency comparison. Frequency is nil when
// no pronunciation dictionary was available.
type Report struct {
	GeneratedAt  time.Time             `json:"generated_at"`
	Run          *runstore.Run         `json:"run"`
	UnderCovered []selector.Shortfall  `json:"under_covered"`
	Frequency    *frequency.Comparison `json:"frequency,omitempty"`
}

// New assembles a report.
func New(run *runstore.Run, cmp *frequency.Comparison) *Report {
	return &Report{
		GeneratedAt:  time.Now().UTC(),
		Run:          run,
		UnderCovered: run.UnderCovered(),
		Frequency:    cmp,
	}
}

// WriteJSON encodes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteFiles writes <base>.json and <base>.txt atomically and returns both
// paths.
func (r *Report) WriteFiles(base string) (string, string, error) {
	jsonPath := base + ".json"
	textPath := base + ".txt"
	if err := fileutil.WriteAtomic(jsonPath, 0o644, r.WriteJSON); err != nil {
		return "", "", fmt.Errorf("write json report: %w", err)
	}
	if err := fileutil.WriteAtomic(textPath, 0o644, r.WriteText); err != nil {
		return "", "", fmt.Errorf("write text report: %w", err)
	}
	return jsonPath, textPath, nil
}
