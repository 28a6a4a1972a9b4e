package selector

import (
	"errors"
	"log/slog"
	"time"

	"phonocover/internal/corpus"
)

// ErrInvalidOptions is returned before selection starts when Options are
// unusable.
var ErrInvalidOptions = errors.New("invalid selector options")

// ErrDrift reports that coverage counts disagree with the selected sentences.
var ErrDrift = errors.New("coverage count drift")

const (
	// DefaultMaxSentences caps the selection size when callers use DefaultOptions.
	DefaultMaxSentences = 50

	deficientBase   = 10.0
	rarityWeight    = 5.0
	satisfiedWeight = 1.0
)

// Status describes why selection stopped.
type Status string

const (
	StatusCompleted      Status = "completed"
	StatusExhausted      Status = "exhausted"
	StatusNothingToDo    Status = "nothing_to_do"
	StatusBudgetExceeded Status = "budget_exceeded"
	StatusCancelled      Status = "cancelled"
)

// Options configures one selection run.
type Options struct {
	// MaxSentences caps len(Selected). Zero selects nothing.
	MaxSentences int
	// MinCoverage is the threshold for words whose vocabulary item does not
	// set one. Must be at least 1.
	MinCoverage int
	// Workers > 1 scores candidates on that many goroutines.
	Workers int
	// MaxIterations stops the run after that many selections. Zero is unlimited.
	MaxIterations int
	// TimeBudget stops the run once the wall-clock budget is spent. Zero is unlimited.
	TimeBudget time.Duration
	// OnIteration observes every selection step.
	OnIteration func(Progress)
	Logger      *slog.Logger
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxSentences: DefaultMaxSentences,
		MinCoverage:  corpus.DefaultMinCoverage,
	}
}

// Progress is reported after each selection step.
type Progress struct {
	Iteration  int
	SentenceID int
	Score      float64
	Selected   int
	Max        int
	Deficient  int
}

// State is the selection state: the ordered selected ids, the coverage count
// of every target word, and the number of completed iterations.
type State struct {
	Selected      []int          `json:"selected"`
	CoverageCount map[string]int `json:"coverage_count"`
	Iteration     int            `json:"iteration"`
}

// Shortfall is a target word whose coverage stayed below its threshold.
type Shortfall struct {
	Word      string `json:"word"`
	Count     int    `json:"count"`
	Threshold int    `json:"threshold"`
}

// Step records one greedy choice.
type Step struct {
	Iteration  int     `json:"iteration"`
	SentenceID int     `json:"sentence_id"`
	Score      float64 `json:"score"`
	// Raised counts deficient words the sentence moved toward their threshold.
	Raised int `json:"raised"`
}

// Result is the terminal outcome of Select.
type Result struct {
	State
	UnderCovered []Shortfall   `json:"under_covered"`
	Status       Status        `json:"status"`
	Trace        []Step        `json:"trace"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Satisfied reports whether every target word reached its threshold.
func (r *Result) Satisfied() bool {
	return len(r.UnderCovered) == 0
}
