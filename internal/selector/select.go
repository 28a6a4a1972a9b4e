package selector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"phonocover/internal/corpus"
	"phonocover/internal/coverage"
	"phonocover/internal/logging"
)

// Select runs the greedy coverage loop. It rejects invalid options with
// ErrInvalidOptions; every other outcome, including an empty vocabulary or
// corpus, is a Result whose Status says why the run stopped.
func Select(ctx context.Context, sentences []corpus.Sentence, index *coverage.Index, vocab *corpus.Vocabulary, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "selector"))
	start := time.Now()

	words := vocab.Words()
	result := &Result{
		State: State{
			Selected:      []int{},
			CoverageCount: make(map[string]int, len(words)),
		},
		UnderCovered: []Shortfall{},
		Trace:        []Step{},
	}
	for _, w := range words {
		result.CoverageCount[w] = 0
	}

	if len(words) == 0 || len(sentences) == 0 || index == nil {
		result.Status = StatusNothingToDo
		result.UnderCovered = shortfalls(words, result.CoverageCount, vocab, opts.MinCoverage)
		result.Elapsed = time.Since(start)
		logger.Info("nothing to select",
			logging.String(logging.FieldEventType, "selection_nothing_to_do"),
			logging.Int("target_words", len(words)),
			logging.Int("sentences", len(sentences)))
		return result, nil
	}

	s := newScorer(index, vocab, opts.MinCoverage, opts.Workers)
	var deadline time.Time
	if opts.TimeBudget > 0 {
		deadline = start.Add(opts.TimeBudget)
	}

	for {
		if len(result.Selected) >= opts.MaxSentences {
			result.Status = StatusCompleted
			break
		}
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				result.Status = StatusBudgetExceeded
			} else {
				result.Status = StatusCancelled
			}
			break
		}
		if opts.MaxIterations > 0 && result.Iteration >= opts.MaxIterations {
			result.Status = StatusBudgetExceeded
			break
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			result.Status = StatusBudgetExceeded
			break
		}

		best, ok := s.best(result.CoverageCount)
		if !ok || best.score <= 0 {
			result.Status = StatusExhausted
			break
		}

		raised := s.commit(best.id, result.CoverageCount)
		result.Selected = append(result.Selected, best.id)
		result.Iteration++
		result.Trace = append(result.Trace, Step{
			Iteration:  result.Iteration,
			SentenceID: best.id,
			Score:      best.score,
			Raised:     raised,
		})
		logger.Debug("sentence selected",
			logging.Int(logging.FieldIteration, result.Iteration),
			logging.Int("sentence_id", best.id),
			logging.Float64("score", best.score),
			logging.Int("raised", raised))
		if opts.OnIteration != nil {
			opts.OnIteration(Progress{
				Iteration:  result.Iteration,
				SentenceID: best.id,
				Score:      best.score,
				Selected:   len(result.Selected),
				Max:        opts.MaxSentences,
				Deficient:  s.deficient(result.CoverageCount),
			})
		}
	}

	result.UnderCovered = shortfalls(words, result.CoverageCount, vocab, opts.MinCoverage)
	result.Elapsed = time.Since(start)

	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "selection_stopped"),
		logging.String("status", string(result.Status)),
		logging.Int("selected", len(result.Selected)),
		logging.Int("under_covered", len(result.UnderCovered)),
		logging.Duration("elapsed", result.Elapsed),
	}
	switch result.Status {
	case StatusBudgetExceeded, StatusCancelled:
		logging.WarnWithContext(logger, "selection stopped early", "selection_stopped_early", append(attrs,
			logging.String(logging.FieldErrorHint, "raise the iteration or time budget for a complete run"),
			logging.String(logging.FieldImpact, "partial selection returned"))...)
	default:
		logger.Info("selection finished", logging.Args(attrs...)...)
	}
	return result, nil
}

func (o Options) validate() error {
	if o.MaxSentences < 0 {
		return fmt.Errorf("%w: max sentences must not be negative, got %d", ErrInvalidOptions, o.MaxSentences)
	}
	if o.MinCoverage < 1 {
		return fmt.Errorf("%w: min coverage must be at least 1, got %d", ErrInvalidOptions, o.MinCoverage)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidOptions, o.Workers)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations must not be negative, got %d", ErrInvalidOptions, o.MaxIterations)
	}
	if o.TimeBudget < 0 {
		return fmt.Errorf("%w: time budget must not be negative, got %s", ErrInvalidOptions, o.TimeBudget)
	}
	return nil
}

func shortfalls(words []string, counts map[string]int, vocab *corpus.Vocabulary, def int) []Shortfall {
	out := []Shortfall{}
	for _, w := range words {
		threshold := vocab.Threshold(w, def)
		if counts[w] < threshold {
			out = append(out, Shortfall{Word: w, Count: counts[w], Threshold: threshold})
		}
	}
	return out
}
