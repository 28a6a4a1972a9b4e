package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"phonocover/internal/selector"
)

// Save inserts run, assigning an id and creation time when unset.
func (s *Store) Save(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	ctx = ensureContext(ctx)
	if strings.TrimSpace(run.ID) == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if len(run.Texts) != 0 && len(run.Texts) != len(run.Selected) {
		return fmt.Errorf("run %s: %d texts for %d selected sentences", run.ID, len(run.Texts), len(run.Selected))
	}

	var traceJSON sql.NullString
	if len(run.Trace) > 0 {
		data, err := json.Marshal(run.Trace)
		if err != nil {
			return fmt.Errorf("marshal trace: %w", err)
		}
		traceJSON = sql.NullString{String: string(data), Valid: true}
	}

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin save tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `INSERT INTO runs (
			id, created_at, status, corpus_path, vocabulary_path,
			max_sentences, min_coverage, iterations, elapsed_ns, trace_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.CreatedAt.UTC().Format(time.RFC3339Nano),
			string(run.Status),
			nullableString(run.CorpusPath),
			nullableString(run.VocabularyPath),
			run.MaxSentences,
			run.MinCoverage,
			run.Iteration,
			int64(run.Elapsed),
			traceJSON,
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for i, id := range run.Selected {
			var text sql.NullString
			if i < len(run.Texts) {
				text = sql.NullString{String: run.Texts[i], Valid: true}
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO run_selected (run_id, position, sentence_id, sentence_text) VALUES (?, ?, ?, ?)`,
				run.ID, i, id, text,
			); err != nil {
				return fmt.Errorf("insert selected sentence %d: %w", id, err)
			}
		}
		for i, c := range run.Coverage {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO run_coverage (run_id, position, word, count, threshold) VALUES (?, ?, ?, ?, ?)`,
				run.ID, i, c.Word, c.Count, c.Threshold,
			); err != nil {
				return fmt.Errorf("insert coverage for %q: %w", c.Word, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit run: %w", err)
		}
		return nil
	})
}

// Get loads the run whose id equals or starts with idOrPrefix.
func (s *Store) Get(ctx context.Context, idOrPrefix string) (*Run, error) {
	ctx = ensureContext(ctx)
	id, err := s.resolveID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	var (
		run       Run
		created   string
		status    string
		corpus    sql.NullString
		vocab     sql.NullString
		elapsed   int64
		traceJSON sql.NullString
	)
	err = s.db.QueryRowContext(ctx, `SELECT id, created_at, status, corpus_path, vocabulary_path,
		max_sentences, min_coverage, iterations, elapsed_ns, trace_json FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &created, &status, &corpus, &vocab,
		&run.MaxSentences, &run.MinCoverage, &run.Iteration, &elapsed, &traceJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	run.CreatedAt = parseTime(created)
	run.Status = selector.Status(status)
	run.CorpusPath = corpus.String
	run.VocabularyPath = vocab.String
	run.Elapsed = time.Duration(elapsed)
	if traceJSON.Valid && traceJSON.String != "" {
		if err := json.Unmarshal([]byte(traceJSON.String), &run.Trace); err != nil {
			return nil, fmt.Errorf("decode trace: %w", err)
		}
	}

	if err := s.loadSelected(ctx, &run); err != nil {
		return nil, err
	}
	if err := s.loadCoverage(ctx, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *Store) loadSelected(ctx context.Context, run *Run) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sentence_id, sentence_text FROM run_selected WHERE run_id = ? ORDER BY position`, run.ID)
	if err != nil {
		return fmt.Errorf("query selected: %w", err)
	}
	defer rows.Close()

	run.Selected = []int{}
	run.Texts = []string{}
	for rows.Next() {
		var (
			id   int
			text sql.NullString
		)
		if err := rows.Scan(&id, &text); err != nil {
			return fmt.Errorf("scan selected: %w", err)
		}
		run.Selected = append(run.Selected, id)
		run.Texts = append(run.Texts, text.String)
	}
	return rows.Err()
}

func (s *Store) loadCoverage(ctx context.Context, run *Run) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, count, threshold FROM run_coverage WHERE run_id = ? ORDER BY position`, run.ID)
	if err != nil {
		return fmt.Errorf("query coverage: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c WordCoverage
		if err := rows.Scan(&c.Word, &c.Count, &c.Threshold); err != nil {
			return fmt.Errorf("scan coverage: %w", err)
		}
		run.Coverage = append(run.Coverage, c)
	}
	return rows.Err()
}

func (s *Store) resolveID(ctx context.Context, idOrPrefix string) (string, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE id = ? OR substr(id, 1, ?) = ? ORDER BY id = ? DESC LIMIT 2`,
		idOrPrefix, len(idOrPrefix), idOrPrefix, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve run id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve run id: %w", err)
	}
	switch {
	case len(ids) == 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case ids[0] == idOrPrefix || len(ids) == 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguous, idOrPrefix)
	}
}

// List returns run summaries, newest first. limit <= 0 returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	ctx = ensureContext(ctx)
	query := `SELECT r.id, r.created_at, r.status, r.corpus_path,
		(SELECT COUNT(1) FROM run_selected sel WHERE sel.run_id = r.id),
		(SELECT COUNT(1) FROM run_coverage cov WHERE cov.run_id = r.id AND cov.count < cov.threshold)
		FROM runs r ORDER BY r.created_at DESC, r.id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var (
			sum     Summary
			created string
			status  string
			corpus  sql.NullString
		)
		if err := rows.Scan(&sum.ID, &created, &status, &corpus, &sum.Selected, &sum.UnderCovered); err != nil {
			return nil, fmt.Errorf("scan run summary: %w", err)
		}
		sum.CreatedAt = parseTime(created)
		sum.Status = selector.Status(status)
		sum.CorpusPath = corpus.String
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Delete removes a run and its rows. It reports whether a run was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	ctx = ensureContext(ctx)
	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
		return execErr
	})
	if err != nil {
		return false, fmt.Errorf("delete run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete run: %w", err)
	}
	return affected > 0, nil
}

func nullableString(value string) sql.NullString {
	if strings.TrimSpace(value) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func parseTime(value string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	return time.Time{}
}
