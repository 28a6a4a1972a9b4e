package picks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"golang.org/x/text/cases"

	"phonocover/internal/fileutil"
	"phonocover/internal/logging"
	"phonocover/internal/phoneme"
	"phonocover/internal/pronounce"
	"phonocover/internal/textutil"
)

var (
	// ErrUnresolved rejects an item with a token the dictionary cannot pronounce.
	ErrUnresolved = errors.New("pick does not resolve to phonemes")
	// ErrDuplicate rejects an item already in the list, ignoring case.
	ErrDuplicate = errors.New("pick already in list")
	// ErrNotFound reports a removal of an item that is not in the list.
	ErrNotFound = errors.New("pick not found")
)

// Store is the persisted pick list.
type Store struct {
	path     string
	resolver *pronounce.Resolver
	logger   *slog.Logger
	lock     *flock.Flock

	mu    sync.RWMutex
	items []string
}

// Open loads the pick list at path. A missing file yields an empty list; the
// file is created on the first mutation. The resolver validates additions
// and computes phonemes for Status.
func Open(path string, resolver *pronounce.Resolver, logger *slog.Logger) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("pick list path is empty")
	}
	s := &Store{
		path:     path,
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "picks"),
		lock:     flock.New(path + ".lock"),
	}
	items, err := s.read()
	if err != nil {
		return nil, err
	}
	s.items = items
	s.logger.Debug("loaded pick list",
		logging.String("path", path),
		logging.Int("items", len(items)))
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// List returns the picks in insertion order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.items...)
}

// Len returns the number of picks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Contains reports whether item is in the list, ignoring case.
func (s *Store) Contains(item string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.items, item) >= 0
}

// Add appends item after checking that it resolves and is not already
// present. It returns the item's phonemes.
func (s *Store) Add(item string) ([]phoneme.Phoneme, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, errors.New("pick cannot be empty")
	}
	phones, err := s.Resolve(item)
	if err != nil {
		return nil, err
	}
	err = s.mutate(func(items []string) ([]string, error) {
		if indexOf(items, item) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, item)
		}
		return append(items, item), nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("pick added",
		logging.String("item", item),
		logging.String("phonemes", phoneme.Join(phones)))
	return phones, nil
}

// Remove deletes item, matched case-insensitively.
func (s *Store) Remove(item string) error {
	item = strings.TrimSpace(item)
	err := s.mutate(func(items []string) ([]string, error) {
		i := indexOf(items, item)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, item)
		}
		return append(items[:i], items[i+1:]...), nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("pick removed", logging.String("item", item))
	return nil
}

// Clear empties the list and persists the empty list.
func (s *Store) Clear() error {
	if err := s.mutate(func([]string) ([]string, error) { return []string{}, nil }); err != nil {
		return err
	}
	s.logger.Debug("pick list cleared")
	return nil
}

// Resolve returns the concatenated phonemes of every token in item. Any
// unresolved token rejects the whole item.
func (s *Store) Resolve(item string) ([]phoneme.Phoneme, error) {
	if s.resolver == nil {
		return nil, fmt.Errorf("%w: no pronunciation dictionary loaded", ErrUnresolved)
	}
	tokens := textutil.Tokenize(item)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: %q has no words", ErrUnresolved, item)
	}
	var out []phoneme.Phoneme
	for _, tok := range tokens {
		phones, ok := s.resolver.Resolve(tok)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnresolved, tok)
		}
		out = append(out, phones...)
	}
	return out, nil
}

// foldKey is the case-insensitive identity of an item. A Caser is stateful,
// so each call gets its own.
func foldKey(item string) string {
	return cases.Fold().String(strings.TrimSpace(item))
}

func indexOf(items []string, item string) int {
	key := foldKey(item)
	for i, existing := range items {
		if foldKey(existing) == key {
			return i
		}
	}
	return -1
}

// mutate applies fn to the on-disk list under the file lock and persists the
// result. The in-memory list is replaced only after a successful write.
func (s *Store) mutate(fn func([]string) ([]string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create pick list directory: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock pick list: %w", err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			logging.WarnWithContext(s.logger, "failed to release pick list lock", "picks_unlock_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the stale .lock file if later commands block"))
		}
	}()

	current, err := s.read()
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if err := s.write(next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *Store) read() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read pick list: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse pick list %s: %w", s.path, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

func (s *Store) write(items []string) error {
	if items == nil {
		items = []string{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pick list: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("persist pick list: %w", err)
	}
	return nil
}
