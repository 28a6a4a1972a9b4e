package pronounce

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"phonocover/internal/fileutil"
	"phonocover/internal/logging"
)

// LoadCMU parses CMUdict text: one entry per line as WORD followed by its
// phonemes, alternative pronunciations written as WORD(2), and ";;;" comment
// lines. Trailing "#" comments are ignored. Variant order is preserved.
func LoadCMU(r io.Reader) (*Dictionary, error) {
	d := NewDictionary()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";;;") {
			continue
		}
		if idx := strings.Index(line, " #"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected word followed by phonemes", lineNum)
		}
		d.Add(baseWord(fields[0]), fields[1:])
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read cmudict: %w", err)
	}
	return d, nil
}

// baseWord strips a variant marker such as "(2)" from a CMUdict headword.
func baseWord(head string) string {
	if i := strings.LastIndexByte(head, '('); i > 0 && strings.HasSuffix(head, ")") {
		return head[:i]
	}
	return head
}

// LoadJSON parses {"word": [["P1", "P2"], ...]}. Variants may also be given
// as space-separated strings: {"word": ["P1 P2", ...]}.
func LoadJSON(r io.Reader) (*Dictionary, error) {
	var payload map[string][]json.RawMessage
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode json dictionary: %w", err)
	}

	raw := make(map[string][][]string, len(payload))
	for word, variants := range payload {
		for i, variant := range variants {
			var codes []string
			if err := json.Unmarshal(variant, &codes); err != nil {
				var joined string
				if err2 := json.Unmarshal(variant, &joined); err2 != nil {
					return nil, fmt.Errorf("word %q variant %d: expected array or string", word, i+1)
				}
				codes = strings.Fields(joined)
			}
			raw[word] = append(raw[word], codes)
		}
	}
	return fromRaw(raw), nil
}

// LoadGob decodes a dictionary previously written by SaveGob.
func LoadGob(r io.Reader) (*Dictionary, error) {
	raw := make(map[string][][]string)
	if err := gob.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode gob: %w", err)
	}
	return fromRaw(raw), nil
}

// SaveGob writes the dictionary to path in gob form.
func (d *Dictionary) SaveGob(path string) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return gob.NewEncoder(w).Encode(d.raw())
	})
}

// CachePath returns the gob cache location used for a source dictionary.
func CachePath(path string) string {
	return path + ".gob"
}

// LoadFile opens a dictionary choosing the format by extension: ".json" for
// JSON, ".gob" for a gob payload, anything else for CMUdict text. Text and
// JSON sources are cached next to the source as <path>.gob; the cache is
// reused while it is at least as new as the source. Cache problems are
// logged and never fail the load.
func LoadFile(path string, logger *slog.Logger) (*Dictionary, error) {
	logger = logging.NewComponentLogger(logger, "pronounce")
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("dictionary path is empty")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gob" {
		return loadWith(path, LoadGob)
	}

	cachePath := CachePath(path)
	if fileutil.IsNewer(cachePath, path) {
		if _, err := os.Stat(path); err == nil {
			dict, err := loadWith(cachePath, LoadGob)
			if err == nil {
				logger.Debug("loaded dictionary cache",
					logging.String("path", cachePath),
					logging.Int("words", dict.Len()))
				return dict, nil
			}
			logging.WarnWithContext(logger, "dictionary cache unreadable", "dictionary_cache_invalid",
				logging.String("path", cachePath),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "delete the .gob file to rebuild it"),
				logging.String(logging.FieldImpact, "dictionary is parsed from source"))
		}
	}

	parse := LoadCMU
	if ext == ".json" {
		parse = LoadJSON
	}
	dict, err := loadWith(path, parse)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed dictionary",
		logging.String("path", path),
		logging.Int("words", dict.Len()))

	if err := dict.SaveGob(cachePath); err != nil {
		logging.WarnWithContext(logger, "failed to write dictionary cache", "dictionary_cache_write_failed",
			logging.String("path", cachePath),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the dictionary directory"),
			logging.String(logging.FieldImpact, "next run parses the dictionary again"))
	}
	return dict, nil
}

func loadWith(path string, parse func(io.Reader) (*Dictionary, error)) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	dict, err := parse(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", path, err)
	}
	return dict, nil
}
