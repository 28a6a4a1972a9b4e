package corpus

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Format identifies an input file layout.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatTSV  Format = "tsv"
	FormatHTML Format = "html"
)

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".tsv":
		return FormatTSV
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatText
	}
}

// LoadStats summarizes one load.
type LoadStats struct {
	Records    int `json:"records"`
	Skipped    int `json:"skipped"`
	Empty      int `json:"empty"`
	Duplicates int `json:"duplicates"`
	Filtered   int `json:"filtered"`
	Kept       int `json:"kept"`
}

// SentenceOptions controls sentence loading.
type SentenceOptions struct {
	Format Format
	// TSVColumn is the zero-based column holding the sentence.
	TSVColumn int
	// Split breaks each record into sentences on terminal punctuation.
	Split bool
	// MinWords drops sentences with fewer tokens.
	MinWords int
	// Restrict keeps only sentences whose every token is in the vocabulary.
	Restrict *Vocabulary
}

// LoadSentencesFile opens path and loads sentences, detecting the format from
// the extension unless opts.Format is set.
func LoadSentencesFile(path string, opts SentenceOptions) ([]Sentence, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	if opts.Format == "" {
		opts.Format = DetectFormat(path)
	}
	sentences, stats, err := LoadSentences(f, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("load corpus %s: %w", path, err)
	}
	return sentences, stats, nil
}

// LoadSentences reads raw records, cleans them, and assigns ids.
func LoadSentences(r io.Reader, opts SentenceOptions) ([]Sentence, LoadStats, error) {
	var (
		records []string
		stats   LoadStats
		err     error
	)
	switch opts.Format {
	case FormatJSON:
		records, stats.Skipped, err = readJSONStrings(r)
	case FormatTSV:
		records, stats.Skipped, err = readTSVColumn(r, opts.TSVColumn)
	case FormatHTML:
		records, err = readArticle(r)
		opts.Split = true
	case FormatText, "":
		records, err = readLines(r)
	default:
		return nil, stats, fmt.Errorf("unsupported corpus format %q", opts.Format)
	}
	if err != nil {
		return nil, stats, err
	}
	stats.Records = len(records)

	if opts.Split {
		var split []string
		for _, record := range records {
			split = append(split, SplitSentences(CleanText(record))...)
		}
		records = split
	}

	cleaned, cleanStats := Clean(records)
	stats.Empty = cleanStats.Empty
	stats.Duplicates = cleanStats.Duplicates

	sentences := NewSentences(cleaned)
	if opts.MinWords > 0 || opts.Restrict != nil {
		kept := sentences[:0]
		for _, s := range sentences {
			if !accept(s, opts) {
				stats.Filtered++
				continue
			}
			kept = append(kept, s)
		}
		sentences = NewSentences(Texts(kept))
	}
	stats.Kept = len(sentences)
	return sentences, stats, nil
}

func accept(s Sentence, opts SentenceOptions) bool {
	if len(s.Tokens) < opts.MinWords {
		return false
	}
	if opts.Restrict != nil {
		for _, tok := range s.Tokens {
			if !opts.Restrict.Contains(tok) {
				return false
			}
		}
	}
	return true
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var out []string
	for scanner.Scan() {
		out = append(out, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return out, nil
}

// readJSONStrings accepts an array whose elements are strings or objects
// with a "text" field. Other elements are skipped.
func readJSONStrings(r io.Reader) ([]string, int, error) {
	var payload []json.RawMessage
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, 0, fmt.Errorf("decode json array: %w", err)
	}
	out := make([]string, 0, len(payload))
	skipped := 0
	for _, raw := range payload {
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			out = append(out, text)
			continue
		}
		var obj struct {
			Text *string `json:"text"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil && obj.Text != nil {
			out = append(out, *obj.Text)
			continue
		}
		skipped++
	}
	return out, skipped, nil
}

func readTSVColumn(r io.Reader, column int) ([]string, int, error) {
	if column < 0 {
		return nil, 0, fmt.Errorf("tsv column must not be negative, got %d", column)
	}
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	var out []string
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, skipped, fmt.Errorf("read tsv: %w", err)
		}
		if column >= len(record) {
			skipped++
			continue
		}
		out = append(out, record[column])
	}
	return out, skipped, nil
}

func readArticle(r io.Reader) ([]string, error) {
	pageURL, _ := url.Parse("http://localhost/corpus")
	article, err := readability.FromReader(r, pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}
	return strings.Split(article.TextContent, "\n"), nil
}

// LoadVocabularyFile opens path and loads a vocabulary, detecting the format
// from the extension.
func LoadVocabularyFile(path string) (*Vocabulary, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()
	vocab, stats, err := LoadVocabulary(f, DetectFormat(path))
	if err != nil {
		return nil, stats, fmt.Errorf("load vocabulary %s: %w", path, err)
	}
	return vocab, stats, nil
}

// LoadVocabulary reads target words. JSON input is an array of words or an
// object mapping words to thresholds. Text input holds one word per line,
// optionally followed by a tab or spaces and a threshold; "#" starts a
// comment. Entries with an unparsable or non-positive threshold are skipped.
func LoadVocabulary(r io.Reader, format Format) (*Vocabulary, LoadStats, error) {
	var (
		items []VocabItem
		stats LoadStats
		err   error
	)
	switch format {
	case FormatJSON:
		items, stats.Skipped, err = readJSONVocabulary(r)
	case FormatText, FormatTSV, "":
		items, stats.Skipped, err = readTextVocabulary(r)
	default:
		return nil, stats, fmt.Errorf("unsupported vocabulary format %q", format)
	}
	if err != nil {
		return nil, stats, err
	}
	stats.Records = len(items) + stats.Skipped
	vocab := NewVocabulary(items...)
	stats.Kept = vocab.Len()
	stats.Duplicates = len(items) - vocab.Len()
	return vocab, stats, nil
}

func readJSONVocabulary(r io.Reader) ([]VocabItem, int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("read vocabulary: %w", err)
	}
	var words []string
	if err := json.Unmarshal(data, &words); err == nil {
		items := make([]VocabItem, len(words))
		for i, w := range words {
			items[i] = VocabItem{Word: w}
		}
		return items, 0, nil
	}

	// Objects keep file order so vocabulary order matches what the user wrote.
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	tok, err := decoder.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, 0, errors.New("vocabulary json must be an array of words or an object of word thresholds")
	}
	var items []VocabItem
	skipped := 0
	for decoder.More() {
		keyTok, err := decoder.Token()
		if err != nil {
			return nil, skipped, fmt.Errorf("decode vocabulary key: %w", err)
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return nil, skipped, fmt.Errorf("decode threshold for %q: %w", key, err)
		}
		n, err := strconv.Atoi(string(raw))
		if err != nil || n < 1 {
			skipped++
			continue
		}
		items = append(items, VocabItem{Word: key, MinCoverage: n})
	}
	return items, skipped, nil
}

func readTextVocabulary(r io.Reader) ([]VocabItem, int, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, 0, err
	}
	var items []VocabItem
	skipped := 0
	for _, line := range lines {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 0:
			continue
		case 1:
			items = append(items, VocabItem{Word: fields[0]})
		case 2:
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 {
				skipped++
				continue
			}
			items = append(items, VocabItem{Word: fields[0], MinCoverage: n})
		default:
			skipped++
		}
	}
	return items, skipped, nil
}
