package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"phonocover/internal/frequency"
	"phonocover/internal/phoneme"
)

// WriteText renders the human-readable summary.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	run := r.Run

	fmt.Fprintf(&b, "Selection run %s\n", run.ID)
	fmt.Fprintf(&b, "Status: %s\n", run.Status)
	fmt.Fprintf(&b, "Selected: %d of max %d (iterations %d, elapsed %s)\n",
		len(run.Selected), run.MaxSentences, run.Iteration, run.Elapsed.Round(time.Microsecond))
	if run.CorpusPath != "" {
		fmt.Fprintf(&b, "Corpus: %s\n", run.CorpusPath)
	}
	if run.VocabularyPath != "" {
		fmt.Fprintf(&b, "Vocabulary: %s\n", run.VocabularyPath)
	}
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("\nSelected sentences\n")
	if len(run.Selected) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, id := range run.Selected {
		textValue := ""
		if i < len(run.Texts) {
			textValue = run.Texts[i]
		}
		fmt.Fprintf(&b, "  %3d. [%d] %s\n", i+1, id, textValue)
	}

	b.WriteString("\nCoverage\n")
	rows := make([][]string, 0, len(run.Coverage))
	for _, c := range run.Coverage {
		state := "ok"
		if c.Count < c.Threshold {
			state = "short"
		}
		rows = append(rows, []string{c.Word, humanize.Comma(int64(c.Count)), humanize.Comma(int64(c.Threshold)), state})
	}
	b.WriteString(plainTable([]string{"Word", "Count", "Min", "State"}, rows, 1, 2))
	b.WriteString("\n")
	if len(r.UnderCovered) == 0 {
		b.WriteString("Every target word reached its threshold.\n")
	} else {
		parts := make([]string, len(r.UnderCovered))
		for i, s := range r.UnderCovered {
			parts[i] = fmt.Sprintf("%s (%d/%d)", s.Word, s.Count, s.Threshold)
		}
		fmt.Fprintf(&b, "Under-covered: %s\n", strings.Join(parts, ", "))
	}

	if r.Frequency != nil {
		writeFrequency(&b, *r.Frequency)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeFrequency(b *strings.Builder, cmp frequency.Comparison) {
	b.WriteString("\nFrequency\n")
	sets := []struct {
		name   string
		report frequency.Report
	}{
		{"selected", cmp.Selected},
		{"excluded", cmp.Excluded},
		{"combined", cmp.Combined},
	}
	var rows [][]string
	for _, set := range sets {
		rep := set.report
		rows = append(rows, []string{
			set.name,
			humanize.Comma(int64(rep.Sentences)),
			humanize.Comma(int64(rep.Tokens)),
			humanize.Comma(int64(rep.Phonemes)),
			percent(rep.VocabularyCoverage),
			fmt.Sprintf("%d/%d", phoneme.Size-len(rep.MissingPhonemes()), phoneme.Size),
			humanize.Comma(int64(len(rep.Unresolved))),
		})
	}
	b.WriteString(plainTable([]string{"Set", "Sentences", "Tokens", "Phonemes", "Vocabulary", "Phoneme coverage", "Unresolved"}, rows, 1, 2, 3, 4, 6))
	b.WriteString("\n")

	selected := cmp.Selected
	if missing := selected.MissingPhonemes(); len(missing) > 0 {
		fmt.Fprintf(b, "Missing phonemes in selection: %s\n", phoneme.Join(missing))
	}
	b.WriteString("\nPhonemes in selection\n")
	rows = rows[:0]
	for _, pc := range selected.PhonemesByFrequency() {
		if pc.Count == 0 {
			continue
		}
		rows = append(rows, []string{
			string(pc.Phoneme),
			phoneme.ClassOf(pc.Phoneme).String(),
			humanize.Comma(int64(pc.Count)),
			percent(selected.Share(pc.Phoneme)),
		})
	}
	if len(rows) == 0 {
		b.WriteString("  (none)\n")
	} else {
		b.WriteString(plainTable([]string{"Phoneme", "Class", "Count", "Share"}, rows, 2, 3))
		b.WriteString("\n")
	}

	if top := selected.TopWords(DefaultTopWords); len(top) > 0 {
		parts := make([]string, len(top))
		for i, wc := range top {
			parts[i] = fmt.Sprintf("%s %s", wc.Word, humanize.Comma(int64(wc.Count)))
		}
		fmt.Fprintf(b, "\nTop words in selection: %s\n", strings.Join(parts, ", "))
	}
	if unresolved := cmp.Combined.Unresolved; len(unresolved) > 0 {
		parts := make([]string, 0, len(unresolved))
		for i, u := range unresolved {
			if i == DefaultTopWords {
				parts = append(parts, fmt.Sprintf("and %d more", len(unresolved)-i))
				break
			}
			parts = append(parts, fmt.Sprintf("%s x%d", u.Token, u.Count))
		}
		fmt.Fprintf(b, "Unresolved tokens: %s\n", strings.Join(parts, ", "))
	}
}

func percent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// plainTable renders an ASCII table; rightCols are zero-based column indexes.
func plainTable(headers []string, rows [][]string, rightCols ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	configs := make([]table.ColumnConfig, 0, len(rightCols))
	for _, col := range rightCols {
		configs = append(configs, table.ColumnConfig{Number: col + 1, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
