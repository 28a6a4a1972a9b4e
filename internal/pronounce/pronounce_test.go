package pronounce_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"phonocover/internal/phoneme"
	"phonocover/internal/pronounce"
	"phonocover/internal/testsupport"
)

func seq(codes ...string) []phoneme.Phoneme {
	out := make([]phoneme.Phoneme, len(codes))
	for i, c := range codes {
		out[i] = phoneme.Phoneme(c)
	}
	return out
}

func TestLoadCMUVariantsAndCanonicalization(t *testing.T) {
	dict := testsupport.NewDictionary(t)

	variants := dict.Lookup("the")
	if len(variants) != 3 {
		t.Fatalf("expected 3 variants for 'the', got %d", len(variants))
	}
	if !reflect.DeepEqual(variants[0], seq("DH", "AH")) || !reflect.DeepEqual(variants[2], seq("DH", "IY")) {
		t.Fatalf("variant order not preserved: %v", variants)
	}

	got, ok := dict.First("oddity")
	if !ok {
		t.Fatal("expected oddity in fixture")
	}
	if !reflect.DeepEqual(got, seq("AA", "D", "T", "IY")) {
		t.Fatalf("non-canonical symbol should be dropped, got %v", got)
	}
}

func TestLoadCMURejectsMalformedLine(t *testing.T) {
	_, err := pronounce.LoadCMU(strings.NewReader("CAT  K AE1 T\nBROKEN\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line-numbered error, got %v", err)
	}
}

func TestLoadJSONAcceptsArraysAndStrings(t *testing.T) {
	payload := `{"cat": [["K", "AE1", "T"]], "dog": ["D AO1 G", "D AA1 G"]}`
	dict, err := pronounce.LoadJSON(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if got, _ := dict.First("cat"); !reflect.DeepEqual(got, seq("K", "AE", "T")) {
		t.Fatalf("unexpected cat: %v", got)
	}
	if variants := dict.Lookup("dog"); len(variants) != 2 || !reflect.DeepEqual(variants[1], seq("D", "AA", "G")) {
		t.Fatalf("unexpected dog variants: %v", variants)
	}
	if _, err := pronounce.LoadJSON(strings.NewReader(`{"cat": [42]}`)); err == nil {
		t.Fatal("expected error for numeric variant")
	}
}

func TestLoadFileWritesAndReusesGobCache(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFile(t, filepath.Join(dir, "cmudict.dict"), testsupport.FixtureCMU)

	first, err := pronounce.LoadFile(path, nil)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	cachePath := pronounce.CachePath(path)
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("expected gob cache at %s: %v", cachePath, err)
	}

	// Replace the source with garbage but keep it older than the cache: the
	// cache must be used.
	testsupport.WriteFile(t, path, "BROKEN\n")
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatal(err)
	}
	second, err := pronounce.LoadFile(path, nil)
	if err != nil {
		t.Fatalf("LoadFile from cache: %v", err)
	}
	if second.Len() != first.Len() {
		t.Fatalf("cache returned %d words, want %d", second.Len(), first.Len())
	}
	if !reflect.DeepEqual(second.Lookup("the"), first.Lookup("the")) {
		t.Fatal("variant order lost through cache")
	}

	// A newer source invalidates the cache.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	if _, err := pronounce.LoadFile(path, nil); err == nil {
		t.Fatal("expected parse error once the source is newer than the cache")
	}
}

func TestLoadFileJSONAndGob(t *testing.T) {
	dir := t.TempDir()
	jsonPath := testsupport.WriteFile(t, filepath.Join(dir, "dict.json"), `{"zoo": [["Z", "UW1"]]}`)
	dict, err := pronounce.LoadFile(jsonPath, nil)
	if err != nil {
		t.Fatalf("LoadFile json: %v", err)
	}
	gobPath := filepath.Join(dir, "explicit.gob")
	if err := dict.SaveGob(gobPath); err != nil {
		t.Fatalf("SaveGob: %v", err)
	}
	loaded, err := pronounce.LoadFile(gobPath, nil)
	if err != nil {
		t.Fatalf("LoadFile gob: %v", err)
	}
	if got, _ := loaded.First("zoo"); !reflect.DeepEqual(got, seq("Z", "UW")) {
		t.Fatalf("unexpected zoo: %v", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := pronounce.LoadFile(filepath.Join(t.TempDir(), "missing.dict"), nil); err == nil {
		t.Fatal("expected error for missing dictionary")
	}
	if _, err := pronounce.LoadFile("", nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestResolve(t *testing.T) {
	r := testsupport.NewResolver(t)
	tests := []struct {
		token string
		want  []phoneme.Phoneme
		ok    bool
	}{
		{"cat", seq("K", "AE", "T"), true},
		{"Cat", seq("K", "AE", "T"), true},
		{"the", seq("DH", "AH"), true},
		{"don't", seq("D", "UW", "N", "AA", "T"), true},
		{"Don’t", seq("D", "UW", "N", "AA", "T"), true},
		{"won't", seq("W", "OW", "N", "T"), true},
		{"you're", seq("Y", "UW", "AA", "R"), true},
		{"i'm", seq("AY", "AE", "M"), true},
		{"it's", seq("IH", "T", "IH", "Z"), true},
		{"n't", seq("N", "AA", "T"), true},
		{"'re", seq("AA", "R"), true},
		{"'ll", seq("W", "IH", "L"), true},
		{"'em", seq("DH", "EH", "M"), true},
		{"hello,", seq("HH", "AH", "L", "OW"), true},
		{"don't,", seq("D", "UW", "N", "AA", "T"), true},
		{`"don't"`, seq("D", "UW", "N", "AA", "T"), true},
		{"(you're)", seq("Y", "UW", "AA", "R"), true},
		{"'re.", seq("AA", "R"), true},
		{"won't!", seq("W", "OW", "N", "T"), true},
		{"!!!", nil, false},
		{"dog's", seq("D", "AO", "G", "IH", "Z"), true},
		{"xylophone's", nil, false},
		{"xylophone", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := r.Resolve(tt.token)
			if ok != tt.ok {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.token, ok, tt.ok)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Resolve(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestResolveIsIdempotentAndCached(t *testing.T) {
	r := testsupport.NewResolver(t)
	first, ok1 := r.Resolve("don't")
	second, ok2 := r.Resolve("don't")
	if ok1 != ok2 || !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated resolution differs: %v/%v vs %v/%v", first, ok1, second, ok2)
	}
	r.Resolve("xylophone")
	r.Resolve("xylophone")
	if r.CacheSize() != 2 {
		t.Fatalf("expected misses to be cached too, cache size %d", r.CacheSize())
	}
}

func TestResolveEveryPhonemeCanonical(t *testing.T) {
	r := testsupport.NewResolver(t)
	seen := make(map[phoneme.Phoneme]bool)
	for _, word := range r.Dictionary().Words() {
		got, ok := r.Resolve(word)
		if !ok {
			t.Fatalf("dictionary word %q did not resolve", word)
		}
		for _, p := range got {
			if !phoneme.IsCanonical(p) {
				t.Fatalf("non-canonical phoneme %q from %q", p, word)
			}
			seen[p] = true
		}
	}
	if len(seen) != phoneme.Size {
		t.Fatalf("fixture should cover the full inventory, covered %d", len(seen))
	}
}

func TestResolveConcurrent(t *testing.T) {
	r := testsupport.NewResolver(t)
	tokens := []string{"cat", "don't", "the", "xylophone", "you're", "dog"}
	want := make(map[string][]phoneme.Phoneme)
	for _, tok := range tokens {
		got, _ := pronounce.NewResolver(r.Dictionary()).Resolve(tok)
		want[tok] = got
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				tok := tokens[(offset+j)%len(tokens)]
				got, _ := r.Resolve(tok)
				if !reflect.DeepEqual(got, want[tok]) {
					t.Errorf("concurrent Resolve(%q) = %v, want %v", tok, got, want[tok])
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestExpandAndCustomRules(t *testing.T) {
	r := pronounce.NewResolver(testsupport.NewDictionary(t), pronounce.WithContractions([]pronounce.ContractionRule{
		{Suffix: "'n", Replacement: "and"},
	}))
	parts, ok := r.Expand("rock'n")
	if !ok || !reflect.DeepEqual(parts, []string{"rock", "and"}) {
		t.Fatalf("unexpected expansion %v %v", parts, ok)
	}
	if _, ok := r.Expand("don't"); ok {
		t.Fatal("custom table should replace the default rules")
	}
}
