package phoneme_test

import (
	"testing"

	"phonocover/internal/phoneme"
)

func TestInventoryShape(t *testing.T) {
	inv := phoneme.Inventory()
	if len(inv) != phoneme.Size {
		t.Fatalf("expected %d symbols, got %d", phoneme.Size, len(inv))
	}
	if len(phoneme.Vowels()) != 15 {
		t.Fatalf("expected 15 vowels, got %d", len(phoneme.Vowels()))
	}
	if len(phoneme.Consonants()) != 24 {
		t.Fatalf("expected 24 consonants, got %d", len(phoneme.Consonants()))
	}
	seen := make(map[phoneme.Phoneme]struct{}, len(inv))
	for i, p := range inv {
		if _, dup := seen[p]; dup {
			t.Fatalf("duplicate symbol %q", p)
		}
		seen[p] = struct{}{}
		if phoneme.Index(p) != i {
			t.Fatalf("index mismatch for %q: got %d want %d", p, phoneme.Index(p), i)
		}
	}
}

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want phoneme.Phoneme
		ok   bool
	}{
		{"AH0", "AH", true},
		{"ey1", "EY", true},
		{"NG", "NG", true},
		{" ZH ", "ZH", true},
		{"AX", "", false},
		{"", "", false},
		{"12", "", false},
	}
	for _, tc := range cases {
		got, ok := phoneme.Canonicalize(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Canonicalize(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestClassOf(t *testing.T) {
	if phoneme.ClassOf("IY") != phoneme.ClassVowel {
		t.Fatal("expected IY to be a vowel")
	}
	if phoneme.ClassOf("TH") != phoneme.ClassConsonant {
		t.Fatal("expected TH to be a consonant")
	}
	if phoneme.ClassOf("Q") != phoneme.ClassUnknown {
		t.Fatal("expected Q to be unknown")
	}
}

func TestInventoryIsCopy(t *testing.T) {
	inv := phoneme.Inventory()
	inv[0] = "XX"
	if phoneme.Inventory()[0] != "AA" {
		t.Fatal("Inventory must return a copy")
	}
}
