package testsupport

import (
	"strings"
	"testing"

	"phonocover/internal/pronounce"
)

// FixtureCMU is a small CMUdict excerpt whose first variants cover all 39
// phonemes. "don't" is deliberately absent so contraction expansion is
// exercised; "won't" is present so the direct lookup fallback is too.
const FixtureCMU = `;;; test fixture
A  AH0
AM  AE1 M
ARE  AA1 R
BOY  B OY1
CAT  K AE1 T
CHURCH  CH ER1 CH
DO  D UW1
DOG  D AO1 G
FOX  F AA1 K S
GO  G OW1
HAVE  HH AE1 V
HELLO  HH AH0 L OW1
HOUSE  HH AW1 S
I  AY1
IS  IH1 Z
IT  IH1 T
JUDGE  JH AH1 JH
MAT  M AE1 T
MEASURE  M EH1 ZH ER0
NOT  N AA1 T
ODDITY  AA1 D AX0 T IY0
ON  AA1 N
PLAY  P L EY1
RAN  R AE1 N
SAT  S AE1 T
SHE  SH IY1
SING  S IH1 NG
THE  DH AH0
THE(2)  DH AH1
THE(3)  DH IY0
THEM  DH EH1 M
THIN  TH IH1 N
WILL  W IH1 L
WON'T  W OW1 N T
WORLD  W ER1 L D
WOULD  W UH1 D
YOU  Y UW1
ZOO  Z UW1
`

// NewDictionary parses FixtureCMU.
func NewDictionary(t testing.TB) *pronounce.Dictionary {
	t.Helper()
	dict, err := pronounce.LoadCMU(strings.NewReader(FixtureCMU))
	if err != nil {
		t.Fatalf("load fixture dictionary: %v", err)
	}
	return dict
}

// NewResolver returns a resolver over the fixture dictionary.
func NewResolver(t testing.TB) *pronounce.Resolver {
	t.Helper()
	return pronounce.NewResolver(NewDictionary(t))
}
