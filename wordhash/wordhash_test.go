package wordhash_test

import (
	"regexp"
	"testing"

	"github.com/dsbarlow/seedpass/wordhash"
)

// crc32.ChecksumIEEE of the empty slice is 0, so every segment picks index 0
// of the word list: this vector is independent of which 256 words are
// loaded, unlike a hand-computed digest for a non-empty input.
func TestNewEmptyInputUsesFirstWordFourTimes(t *testing.T) {
	got := wordhash.New("")
	const want = "abbot-abbot-abbot-abbot"
	if got != want {
		t.Errorf("New(%q): got %q, want %q", "", got, want)
	}
}

func TestNewIsDeterministic(t *testing.T) {
	const input = "correct horse battery staple"
	if wordhash.New(input) != wordhash.New(input) {
		t.Errorf("New(%q) is not deterministic", input)
	}
}

func TestNewDiffersAcrossInputs(t *testing.T) {
	a := wordhash.New("correct horse battery staple")
	b := wordhash.New("Tr0ub4dor&3")
	if a == b {
		t.Errorf("New produced the same digest for two different inputs: %q", a)
	}
}

var digestPattern = regexp.MustCompile(`^[a-z]+(-[a-z]+){3}$`)

func TestNewFormatIsFourHyphenatedWords(t *testing.T) {
	got := wordhash.New("sample input")
	if !digestPattern.MatchString(got) {
		t.Errorf("New(%q) = %q, want four hyphen-joined lowercase words", "sample input", got)
	}
}
