// Package wordlist loads the ordered dictionary that schema word-class
// nodes (`[:word:]`, `[:Word:]`) draw from. A List's order is load-bearing:
// it is the radix schema.Schema consults when decoding an index, so two
// lists with the same words in a different order enumerate differently.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// List is an ordered, duplicate-free word dictionary. It satisfies
// schema.Words.
type List struct {
	words []string
}

// Len reports the number of words in the list.
func (l *List) Len() int { return len(l.words) }

// At returns the word at position i. The caller must ensure 0 <= i < Len().
func (l *List) At(i int) string { return l.words[i] }

// New builds a List from an explicit slice, preserving order. It is mainly
// useful for tests; production callers load a list from a file or the
// embedded default via Load/Default.
func New(words []string) (*List, error) {
	if err := validate(words); err != nil {
		return nil, err
	}
	out := make([]string, len(words))
	copy(out, words)
	return &List{words: out}, nil
}

// Load reads a word list from r, one word per line. Blank lines and lines
// whose first non-space byte is '#' are skipped.
func Load(r io.Reader) (*List, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wordlist: reading: %w", err)
	}
	return New(words)
}

// LoadFile opens path and loads a word list from it.
func LoadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wordlist: %w", err)
	}
	defer f.Close()
	list, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("wordlist: %s: %w", path, err)
	}
	return list, nil
}

func validate(words []string) error {
	if len(words) == 0 {
		return fmt.Errorf("wordlist: list is empty")
	}
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if w == "" {
			return fmt.Errorf("wordlist: empty word entry")
		}
		if strings.ContainsAny(w, " \t\n") {
			return fmt.Errorf("wordlist: word %q contains whitespace", w)
		}
		if seen[w] {
			return fmt.Errorf("wordlist: duplicate word %q", w)
		}
		seen[w] = true
	}
	return nil
}
