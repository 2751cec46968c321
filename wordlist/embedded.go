package wordlist

import (
	_ "embed"
	"strings"
	"sync"
)

// defaultWords is keyfish's wordhash list (256 five-letter words, ordered
// alphabetically), embedded at build time so seedpass runs with a working
// word class out of the box with no external file. It is small (256
// entries, ~8.0 bits of entropy per word) compared to a Diceware-style list;
// config.Config's words_path setting lets an installation swap in a larger
// list such as the EFF long word list without a code change.
//
//go:embed words.txt
var defaultWordsRaw string

var (
	defaultOnce sync.Once
	defaultList *List
	defaultErr  error
)

// Default returns the embedded default word list.
func Default() (*List, error) {
	defaultOnce.Do(func() {
		defaultList, defaultErr = Load(strings.NewReader(defaultWordsRaw))
	})
	return defaultList, defaultErr
}
