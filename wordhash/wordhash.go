// Package wordhash converts a generated password into a reasonably
// memorable human-readable digest, for display in place of the password
// itself when the real value has gone to the clipboard instead of the
// terminal. The digest is not of cryptographic quality -- it is not
// collision resistant -- but gives a human viewer moderate confidence they
// copied the value they expected.
//
// It shares its word table with the wordlist package's embedded default
// dictionary, so both draw from the same 256-word list.
package wordhash

import (
	"hash/crc32"
	"strings"

	"github.com/dsbarlow/seedpass/wordlist"
)

// New returns a four-word digest of s, for display after s has been copied
// to the clipboard instead of printed.
func New(s string) string {
	list, err := wordlist.Default()
	if err != nil {
		// The embedded default always parses; a failure here means the
		// embed itself is broken, which is a build-time bug, not a
		// runtime condition callers can recover from sensibly.
		panic("wordhash: embedded default word list failed to load: " + err.Error())
	}

	crc := crc32.ChecksumIEEE([]byte(s))
	segments := make([]string, 4)
	for i := 0; i < 4; i++ {
		segments[i] = list.At(int(crc & 0xff))
		crc >>= 8
	}
	return strings.Join(segments, "-")
}
