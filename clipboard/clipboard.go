// Package clipboard copies a derived password to the system clipboard.
//
// It uses github.com/atotto/clipboard, which wraps the native clipboard
// tools on each platform (pbcopy/pbpaste, xclip/xsel, the Windows clipboard
// API) behind one cross-platform API, so seedpass needs no build-tag-gated
// files of its own.
package clipboard

import "github.com/atotto/clipboard"

// WriteString copies s to the system clipboard.
func WriteString(s string) error {
	return clipboard.WriteAll(s)
}
