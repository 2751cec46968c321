package kdf

import "strconv"

// BuildSalt constructs the Argon2id salt bytes for one password derivation:
// the decimal increment, a comma, and the RFC 3986 canonical form of the
// site URL, encoded as UTF-8. This exact byte layout determines every
// password a seed derives, so it is pinned here rather than left to a
// caller to assemble.
func BuildSalt(increment uint64, canonicalURL string) []byte {
	return []byte(strconv.FormatUint(increment, 10) + "," + canonicalURL)
}
