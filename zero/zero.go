// Package zero provides zeroizing buffers for secret-bearing byte slices.
//
// The secret byte buffers that flow through the seedpass core (the seed
// phrase, the Argon2id output, intermediate rejection samples) are wrapped
// in a Bytes so their backing memory is overwritten before release on every
// exit path, including error returns and panics. The CSPRNG state is a
// cipher value rather than a byte buffer; the kdf package wipes it through
// its own Wipe method.
package zero

import "runtime"

// Bytes is a byte slice that should be wiped when it is no longer needed.
// The zero value holds no data.
type Bytes []byte

// NewBytes returns a Bytes of the given length.
func NewBytes(n int) Bytes { return make(Bytes, n) }

// Wipe overwrites b with zero bytes in place. It is safe to call Wipe more
// than once, and safe to call it on a nil or empty Bytes.
//
// The runtime.KeepAlive call prevents the compiler from eliding the store as
// dead, per the pattern documented in golang/go#33325.
func (b Bytes) Wipe() {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// With allocates an n-byte buffer, passes it to f, and wipes it before
// returning, regardless of whether f panics. Use this for transient secret
// buffers that have no other named owner, such as the output of a key
// derivation step that is immediately consumed.
func With(n int, f func(buf Bytes) error) error {
	buf := NewBytes(n)
	defer buf.Wipe()
	return f(buf)
}

// String is a string-shaped secret. Go strings are immutable, so the best we
// can do is avoid keeping an extra copy lying around; callers that need an
// actual wipe should keep secrets as Bytes instead of String whenever
// possible. String exists to document intent at call sites (e.g. a seed
// phrase read from the terminal before it is converted to Bytes).
type String string

// Bytes returns a zeroizing copy of s's bytes.
func (s String) Bytes() Bytes { return Bytes(s) }
