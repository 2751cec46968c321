// Package schema implements a small regex-like password schema DSL: a
// compact grammar compiles to an AST, the AST exposes an exact cardinality
// as a 256-bit integer, and a bijection maps every integer index in
// [0, cardinality) to a distinct generated string.
//
// The grammar deliberately omits alternation and variable-length repetition
// (*, +, ?, {m,n} ranges): every schema has a cardinality fixed at parse
// time (modulo the word list's length), which is what lets the enumerator
// below treat a schema as a mixed-radix number system instead of a search
// space.
package schema

import "github.com/dsbarlow/seedpass/bigint256"

// Schema is a parsed, unevaluated schema AST. The same Schema can be
// evaluated against different word lists: Parse does not require one.
type Schema struct {
	root node
}

// Size returns the schema's cardinality: the count of distinct strings it
// can generate. words may be nil if the schema contains no word-class
// nodes; if it does and words is nil or empty, Size returns ErrSchemaEmpty,
// except for word-class nodes under a {0} count, which are never sized.
func (s *Schema) Size(words Words) (bigint256.Uint256, error) {
	return s.root.size(words)
}

// At returns the idx-th string in the schema's enumeration order. The
// caller must first obtain idx from bigint256.SampleUniform (or otherwise
// guarantee 0 <= idx < Size(words)); At does not itself bounds-check idx
// against the schema's cardinality.
func (s *Schema) At(words Words, idx bigint256.Uint256) (string, error) {
	var sb stringWriter
	if err := s.root.at(words, idx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// stringWriter is the minimal io.StringWriter backed by a byte slice, kept
// private so node.at's signature does not force every caller to pull in
// strings.Builder directly.
type stringWriter struct {
	buf []byte
}

func (w *stringWriter) WriteString(s string) (int, error) {
	w.buf = append(w.buf, s...)
	return len(s), nil
}

func (w *stringWriter) String() string { return string(w.buf) }
