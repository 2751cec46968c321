package schema

import (
	"errors"
	"fmt"
)

// ErrSchemaOverflow is returned when a schema's cardinality, or an
// intermediate product while computing it, would exceed 2^256-1.
var ErrSchemaOverflow = errors.New("schema: cardinality overflows 256 bits")

// ErrSchemaEmpty is returned when a character class or word class reduces to
// the empty set (e.g. no word list was supplied for a [:word:] node).
var ErrSchemaEmpty = errors.New("schema: character class is empty")

// ParseError reports a malformed schema with a 1-based byte offset into the
// source and a one-line reason.
type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("schema: parse error at byte %d: %s", e.Offset, e.Reason)
}
