package schema

import (
	"io"
	"strings"

	"github.com/dsbarlow/seedpass/bigint256"
)

// Words is the ordered dictionary consulted by WordClass nodes. It is
// satisfied by *wordlist.List; schema takes an interface so the parser and
// enumerator do not need to import the wordlist package, and so callers can
// plug in a fake list in tests.
type Words interface {
	Len() int
	At(i int) string
}

// wordCase selects the capitalization applied to a WordClass node's output.
type wordCase int

const (
	wordLower wordCase = iota
	wordTitle
)

// node is the evaluation interface every AST variant implements: each node
// reports its own cardinality and can write the idx-th string in its
// enumeration order. Kept unexported: callers interact with the tree only
// through *Schema.
type node interface {
	// size returns the node's cardinality, or an error if computing it would
	// overflow 256 bits.
	size(words Words) (bigint256.Uint256, error)

	// at writes the idx-th string in the node's enumeration order to w. The
	// caller must ensure 0 <= idx < size(words).
	at(words Words, idx bigint256.Uint256, w io.StringWriter) error
}

// literalNode matches exactly its string, with cardinality 1.
type literalNode struct {
	s string
}

func (n *literalNode) size(Words) (bigint256.Uint256, error) { return bigint256.One, nil }

func (n *literalNode) at(_ Words, _ bigint256.Uint256, w io.StringWriter) error {
	_, err := w.WriteString(n.s)
	return err
}

// charClassNode matches a single scalar value drawn from a finalized charSet.
type charClassNode struct {
	set charSet
}

func (n *charClassNode) size(Words) (bigint256.Uint256, error) {
	return bigint256.FromUint64(n.set.size()), nil
}

func (n *charClassNode) at(_ Words, idx bigint256.Uint256, w io.StringWriter) error {
	_, err := w.WriteString(string(n.set.nth(idx.Words[0])))
	return err
}

// wordClassNode matches a single dictionary word, optionally title-cased.
type wordClassNode struct {
	c wordCase
}

func (n *wordClassNode) size(words Words) (bigint256.Uint256, error) {
	if words == nil || words.Len() == 0 {
		return bigint256.Uint256{}, ErrSchemaEmpty
	}
	return bigint256.FromUint64(uint64(words.Len())), nil
}

func (n *wordClassNode) at(words Words, idx bigint256.Uint256, w io.StringWriter) error {
	word := words.At(int(idx.Words[0]))
	if n.c == wordTitle {
		word = titleFirst(word)
	}
	_, err := w.WriteString(word)
	return err
}

func titleFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = toUpperRune(r[0])
	return string(r)
}

func toUpperRune(r rune) rune {
	return []rune(strings.ToUpper(string(r)))[0]
}

// groupNode is the concatenation of its children. Cardinality is the
// product of the children's cardinalities; the mixed-radix decode consumes
// the lowest-order digit for the first child.
type groupNode struct {
	children []node
}

func (n *groupNode) size(words Words) (bigint256.Uint256, error) {
	total := bigint256.One
	for _, c := range n.children {
		sz, err := c.size(words)
		if err != nil {
			return bigint256.Uint256{}, err
		}
		total, err = bigint256.Mul(total, sz)
		if err != nil {
			return bigint256.Uint256{}, ErrSchemaOverflow
		}
	}
	return total, nil
}

func (n *groupNode) at(words Words, idx bigint256.Uint256, w io.StringWriter) error {
	rem := idx
	for _, c := range n.children {
		sz, err := c.size(words)
		if err != nil {
			return err
		}
		q, r := bigint256.DivMod(rem, sz)
		if err := c.at(words, r, w); err != nil {
			return err
		}
		rem = q
	}
	return nil
}

// countNode is n-fold concatenation of child, equivalent to Group([child]*n).
type countNode struct {
	child node
	n     uint32
}

func (n *countNode) size(words Words) (bigint256.Uint256, error) {
	if n.n == 0 {
		return bigint256.One, nil
	}
	childSize, err := n.child.size(words)
	if err != nil {
		return bigint256.Uint256{}, err
	}
	total := bigint256.One
	for i := uint32(0); i < n.n; i++ {
		total, err = bigint256.Mul(total, childSize)
		if err != nil {
			return bigint256.Uint256{}, ErrSchemaOverflow
		}
	}
	return total, nil
}

func (n *countNode) at(words Words, idx bigint256.Uint256, w io.StringWriter) error {
	if n.n == 0 {
		return nil
	}
	childSize, err := n.child.size(words)
	if err != nil {
		return err
	}
	rem := idx
	for i := uint32(0); i < n.n; i++ {
		q, r := bigint256.DivMod(rem, childSize)
		if err := n.child.at(words, r, w); err != nil {
			return err
		}
		rem = q
	}
	return nil
}
