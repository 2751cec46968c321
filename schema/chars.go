package schema

import "sort"

// charRange is an inclusive range of Unicode scalar values. Scalar values
// exclude the surrogate range U+D800-U+DFFF, so a range that spans across
// the gap has fewer members than its numeric span would suggest.
type charRange struct {
	lo, hi rune
}

const (
	surrogateLo = 0xD800
	surrogateHi = 0xDFFF
)

func (r charRange) size() uint64 {
	count := uint64(r.hi) - uint64(r.lo) + 1
	if r.lo < surrogateLo && r.hi >= surrogateLo {
		count -= (surrogateHi - surrogateLo + 1)
	}
	return count
}

// nth returns the n-th scalar value in the range under its natural order,
// skipping the surrogate gap.
func (r charRange) nth(n uint64) rune {
	v := uint64(r.lo) + n
	if r.lo < surrogateLo && v >= surrogateLo {
		v += surrogateHi - surrogateLo + 1
	}
	return rune(v)
}

// charSet is a sorted, deduplicated, non-overlapping set of Unicode scalar
// value ranges. It is the evaluation form of a CharClass node: every bracket
// range and every named POSIX-style class folds into it, and overlaps or
// adjacent ranges are merged so the enumeration order is well defined
// regardless of how the source schema expressed the class.
type charSet struct {
	ranges []charRange
}

// add inserts an inclusive range of scalar values into the set.
func (c *charSet) add(lo, hi rune) {
	c.ranges = append(c.ranges, charRange{lo, hi})
}

// finalize sorts and merges overlapping/adjacent ranges in place. It must be
// called exactly once, after every add, before size or nth is used.
func (c *charSet) finalize() {
	if len(c.ranges) == 0 {
		return
	}
	sort.Slice(c.ranges, func(i, j int) bool { return c.ranges[i].lo < c.ranges[j].lo })
	out := c.ranges[:1]
	for _, r := range c.ranges[1:] {
		last := &out[len(out)-1]
		if r.lo <= last.hi+1 {
			if r.hi > last.hi {
				last.hi = r.hi
			}
			continue
		}
		out = append(out, r)
	}
	c.ranges = out
}

func (c *charSet) size() uint64 {
	var total uint64
	for _, r := range c.ranges {
		total += r.size()
	}
	return total
}

func (c *charSet) nth(n uint64) rune {
	for _, r := range c.ranges {
		sz := r.size()
		if n < sz {
			return r.nth(n)
		}
		n -= sz
	}
	panic("schema: charSet.nth index out of range")
}

// namedClasses maps the POSIX-style class names recognized inside brackets
// to their constituent ranges.
var namedClasses = map[string][]charRange{
	"alpha": {{'A', 'Z'}, {'a', 'z'}},
	"digit": {{'0', '9'}},
	"alnum": {{'0', '9'}, {'A', 'Z'}, {'a', 'z'}},
	"upper": {{'A', 'Z'}},
	"lower": {{'a', 'z'}},
	"xdigit": {
		{'0', '9'}, {'A', 'F'}, {'a', 'f'},
	},
	"punct": {
		{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'},
	},
	"print": {{' ', '~'}},
}
