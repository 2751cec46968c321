package bigint256

import (
	"encoding/binary"
	"io"

	"github.com/dsbarlow/seedpass/zero"
)

var maxUint256 = Uint256{Words: [Width]uint64{
	^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0),
}}

// threshold computes T = 2^256 - (2^256 mod n), without ever materializing
// 2^256 itself (which does not fit in a Uint256). It
// reports acceptAll when n divides 2^256 exactly, in which case every draw
// is unbiased and no rejection is ever needed (e.g. any power-of-two n).
func threshold(n Uint256) (t Uint256, acceptAll bool) {
	_, m := DivMod(maxUint256, n) // m == (2^256 - 1) mod n
	r, err := Add(m, One)        // r == 2^256 mod n, possibly == n
	if err != nil {
		// m == maxUint256 is impossible since n >= 1 implies m < n <= maxUint256.
		panic("bigint256: unreachable overflow computing 2^256 mod n")
	}
	if r.Cmp(n) == 0 {
		r = Zero
	}
	if r.IsZero() {
		return Uint256{}, true
	}
	t = Sub(maxUint256, r)
	t, err = Add(t, One)
	if err != nil {
		panic("bigint256: unreachable overflow computing rejection threshold")
	}
	return t, false
}

// SampleUniform draws a uniformly distributed value in [0, n) by rejection
// sampling 256-bit little-endian draws from rng. n must be nonzero.
// Expected iteration count is at most 2.
func SampleUniform(n Uint256, rng io.Reader) (Uint256, error) {
	if n.IsZero() {
		panic("bigint256: SampleUniform with zero bound")
	}
	t, acceptAll := threshold(n)

	var draw zero.Bytes = zero.NewBytes(32)
	defer draw.Wipe()

	for {
		if _, err := io.ReadFull(rng, draw); err != nil {
			return Uint256{}, err
		}
		var x Uint256
		for i := 0; i < Width; i++ {
			x.Words[i] = binary.LittleEndian.Uint64(draw[i*8 : i*8+8])
		}
		if acceptAll || x.Cmp(t) < 0 {
			_, r := DivMod(x, n)
			return r, nil
		}
	}
}
