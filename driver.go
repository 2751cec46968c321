// Package seedpass composes the schema engine and the keyed sampling
// pipeline into a single derivation: given a seed, a site identity, and a
// schema, it produces the one password that (seed, site) bijectively
// determines.
package seedpass

import (
	"errors"
	"math"
	"math/big"

	"github.com/dsbarlow/seedpass/bigint256"
	"github.com/dsbarlow/seedpass/kdf"
	"github.com/dsbarlow/seedpass/schema"
	"github.com/dsbarlow/seedpass/urlcanon"
	"github.com/dsbarlow/seedpass/zero"
)

// Request holds every input one derivation needs. It is the resolved form
// of a site lookup: config.Site (or an alias, or the CLI's flags) is
// expected to have already chosen a schema source, an increment, and a URL
// before building a Request.
type Request struct {
	// Seed is the secret seed phrase, UTF-8 encoded. Generate takes
	// ownership of it and wipes it before returning on every path.
	Seed zero.Bytes

	// Increment disambiguates multiple passwords for the same site.
	Increment uint64

	// SiteURL is the site identifier as the user or config supplied it; it
	// is canonicalized internally, so it need not be pre-normalized.
	SiteURL string

	// Username, if non-empty, is injected into the canonical URL's
	// userinfo component before it is salted.
	Username string

	// Schema is the password schema DSL source.
	Schema string

	// Words is the dictionary consulted by [:word:]/[:Word:] nodes. It may
	// be nil if Schema contains none.
	Words schema.Words

	// KdfParams overrides the Argon2id cost parameters. The zero value
	// selects kdf.Default().
	KdfParams kdf.Params
}

// Result is the outcome of one derivation.
type Result struct {
	// Password is the derived password string.
	Password string

	// CanonicalURL is the RFC 3986 canonical form of the site identifier
	// actually salted into the derivation.
	CanonicalURL string

	// Bits is the approximate entropy of the schema, log2(N), for display
	// purposes only; it is derived from the (non-secret) cardinality, never
	// from the seed or key material.
	Bits float64
}

// Generate runs the full derivation pipeline: parse the schema, canonicalize
// the URL, build the salt, derive an Argon2id key, seed a ChaCha20 CSPRNG,
// rejection-sample a uniform index, and enumerate it against the schema.
// Every secret buffer touched along the way is wiped before Generate
// returns, including on error paths.
func Generate(req Request) (Result, error) {
	defer req.Seed.Wipe()

	ast, err := schema.Parse(req.Schema)
	if err != nil {
		var pe *schema.ParseError
		if errors.As(err, &pe) {
			return Result{}, newError(KindSchemaParse, pe.Error(), err)
		}
		return Result{}, newError(KindSchemaParse, "parsing schema", err)
	}

	n, err := ast.Size(req.Words)
	if err != nil {
		switch {
		case errors.Is(err, schema.ErrSchemaOverflow):
			return Result{}, newError(KindSchemaOverflow, "computing schema cardinality", err)
		case errors.Is(err, schema.ErrSchemaEmpty):
			return Result{}, newError(KindSchemaEmpty, "schema reduced to an empty class", err)
		default:
			return Result{}, newError(KindSchemaOverflow, "computing schema cardinality", err)
		}
	}

	canonicalURL, err := urlcanon.Canonicalize(req.SiteURL, req.Username)
	if err != nil {
		return Result{}, newError(KindUrlParse, "canonicalizing "+req.SiteURL, err)
	}

	params := req.KdfParams
	if params == (kdf.Params{}) {
		params = kdf.Default()
	}

	salt := kdf.BuildSalt(req.Increment, canonicalURL)
	key := kdf.DeriveKey(req.Seed, salt, params)
	defer key.Wipe()

	rng, err := kdf.NewCSPRNG(key)
	if err != nil {
		return Result{}, newError(KindKdfFailure, "initializing CSPRNG", err)
	}
	defer rng.Wipe()

	idx, err := bigint256.SampleUniform(n, rng)
	if err != nil {
		return Result{}, newError(KindKdfFailure, "sampling uniform index", err)
	}

	password, err := ast.At(req.Words, idx)
	if err != nil {
		return Result{}, newError(KindSchemaOverflow, "enumerating schema", err)
	}

	return Result{
		Password:     password,
		CanonicalURL: canonicalURL,
		Bits:         entropyBits(n),
	}, nil
}

// entropyBits computes an approximate log2(n) for display. n is never
// secret (it is the schema's cardinality), so an ordinary float64
// conversion via math/big is appropriate here even though the core
// arithmetic elsewhere in this module stays fixed-width.
func entropyBits(n bigint256.Uint256) float64 {
	if n.IsZero() {
		return 0
	}
	acc := new(big.Int)
	for i := bigint256.Width - 1; i >= 0; i-- {
		acc.Lsh(acc, 64)
		acc.Or(acc, new(big.Int).SetUint64(n.Words[i]))
	}
	f := new(big.Float).SetInt(acc)
	v, _ := f.Float64()
	return math.Log2(v)
}
