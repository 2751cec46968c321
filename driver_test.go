package seedpass

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/dsbarlow/seedpass/wordlist"
	"github.com/dsbarlow/seedpass/zero"
	"github.com/stretchr/testify/require"
)

const testSeed = "correct horse battery staple"

func seed() zero.Bytes { return zero.Bytes(testSeed) }

func TestScenarioS1FourDigitPin(t *testing.T) {
	res, err := Generate(Request{
		Seed: seed(), Increment: 0, SiteURL: "google.com", Schema: "[0-9]{4}",
	})
	require.NoError(t, err)
	require.Equal(t, "https://google.com/", res.CanonicalURL)
	require.Regexp(t, regexp.MustCompile(`^[0-9]{4}$`), res.Password)
	require.InDelta(t, 13.29, res.Bits, 0.01)
}

func TestScenarioS2AlnumEighteen(t *testing.T) {
	res, err := Generate(Request{
		Seed: seed(), Increment: 0, SiteURL: "google.com", Schema: "[A-Za-z0-9]{18}",
	})
	require.NoError(t, err)
	require.Len(t, res.Password, 18)
	require.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]{18}$`), res.Password)
}

func TestScenarioS3IncrementChangesOutput(t *testing.T) {
	s1, err := Generate(Request{Seed: seed(), Increment: 0, SiteURL: "google.com", Schema: "[0-9]{4}"})
	require.NoError(t, err)
	s3, err := Generate(Request{Seed: seed(), Increment: 1, SiteURL: "google.com", Schema: "[0-9]{4}"})
	require.NoError(t, err)
	require.NotEqual(t, s1.Password, s3.Password)
}

func TestScenarioS5WordsJoinedByHyphen(t *testing.T) {
	words, err := wordlist.Default()
	require.NoError(t, err)
	res, err := Generate(Request{
		Seed: seed(), Increment: 0, SiteURL: "github.com",
		Schema: "[:word:](-[:word:]){4}", Words: words,
	})
	require.NoError(t, err)
	parts := strings.Split(res.Password, "-")
	require.Len(t, parts, 5)
	for _, p := range parts {
		require.Regexp(t, regexp.MustCompile(`^[a-z]+$`), p)
	}
}

func TestScenarioS6UsernameInSalt(t *testing.T) {
	res, err := Generate(Request{
		Seed: seed(), Increment: 0, SiteURL: "ex.com", Username: "alice", Schema: "[a-z]",
	})
	require.NoError(t, err)
	require.Equal(t, "https://alice@ex.com/", res.CanonicalURL)
	require.Regexp(t, regexp.MustCompile(`^[a-z]$`), res.Password)
}

func TestDeterminismAcrossCalls(t *testing.T) {
	req := Request{Seed: seed(), Increment: 0, SiteURL: "example.com", Schema: "[0-9]{4}"}
	r1, err := Generate(req)
	require.NoError(t, err)

	req2 := Request{Seed: seed(), Increment: 0, SiteURL: "example.com", Schema: "[0-9]{4}"}
	r2, err := Generate(req2)
	require.NoError(t, err)

	require.Equal(t, r1.Password, r2.Password)
}

func TestWordClassWithoutWordsReportsSchemaEmpty(t *testing.T) {
	_, err := Generate(Request{Seed: seed(), Increment: 0, SiteURL: "example.com", Schema: "[:word:]"})
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, KindSchemaEmpty, se.Kind)
}

func TestMalformedSchemaReportsSchemaParse(t *testing.T) {
	_, err := Generate(Request{Seed: seed(), Increment: 0, SiteURL: "example.com", Schema: "a{2,5}"})
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, KindSchemaParse, se.Kind)
}

func TestWordCountZeroBoundaryProducesEmptyOutput(t *testing.T) {
	res, err := Generate(Request{Seed: seed(), Increment: 0, SiteURL: "example.com", Schema: "[:word:]{0}"})
	require.NoError(t, err)
	require.Equal(t, "", res.Password)
}

func TestSeedIsWipedAfterGenerate(t *testing.T) {
	req := Request{Seed: zero.Bytes([]byte(testSeed)), Increment: 0, SiteURL: "example.com", Schema: "[0-9]{4}"}
	_, err := Generate(req)
	require.NoError(t, err)
	for _, b := range req.Seed {
		require.Equal(t, byte(0), b)
	}
}

func TestEntropyBitsMatchesLog2OfCardinality(t *testing.T) {
	res, err := Generate(Request{Seed: seed(), Increment: 0, SiteURL: "example.com", Schema: "[0-9]{4}"})
	require.NoError(t, err)
	require.InDelta(t, math.Log2(10000), res.Bits, 0.001)
}
