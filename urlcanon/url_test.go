package urlcanon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityForms(t *testing.T) {
	for _, in := range []string{
		"https://google.com/",
		"mailto:me@example.com",
		"http://localhost/",
	} {
		got, err := Canonicalize(in, "")
		require.NoError(t, err)
		require.Equal(t, in, got)
	}
}

func TestBareHostDefaultsToHttpsWithTrailingSlash(t *testing.T) {
	tests := []struct{ want, in string }{
		{"https://google.com/", "google.com"},
		{"https://localhost/", "localhost"},
		{"https://google.com/", "https://GOOGLE.COM/"},
		{"http://www.google.com/", "http://WWW.GOogle.COM"},
	}
	for _, tc := range tests {
		got, err := Canonicalize(tc.in, "")
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
}

func TestUsernameInjectedIntoUserinfo(t *testing.T) {
	got, err := Canonicalize("example.com", "alice")
	require.NoError(t, err)
	require.Equal(t, "https://alice@example.com/", got)
}

func TestUsernameIsPercentEncoded(t *testing.T) {
	got, err := Canonicalize("https://baz.com/", "foo@bar")
	require.NoError(t, err)
	require.Equal(t, "https://foo%40bar@baz.com/", got)
}

func TestIdempotence(t *testing.T) {
	inputs := []string{"google.com", "https://google.com", "https://google.com/"}
	var canon string
	for i, in := range inputs {
		got, err := Canonicalize(in, "")
		require.NoError(t, err)
		if i == 0 {
			canon = got
		} else {
			require.Equal(t, canon, got)
		}
		again, err := Canonicalize(got, "")
		require.NoError(t, err)
		require.Equal(t, got, again)
	}
}

func TestScenarioS6CanonicalURL(t *testing.T) {
	got, err := Canonicalize("ex.com", "alice")
	require.NoError(t, err)
	require.Equal(t, "https://alice@ex.com/", got)
}
