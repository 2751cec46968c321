package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

var testConfig = &Config{
	DefaultSchema: "default",
	Aliases: map[string]string{
		"pin":     "[0-9]{8}",
		"default": "[A-Za-z0-9]{16}",
	},
	Sites: map[string]Site{
		"alpha":     {Host: "alpha", Schema: "[0-9]{4}"},
		"bravo":     {Host: "bravo", Schema: "pin", Increment: 2},
		"tangy.com": {Schema: "[a-z]{6}"},
		"ex.com":    {Schema: "[a-z]", Username: "alice"},
	},
}

func TestResolveLookupOrder(t *testing.T) {
	tests := []struct {
		name string
		want Site
	}{
		// Exact token match.
		{"alpha", Site{Host: "alpha", Schema: "[0-9]{4}"}},

		// Exact token match with alias expansion.
		{"bravo", Site{Host: "bravo", Schema: "[0-9]{8}", Increment: 2}},

		// Site keyed by canonical host rather than a token alias.
		{"tangy.com", Site{Host: "tangy.com", Schema: "[a-z]{6}"}},

		// No match at all: falls back to DefaultSchema with the token as host.
		{"nonesuch.com", Site{Host: "nonesuch.com", Schema: "[A-Za-z0-9]{16}"}},
	}
	for _, test := range tests {
		got, err := testConfig.Resolve(test.name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", test.name, err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Resolve %q differs from expected (-want, +got)\n%s", test.name, diff)
		}
	}
}

func TestResolveMatchesByCanonicalURL(t *testing.T) {
	got, err := testConfig.Resolve("https://tangy.com/")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Schema != "[a-z]{6}" {
		t.Errorf("Resolve by canonical URL: got schema %q, want [a-z]{6}", got.Schema)
	}
}

func TestSiteUnmarshalBareString(t *testing.T) {
	var c Config
	data := []byte("sites:\n  example.com: pin\n")
	if err := yaml.Unmarshal(data, &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := c.Sites["example.com"].Schema; got != "pin" {
		t.Errorf("bare-string site: got schema %q, want %q", got, "pin")
	}
}

func TestSiteUnmarshalMapping(t *testing.T) {
	var c Config
	data := []byte("sites:\n  example.com:\n    schema: \"[0-9]{4}\"\n    increment: 3\n")
	if err := yaml.Unmarshal(data, &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	site := c.Sites["example.com"]
	if site.Schema != "[0-9]{4}" || site.Increment != 3 {
		t.Errorf("mapping site: got %+v", site)
	}
}
