// Package config loads the seedpass configuration file: a YAML document
// mapping site lookup tokens to their non-secret schema, increment, and
// username settings, with default-schema and alias support. Configuration
// loading is independent of the derivation engine itself, which accepts a
// fully resolved Site value.
package config

import (
	"cmp"
	"fmt"
	"os"

	"github.com/creachadair/mds/value"
	"github.com/dsbarlow/seedpass/urlcanon"
	"gopkg.in/yaml.v3"
)

// Config is the contents of a seedpass configuration file.
type Config struct {
	// DefaultSchema is used for any site with no schema of its own, and as
	// the final fallback in Resolve's lookup order.
	DefaultSchema string `yaml:"default_schema,omitempty"`

	// Aliases maps a short name (e.g. "pin") to a schema DSL source (e.g.
	// "[0-9]{8}"), so Sites can reference schemas by name.
	Aliases map[string]string `yaml:"aliases,omitempty"`

	// Sites maps a lookup token (typically a bare host name) to that
	// site's configuration.
	Sites map[string]Site `yaml:"sites,omitempty"`

	// WordsPath, if set, names a word list file to use in place of the
	// embedded default (wordlist.LoadFile).
	WordsPath string `yaml:"words_path,omitempty"`

	// UseKeyring selects whether the seed is read from a keyring.Keyring
	// instead of prompted for interactively.
	UseKeyring bool `yaml:"use_keyring,omitempty"`
}

// Site is the non-secret configuration for a single site. A YAML value for
// a site may be a bare string, taken as Schema (or an alias name), or a
// full mapping; see UnmarshalYAML.
type Site struct {
	Host      string `yaml:"host,omitempty"`
	Schema    string `yaml:"schema,omitempty"`
	Increment uint64 `yaml:"increment,omitempty"`
	Username  string `yaml:"username,omitempty"`
}

// UnmarshalYAML lets a site entry be written as a bare schema/alias string
// ("pin") or as a full mapping ({schema: pin, increment: 1}).
func (s *Site) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Schema = node.Value
		return nil
	}
	type siteAlias Site
	var a siteAlias
	if err := node.Decode(&a); err != nil {
		return err
	}
	*s = Site(a)
	return nil
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &c, nil
}

// Resolve looks up token against the configuration in order: (1) an exact
// match on token among the Sites keys; (2) a match on the canonicalized
// URL; (3) a fallback Site built from DefaultSchema with increment 0 and no
// username, using token as the host.
func (c *Config) Resolve(token string) (Site, error) {
	if s, ok := c.Sites[token]; ok {
		return c.finalize(s, token), nil
	}

	canonToken, err := urlcanon.Canonicalize(token, "")
	if err != nil {
		return Site{}, fmt.Errorf("config: resolving %q: %w", token, err)
	}
	for key, s := range c.Sites {
		host := cmp.Or(s.Host, key)
		canonSite, err := urlcanon.Canonicalize(host, s.Username)
		if err != nil {
			continue
		}
		if canonSite == canonToken {
			return c.finalize(s, key), nil
		}
	}

	return c.finalize(Site{Host: token}, token), nil
}

// finalize fills a resolved Site's empty fields from defaults and expands
// a schema name through the alias table.
func (c *Config) finalize(s Site, key string) Site {
	if s.Host == "" {
		s.Host = key
	}
	s.Schema = cmp.Or(s.Schema, c.DefaultSchema)
	if expanded, ok := c.Aliases[s.Schema]; ok {
		s.Schema = expanded
	}
	return s
}

// WordsPath reports the configured word list path, or "" to select the
// embedded default. c may be nil, per the creachadair/mds value.At
// nil-safe-defaulting idiom kflib.go uses throughout its config resolution.
func WordsPath(c *Config) string {
	return value.At(c).WordsPath
}
