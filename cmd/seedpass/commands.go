package main

import (
	"fmt"
	"os"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/getpass"
	"golang.org/x/term"

	"github.com/dsbarlow/seedpass"
	"github.com/dsbarlow/seedpass/clipboard"
	"github.com/dsbarlow/seedpass/cmd/seedpass/internal/config"
	"github.com/dsbarlow/seedpass/cmd/seedpass/internal/tui"
	seedcfg "github.com/dsbarlow/seedpass/config"
	"github.com/dsbarlow/seedpass/kdf"
	"github.com/dsbarlow/seedpass/schema"
	"github.com/dsbarlow/seedpass/wordhash"
	"github.com/dsbarlow/seedpass/wordlist"
	"github.com/dsbarlow/seedpass/zero"
)

// Commands is the seedpass subcommand tree, grounded on cmd/kf's
// Commands-slice-plus-Run-callback pattern.
var Commands = []*command.C{
	{
		Name:  "generate",
		Usage: "[site]",
		Help: `Derive and print the password for a site.

If site is omitted and stdin is a terminal, an interactive picker lists
the sites known to the configuration file.`,
		SetFlags: command.Flags(flax.MustBind, &genFlags),
		Run:      command.Adapt(runGenerate),
	},
	{
		Name:  "keyring",
		Usage: "set <site>",
		Help:  "Store the seed phrase for a site in the file keyring.",
		Commands: []*command.C{
			{
				Name:  "set",
				Usage: "<site>",
				Help:  "Prompt for a seed phrase and store it under <site>.",
				Run:   command.Adapt(runKeyringSet),
			},
		},
	},
}

var genFlags struct {
	Schema    string `flag:"s,Override the site's configured schema"`
	Increment uint64 `flag:"i,Override the site's configured increment"`
	Username  string `flag:"u,Override the site's configured username"`
	WordsPath string `flag:"words,Path to an external word list"`
	Keyring   bool   `flag:"k,Read the seed phrase from the file keyring instead of prompting"`
	Verbose   bool   `flag:"v,Report the schema cardinality and its entropy in bits"`
	Copy      bool   `flag:"copy,Copy the password to the clipboard instead of printing it"`
}

// runGenerate implements the "generate" subcommand.
func runGenerate(env *command.Env, optSite ...string) error {
	if len(optSite) > 1 {
		return env.Usagef("extra arguments after site: %q", optSite[1:])
	}
	cfg, err := config.LoadConfig(env)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	site := ""
	if len(optSite) == 1 {
		site = optSite[0]
	} else {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return env.Usagef("site is required when stdin is not a terminal")
		}
		sites := make([]string, 0, len(cfg.Sites))
		for token := range cfg.Sites {
			sites = append(sites, token)
		}
		site, err = tui.Pick(sites)
		if err != nil {
			return fmt.Errorf("picking a site: %w", err)
		}
	}

	resolved, err := cfg.Resolve(site)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", site, err)
	}
	if genFlags.Schema != "" {
		resolved.Schema = genFlags.Schema
	}
	if genFlags.Increment != 0 {
		resolved.Increment = genFlags.Increment
	}
	if genFlags.Username != "" {
		resolved.Username = genFlags.Username
	}
	if resolved.Schema == "" {
		return env.Usagef("no schema configured for %q; pass -s or set default_schema", site)
	}

	words, err := loadWords(cfg, genFlags.WordsPath)
	if err != nil {
		return err
	}

	seed, err := acquireSeed(env, site, genFlags.Keyring || cfg.UseKeyring)
	if err != nil {
		return fmt.Errorf("acquiring seed: %w", err)
	}

	result, err := seedpass.Generate(seedpass.Request{
		Seed:      seed,
		Increment: resolved.Increment,
		SiteURL:   resolved.Host,
		Username:  resolved.Username,
		Schema:    resolved.Schema,
		Words:     words,
	})
	if err != nil {
		return err
	}

	out := result.Password
	if genFlags.Copy {
		if err := clipboard.WriteString(result.Password); err != nil {
			return fmt.Errorf("copying password: %w", err)
		}
		out = wordhash.New(result.Password)
	}
	fmt.Fprintln(env, out)
	if genFlags.Verbose {
		fmt.Fprintf(env, "site: %s\n", result.CanonicalURL)
		if ast, err := schema.Parse(resolved.Schema); err == nil {
			if n, err := ast.Size(words); err == nil {
				fmt.Fprintf(env, "cardinality: %s\n", n)
			}
		}
		fmt.Fprintf(env, "entropy: %.2f bits\n", result.Bits)
	}
	return nil
}

// loadWords returns the word list consulted by [:word:] schema classes: the
// path given on the command line, falling back to the configuration file's
// words_path, falling back to the embedded default.
func loadWords(cfg *seedcfg.Config, flagPath string) (schema.Words, error) {
	path := flagPath
	if path == "" {
		path = seedcfg.WordsPath(cfg)
	}
	if path == "" {
		return wordlist.Default()
	}
	return wordlist.LoadFile(path)
}

// acquireSeed reads the seed phrase either from the file keyring (when
// useKeyring is set, by -k or the configuration's use_keyring) or by
// prompting at the terminal with echo disabled.
func acquireSeed(env *command.Env, site string, useKeyring bool) (zero.Bytes, error) {
	if useKeyring {
		return seedFromKeyring(env, site)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("stdin is not a terminal; use -k to read the seed from the keyring instead")
	}
	phrase, err := getpass.Prompt("Seed phrase: ")
	if err != nil {
		return nil, err
	}
	return zero.String(phrase).Bytes(), nil
}

func seedFromKeyring(env *command.Env, site string) (zero.Bytes, error) {
	accessKey, err := keyringAccessKey()
	if err != nil {
		return nil, err
	}
	defer accessKey.Wipe()

	kr, err := config.OpenKeyring(env, accessKey)
	if err != nil {
		return nil, err
	}
	return kr.Get("seedpass", site)
}

// runKeyringSet implements "seedpass keyring set".
func runKeyringSet(env *command.Env, site string) error {
	accessKey, err := keyringAccessKey()
	if err != nil {
		return err
	}
	defer accessKey.Wipe()

	kr, err := config.OpenKeyring(env, accessKey)
	if err != nil {
		return err
	}

	phrase, err := getpass.Prompt("Seed phrase to store: ")
	if err != nil {
		return err
	}
	confirm, err := getpass.Prompt("Confirm seed phrase: ")
	if err != nil {
		return err
	}
	if confirm != phrase {
		return fmt.Errorf("seed phrases do not match")
	}

	if err := kr.Set("seedpass", site, zero.String(phrase).Bytes()); err != nil {
		return err
	}
	fmt.Fprintln(env, "<stored>")
	return nil
}

// keyringAccessKey derives a 32-byte access key for the file keyring from a
// passphrase prompted at the terminal, using the same Argon2id derivation
// the core driver uses for seed material, under a fixed, non-secret salt
// distinguishing it from any site-derived salt.
func keyringAccessKey() (zero.Bytes, error) {
	phrase, err := getpass.Prompt("Keyring passphrase: ")
	if err != nil {
		return nil, err
	}
	seed := zero.String(phrase).Bytes()
	defer seed.Wipe()
	return kdf.DeriveKey(seed, []byte("seedpass-keyring-access"), kdf.Default()), nil
}
