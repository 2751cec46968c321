// Program seedpass is a command-line tool for the seedpass deterministic
// password generator.
package main

import (
	"os"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"

	"github.com/dsbarlow/seedpass/cmd/seedpass/internal/config"
)

func main() {
	var flags struct {
		ConfigPath  string `flag:"config,default=$SEEDPASS_CONFIG,Configuration file path"`
		KeyringPath string `flag:"keyring-path,default=$SEEDPASS_KEYRING,File keyring path"`
	}
	root := &command.C{
		Name: command.ProgramName(),
		Help: `A command-line tool for the seedpass password generator.

seedpass derives a password from a seed phrase and a site schema; it
stores no secrets of its own. Use --config to point at a site
configuration file, or set the SEEDPASS_CONFIG environment variable.`,

		SetFlags: command.Flags(flax.MustBind, &flags),

		Init: func(env *command.Env) error {
			env.Config = &config.Settings{
				ConfigPath:  flags.ConfigPath,
				KeyringPath: flags.KeyringPath,
			}
			return nil
		},

		Commands: append(
			Commands,
			command.HelpCommand([]command.HelpTopic{{
				Name: "schema",
				Help: `Syntax of schema strings.

A schema is a small regex-like grammar: literal text, character classes
([a-z0-9], or named classes inside brackets such as [[:alnum:]]), the
word class ([:word:] or
[:Word:] for title case), groups in parentheses, and a fixed repeat
count in braces, e.g. "[:Word:]{5}" or "[A-Za-z0-9]{16}". There is no
alternation, *, +, ?, or {m,n} range: every schema has an exact,
finite number of possible outputs.`,
			}}),
			command.VersionCommand(),
		),
	}
	command.RunOrFail(root.NewEnv(nil).MergeFlags(true), os.Args[1:])
}
