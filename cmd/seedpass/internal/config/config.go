// Package config contains shared settings for seedpass subcommands.
//
// Grounded on cmd/kf/config/config.go's Settings/LoadDB/DBPath shape,
// adapted from "open an encrypted database" to "load a seedpass.Config and
// optionally open a file keyring" since there is no database in this tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/creachadair/command"
	"github.com/dsbarlow/seedpass/config"
	"github.com/dsbarlow/seedpass/keyring"
)

// Settings are shared settings used by seedpass subcommands.
type Settings struct {
	ConfigPath  string
	KeyringPath string
}

// ConfigPath returns the configuration file path associated with env,
// expanding a leading "$0" to the directory of the running executable.
func ConfigPath(env *command.Env) string {
	set := env.Config.(*Settings)
	if tail, ok := strings.CutPrefix(set.ConfigPath, "$0"); ok {
		ep, err := os.Executable()
		if err == nil {
			return filepath.Join(filepath.Dir(ep), tail)
		}
	}
	return set.ConfigPath
}

// LoadConfig reads the configuration file specified by env's ConfigPath
// setting. A missing file is not an error; it yields an empty Config so a
// bare schema can still be passed on the command line.
func LoadConfig(env *command.Env) (*config.Config, error) {
	path := ConfigPath(env)
	if path == "" {
		return &config.Config{}, nil
	}
	c, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return &config.Config{}, nil
	}
	return c, err
}

// OpenKeyring opens the file keyring at env's KeyringPath setting, using
// accessKey to decrypt its entries.
func OpenKeyring(env *command.Env, accessKey []byte) (*keyring.FileKeyring, error) {
	set := env.Config.(*Settings)
	if set.KeyringPath == "" {
		return nil, fmt.Errorf("no keyring path specified (provide --keyring-path or set SEEDPASS_KEYRING)")
	}
	return keyring.OpenFileKeyring(set.KeyringPath, accessKey)
}
