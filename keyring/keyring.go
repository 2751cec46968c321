// Package keyring defines a get/set boundary for seed storage, with OS
// keychain integration left out of scope. This package adds one portable,
// concrete implementation (an encrypted file) so use_keyring: true has
// something to exercise.
package keyring

import (
	"errors"

	"github.com/dsbarlow/seedpass/zero"
)

// ErrNotFound is returned by Get when no entry exists for the given
// service and account.
var ErrNotFound = errors.New("keyring: no entry for service/account")

// Keyring stores and retrieves secret byte strings by service and account,
// mirroring the shape of the OS keychain APIs (Keychain Services, Secret
// Service, Credential Manager) that a platform-specific implementation
// would wrap, without requiring one.
type Keyring interface {
	// Get retrieves the secret for service/account, or ErrNotFound.
	Get(service, account string) (zero.Bytes, error)

	// Set stores secret for service/account, replacing any existing entry.
	Set(service, account string, secret zero.Bytes) error
}
