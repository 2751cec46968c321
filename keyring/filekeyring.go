package keyring

import (
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/creachadair/atomicfile"
	"github.com/dsbarlow/seedpass/zero"
	"golang.org/x/crypto/chacha20poly1305"
)

// AccessKeyLen is the required length in bytes of a FileKeyring access key.
const AccessKeyLen = chacha20poly1305.KeySize

// FileKeyring is a Keyring backed by a single flat file on disk, whose
// entries are individually encrypted with XChaCha20-Poly1305. Each entry's
// service/account key is bound into the ciphertext as authenticated
// associated data, so a ciphertext copied from one entry's slot to another
// fails to decrypt rather than silently producing the wrong secret. Writes
// go through creachadair/atomicfile for crash-safe replacement.
type FileKeyring struct {
	path string
	key  []byte // AccessKeyLen bytes

	mu sync.Mutex
}

// OpenFileKeyring returns a FileKeyring backed by path, encrypting and
// decrypting entries with accessKey. path need not exist yet; it is
// created on the first Set.
func OpenFileKeyring(path string, accessKey []byte) (*FileKeyring, error) {
	if len(accessKey) != AccessKeyLen {
		return nil, fmt.Errorf("keyring: access key must be %d bytes, got %d", AccessKeyLen, len(accessKey))
	}
	return &FileKeyring{path: path, key: accessKey}, nil
}

type fileEntry struct {
	Ciphertext []byte `json:"ciphertext"`
}

type fileFormat struct {
	Entries map[string]fileEntry `json:"entries"`
}

func entryKey(service, account string) string { return service + "\x00" + account }

func (f *FileKeyring) load() (fileFormat, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return fileFormat{Entries: map[string]fileEntry{}}, nil
	}
	if err != nil {
		return fileFormat{}, fmt.Errorf("keyring: reading %s: %w", f.path, err)
	}
	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		return fileFormat{}, fmt.Errorf("keyring: parsing %s: %w", f.path, err)
	}
	if ff.Entries == nil {
		ff.Entries = map[string]fileEntry{}
	}
	return ff, nil
}

func (f *FileKeyring) save(ff fileFormat) error {
	data, err := json.Marshal(ff)
	if err != nil {
		return fmt.Errorf("keyring: encoding: %w", err)
	}
	return atomicfile.Tx(f.path, 0600, func(af io.Writer) error {
		_, err := af.Write(data)
		return err
	})
}

// Get retrieves and decrypts the entry for service/account.
func (f *FileKeyring) Get(service, account string) (zero.Bytes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ff, err := f.load()
	if err != nil {
		return nil, err
	}
	entry, ok := ff.Entries[entryKey(service, account)]
	if !ok {
		return nil, ErrNotFound
	}
	plain, err := openEntry(f.key, service, account, entry.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("keyring: decrypting entry: %w", err)
	}
	return plain, nil
}

// Set encrypts and stores secret for service/account, replacing any
// existing entry.
func (f *FileKeyring) Set(service, account string, secret zero.Bytes) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ff, err := f.load()
	if err != nil {
		return err
	}
	ct, err := sealEntry(f.key, service, account, secret)
	if err != nil {
		return fmt.Errorf("keyring: encrypting entry: %w", err)
	}
	ff.Entries[entryKey(service, account)] = fileEntry{Ciphertext: ct}
	return f.save(ff)
}

// openEntry decrypts ciphertext for the named entry, requiring it to carry
// that same service/account pair as authenticated associated data.
func openEntry(key []byte, service, account string, ciphertext []byte) (zero.Bytes, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("initialize decryption key: %w", err)
	}
	if len(ciphertext) < aead.NonceSize() {
		return nil, errors.New("malformed entry: short nonce")
	}
	nonce, ctext := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ctext, []byte(entryKey(service, account)))
	if err != nil {
		return nil, err
	}
	return zero.Bytes(plain), nil
}

// sealEntry encrypts secret for the named entry, binding service/account
// into the ciphertext as authenticated associated data.
func sealEntry(key []byte, service, account string, secret zero.Bytes) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("initialize encryption key: %w", err)
	}
	buf := make([]byte, aead.NonceSize(), aead.NonceSize()+len(secret)+aead.Overhead())
	if _, err := crand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return aead.Seal(buf, buf, secret, []byte(entryKey(service, account))), nil
}
