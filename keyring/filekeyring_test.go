package keyring

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dsbarlow/seedpass/zero"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	k := make([]byte, AccessKeyLen)
	for i := range k {
		k[i] = byte(i)
	}
	return k
}

func TestFileKeyringSetThenGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	kr, err := OpenFileKeyring(path, testKey())
	require.NoError(t, err)

	require.NoError(t, kr.Set("seedpass", "alice", zero.Bytes("correct horse battery staple")))

	got, err := kr.Get("seedpass", "alice")
	require.NoError(t, err)
	require.Equal(t, "correct horse battery staple", string(got))
}

func TestFileKeyringGetMissingReturnsErrNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	kr, err := OpenFileKeyring(path, testKey())
	require.NoError(t, err)

	_, err = kr.Get("seedpass", "nobody")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestFileKeyringPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	kr1, err := OpenFileKeyring(path, testKey())
	require.NoError(t, err)
	require.NoError(t, kr1.Set("seedpass", "bob", zero.Bytes("hunter2")))

	kr2, err := OpenFileKeyring(path, testKey())
	require.NoError(t, err)
	got, err := kr2.Get("seedpass", "bob")
	require.NoError(t, err)
	require.Equal(t, "hunter2", string(got))
}

func TestFileKeyringWrongAccessKeyFailsToDecrypt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	kr1, err := OpenFileKeyring(path, testKey())
	require.NoError(t, err)
	require.NoError(t, kr1.Set("seedpass", "carol", zero.Bytes("secret")))

	wrongKey := make([]byte, AccessKeyLen)
	kr2, err := OpenFileKeyring(path, wrongKey)
	require.NoError(t, err)
	_, err = kr2.Get("seedpass", "carol")
	require.Error(t, err)
}

func TestOpenFileKeyringRejectsWrongKeyLength(t *testing.T) {
	_, err := OpenFileKeyring("ignored", []byte("too-short"))
	require.Error(t, err)
}

func TestFileKeyringRejectsCiphertextMovedBetweenEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	key := testKey()
	kr, err := OpenFileKeyring(path, key)
	require.NoError(t, err)
	require.NoError(t, kr.Set("seedpass", "alice", zero.Bytes("alice's secret")))

	ff, err := kr.load()
	require.NoError(t, err)
	stolen := ff.Entries[entryKey("seedpass", "alice")]
	ff.Entries[entryKey("seedpass", "mallory")] = stolen
	require.NoError(t, kr.save(ff))

	_, err = kr.Get("seedpass", "mallory")
	require.Error(t, err)
}
