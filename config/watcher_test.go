package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seedpass.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_schema: '[0-9]{4}'\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	w, err := NewWatcher(cfg, path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.Equal(t, "[0-9]{4}", w.Config().DefaultSchema)

	require.NoError(t, os.WriteFile(path, []byte("default_schema: '[a-z]{8}'\n"), 0644))

	require.Eventually(t, func() bool {
		return w.Config().DefaultSchema == "[a-z]{8}"
	}, 2*time.Second, 10*time.Millisecond)
}
