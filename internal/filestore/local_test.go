package filestore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netly-app/netly/internal/config"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, SaveBytes(ctx, store, "portfolio_u1_2026-08-30.html", []byte("<html>r</html>")))

	rc, err := store.Open(ctx, "portfolio_u1_2026-08-30.html")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "<html>r</html>", string(data))
}

func TestLocalStoreRejectsPathKeys(t *testing.T) {
	store, err := New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.Error(t, SaveBytes(ctx, store, "../escape.html", []byte("x")))
	_, err = store.Open(ctx, "a/b.html")
	require.Error(t, err)
}

func TestNewUnknownType(t *testing.T) {
	_, err := New(config.FileStoreConfig{Type: "ftp"})
	require.Error(t, err)
}
