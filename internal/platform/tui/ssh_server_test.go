package tui

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/vovakirdan/blockfall/internal/games/sprint"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func testServerConfig(t *testing.T) SSHServerConfig {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "records.db")
	cfg.Logger = log.New(io.Discard)
	return cfg
}

func TestNewSSHServerUnknownGame(t *testing.T) {
	cfg := testServerConfig(t)
	cfg.GameID = "tetris99"

	_, err := NewSSHServer(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, registry.ErrUnknownGame))
}

func TestNewSSHServer(t *testing.T) {
	cfg := testServerConfig(t)

	srv, err := NewSSHServer(cfg)
	require.NoError(t, err)
	require.NotNil(t, srv.store)
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
	assert.NoError(t, srv.Shutdown())
}
