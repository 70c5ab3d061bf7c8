package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveHostKeyCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "nested", "host_key")

	got, err := resolveHostKey(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResolveHostKeyDefaultsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolveHostKey("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".boxsim", "host_key"), got)
}

func TestNewSSHServerFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(dir, "host_key"),
		RecordsPath: filepath.Join(dir, "boxsim.db"),
		IdleTimeout: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(srv.closeRecords)

	assert.Equal(t, "127.0.0.1:0", srv.Addr())
	assert.Equal(t, defaultTickRate, srv.config.TickRate)
	assert.Equal(t, 10*time.Second, srv.config.ShutdownGrace)
	assert.NotNil(t, srv.records)
}

func TestNewSSHServerRunsWithoutRecords(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(dir, "host_key"),
		RecordsPath: filepath.Join(blocker, "boxsim.db"),
		TickRate:    30,
	})
	require.NoError(t, err)
	assert.Nil(t, srv.records)
	assert.Equal(t, 30, srv.config.TickRate)
}
