package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T, home string, err error) {
	t.Helper()
	orig := userHomeDir
	userHomeDir = func() (string, error) { return home, err }
	t.Cleanup(func() { userHomeDir = orig })
}

func TestLoadDefaults(t *testing.T) {
	withHome(t, "/home/alice", nil)

	var c Config
	c.LoadDefaults()

	want := Config{
		ServerAddress: "127.0.0.1:50051",
		SessionFile:   filepath.Join("/home/alice", ".onepass", "session"),
		Timeout:       10 * time.Second,
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaults_NoHome(t *testing.T) {
	withHome(t, "", errors.New("no home"))

	var c Config
	c.LoadDefaults()
	assert.Equal(t, ".onepass-session", c.SessionFile)
}

func TestLoad_NoFile(t *testing.T) {
	withHome(t, "/home/alice", nil)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerAddress)
}

func TestLoad_JSON(t *testing.T) {
	withHome(t, "/home/alice", nil)
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_address":"vault:50051","timeout":"3s"}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "vault:50051", cfg.ServerAddress)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, filepath.Join("/home/alice", ".onepass", "session"), cfg.SessionFile, "absent keys keep defaults")
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.toml")
	require.NoError(t, os.WriteFile(path, []byte("session_file = \"/tmp/s\"\ntimeout = \"1m\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/s", cfg.SessionFile)
	assert.Equal(t, time.Minute, cfg.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timeout":true}`), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
