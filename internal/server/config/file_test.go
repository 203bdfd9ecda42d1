package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseFile_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"grpc_address":          "www.example:9000",
		"http_address":          "",
		"database_dsn":          "sqlite://vault.db",
		"session_ttl":           "15m",
		"kdf_iterations":        150000,
		"login_rate_per_minute": 0,
		"pwned_check":           false,
		"pwned_timeout":         float64(2 * time.Second),
		"backup_target":         "s3",
		"s3_access_key_id":      "user",
		"s3_secret_access_key":  "password",
		"s3_bucket":             "bucket",
		"s3_region":             "region",
		"s3_base_endpoint":      "base_endpoint",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseFile(cfg, []string{"-config", pathFlag}))

		assert.Equal(t, "www.example:9000", cfg.GRPCAddress)
		assert.Equal(t, "", cfg.HTTPAddress, "explicit empty string disables HTTP")
		assert.Equal(t, "sqlite://vault.db", cfg.DatabaseDSN)
		assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
		assert.Equal(t, 150000, cfg.KDFIterations)
		assert.Equal(t, 0, cfg.LoginRatePerMinute)
		assert.Equal(t, 5, cfg.LoginBurst, "absent value keeps default")
		assert.False(t, cfg.PwnedCheck)
		assert.Equal(t, 2*time.Second, cfg.PwnedTimeout)
		assert.Equal(t, BackupTargetS3, cfg.BackupTarget)
		assert.Equal(t, "user", cfg.S3AccessKeyID)
		assert.Equal(t, "password", cfg.S3SecretAccessKey)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := &Config{GRPCAddress: "defaults:1234", DatabaseDSN: "sqlite://x.db", SessionTTL: 2 * time.Minute}
		require.NoError(t, parseFile(cfg, []string{"-a", ":1"}))

		assert.Equal(t, "defaults:1234", cfg.GRPCAddress)
		assert.Equal(t, "sqlite://x.db", cfg.DatabaseDSN)
		assert.Equal(t, 2*time.Minute, cfg.SessionTTL)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseFile(&Config{}, []string{"-config", bad}))
	})

	t.Run("missing file → error", func(t *testing.T) {
		require.Error(t, parseFile(&Config{}, []string{"-c", filepath.Join(dir, "missing.json")}))
	})
}

func Test_parseFile_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
grpc_address = ":6001"
database_dsn = "postgres://u:p@localhost/onepass"
session_ttl = "1h"
pwned_check = false
common_passwords_file = "/etc/onepass/common.txt"
backup_recipient = "age1qqq"
`), 0o600))

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseFile(cfg, []string{"-c", path}))

	assert.Equal(t, ":6001", cfg.GRPCAddress)
	assert.Equal(t, "postgres://u:p@localhost/onepass", cfg.DatabaseDSN)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.PwnedCheck)
	assert.Equal(t, "/etc/onepass/common.txt", cfg.CommonPasswordsFile)
	assert.Equal(t, "age1qqq", cfg.BackupRecipient)
	assert.Equal(t, ":8080", cfg.HTTPAddress)
}

func Test_parseFile_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte("session_ttl = \"forever\"\n"), 0o600))

	require.Error(t, parseFile(&Config{}, []string{"-c", path}))
}
