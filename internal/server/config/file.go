package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/onepass/internal/flagx"
	"github.com/dmitrijs2005/onepass/internal/timex"
)

// FileConfig is the on-disk shape of the configuration. Duration fields
// use timex.Duration so both "30m" and integer nanoseconds are accepted.
// Pointer fields distinguish "absent" from an explicit zero or false.
type FileConfig struct {
	GRPCAddress         string         `json:"grpc_address"          toml:"grpc_address"`
	HTTPAddress         *string        `json:"http_address"          toml:"http_address"`
	DatabaseDSN         string         `json:"database_dsn"          toml:"database_dsn"`
	SessionTTL          timex.Duration `json:"session_ttl"           toml:"session_ttl"`
	KDFIterations       int            `json:"kdf_iterations"        toml:"kdf_iterations"`
	LoginRatePerMinute  *int           `json:"login_rate_per_minute" toml:"login_rate_per_minute"`
	LoginBurst          *int           `json:"login_burst"           toml:"login_burst"`
	CommonPasswordsFile string         `json:"common_passwords_file" toml:"common_passwords_file"`
	PwnedCheck          *bool          `json:"pwned_check"           toml:"pwned_check"`
	PwnedURL            string         `json:"pwned_url"             toml:"pwned_url"`
	PwnedTimeout        timex.Duration `json:"pwned_timeout"         toml:"pwned_timeout"`
	LogLevel            string         `json:"log_level"             toml:"log_level"`
	LogFormat           string         `json:"log_format"            toml:"log_format"`
	BackupTarget        string         `json:"backup_target"         toml:"backup_target"`
	BackupDir           string         `json:"backup_dir"            toml:"backup_dir"`
	BackupRecipient     string         `json:"backup_recipient"      toml:"backup_recipient"`
	BackupIdentityFile  string         `json:"backup_identity_file"  toml:"backup_identity_file"`
	S3AccessKeyID       string         `json:"s3_access_key_id"      toml:"s3_access_key_id"`
	S3SecretAccessKey   string         `json:"s3_secret_access_key"  toml:"s3_secret_access_key"`
	S3Bucket            string         `json:"s3_bucket"             toml:"s3_bucket"`
	S3Prefix            string         `json:"s3_prefix"             toml:"s3_prefix"`
	S3Region            string         `json:"s3_region"             toml:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint"      toml:"s3_base_endpoint"`
}

// parseFile overlays the file named by -c/-config onto config. The format
// follows the extension: .toml is TOML, anything else JSON. Values absent
// from the file keep what config already holds.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)

	// nothing to load
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &FileConfig{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parse toml config %s: %w", path, err)
		}
	} else if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse json config %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.GRPCAddress, c.GRPCAddress)
	if c.HTTPAddress != nil {
		config.HTTPAddress = *c.HTTPAddress
	}
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	if c.SessionTTL.Duration != 0 {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.KDFIterations != 0 {
		config.KDFIterations = c.KDFIterations
	}
	if c.LoginRatePerMinute != nil {
		config.LoginRatePerMinute = *c.LoginRatePerMinute
	}
	if c.LoginBurst != nil {
		config.LoginBurst = *c.LoginBurst
	}
	setString(&config.CommonPasswordsFile, c.CommonPasswordsFile)
	if c.PwnedCheck != nil {
		config.PwnedCheck = *c.PwnedCheck
	}
	setString(&config.PwnedURL, c.PwnedURL)
	if c.PwnedTimeout.Duration != 0 {
		config.PwnedTimeout = c.PwnedTimeout.Duration
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.BackupTarget, c.BackupTarget)
	setString(&config.BackupDir, c.BackupDir)
	setString(&config.BackupRecipient, c.BackupRecipient)
	setString(&config.BackupIdentityFile, c.BackupIdentityFile)
	setString(&config.S3AccessKeyID, c.S3AccessKeyID)
	setString(&config.S3SecretAccessKey, c.S3SecretAccessKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Prefix, c.S3Prefix)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
