// Package config handles configuration for the server component,
// including defaults, a JSON or TOML file overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/onepass/internal/cryptox"
)

// Backup targets.
const (
	BackupTargetFile = "file"
	BackupTargetS3   = "s3"
)

// Config holds runtime settings for the Onepass server.
//
// Fields:
//   - GRPCAddress / HTTPAddress: bind addresses; an empty HTTPAddress disables the JSON API.
//   - DatabaseDSN: postgres://... or sqlite://path.
//   - SessionTTL: fixed lifetime of a login session.
//   - KDFIterations: PBKDF2 rounds for new and changed master passwords.
//   - LoginRatePerMinute / LoginBurst: per-client throttle on login and registration.
//   - CommonPasswordsFile, PwnedCheck, PwnedURL, PwnedTimeout: password advisor sources.
//   - LogLevel / LogFormat: slog handler settings.
//   - Backup*: where encrypted dumps go and which age keys seal and open them.
//   - S3*: object storage settings for the s3 backup target.
type Config struct {
	GRPCAddress   string
	HTTPAddress   string
	DatabaseDSN   string
	SessionTTL    time.Duration
	KDFIterations int

	LoginRatePerMinute int
	LoginBurst         int

	CommonPasswordsFile string
	PwnedCheck          bool
	PwnedURL            string
	PwnedTimeout        time.Duration

	LogLevel  string
	LogFormat string

	BackupTarget       string
	BackupDir          string
	BackupRecipient    string
	BackupIdentityFile string

	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Bucket          string
	S3Prefix          string
	S3Region          string
	S3BaseEndpoint    string
}

// LoadDefaults populates Config with development defaults: a local SQLite
// file and both listeners on their usual ports.
func (c *Config) LoadDefaults() {
	c.GRPCAddress = ":50051"
	c.HTTPAddress = ":8080"
	c.DatabaseDSN = "sqlite://onepass.db"
	c.SessionTTL = 30 * time.Minute
	c.KDFIterations = cryptox.DefaultIterations
	c.LoginRatePerMinute = 10
	c.LoginBurst = 5
	c.PwnedCheck = true
	c.PwnedURL = "https://api.pwnedpasswords.com"
	c.PwnedTimeout = 5 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.BackupTarget = BackupTargetFile
	c.BackupDir = "backups"
	c.S3Region = "us-east-1"
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.GRPCAddress == "" {
		errs = append(errs, errors.New("grpc address is empty"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database dsn is empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL))
	}
	if c.KDFIterations < cryptox.MinIterations {
		errs = append(errs, fmt.Errorf("kdf iterations must be at least %d, got %d", cryptox.MinIterations, c.KDFIterations))
	}
	if c.LoginRatePerMinute < 0 || c.LoginBurst < 0 {
		errs = append(errs, errors.New("login rate limit must not be negative"))
	}
	switch c.BackupTarget {
	case BackupTargetFile:
	case BackupTargetS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("s3 backup target needs a bucket"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backup target %q", c.BackupTarget))
	}
	return errors.Join(errs...)
}

// Load builds a Config from args: defaults first, then the file named by
// -c/-config, then short flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
