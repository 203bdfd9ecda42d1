package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/onepass/internal/logging"
	"github.com/dmitrijs2005/onepass/internal/server/backup"
	"github.com/dmitrijs2005/onepass/internal/server/config"
	"github.com/dmitrijs2005/onepass/internal/server/repositories/repomanager"
)

// NewBlobStore returns the archive store for the configured backup target.
func NewBlobStore(ctx context.Context, c *config.Config) (backup.BlobStore, error) {
	switch c.BackupTarget {
	case config.BackupTargetFile:
		return backup.NewFileStore(c.BackupDir)
	case config.BackupTargetS3:
		return backup.NewS3Store(ctx, backup.S3Options{
			Bucket:          c.S3Bucket,
			Prefix:          c.S3Prefix,
			Region:          c.S3Region,
			BaseEndpoint:    c.S3BaseEndpoint,
			AccessKeyID:     c.S3AccessKeyID,
			SecretAccessKey: c.S3SecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("unknown backup target %q", c.BackupTarget)
	}
}

// NewBackupService binds a backup service to db and the configured store.
func NewBackupService(ctx context.Context, c *config.Config, db *sql.DB, rm repomanager.RepositoryManager, l logging.Logger) (*backup.Service, error) {
	store, err := NewBlobStore(ctx, c)
	if err != nil {
		return nil, err
	}
	return backup.NewService(db, rm, store, l), nil
}
