package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"filippo.io/age"
	"github.com/dmitrijs2005/onepass/internal/dbx"
	"github.com/dmitrijs2005/onepass/internal/logging"
	"github.com/dmitrijs2005/onepass/internal/server/repositories/repomanager"
)

var (
	// ErrNotEmpty is returned by Restore when the target already has users.
	ErrNotEmpty = errors.New("database is not empty")
	// ErrNoBackups is returned when the store holds no archive to restore.
	ErrNoBackups = errors.New("no backups found")
)

// maxArchiveSize bounds how much decrypted data Restore reads.
const maxArchiveSize = 1 << 30

// Stats counts the rows a dump or restore touched.
type Stats struct {
	Name    string
	Users   int
	Entries int
}

type Service struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       BlobStore
	logger      logging.Logger
	now         func() time.Time
}

func NewService(db *sql.DB, m repomanager.RepositoryManager, store BlobStore, l logging.Logger) *Service {
	if l == nil {
		l = logging.Nop{}
	}
	return &Service{
		db:          db,
		repomanager: m,
		store:       store,
		logger:      l.With("module", "backup"),
		now:         time.Now,
	}
}

// Dump snapshots both tables in one read transaction, encrypts the archive
// to recipient and stores it under a timestamped name.
func (s *Service) Dump(ctx context.Context, recipient age.Recipient) (*Stats, error) {
	createdAt := s.now().UTC()
	archive := Archive{
		Version:   FormatVersion,
		CreatedAt: createdAt,
		Users:     []UserRecord{},
		Entries:   []EntryRecord{},
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users, err := s.repomanager.Users(tx).All(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			archive.Users = append(archive.Users, userRecord(u))
		}

		entries, err := s.repomanager.Entries(tx).All(ctx)
		if err != nil {
			return err
		}
		for _, e := range entries {
			archive.Entries = append(archive.Entries, entryRecord(e))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading tables: %w", err)
	}

	plaintext, err := json.Marshal(archive)
	if err != nil {
		return nil, fmt.Errorf("encoding archive: %w", err)
	}

	sealed, err := encrypt(plaintext, recipient)
	if err != nil {
		return nil, err
	}

	name := ArchiveName(createdAt)
	if err := s.store.Put(ctx, name, sealed); err != nil {
		return nil, fmt.Errorf("storing %s: %w", name, err)
	}

	s.logger.Info(ctx, "backup written", "name", name, "users", len(archive.Users), "entries", len(archive.Entries))
	return &Stats{Name: name, Users: len(archive.Users), Entries: len(archive.Entries)}, nil
}

// Latest returns the name of the newest archive in the store.
func (s *Service) Latest(ctx context.Context) (string, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", ErrNoBackups
	}
	return names[len(names)-1], nil
}

// Restore decrypts archive name (the newest one when name is empty) and
// inserts its rows. The database must have no users. Entry ids are assigned
// afresh by the database.
func (s *Service) Restore(ctx context.Context, name string, identities ...age.Identity) (*Stats, error) {
	if name == "" {
		latest, err := s.Latest(ctx)
		if err != nil {
			return nil, err
		}
		name = latest
	}

	archive, err := s.read(ctx, name, identities)
	if err != nil {
		return nil, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repomanager.Users(tx)
		existing, err := users.All(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrNotEmpty
		}

		for _, u := range archive.Users {
			if _, err := users.Create(ctx, u.model()); err != nil {
				return fmt.Errorf("user %s: %w", u.ID, err)
			}
		}

		entries := s.repomanager.Entries(tx)
		for _, e := range archive.Entries {
			if _, err := entries.Create(ctx, e.model()); err != nil {
				return fmt.Errorf("entry %d: %w", e.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "backup restored", "name", name, "users", len(archive.Users), "entries", len(archive.Entries))
	return &Stats{Name: name, Users: len(archive.Users), Entries: len(archive.Entries)}, nil
}

func (s *Service) read(ctx context.Context, name string, identities []age.Identity) (*Archive, error) {
	rc, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	defer rc.Close()

	r, err := age.Decrypt(rc, identities...)
	if err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", name, err)
	}

	var archive Archive
	if err := json.NewDecoder(io.LimitReader(r, maxArchiveSize)).Decode(&archive); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	if archive.Version != FormatVersion {
		return nil, fmt.Errorf("%s: unsupported archive version %d", name, archive.Version)
	}
	return &archive, nil
}
