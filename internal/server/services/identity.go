// Package services contains server-side business logic. IdentityService owns
// master-password accounts and the envelope around each user's secret key;
// VaultService encrypts and decrypts vault entries with that key; Keeper
// ties both to the session table and is what the transports call.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/onepass/internal/common"
	"github.com/dmitrijs2005/onepass/internal/cryptox"
	"github.com/dmitrijs2005/onepass/internal/dbx"
	"github.com/dmitrijs2005/onepass/internal/server/config"
	"github.com/dmitrijs2005/onepass/internal/server/models"
	"github.com/dmitrijs2005/onepass/internal/server/repositories/repomanager"
)

// IdentityService provides account operations:
//   - Register: create a user with a freshly wrapped secret key
//   - Authenticate: prove the master password by unwrapping that key
//   - ChangeMasterPassword: re-wrap the same key under a new password
//   - Delete: drop the user and every entry they own
type IdentityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	iterations  int
}

// NewIdentityService constructs an IdentityService using repositories and server config.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *IdentityService {
	iterations := cfg.KDFIterations
	if iterations <= 0 {
		iterations = cryptox.DefaultIterations
	}
	return &IdentityService{
		db:          db,
		repomanager: m,
		iterations:  iterations,
	}
}

// Register creates user username and returns its id.
func (s *IdentityService) Register(ctx context.Context, username string, password []byte) (string, error) {
	if err := ValidateUsername(username); err != nil {
		return "", err
	}
	if len(password) == 0 {
		return "", common.MissingField("password")
	}

	repo := s.repomanager.Users(s.db)

	// checked up front to skip the key derivation for names already taken;
	// the unique constraint still decides races
	if _, err := repo.GetUserByLogin(ctx, username); err == nil {
		return "", common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("error looking up user: %w", err)
	}

	salt := cryptox.GenerateSalt()
	secretKey := cryptox.GenerateSecretKey()
	defer common.WipeByteArray(secretKey)

	derived := cryptox.DeriveKey(password, salt, s.iterations)
	defer common.WipeByteArray(derived)

	wrapped, err := cryptox.Wrap(derived, secretKey, cryptox.AADUserKey)
	if err != nil {
		return "", fmt.Errorf("error wrapping key: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{
		UserName:   username,
		Salt:       salt,
		WrappedKey: wrapped,
		Iterations: s.iterations,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrUsernameTaken
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return user.ID, nil
}

// Authenticate checks password against username and returns the unwrapped
// identity. The caller owns Identity.SecretKey and should wipe it when done.
func (s *IdentityService) Authenticate(ctx context.Context, username string, password []byte) (*models.Identity, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	secretKey, err := s.unwrap(user, password)
	if err != nil {
		return nil, err
	}

	return &models.Identity{
		UserID:    user.ID,
		UserName:  user.UserName,
		Salt:      user.Salt,
		SecretKey: secretKey,
	}, nil
}

// ChangeMasterPassword re-wraps the user's existing secret key under
// newPassword. The salt stays; vault rows are not touched.
func (s *IdentityService) ChangeMasterPassword(ctx context.Context, userID string, oldPassword, newPassword []byte) error {
	if len(newPassword) == 0 {
		return common.MissingField("new_password")
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error looking up user: %w", err)
	}

	secretKey, err := s.unwrap(user, oldPassword)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secretKey)

	derived := cryptox.DeriveKey(newPassword, user.Salt, s.iterations)
	defer common.WipeByteArray(derived)

	wrapped, err := cryptox.Wrap(derived, secretKey, cryptox.AADUserKey)
	if err != nil {
		return fmt.Errorf("error wrapping key: %w", err)
	}

	if err := repo.UpdateWrappedKey(ctx, user.ID, wrapped, s.iterations); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error saving wrapped key: %w", err)
	}
	return nil
}

// Delete removes userID and all entries owned by it in one transaction.
func (s *IdentityService) Delete(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Entries(tx).DeleteByOwner(ctx, userID); err != nil {
			return fmt.Errorf("error deleting entries: %w", err)
		}
		if err := s.repomanager.Users(tx).Delete(ctx, userID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrUserNotFound
			}
			return fmt.Errorf("error deleting user: %w", err)
		}
		return nil
	})
}

func (s *IdentityService) unwrap(user *models.User, password []byte) ([]byte, error) {
	derived := cryptox.DeriveKey(password, user.Salt, user.Iterations)
	defer common.WipeByteArray(derived)

	secretKey, err := cryptox.Unwrap(derived, user.WrappedKey, cryptox.AADUserKey)
	if err != nil {
		if errors.Is(err, cryptox.ErrAuthentication) {
			return nil, common.ErrAccessUnauthorized
		}
		return nil, fmt.Errorf("error unwrapping key: %w", err)
	}
	if len(secretKey) != common.SecretKeySize {
		common.WipeByteArray(secretKey)
		return nil, common.ErrIntegrity
	}
	return secretKey, nil
}
