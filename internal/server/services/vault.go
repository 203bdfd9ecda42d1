package services

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/onepass/internal/common"
	"github.com/dmitrijs2005/onepass/internal/cryptox"
	"github.com/dmitrijs2005/onepass/internal/dbx"
	"github.com/dmitrijs2005/onepass/internal/server/models"
	"github.com/dmitrijs2005/onepass/internal/server/repositories/repomanager"
)

// VaultService encrypts and decrypts vault entries. Every method takes the
// owner id and secret key of a resolved session; plaintext lives only for
// the duration of a call.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewVaultService(db *sql.DB, m repomanager.RepositoryManager) *VaultService {
	return &VaultService{db: db, repomanager: m}
}

// Add stores a new entry. Title is required; empty optional fields are
// stored as absent.
func (s *VaultService) Add(ctx context.Context, ownerID string, key []byte, in models.NewEntry) (*models.Entry, error) {
	if in.Title == "" {
		return nil, common.MissingField("title")
	}

	row := &models.VaultEntry{OwnerID: ownerID}
	var err error
	if row.Title, err = cryptox.Wrap(key, []byte(in.Title), cryptox.AADTitle); err != nil {
		return nil, fmt.Errorf("error encrypting title: %w", err)
	}
	if row.URL, err = cryptox.WrapOptional(key, present(in.URL), cryptox.AADURL); err != nil {
		return nil, fmt.Errorf("error encrypting url: %w", err)
	}
	if row.Username, err = cryptox.WrapOptional(key, present(in.Username), cryptox.AADUser); err != nil {
		return nil, fmt.Errorf("error encrypting username: %w", err)
	}
	if row.Password, err = cryptox.WrapOptional(key, present(in.Password), cryptox.AADSecret); err != nil {
		return nil, fmt.Errorf("error encrypting password: %w", err)
	}

	row, err = s.repomanager.Entries(s.db).Create(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	return &models.Entry{
		ID:       row.ID,
		Title:    in.Title,
		URL:      present(in.URL),
		Username: present(in.Username),
		Password: present(in.Password),
	}, nil
}

// Get returns the decrypted entry id of ownerID.
func (s *VaultService) Get(ctx context.Context, ownerID string, key []byte, id int64) (*models.Entry, error) {
	row, err := s.repomanager.Entries(s.db).Get(ctx, id, ownerID)
	if err != nil {
		return nil, mapEntryErr(err)
	}
	return decryptEntry(key, row)
}

// Update applies the supplied changes inside a transaction. Untouched fields
// keep their ciphertext. The merged entry is decrypted before it is written,
// so a corrupted field aborts the whole update.
func (s *VaultService) Update(ctx context.Context, ownerID string, key []byte, id int64, u models.EntryUpdate) (*models.Entry, error) {
	var out *models.Entry

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Entries(tx)

		row, err := repo.Get(ctx, id, ownerID)
		if err != nil {
			return mapEntryErr(err)
		}

		if u.Title.Set {
			if u.Title.Value == nil || *u.Title.Value == "" {
				return common.MissingField("title")
			}
			if row.Title, err = cryptox.Wrap(key, []byte(*u.Title.Value), cryptox.AADTitle); err != nil {
				return fmt.Errorf("error encrypting title: %w", err)
			}
		}
		if row.URL, err = applyChange(key, row.URL, u.URL, cryptox.AADURL); err != nil {
			return err
		}
		if row.Username, err = applyChange(key, row.Username, u.Username, cryptox.AADUser); err != nil {
			return err
		}
		if row.Password, err = applyChange(key, row.Password, u.Password, cryptox.AADSecret); err != nil {
			return err
		}

		out, err = decryptEntry(key, row)
		if err != nil {
			return err
		}

		if u.Empty() {
			return nil
		}
		if err := repo.Update(ctx, row); err != nil {
			return mapEntryErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes entry id of ownerID.
func (s *VaultService) Delete(ctx context.Context, ownerID string, id int64) error {
	if err := s.repomanager.Entries(s.db).Delete(ctx, id, ownerID); err != nil {
		return mapEntryErr(err)
	}
	return nil
}

// List returns summaries of all entries of ownerID ordered by sortBy.
// Unknown orders fall back to models.SortTitle.
func (s *VaultService) List(ctx context.Context, ownerID string, key []byte, sortBy string) ([]models.Summary, error) {
	rows, err := s.repomanager.Entries(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}

	out := make([]models.Summary, 0, len(rows))
	for _, row := range rows {
		sum, err := decryptSummary(key, row)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}

	sortSummaries(out, sortBy)
	return out, nil
}

// Search returns the title-ordered summaries whose title, username or url
// contain query, ignoring case.
func (s *VaultService) Search(ctx context.Context, ownerID string, key []byte, query string) ([]models.Summary, error) {
	all, err := s.List(ctx, ownerID, key, models.SortTitle)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	out := make([]models.Summary, 0, len(all))
	for _, sum := range all {
		if containsFold(sum.Title, q) || containsFold(deref(sum.Username), q) || containsFold(deref(sum.URL), q) {
			out = append(out, sum)
		}
	}
	return out, nil
}

func sortSummaries(list []models.Summary, sortBy string) {
	byTitle := func(a, b models.Summary) int {
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		if c := strings.Compare(deref(a.Username), deref(b.Username)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}
	byID := func(a, b models.Summary) int { return cmp.Compare(a.ID, b.ID) }

	switch sortBy {
	case models.SortTitleReversed:
		slices.SortStableFunc(list, func(a, b models.Summary) int { return byTitle(b, a) })
	case models.SortDateAdded:
		slices.SortStableFunc(list, byID)
	case models.SortDateAddedReversed:
		slices.SortStableFunc(list, func(a, b models.Summary) int { return byID(b, a) })
	default:
		slices.SortStableFunc(list, byTitle)
	}
}

func applyChange(key, current []byte, c models.FieldChange, aad []byte) ([]byte, error) {
	if !c.Set {
		return current, nil
	}
	ct, err := cryptox.WrapOptional(key, present(c.Value), aad)
	if err != nil {
		return nil, fmt.Errorf("error encrypting field: %w", err)
	}
	return ct, nil
}

func decryptEntry(key []byte, row *models.VaultEntry) (*models.Entry, error) {
	sum, err := decryptSummary(key, row)
	if err != nil {
		return nil, err
	}
	password, err := cryptox.UnwrapOptional(key, row.Password, cryptox.AADSecret)
	if err != nil {
		return nil, integrityErr(err)
	}
	return &models.Entry{
		ID:       sum.ID,
		Title:    sum.Title,
		URL:      sum.URL,
		Username: sum.Username,
		Password: password,
	}, nil
}

func decryptSummary(key []byte, row *models.VaultEntry) (models.Summary, error) {
	title, err := cryptox.Unwrap(key, row.Title, cryptox.AADTitle)
	if err != nil {
		return models.Summary{}, integrityErr(err)
	}
	url, err := cryptox.UnwrapOptional(key, row.URL, cryptox.AADURL)
	if err != nil {
		return models.Summary{}, integrityErr(err)
	}
	username, err := cryptox.UnwrapOptional(key, row.Username, cryptox.AADUser)
	if err != nil {
		return models.Summary{}, integrityErr(err)
	}
	return models.Summary{ID: row.ID, Title: string(title), URL: url, Username: username}, nil
}

func integrityErr(err error) error {
	if errors.Is(err, cryptox.ErrAuthentication) {
		return common.ErrIntegrity
	}
	return fmt.Errorf("error decrypting entry: %w", err)
}

func mapEntryErr(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrEntryNotFound
	}
	return err
}

// present maps empty strings to absent.
func present(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
