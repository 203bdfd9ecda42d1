// Package entries provides the SQL-backed repository for vault rows. Rows
// hold ciphertext only; every query is scoped by owner so one user's
// entries are invisible to another.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/onepass/internal/common"
	"github.com/dmitrijs2005/onepass/internal/dbx"
	"github.com/dmitrijs2005/onepass/internal/server/models"
)

// SQLRepository implements vault storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

const selectColumns = `id, owner_id, title, url, username, password, created_at`

// Create inserts entry and sets its ID from the store-assigned identifier.
func (r *SQLRepository) Create(ctx context.Context, entry *models.VaultEntry) (*models.VaultEntry, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO vault (owner_id, title, url, username, password, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		entry.OwnerID, entry.Title, nullable(entry.URL), nullable(entry.Username), nullable(entry.Password), entry.CreatedAt).
		Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

// Get returns the row with id if it belongs to ownerID, and
// common.ErrorNotFound otherwise.
func (r *SQLRepository) Get(ctx context.Context, id int64, ownerID string) (*models.VaultEntry, error) {
	query := `SELECT ` + selectColumns + ` FROM vault WHERE id = $1 AND owner_id = $2`

	e := &models.VaultEntry{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&e.ID, &e.OwnerID, &e.Title, &e.URL, &e.Username, &e.Password, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// Update overwrites every content column of the owner's row.
func (r *SQLRepository) Update(ctx context.Context, entry *models.VaultEntry) error {
	query := `
		UPDATE vault SET title = $1, url = $2, username = $3, password = $4
		WHERE id = $5 AND owner_id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		entry.Title, nullable(entry.URL), nullable(entry.Username), nullable(entry.Password), entry.ID, entry.OwnerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64, ownerID string) error {
	query := `DELETE FROM vault WHERE id = $1 AND owner_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

// ListByOwner returns the owner's rows in insertion order.
func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.VaultEntry, error) {
	query := `SELECT ` + selectColumns + ` FROM vault WHERE owner_id = $1 ORDER BY id`
	return r.list(ctx, query, ownerID)
}

// DeleteByOwner removes all rows of ownerID and reports how many went.
func (r *SQLRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vault WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// All returns every row of every owner, ordered by id.
func (r *SQLRepository) All(ctx context.Context) ([]*models.VaultEntry, error) {
	query := `SELECT ` + selectColumns + ` FROM vault ORDER BY id`
	return r.list(ctx, query)
}

func (r *SQLRepository) list(ctx context.Context, query string, args ...any) ([]*models.VaultEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []*models.VaultEntry
	for rows.Next() {
		var item models.VaultEntry
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Title, &item.URL, &item.Username, &item.Password, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// nullable stores an absent field as SQL NULL rather than an empty blob.
func nullable(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}
