package dbx

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openVaultDB opens a single-connection sqlite file database the way the
// server does, with a small entries table.
func openVaultDB(t *testing.T) *sql.DB {
	t.Helper()

	db, _, err := Open("sqlite://" + filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE entries (id INTEGER PRIMARY KEY, title BLOB NOT NULL)`)
	require.NoError(t, err)
	return db
}

func entryCount(t *testing.T, db DBTX) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM entries`).Scan(&n))
	return n
}

func TestWithTx(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		fn        func(ctx context.Context, tx DBTX) error
		wantErr   error
		wantCount int
	}{
		{
			name: "commit",
			fn: func(ctx context.Context, tx DBTX) error {
				_, err := tx.ExecContext(ctx, `INSERT INTO entries(title) VALUES (x'01'), (x'02')`)
				return err
			},
			wantCount: 2,
		},
		{
			name: "rollback on error",
			fn: func(ctx context.Context, tx DBTX) error {
				if _, err := tx.ExecContext(ctx, `INSERT INTO entries(title) VALUES (x'01')`); err != nil {
					return err
				}
				return boom
			},
			wantErr: boom,
		},
		{
			name: "failing statement",
			fn: func(ctx context.Context, tx DBTX) error {
				_, err := tx.ExecContext(ctx, `INSERT INTO entries(title) VALUES (NULL)`)
				return err
			},
			wantErr: errors.New("any"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openVaultDB(t)

			err := WithTx(context.Background(), db, nil, tt.fn)
			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
			case errors.Is(tt.wantErr, boom):
				require.ErrorIs(t, err, boom)
			default:
				require.Error(t, err)
			}
			assert.Equal(t, tt.wantCount, entryCount(t, db))
		})
	}
}

func TestWithTx_SeesOwnWrites(t *testing.T) {
	db := openVaultDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO entries(title) VALUES (x'aa')`)
		require.NoError(t, err)
		assert.Equal(t, 1, entryCount(t, tx))
		return nil
	})
	require.NoError(t, err)
}

func TestWithTx_PanicRollsBack(t *testing.T) {
	db := openVaultDB(t)

	assert.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO entries(title) VALUES (x'01')`)
			require.NoError(t, err)
			panic("kaput")
		})
	})
	assert.Equal(t, 0, entryCount(t, db))
}

func TestWithTx_BeginError(t *testing.T) {
	db := openVaultDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	require.ErrorContains(t, err, "begin tx")
	assert.False(t, called)
}
