package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/onepass/internal/common"
	"github.com/dmitrijs2005/onepass/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db), mock, db
}

const (
	insertQ  = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*salt,\s*wrapped_key,\s*iterations,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*$`
	byLoginQ = `(?s)^SELECT\s+id,\s*username,\s*salt,\s*wrapped_key,\s*iterations,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`
	byIDQ    = `(?s)^SELECT\s+id,\s*username,\s*salt,\s*wrapped_key,\s*iterations,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
)

var userCols = []string{"id", "username", "salt", "wrapped_key", "iterations", "created_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(insertQ).
		WithArgs("u-1", "alice", []byte("salt"), []byte("wrapped"), 100000, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{ID: "u-1", UserName: "alice", Salt: []byte("salt"), WrappedKey: []byte("wrapped"), Iterations: 100000, CreatedAt: created}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-1" || got.UserName != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreate_GeneratesIDAndTimestamp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs(sqlmock.AnyArg(), "alice", []byte("salt"), []byte("wrapped"), 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &models.User{UserName: "alice", Salt: []byte("salt"), WrappedKey: []byte("wrapped")})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" || got.CreatedAt.IsZero() {
		t.Fatalf("expected generated id and timestamp, got %+v", got)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{UserName: "alice"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{UserName: "alice"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetUserByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userCols).
		AddRow("u-1", "alice", []byte("salt"), []byte("wrapped"), 100000, time.Now())
	mock.ExpectQuery(byLoginQ).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetUserByLogin(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUserByLogin error: %v", err)
	}
	if got.ID != "u-1" || got.UserName != "alice" || string(got.WrappedKey) != "wrapped" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byLoginQ).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetUserByLogin_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byLoginQ).
		WithArgs("alice").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByLogin(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byIDQ).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u-1", "alice", []byte("s"), []byte("w"), 100000, time.Now()))
	mock.ExpectQuery(byIDQ).
		WithArgs("u-2").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "u-1")
	if err != nil || got.UserName != "alice" {
		t.Fatalf("GetByID: %+v, %v", got, err)
	}
	if _, err := repo.GetByID(context.Background(), "u-2"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdateWrappedKey(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+wrapped_key\s*=\s*\$1,\s*iterations\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3$`
	mock.ExpectExec(q).WithArgs([]byte("new"), 100000, "u-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs([]byte("new"), 100000, "ghost").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateWrappedKey(context.Background(), "u-1", []byte("new"), 100000); err != nil {
		t.Fatalf("UpdateWrappedKey error: %v", err)
	}
	if err := repo.UpdateWrappedKey(context.Background(), "ghost", []byte("new"), 100000); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectExec(q).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs("u-1").WillReturnError(errors.New("db err"))

	if err := repo.Delete(context.Background(), "u-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(context.Background(), "u-1"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), "u-1"); err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*username,\s*salt,\s*wrapped_key,\s*iterations,\s*created_at\s+FROM\s+users\s+ORDER\s+BY\s+created_at,\s*id$`
	rows := sqlmock.NewRows(userCols).
		AddRow("u-1", "alice", []byte("s1"), []byte("w1"), 100000, time.Now()).
		AddRow("u-2", "bob", []byte("s2"), []byte("w2"), 200000, time.Now())
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(got) != 2 || got[0].UserName != "alice" || got[1].UserName != "bob" {
		t.Fatalf("unexpected users: %+v", got)
	}
}
