package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/edupath/counsel/internal/models"
)

func setupShortlistMock(t *testing.T) (*PostgresShortlistRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresShortlistRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestShortlistExists(t *testing.T) {
	repo, mock, cleanup := setupShortlistMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM shortlists WHERE user_id = $1 AND university_id = $2)`)).
		WithArgs("u1", "uni1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), "u1", "uni1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected existing shortlist")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestShortlistCreate_AssignsID(t *testing.T) {
	repo, mock, cleanup := setupShortlistMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO shortlists (id, user_id, university_id, category, locked)`)).
		WithArgs(sqlmock.AnyArg(), "u1", "uni1", "TARGET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := &models.Shortlist{UserID: "u1", UniversityID: "uni1", Category: models.CategoryTarget}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID == "" {
		t.Error("expected a generated id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestShortlistGet_NotFound(t *testing.T) {
	repo, mock, cleanup := setupShortlistMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM shortlists WHERE user_id = $1 AND university_id = $2`)).
		WithArgs("u1", "uni1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "university_id", "category", "locked"}))

	_, err := repo.Get(context.Background(), "u1", "uni1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
}

func TestShortlistLock(t *testing.T) {
	repo, mock, cleanup := setupShortlistMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE shortlists SET locked = true WHERE user_id = $1 AND university_id = $2`)).
		WithArgs("u1", "uni1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Lock(context.Background(), "u1", "uni1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestShortlistLock_MissingRow(t *testing.T) {
	repo, mock, cleanup := setupShortlistMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE shortlists SET locked = true WHERE user_id = $1 AND university_id = $2`)).
		WithArgs("u1", "uni1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Lock(context.Background(), "u1", "uni1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
}

func TestUnlockAndClearTasks(t *testing.T) {
	repo, mock, cleanup := setupShortlistMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE shortlists SET locked = false WHERE user_id = $1 AND university_id = $2`)).
		WithArgs("u1", "uni1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE user_id = $1 AND university_id = $2`)).
		WithArgs("u1", "uni1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	if err := repo.UnlockAndClearTasks(context.Background(), "u1", "uni1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUnlockAndClearTasks_MissingRowRollsBack(t *testing.T) {
	repo, mock, cleanup := setupShortlistMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE shortlists SET locked = false WHERE user_id = $1 AND university_id = $2`)).
		WithArgs("u1", "uni1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := repo.UnlockAndClearTasks(context.Background(), "u1", "uni1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
}

func TestShortlistListByUser(t *testing.T) {
	repo, mock, cleanup := setupShortlistMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"university_id", "name", "country", "category", "locked"}).
		AddRow("uni1", "MIT", "USA", "TARGET", true).
		AddRow("uni2", "UBC", "Canada", "SAFE", false)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.user_id = $1 ORDER BY s.id`)).
		WithArgs("u1").
		WillReturnRows(rows)

	items, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items; want 2", len(items))
	}
	if items[0].UniversityName != "MIT" || !items[0].Locked {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Category != models.CategorySafe {
		t.Errorf("items[1].Category = %q; want SAFE", items[1].Category)
	}
}
