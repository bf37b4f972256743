package roster

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsertWritesAllFlags(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mark := Mark{
		UserID:     "user-1",
		OperatorID: "silverash",
		Owned:      true,
		Raised:     true,
		WantToUse:  false,
		UpdatedAt:  time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO roster_marks").
		WithArgs(mark.UserID, mark.OperatorID, mark.Owned, mark.Raised, mark.WantToUse, mark.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Upsert(context.Background(), mark); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT user_id, operator_id").
		WithArgs("user-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "operator_id", "owned", "raised", "want_to_use", "updated_at"}))

	if _, err := repo.Get(context.Background(), "user-1", "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoAppendChangesUsesTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []ChangeEntry{
		{ID: "c1", UserID: "user-1", OperatorID: "texas", Field: FieldOwned, Value: true, ChangedAt: now},
		{ID: "c2", UserID: "user-1", OperatorID: "texas", Field: FieldRaised, Value: true, ChangedAt: now},
	}

	mock.ExpectBegin()
	for _, entry := range entries {
		mock.ExpectExec("INSERT INTO roster_changelog").
			WithArgs(entry.ID, entry.UserID, entry.OperatorID, entry.Field, entry.Value, entry.ChangedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	if err := repo.AppendChanges(context.Background(), entries); err != nil {
		t.Fatalf("AppendChanges: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
