package circuitbreaker

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDBCircuitBreaker_QueryContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow("abc123")
	mock.ExpectQuery("SELECT id FROM search_history").WillReturnRows(rows)

	dcb := NewDBCircuitBreaker(db)
	got, err := dcb.QueryContext(context.Background(), "SELECT id FROM search_history")
	if err != nil {
		t.Fatalf("QueryContext() error = %v", err)
	}
	defer got.Close()

	if !got.Next() {
		t.Fatal("expected one row")
	}
	var id string
	if err := got.Scan(&id); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if id != "abc123" {
		t.Errorf("id = %q, want abc123", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDBCircuitBreaker_ExecContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM search_history").WillReturnResult(sqlmock.NewResult(0, 3))

	dcb := NewDBCircuitBreaker(db)
	result, err := dcb.ExecContext(context.Background(), "DELETE FROM search_history")
	if err != nil {
		t.Fatalf("ExecContext() error = %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		t.Fatalf("RowsAffected() error = %v", err)
	}
	if affected != 3 {
		t.Errorf("affected = %d, want 3", affected)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDBCircuitBreaker_PropagatesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	dbErr := errors.New("connection lost")
	mock.ExpectQuery("SELECT").WillReturnError(dbErr)

	dcb := NewDBCircuitBreaker(db)
	_, err = dcb.QueryContext(context.Background(), "SELECT 1")
	if !errors.Is(err, dbErr) {
		t.Errorf("error = %v, want %v", err, dbErr)
	}
}
