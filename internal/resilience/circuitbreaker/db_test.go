package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
)

func TestDBCircuitBreaker_ExecContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer func() { _ = db.Close() }()

	dcb := NewDBCircuitBreaker(db)
	mock.ExpectExec("TRUNCATE discord_logs").WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := dcb.ExecContext(context.Background(), "TRUNCATE discord_logs"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDBCircuitBreaker_QueryRowScan_NoRowsIsNotFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer func() { _ = db.Close() }()

	cfg := DBConfig()
	cfg.MinRequests = 2
	dcb := NewDBCircuitBreakerWithConfig(db, cfg)

	for i := 0; i < 3; i++ {
		mock.ExpectQuery("SELECT option_value").WillReturnError(sql.ErrNoRows)
		var v string
		err := dcb.QueryRowScan(context.Background(), "SELECT option_value FROM options WHERE option_name = $1", []interface{}{"k"}, &v)
		if !errors.Is(err, sql.ErrNoRows) {
			t.Fatalf("expected ErrNoRows, got %v", err)
		}
	}
	if dcb.State() != gobreaker.StateClosed {
		t.Errorf("expected closed, got %v", dcb.State())
	}
}

func TestDBCircuitBreaker_OpensOnFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer func() { _ = db.Close() }()

	dcb := NewDBCircuitBreakerWithConfig(db, Config{
		Name:             "test-db",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Hour,
		FailureThreshold: 1.0,
		MinRequests:      2,
	})

	for i := 0; i < 2; i++ {
		mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)
		if _, err := dcb.QueryContext(context.Background(), "SELECT 1"); err == nil {
			t.Fatal("expected error")
		}
	}

	if !dcb.IsOpen() {
		t.Fatalf("expected open, got %v", dcb.State())
	}
	if _, err := dcb.QueryContext(context.Background(), "SELECT 1"); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
	if dcb.DB() != db {
		t.Error("DB() must return the wrapped pool")
	}
}
