package postgres

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

func TestTranslateStorageErrorForeignKey(t *testing.T) {
	err := translateStorageError("add order", &pgconn.PgError{
		Code:           "23503",
		ConstraintName: "orders_customer_id_fkey",
		Detail:         `Key (customer_id)=(99) is not present in table "customers".`,
	})
	if !domain.IsReference(err) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}
}

func TestTranslateStorageErrorConstraints(t *testing.T) {
	for _, code := range []string{"23514", "23502", "23505", "22P02"} {
		err := translateStorageError("add order", &pgconn.PgError{Code: code, Message: "rejected"})
		if !domain.IsConstraint(err) {
			t.Fatalf("code %s: expected ConstraintError, got %v", code, err)
		}
	}
}

func TestTranslateStorageErrorConnection(t *testing.T) {
	err := translateStorageError("reset", &pgconn.PgError{Code: "08006", Message: "connection failure"})
	if !domain.IsConnection(err) {
		t.Fatalf("expected ConnectionError for sqlstate class 08, got %v", err)
	}

	err = translateStorageError("reset", driver.ErrBadConn)
	if !domain.IsConnection(err) {
		t.Fatalf("expected ConnectionError for bad conn, got %v", err)
	}
}

func TestTranslateStorageErrorPassThrough(t *testing.T) {
	if translateStorageError("op", nil) != nil {
		t.Fatal("nil must stay nil")
	}

	plain := errors.New("syntax error")
	err := translateStorageError("revenue by city", plain)
	if !errors.Is(err, plain) {
		t.Fatalf("unknown errors must be wrapped, got %v", err)
	}
	if domain.IsReference(err) || domain.IsConstraint(err) || domain.IsConnection(err) {
		t.Fatalf("unknown error misclassified: %v", err)
	}

	wrapped := translateStorageError("add order", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}))
	if !domain.IsReference(wrapped) {
		t.Fatalf("wrapped pg error must still be recognized, got %v", wrapped)
	}
}
