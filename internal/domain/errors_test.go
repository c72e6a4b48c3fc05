package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

func TestValidationErrorMessage(t *testing.T) {
	err := &domain.ValidationError{Param: "order_date", Expected: "date in format YYYY-MM-DD", Value: "2026-13-40"}
	msg := err.Error()
	if !strings.Contains(msg, "order_date") || !strings.Contains(msg, "YYYY-MM-DD") {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestTaxonomyHelpers(t *testing.T) {
	validation := &domain.ValidationError{Param: "amount", Expected: "decimal", Value: "x"}
	reference := &domain.ReferenceError{Op: "add order", Constraint: "orders_customer_id_fkey", Detail: "customer 99 does not exist"}
	constraint := &domain.ConstraintError{Op: "add order", Constraint: "orders_amount_check", Detail: "amount -1.00"}
	connection := &domain.ConnectionError{Op: "reset", Err: errors.New("connection refused")}

	if !domain.IsValidation(validation) || domain.IsValidation(reference) {
		t.Fatal("IsValidation misclassifies")
	}
	if !domain.IsReference(reference) || domain.IsReference(constraint) {
		t.Fatal("IsReference misclassifies")
	}
	if !domain.IsConstraint(constraint) || domain.IsConstraint(connection) {
		t.Fatal("IsConstraint misclassifies")
	}
	if !domain.IsConnection(connection) || domain.IsConnection(validation) {
		t.Fatal("IsConnection misclassifies")
	}
}

func TestHelpersUnwrapWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("seed order 2: %w", &domain.ValidationError{Param: "order_date", Expected: "date", Value: 5})
	if !domain.IsValidation(wrapped) {
		t.Fatal("wrapped validation error must be recognized")
	}

	inner := errors.New("broken pipe")
	conn := &domain.ConnectionError{Op: "revenue by status", Err: inner}
	if !errors.Is(conn, inner) {
		t.Fatal("ConnectionError must unwrap to the driver error")
	}
}
