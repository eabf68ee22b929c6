package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	t.Parallel()

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "generated_notes_pkey"})
	if !IsDuplicateConstraintError(dup, "generated_notes_pkey") {
		t.Fatalf("expected wrapped unique violation to match")
	}
	if IsDuplicateConstraintError(dup, "other_key") {
		t.Fatalf("constraint name should be compared")
	}
	if IsDuplicateConstraintError(&pgconn.PgError{Code: "23503", ConstraintName: "generated_notes_pkey"}, "generated_notes_pkey") {
		t.Fatalf("foreign key violation should not match")
	}
	if IsDuplicateConstraintError(errors.New("boom"), "generated_notes_pkey") {
		t.Fatalf("plain error should not match")
	}
}
