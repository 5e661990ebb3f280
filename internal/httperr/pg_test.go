package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsExclusionConflict(t *testing.T) {
	exclusion := &pgconn.PgError{Code: "23P01", ConstraintName: "appointments_no_overlap"}
	if !IsExclusionConflict(exclusion) {
		t.Fatal("expected 23P01 to be a conflict")
	}

	unique := &pgconn.PgError{Code: "23505"}
	if !IsExclusionConflict(unique) {
		t.Fatal("expected 23505 to be a conflict")
	}

	// Funciona también con errores envueltos
	wrapped := fmt.Errorf("create appointment: %w", exclusion)
	if !IsExclusionConflict(wrapped) {
		t.Fatal("expected wrapped pg error to be detected")
	}

	if IsExclusionConflict(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation is not a conflict")
	}
	if IsExclusionConflict(errors.New("boom")) {
		t.Fatal("plain error is not a conflict")
	}
	if IsExclusionConflict(nil) {
		t.Fatal("nil is not a conflict")
	}
}

func TestIsBusiness(t *testing.T) {
	err := ErrBusiness("time_conflict")
	if !IsBusiness(err, "time_conflict") {
		t.Fatal("expected business error match")
	}
	if IsBusiness(err, "service_not_found") {
		t.Fatal("code mismatch should not match")
	}

	wrapped := fmt.Errorf("usecase: %w", err)
	if !IsBusiness(wrapped, "time_conflict") {
		t.Fatal("expected wrapped business error match")
	}

	if IsBusiness(errors.New("boom"), "time_conflict") {
		t.Fatal("plain error is not business")
	}
}
