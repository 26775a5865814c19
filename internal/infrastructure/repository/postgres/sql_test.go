package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/usecase"
)

func TestMapConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "jersey index",
			err:  &pq.Error{Code: pqUniqueViolation, Constraint: "team_players_jersey_key"},
			want: league.ErrJerseyInUse,
		},
		{
			name: "single team index",
			err:  fmt.Errorf("insert team player: %w", &pq.Error{Code: pqUniqueViolation, Constraint: "team_players_player_key"}),
			want: league.ErrAlreadyRostered,
		},
		{
			name: "email index",
			err:  &pq.Error{Code: pqUniqueViolation, Constraint: "users_email_key"},
			want: usecase.ErrConflict,
		},
		{
			name: "unknown unique index",
			err:  &pq.Error{Code: pqUniqueViolation, Constraint: "something_key"},
			want: usecase.ErrConflict,
		},
		{
			name: "foreign key",
			err:  &pq.Error{Code: pqForeignKeyViolation, Constraint: "matches_venue_id_fkey"},
			want: usecase.ErrConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapConstraintError(tc.err); !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	t.Run("keeps unrelated errors", func(t *testing.T) {
		err := fakeErr("pq: relation teams does not exist")
		if got := mapConstraintError(err); got != err {
			t.Fatalf("unrelated error was rewritten: %v", got)
		}
	})
}

func TestMapConstraintError_HidesConstraintNames(t *testing.T) {
	constraints := []string{"team_players_jersey_key", "users_email_key", "something_key", "matches_venue_id_fkey"}
	for _, name := range constraints {
		code := pq.ErrorCode(pqUniqueViolation)
		if strings.HasSuffix(name, "_fkey") {
			code = pqForeignKeyViolation
		}
		got := mapConstraintError(&pq.Error{Code: code, Constraint: name})
		if strings.Contains(got.Error(), name) {
			t.Fatalf("message %q leaks constraint %s", got.Error(), name)
		}
	}
}

type rowsAffected struct {
	n   int64
	err error
}

func (r rowsAffected) LastInsertId() (int64, error) { return 0, nil }
func (r rowsAffected) RowsAffected() (int64, error) { return r.n, r.err }

func TestRequireRowsAffected(t *testing.T) {
	if err := requireRowsAffected(rowsAffected{n: 1}, "update team coach", "t1"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := requireRowsAffected(rowsAffected{}, "update team coach", "t1"); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	driverErr := fakeErr("driver does not support rows affected")
	err := requireRowsAffected(rowsAffected{err: driverErr}, "update team coach", "t1")
	if !errors.Is(err, driverErr) || errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected driver error to be returned, got %v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get team: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected unrelated error not to be not found")
	}
}

func TestNullableHelpers(t *testing.T) {
	t.Run("null int", func(t *testing.T) {
		if got := nullIntPtr(sql.NullInt64{}); got != nil {
			t.Fatalf("expected nil, got %d", *got)
		}
		got := nullIntPtr(sql.NullInt64{Int64: 7, Valid: true})
		if got == nil || *got != 7 {
			t.Fatalf("expected 7, got %v", got)
		}
	})

	t.Run("null time", func(t *testing.T) {
		if got := nullTimePtr(sql.NullTime{}); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
		now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
		got := nullTimePtr(sql.NullTime{Time: now, Valid: true})
		if got == nil || !got.Equal(now) {
			t.Fatalf("unexpected time: %v", got)
		}
	})

	t.Run("string", func(t *testing.T) {
		if nullableString("") != nil {
			t.Fatalf("expected nil for empty string")
		}
		if got := nullableString("coach-1"); got == nil || *got != "coach-1" {
			t.Fatalf("unexpected value: %v", got)
		}
		if nullStringValue(sql.NullString{}) != "" {
			t.Fatalf("expected empty string for null")
		}
	})
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
