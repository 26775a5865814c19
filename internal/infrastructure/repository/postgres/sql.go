package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/usecase"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// constraintErrors maps unique index names to the error a violation of that
// index stands for, with a message safe to show to API clients.
var constraintErrors = map[string]constraintViolation{
	"users_email_key":                                {usecase.ErrConflict, "email already registered"},
	"users_username_key":                             {usecase.ErrConflict, "username already taken"},
	"player_sports_user_sport_key":                   {league.ErrDuplicateSport, ""},
	"player_sports_one_primary_key":                  {usecase.ErrConflict, "another primary sport is already set"},
	"team_players_player_key":                        {league.ErrAlreadyRostered, ""},
	"team_players_jersey_key":                        {league.ErrJerseyInUse, ""},
	"team_players_pkey":                              {league.ErrAlreadyRostered, ""},
	"tournament_registrations_player_tournament_key": {usecase.ErrConflict, "already registered for this tournament"},
}

type constraintViolation struct {
	err    error
	detail string
}

type statusCountModel struct {
	Status string `db:"status"`
	Total  int    `db:"total"`
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// requireRowsAffected turns a write that touched no row into ErrNotFound.
func requireRowsAffected(res sql.Result, op, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", op, id, usecase.ErrNotFound)
	}
	return nil
}

// mapConstraintError turns unique and foreign key violations into domain
// errors. Other errors are returned unchanged.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case pqUniqueViolation:
		v, ok := constraintErrors[pqErr.Constraint]
		if !ok {
			return fmt.Errorf("%w: duplicate value", usecase.ErrConflict)
		}
		if v.detail == "" {
			return v.err
		}
		return fmt.Errorf("%w: %s", v.err, v.detail)
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: referenced record does not exist", usecase.ErrConflict)
	default:
		return err
	}
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func nullStringValue(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}

func nullIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	v := value.Time
	return &v
}
