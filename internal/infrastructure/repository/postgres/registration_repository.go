package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sports-league/internal/domain/registration"
	qb "github.com/riskibarqy/sports-league/internal/platform/querybuilder"
)

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) Exists(ctx context.Context, playerID, tournamentID string) (bool, error) {
	query, args, err := qb.Select("COUNT(*)").From("tournament_registrations").
		Where(qb.Eq("player_id", playerID), qb.Eq("tournament_id", tournamentID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build count registrations query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("count registrations: %w", err)
	}
	return count > 0, nil
}

// Create leaves duplicate detection to the (player_id, tournament_id) unique
// index so concurrent signups cannot both land.
func (r *RegistrationRepository) Create(ctx context.Context, reg registration.Registration) error {
	query, args, err := qb.InsertModel("tournament_registrations", toRegistrationModel(reg), "")
	if err != nil {
		return fmt.Errorf("build insert registration query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert registration: %w", mapConstraintError(err))
	}
	return nil
}

func (r *RegistrationRepository) ListByPlayer(ctx context.Context, playerID string) ([]registration.Registration, error) {
	query, args, err := qb.Select("*").From("tournament_registrations").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select registrations query: %w", err)
	}

	var rows []registrationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select registrations: %w", err)
	}

	out := make([]registration.Registration, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
