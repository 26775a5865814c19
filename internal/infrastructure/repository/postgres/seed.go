package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sports-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo venues and tournaments into an empty
// database. It does nothing once any venue exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM venues`); err != nil {
		return fmt.Errorf("count venues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, v := range memory.SeedVenues(now) {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO venues (id, name, location, capacity, facility_type, created_at)
VALUES (:id, :name, :location, :capacity, :facility_type, :created_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":            v.ID,
			"name":          v.Name,
			"location":      v.Location,
			"capacity":      v.Capacity,
			"facility_type": v.FacilityType,
			"created_at":    v.CreatedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("bind seed venue %s query: %w", v.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed venue %s: %w", v.ID, err)
		}
	}

	for _, t := range memory.SeedTournaments(now) {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO tournaments (id, name, sport, start_date, end_date, entry_fee, max_teams, description, status, created_at)
VALUES (:id, :name, :sport, :start_date, :end_date, :entry_fee, :max_teams, :description, :status, :created_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":          t.ID,
			"name":        t.Name,
			"sport":       string(t.Sport),
			"start_date":  t.StartDate.UTC(),
			"end_date":    t.EndDate.UTC(),
			"entry_fee":   t.EntryFee,
			"max_teams":   t.MaxTeams,
			"description": t.Description,
			"status":      string(t.Status),
			"created_at":  t.CreatedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("bind seed tournament %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed tournament %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
