package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	qb "github.com/riskibarqy/sports-league/internal/platform/querybuilder"
)

type PlayerSportRepository struct {
	db *sqlx.DB
}

func NewPlayerSportRepository(db *sqlx.DB) *PlayerSportRepository {
	return &PlayerSportRepository{db: db}
}

func (r *PlayerSportRepository) ListByUser(ctx context.Context, userID string) ([]playersport.Entry, error) {
	query, args, err := qb.Select("id", "user_id", "sport", "skill_level", "is_primary", "created_at").
		From("player_sports").
		Where(qb.Eq("user_id", userID)).
		OrderBy("is_primary DESC", "created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player sports query: %w", err)
	}

	var rows []playerSportTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player sports: %w", err)
	}

	out := make([]playersport.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerSportRepository) Replace(ctx context.Context, userID string, entries []playersport.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player sports replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("player_sports").Where(qb.Eq("user_id", userID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player sports query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player sports: %w", err)
	}

	for _, e := range entries {
		e.UserID = userID
		if err := insertPlayerSport(ctx, tx, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player sports replace tx: %w", err)
	}
	return nil
}

func (r *PlayerSportRepository) Add(ctx context.Context, entry playersport.Entry, demoteIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player sport add: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := demotePlayerSports(ctx, tx, entry.UserID, demoteIDs); err != nil {
		return err
	}
	if err := insertPlayerSport(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player sport add tx: %w", err)
	}
	return nil
}

func (r *PlayerSportRepository) Update(ctx context.Context, entry playersport.Entry, demoteIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player sport update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := demotePlayerSports(ctx, tx, entry.UserID, demoteIDs); err != nil {
		return err
	}

	query, args, err := qb.Update("player_sports").
		Set("skill_level", string(entry.SkillLevel)).
		Set("is_primary", entry.IsPrimary).
		Where(qb.Eq("id", entry.ID), qb.Eq("user_id", entry.UserID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player sport query: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player sport: %w", mapConstraintError(err))
	}
	if err := requireRowsAffected(res, "update player sport", entry.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player sport update tx: %w", err)
	}
	return nil
}

func (r *PlayerSportRepository) Delete(ctx context.Context, userID, entryID, promoteID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx for player sport delete: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("player_sports").
		Where(qb.Eq("id", entryID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete player sport query: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete player sport: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete player sport rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if promoteID != "" {
		query, args, err = qb.Update("player_sports").
			Set("is_primary", true).
			Where(qb.Eq("id", promoteID), qb.Eq("user_id", userID)).
			ToSQL()
		if err != nil {
			return false, fmt.Errorf("build promote player sport query: %w", err)
		}
		res, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return false, fmt.Errorf("promote player sport: %w", mapConstraintError(err))
		}
		if err := requireRowsAffected(res, "promote player sport", promoteID); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit player sport delete tx: %w", err)
	}
	return true, nil
}

func insertPlayerSport(ctx context.Context, exec sqlx.ExecerContext, e playersport.Entry) error {
	query, args, err := qb.InsertModel("player_sports", toPlayerSportModel(e), "")
	if err != nil {
		return fmt.Errorf("build insert player sport query: %w", err)
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player sport %s: %w", e.Sport, mapConstraintError(err))
	}
	return nil
}

func demotePlayerSports(ctx context.Context, exec sqlx.ExecerContext, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := qb.Update("player_sports").
		Set("is_primary", false).
		Where(qb.Eq("user_id", userID), qb.In("id", ids)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build demote player sports query: %w", err)
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("demote player sports: %w", err)
	}
	return nil
}
