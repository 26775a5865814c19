package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	qb "github.com/riskibarqy/sports-league/internal/platform/querybuilder"
	"github.com/riskibarqy/sports-league/internal/usecase"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns).From("teams t").Where(qb.Eq("t.id", id)).ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Summary, error) {
	query, args, err := qb.Select(
		teamColumns,
		"c.first_name AS coach_first_name",
		"c.last_name AS coach_last_name",
		"(SELECT COUNT(*) FROM team_players tp WHERE tp.team_id = t.id) AS current_players",
	).
		From("teams t").
		LeftJoin("users c", "c.id = t.coach_id").
		OrderBy("lower(t.name)", "t.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamSummaryModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Summary, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) ListByCoach(ctx context.Context, coachID string) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns).From("teams t").
		Where(qb.Eq("t.coach_id", coachID)).
		OrderBy("lower(t.name)", "t.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by coach query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by coach: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate team: %w", err)
	}

	query, args, err := qb.InsertModel("teams", toTeamInsertModel(t), "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", mapConstraintError(err))
	}
	return nil
}

// Delete cascades to team_players and tournament_registrations through their
// foreign keys. Matches are not cascaded, so guard must reject teams that
// still have them.
func (r *TeamRepository) Delete(ctx context.Context, id string, guard func(matchCount int) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for team delete: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := lockTeamRow(ctx, tx, id); err != nil {
		return err
	}

	query, args, err := qb.Select("COUNT(*)").From("matches").
		Where(qb.Expr("(home_team_id = ? OR away_team_id = ?)", id, id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build count team matches query: %w", err)
	}
	var matchCount int
	if err := tx.GetContext(ctx, &matchCount, query, args...); err != nil {
		return fmt.Errorf("count team matches: %w", err)
	}

	if guard != nil {
		if err := guard(matchCount); err != nil {
			return err
		}
	}

	query, args, err = qb.DeleteFrom("teams").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete team: %w", mapConstraintError(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit team delete tx: %w", err)
	}
	return nil
}

func (r *TeamRepository) SetCoach(ctx context.Context, teamID, coachID string) error {
	query, args, err := qb.Update("teams").
		Set("coach_id", nullableString(coachID)).
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team coach query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team coach: %w", mapConstraintError(err))
	}
	if err := requireRowsAffected(res, "update team coach", teamID); err != nil {
		return err
	}
	return nil
}

func (r *TeamRepository) CountActive(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("teams").
		Where(qb.Eq("status", string(team.StatusActive))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count active teams query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count active teams: %w", err)
	}
	return count, nil
}

// lockTeamRow takes the row lock that roster changes and team deletion
// serialize on.
func lockTeamRow(ctx context.Context, tx *sqlx.Tx, id string) (teamTableModel, error) {
	query, args, err := qb.Select(teamColumns).From("teams t").
		Where(qb.Eq("t.id", id)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return teamTableModel{}, fmt.Errorf("build lock team query: %w", err)
	}

	var row teamTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return teamTableModel{}, fmt.Errorf("lock team %s: %w", id, usecase.ErrNotFound)
		}
		return teamTableModel{}, fmt.Errorf("lock team: %w", err)
	}
	return row, nil
}
