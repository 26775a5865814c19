package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	qb "github.com/riskibarqy/sports-league/internal/platform/querybuilder"
	"github.com/riskibarqy/sports-league/internal/usecase"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) GetByID(ctx context.Context, id string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(tournamentColumns).From("tournaments t").Where(qb.Eq("t.id", id)).ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build select tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("select tournament: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Summary, error) {
	query, args, err := qb.Select(
		tournamentColumns,
		"(SELECT COUNT(DISTINCT tr.team_id) FROM tournament_registrations tr WHERE tr.tournament_id = t.id) AS registered_teams",
	).
		From("tournaments t").
		OrderBy("t.start_date DESC", "t.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select tournaments query: %w", err)
	}

	var rows []tournamentSummaryModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tournaments: %w", err)
	}

	out := make([]tournament.Summary, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournament.Summary{
			Tournament:      row.tournamentTableModel.toDomain(),
			RegisteredTeams: row.RegisteredTeams,
		})
	}
	return out, nil
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament) error {
	query, args, err := qb.InsertModel("tournaments", toTournamentModel(t), "")
	if err != nil {
		return fmt.Errorf("build insert tournament query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert tournament: %w", mapConstraintError(err))
	}
	return nil
}

// Delete removes registrations through the cascading foreign key.
func (r *TournamentRepository) Delete(ctx context.Context, id string, guard func(matchCount int) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for tournament delete: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select("id").From("tournaments").
		Where(qb.Eq("id", id)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock tournament query: %w", err)
	}
	var lockedID string
	if err := tx.GetContext(ctx, &lockedID, query, args...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("lock tournament %s: %w", id, usecase.ErrNotFound)
		}
		return fmt.Errorf("lock tournament: %w", err)
	}

	query, args, err = qb.Select("COUNT(*)").From("matches").Where(qb.Eq("tournament_id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build count tournament matches query: %w", err)
	}
	var matchCount int
	if err := tx.GetContext(ctx, &matchCount, query, args...); err != nil {
		return fmt.Errorf("count tournament matches: %w", err)
	}

	if guard != nil {
		if err := guard(matchCount); err != nil {
			return err
		}
	}

	query, args, err = qb.DeleteFrom("tournaments").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete tournament query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete tournament: %w", mapConstraintError(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tournament delete tx: %w", err)
	}
	return nil
}

// UpdateStatuses locks every non-cancelled tournament and rewrites the ones
// whose calendar status moved since the last run.
func (r *TournamentRepository) UpdateStatuses(ctx context.Context, now time.Time) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx for tournament statuses: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select(tournamentColumns).From("tournaments t").
		Where(qb.NotEq("t.status", string(tournament.StatusCancelled))).
		ForUpdate().
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build lock tournaments query: %w", err)
	}
	var rows []tournamentTableModel
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return 0, fmt.Errorf("lock tournaments: %w", err)
	}

	changed := 0
	for _, row := range rows {
		t := row.toDomain()
		next := t.StatusAt(now)
		if next == t.Status {
			continue
		}
		query, args, err := qb.Update("tournaments").
			Set("status", string(next)).
			Where(qb.Eq("id", t.ID)).
			ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build update tournament status query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("update tournament %s status: %w", t.ID, err)
		}
		changed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tournament statuses tx: %w", err)
	}
	return changed, nil
}

func (r *TournamentRepository) CountByStatus(ctx context.Context) (map[tournament.Status]int, error) {
	query, args, err := qb.Select("status", "COUNT(*) AS total").From("tournaments").GroupBy("status").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count tournaments query: %w", err)
	}

	var rows []statusCountModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count tournaments by status: %w", err)
	}

	out := make(map[tournament.Status]int, len(rows))
	for _, row := range rows {
		out[tournament.Status(row.Status)] = row.Total
	}
	return out, nil
}
