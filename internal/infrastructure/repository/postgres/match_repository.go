package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sports-league/internal/domain/match"
	qb "github.com/riskibarqy/sports-league/internal/platform/querybuilder"
	"github.com/riskibarqy/sports-league/internal/usecase"
)

type teamRecordModel struct {
	Played int `db:"played"`
	Wins   int `db:"wins"`
	Losses int `db:"losses"`
	Draws  int `db:"draws"`
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns).From("matches m").Where(qb.Eq("m.id", id)).ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.View, error) {
	var conditions []qb.Condition
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("m.status", string(filter.Status)))
	}
	if filter.TournamentID != "" {
		conditions = append(conditions, qb.Eq("m.tournament_id", filter.TournamentID))
	}
	if filter.FriendlyOnly {
		conditions = append(conditions, qb.IsNull("m.tournament_id"))
	}
	if filter.TeamID != "" {
		conditions = append(conditions, qb.Expr("(m.home_team_id = ? OR m.away_team_id = ?)", filter.TeamID, filter.TeamID))
	}

	order := "m.match_date DESC"
	if filter.TournamentID != "" {
		order = "m.match_date ASC"
	}

	query, args, err := qb.Select(
		matchColumns,
		"home.name AS home_team_name",
		"away.name AS away_team_name",
		"v.name AS venue_name",
		"t.name AS tournament_name",
		"home.sport AS sport",
	).
		From("matches m").
		Join("teams home", "home.id = m.home_team_id").
		Join("teams away", "away.id = m.away_team_id").
		Join("venues v", "v.id = m.venue_id").
		LeftJoin("tournaments t", "t.id = m.tournament_id").
		Where(conditions...).
		OrderBy(order, "m.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchViewModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.View, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertModel("matches", toMatchInsertModel(m), "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", mapConstraintError(err))
	}
	return nil
}

func (r *MatchRepository) UpdateScore(ctx context.Context, id string, home, away int) error {
	query, args, err := qb.Update("matches").
		Set("home_score", home).
		Set("away_score", away).
		Set("status", string(match.StatusCompleted)).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match score query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match score: %w", err)
	}
	if err := requireRowsAffected(res, "update match score", id); err != nil {
		return err
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, id string, guard func(match.Status) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for match delete: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select("status").From("matches").
		Where(qb.Eq("id", id)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock match query: %w", err)
	}
	var status string
	if err := tx.GetContext(ctx, &status, query, args...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("lock match %s: %w", id, usecase.ErrNotFound)
		}
		return fmt.Errorf("lock match: %w", err)
	}

	if guard != nil {
		if err := guard(match.Status(status)); err != nil {
			return err
		}
	}

	query, args, err = qb.DeleteFrom("matches").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit match delete tx: %w", err)
	}
	return nil
}

func (r *MatchRepository) CountByStatus(ctx context.Context) (map[match.Status]int, error) {
	query, args, err := qb.Select("status", "COUNT(*) AS total").From("matches").GroupBy("status").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count matches query: %w", err)
	}

	var rows []statusCountModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count matches by status: %w", err)
	}

	out := make(map[match.Status]int, len(rows))
	for _, row := range rows {
		out[match.Status(row.Status)] = row.Total
	}
	return out, nil
}

// TeamRecord tallies completed, scored matches from teamID's side.
func (r *MatchRepository) TeamRecord(ctx context.Context, teamID string) (match.Record, error) {
	const ownScore = "CASE WHEN home_team_id = ? THEN home_score ELSE away_score END"
	const otherScore = "CASE WHEN home_team_id = ? THEN away_score ELSE home_score END"

	query := `
SELECT
    COUNT(*) AS played,
    COALESCE(SUM(CASE WHEN own > other THEN 1 ELSE 0 END), 0) AS wins,
    COALESCE(SUM(CASE WHEN own < other THEN 1 ELSE 0 END), 0) AS losses,
    COALESCE(SUM(CASE WHEN own = other THEN 1 ELSE 0 END), 0) AS draws
FROM (
    SELECT ` + ownScore + ` AS own, ` + otherScore + ` AS other
    FROM matches
    WHERE status = ?
      AND home_score IS NOT NULL
      AND away_score IS NOT NULL
      AND (home_team_id = ? OR away_team_id = ?)
) scored`
	query = r.db.Rebind(query)

	var row teamRecordModel
	if err := r.db.GetContext(ctx, &row, query, teamID, teamID, string(match.StatusCompleted), teamID, teamID); err != nil {
		return match.Record{}, fmt.Errorf("select team record: %w", err)
	}
	return match.Record{Played: row.Played, Wins: row.Wins, Losses: row.Losses, Draws: row.Draws}, nil
}
