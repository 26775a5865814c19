package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sports-league/internal/domain/roster"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	qb "github.com/riskibarqy/sports-league/internal/platform/querybuilder"
)

const skillRankExpr = `CASE ps.skill_level
    WHEN 'expert' THEN 4
    WHEN 'advanced' THEN 3
    WHEN 'intermediate' THEN 2
    WHEN 'beginner' THEN 1
    ELSE 0
END`

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID string) ([]roster.MemberDetail, error) {
	query, args, err := qb.Select(
		"tp.team_id", "tp.player_id", "tp.position", "tp.jersey_number", "tp.joined_at",
		"u.username", "u.first_name", "u.last_name", "u.email",
	).
		From("team_players tp").
		Join("users u", "u.id = tp.player_id").
		Where(qb.Eq("tp.team_id", teamID)).
		OrderBy("tp.joined_at", "tp.player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team members query: %w", err)
	}

	var rows []teamMemberDetailModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team members: %w", err)
	}

	out := make([]roster.MemberDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.MemberDetail{
			Member:    row.teamMemberModel.toDomain(),
			Username:  row.Username,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
		})
	}
	return out, nil
}

func (r *RosterRepository) GetByPlayer(ctx context.Context, playerID string) (roster.Member, bool, error) {
	query, args, err := qb.Select("team_id", "player_id", "position", "jersey_number", "joined_at").
		From("team_players").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return roster.Member{}, false, fmt.Errorf("build select membership query: %w", err)
	}

	var row teamMemberModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Member{}, false, nil
		}
		return roster.Member{}, false, fmt.Errorf("select membership: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RosterRepository) AddMembers(ctx context.Context, teamID string, members []roster.Member, guard func(roster.Snapshot) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for roster add: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	t, err := lockTeamRow(ctx, tx, teamID)
	if err != nil {
		return err
	}

	snapshot, err := r.snapshot(ctx, tx, t, members)
	if err != nil {
		return err
	}

	if guard != nil {
		if err := guard(snapshot); err != nil {
			return err
		}
	}

	for _, m := range members {
		m.TeamID = teamID
		query, args, err := qb.InsertModel("team_players", toTeamMemberInsertModel(m), "")
		if err != nil {
			return fmt.Errorf("build insert team player query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert team player %s: %w", m.PlayerID, mapConstraintError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster add tx: %w", err)
	}
	return nil
}

func (r *RosterRepository) snapshot(ctx context.Context, tx *sqlx.Tx, t teamTableModel, members []roster.Member) (roster.Snapshot, error) {
	query, args, err := qb.Select("team_id", "player_id", "position", "jersey_number", "joined_at").
		From("team_players").
		Where(qb.Eq("team_id", t.ID)).
		ToSQL()
	if err != nil {
		return roster.Snapshot{}, fmt.Errorf("build select roster query: %w", err)
	}
	var current []teamMemberModel
	if err := tx.SelectContext(ctx, &current, query, args...); err != nil {
		return roster.Snapshot{}, fmt.Errorf("select roster: %w", err)
	}

	snapshot := roster.Snapshot{
		TeamID:        t.ID,
		MaxPlayers:    t.MaxPlayers,
		MemberCount:   len(current),
		JerseyNumbers: make([]int, 0, len(current)),
		Memberships:   make(map[string]string),
		Statuses:      make(map[string]user.Status),
	}
	for _, m := range current {
		if m.JerseyNumber.Valid {
			snapshot.JerseyNumbers = append(snapshot.JerseyNumbers, int(m.JerseyNumber.Int64))
		}
	}

	if len(members) == 0 {
		return snapshot, nil
	}
	playerIDs := make([]string, 0, len(members))
	for _, m := range members {
		playerIDs = append(playerIDs, m.PlayerID)
	}
	query, args, err = qb.Select("team_id", "player_id", "position", "jersey_number", "joined_at").
		From("team_players").
		Where(qb.In("player_id", playerIDs)).
		ToSQL()
	if err != nil {
		return roster.Snapshot{}, fmt.Errorf("build select memberships query: %w", err)
	}
	var existing []teamMemberModel
	if err := tx.SelectContext(ctx, &existing, query, args...); err != nil {
		return roster.Snapshot{}, fmt.Errorf("select memberships: %w", err)
	}
	for _, m := range existing {
		snapshot.Memberships[m.PlayerID] = m.TeamID
	}

	// Status changes update the users row before they drop memberships, so
	// the share lock orders them against this insert.
	query, args, err = qb.Select("id", "status").
		From("users").
		Where(qb.In("id", playerIDs)).
		ForShare().
		ToSQL()
	if err != nil {
		return roster.Snapshot{}, fmt.Errorf("build select candidate statuses query: %w", err)
	}
	var statuses []userStatusModel
	if err := tx.SelectContext(ctx, &statuses, query, args...); err != nil {
		return roster.Snapshot{}, fmt.Errorf("select candidate statuses: %w", err)
	}
	for _, row := range statuses {
		snapshot.Statuses[row.ID] = user.Status(row.Status)
	}
	return snapshot, nil
}

type userStatusModel struct {
	ID     string `db:"id"`
	Status string `db:"status"`
}

func (r *RosterRepository) RemoveMember(ctx context.Context, teamID, playerID string) (bool, error) {
	query, args, err := qb.DeleteFrom("team_players").
		Where(qb.Eq("team_id", teamID), qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete team player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete team player: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete team player rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *RosterRepository) ListAvailable(ctx context.Context, s sport.Sport) ([]roster.Candidate, error) {
	query, args, err := qb.Select(
		"u.id AS user_id", "u.username", "u.first_name", "u.last_name", "u.email",
		"ps.skill_level", "ps.is_primary",
	).
		From("users u").
		Join("player_sports ps", "ps.user_id = u.id").
		Where(
			qb.Eq("u.role", string(user.RolePlayer)),
			qb.Eq("u.status", string(user.StatusActive)),
			qb.Eq("ps.sport", string(s)),
			qb.Expr("NOT EXISTS (SELECT 1 FROM team_players tp WHERE tp.player_id = u.id)"),
		).
		OrderBy("ps.is_primary DESC", skillRankExpr+" DESC", `u.username COLLATE "C"`).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select available players query: %w", err)
	}

	var rows []candidateModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select available players: %w", err)
	}

	out := make([]roster.Candidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
