package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	qb "github.com/riskibarqy/sports-league/internal/platform/querybuilder"
)

const (
	userTeamNamesColumn = `ARRAY(
    SELECT t.name FROM teams t
    WHERE t.coach_id = u.id OR t.id IN (SELECT tp.team_id FROM team_players tp WHERE tp.player_id = u.id)
    ORDER BY t.name COLLATE "C"
) AS team_names`
	userSportNamesColumn = `ARRAY(
    SELECT ps.sport FROM player_sports ps
    WHERE ps.user_id = u.id
    ORDER BY ps.is_primary DESC, ps.created_at, ps.id
) AS sport_names`
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, bool, error) {
	return r.getOne(ctx, "by id", qb.Eq("u.id", id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return r.getOne(ctx, "by email", qb.Expr("lower(u.email) = ?", strings.ToLower(email)))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, bool, error) {
	return r.getOne(ctx, "by username", qb.Eq("u.username", username))
}

func (r *UserRepository) getOne(ctx context.Context, label string, cond qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select(userColumns).From("users u").Where(cond).Limit(1).ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build select user %s query: %w", label, err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("select user %s: %w", label, err)
	}
	return row.toDomain(), true, nil
}

func (r *UserRepository) List(ctx context.Context, filter user.Filter) ([]user.User, error) {
	query, args, err := qb.Select(userColumns).From("users u").
		Where(userFilterConditions(filter)...).
		OrderBy("u.created_at DESC", "u.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *UserRepository) ListDetails(ctx context.Context, filter user.Filter) ([]user.Detail, error) {
	query, args, err := qb.Select(userColumns, userTeamNamesColumn, userSportNamesColumn).From("users u").
		Where(userFilterConditions(filter)...).
		OrderBy("u.created_at DESC", "u.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select user details query: %w", err)
	}

	var rows []userDetailModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select user details: %w", err)
	}

	out := make([]user.Detail, 0, len(rows))
	for _, row := range rows {
		detail := user.Detail{
			User:   row.toDomain(),
			Teams:  append([]string{}, row.TeamNames...),
			Sports: append([]string{}, row.SportNames...),
		}
		out = append(out, detail)
	}
	return out, nil
}

func (r *UserRepository) CountByStatus(ctx context.Context, role user.Role) (map[user.Status]int, error) {
	var conditions []qb.Condition
	if role != "" {
		conditions = append(conditions, qb.Eq("role", string(role)))
	}
	query, args, err := qb.Select("status", "COUNT(*) AS total").From("users").
		Where(conditions...).
		GroupBy("status").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count users query: %w", err)
	}

	var rows []statusCountModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count users by status: %w", err)
	}

	out := make(map[user.Status]int, len(rows))
	for _, row := range rows {
		out[user.Status(row.Status)] = row.Total
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, u user.User, sports []playersport.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for user create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel("users", toUserInsertModel(u), "")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user: %w", mapConstraintError(err))
	}

	for _, e := range sports {
		e.UserID = u.ID
		if err := insertPlayerSport(ctx, tx, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit user create tx: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, profile user.Profile) error {
	query, args, err := qb.Update("users").
		Set("first_name", profile.FirstName).
		Set("last_name", profile.LastName).
		Set("email", profile.Email).
		Set("phone_number", profile.PhoneNumber).
		Set("date_of_birth", profile.DateOfBirth).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user profile query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user profile: %w", mapConstraintError(err))
	}
	if err := requireRowsAffected(res, "update user profile", id); err != nil {
		return err
	}
	return nil
}

// UpdateRole switches the role only while the row still holds from, so two
// concurrent promotions cannot both succeed.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, from, to user.Role) (bool, error) {
	query, args, err := qb.Update("users").
		Set("role", string(to)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id), qb.Eq("role", string(from))).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update user role query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update user role: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update user role rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) SetStatus(ctx context.Context, id string, status user.Status, removeMemberships bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for user status: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := setUserStatus(ctx, tx, id, status, removeMemberships); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit user status tx: %w", err)
	}
	return nil
}

// DeletePermanently relies on the cascading foreign keys for sports,
// memberships, registrations and notifications. Coached teams keep existing
// with a NULL coach.
func (r *UserRepository) DeletePermanently(ctx context.Context, id string) error {
	return deleteUser(ctx, r.db, id)
}

func (r *UserRepository) ApplyAdminChange(ctx context.Context, change user.AdminChange, guard func(activeAdminIDs []string) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for admin change: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select("id").From("users").
		Where(qb.Eq("role", string(user.RoleAdmin)), qb.Eq("status", string(user.StatusActive))).
		OrderBy("id").
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock active admins query: %w", err)
	}

	var active []string
	if err := tx.SelectContext(ctx, &active, query, args...); err != nil {
		return fmt.Errorf("lock active admins: %w", err)
	}
	if active == nil {
		active = []string{}
	}

	if guard != nil {
		if err := guard(active); err != nil {
			return err
		}
	}

	if change.Permanent {
		err = deleteUser(ctx, tx, change.TargetID)
	} else {
		err = setUserStatus(ctx, tx, change.TargetID, change.Status, change.Status != user.StatusActive)
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit admin change tx: %w", err)
	}
	return nil
}

func userFilterConditions(filter user.Filter) []qb.Condition {
	var conditions []qb.Condition
	if filter.Role != "" {
		conditions = append(conditions, qb.Eq("u.role", string(filter.Role)))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("u.status", string(filter.Status)))
	}
	return conditions
}

func setUserStatus(ctx context.Context, tx *sqlx.Tx, id string, status user.Status, removeMemberships bool) error {
	query, args, err := qb.Update("users").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user status query: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if err := requireRowsAffected(res, "update user status", id); err != nil {
		return err
	}

	if !removeMemberships {
		return nil
	}
	query, args, err = qb.DeleteFrom("team_players").Where(qb.Eq("player_id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete memberships query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete memberships: %w", err)
	}
	return nil
}

func deleteUser(ctx context.Context, exec sqlx.ExecerContext, id string) error {
	query, args, err := qb.DeleteFrom("users").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete user query: %w", err)
	}

	res, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", mapConstraintError(err))
	}
	if err := requireRowsAffected(res, "delete user", id); err != nil {
		return err
	}
	return nil
}
