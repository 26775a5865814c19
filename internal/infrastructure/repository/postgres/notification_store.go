package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sports-league/internal/domain/notification"
	qb "github.com/riskibarqy/sports-league/internal/platform/querybuilder"
)

type notificationTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Kind      string    `db:"kind"`
	Message   string    `db:"message"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

type NotificationStore struct {
	db *sqlx.DB
}

func NewNotificationStore(db *sqlx.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) ListByUser(ctx context.Context, userID string) ([]notification.Notification, error) {
	query, args, err := qb.Select("*").From("notifications").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select notifications query: %w", err)
	}

	var rows []notificationTableModel
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select notifications: %w", err)
	}

	out := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, notification.Notification{
			ID:        row.ID,
			UserID:    row.UserID,
			Kind:      notification.Kind(row.Kind),
			Message:   row.Message,
			Read:      row.IsRead,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (s *NotificationStore) Create(ctx context.Context, n notification.Notification) error {
	query, args, err := qb.InsertModel("notifications", notificationTableModel{
		ID:        n.ID,
		UserID:    n.UserID,
		Kind:      string(n.Kind),
		Message:   n.Message,
		IsRead:    n.Read,
		CreatedAt: n.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert notification query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert notification: %w", mapConstraintError(err))
	}
	return nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, userID, id string) (bool, error) {
	n, err := s.markRead(ctx, qb.Eq("user_id", userID), qb.Eq("id", id))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *NotificationStore) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.markRead(ctx, qb.Eq("user_id", userID), qb.Eq("is_read", false))
}

func (s *NotificationStore) markRead(ctx context.Context, conditions ...qb.Condition) (int, error) {
	query, args, err := qb.Update("notifications").
		Set("is_read", true).
		Where(conditions...).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build mark notifications read query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark notifications read rows affected: %w", err)
	}
	return int(n), nil
}
