package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/notification"
	idgen "github.com/riskibarqy/sports-league/internal/platform/id"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
)

// Notifier delivers best-effort messages to a user. Failures never fail the
// calling operation.
type Notifier interface {
	Notify(ctx context.Context, userID string, kind notification.Kind, message string)
}

type NotificationService struct {
	store  notification.Store
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewNotificationService(store notification.Store, idGen idgen.Generator, logger *logging.Logger) *NotificationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &NotificationService{
		store:  store,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]notification.Notification, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationService.List")
	defer span.End()

	userID, err := requireID("user id", userID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationService.MarkRead")
	defer span.End()

	notificationID, err := requireID("notification id", notificationID)
	if err != nil {
		return err
	}
	updated, err := s.store.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !updated {
		return fmt.Errorf("%w: notification=%s", ErrNotFound, notificationID)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationService.MarkAllRead")
	defer span.End()

	count, err := s.store.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return count, nil
}

func (s *NotificationService) Notify(ctx context.Context, userID string, kind notification.Kind, message string) {
	if s == nil || strings.TrimSpace(userID) == "" {
		return
	}
	notificationID, err := s.idGen.NewID()
	if err != nil {
		s.logger.WarnContext(ctx, "generate notification id failed", "user_id", userID, "error", err)
		return
	}
	n := notification.Notification{
		ID:        notificationID,
		UserID:    userID,
		Kind:      kind,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, n); err != nil {
		s.logger.WarnContext(ctx, "store notification failed", "user_id", userID, "kind", kind, "error", err)
	}
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, notification.Kind, string) {}
