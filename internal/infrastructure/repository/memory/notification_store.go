package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/sports-league/internal/domain/notification"
	"github.com/riskibarqy/sports-league/internal/domain/repoerr"
)

type NotificationStore struct {
	store *Store
}

func NewNotificationStore(store *Store) *NotificationStore {
	return &NotificationStore{store: store}
}

func (r *NotificationStore) ListByUser(_ context.Context, userID string) ([]notification.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]notification.Notification, 0)
	for _, n := range r.store.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *NotificationStore) Create(_ context.Context, n notification.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[n.UserID]; !ok {
		return fmt.Errorf("%w: user missing", repoerr.ErrConflict)
	}
	r.store.notifications[n.ID] = n
	return nil
}

func (r *NotificationStore) MarkRead(_ context.Context, userID, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n, ok := r.store.notifications[id]
	if !ok || n.UserID != userID {
		return false, nil
	}
	n.Read = true
	r.store.notifications[id] = n
	return true, nil
}

func (r *NotificationStore) MarkAllRead(_ context.Context, userID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	count := 0
	for id, n := range r.store.notifications {
		if n.UserID != userID || n.Read {
			continue
		}
		n.Read = true
		r.store.notifications[id] = n
		count++
	}
	return count, nil
}
