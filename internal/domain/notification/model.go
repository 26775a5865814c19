package notification

import (
	"context"
	"time"
)

type Kind string

const (
	KindRosterAdded      Kind = "roster_added"
	KindRosterRemoved    Kind = "roster_removed"
	KindMatchScheduled   Kind = "match_scheduled"
	KindTournamentSignup Kind = "tournament_signup"
)

type Notification struct {
	ID        string
	UserID    string
	Kind      Kind
	Message   string
	Read      bool
	CreatedAt time.Time
}

// Store keeps per-user notifications.
type Store interface {
	ListByUser(ctx context.Context, userID string) ([]Notification, error)
	Create(ctx context.Context, n Notification) error
	MarkRead(ctx context.Context, userID, id string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
}
