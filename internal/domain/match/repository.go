package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (Match, bool, error)
	// List orders tournament listings by date ascending and everything else
	// by date descending.
	List(ctx context.Context, filter Filter) ([]View, error)
	Create(ctx context.Context, m Match) error
	// UpdateScore stores both scores and marks the match completed.
	UpdateScore(ctx context.Context, id string, home, away int) error
	// Delete locks the match, runs guard with its status and removes it when
	// guard returns nil.
	Delete(ctx context.Context, id string, guard func(Status) error) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
	TeamRecord(ctx context.Context, teamID string) (Record, error)
}
