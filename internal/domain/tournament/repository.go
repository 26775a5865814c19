package tournament

import (
	"context"
	"time"
)

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (Tournament, bool, error)
	List(ctx context.Context) ([]Summary, error)
	Create(ctx context.Context, t Tournament) error
	// Delete locks the tournament, passes its match count to guard and
	// removes it when guard returns nil.
	Delete(ctx context.Context, id string, guard func(matchCount int) error) error
	// UpdateStatuses moves non-cancelled tournaments to their calendar status
	// at now and reports how many rows changed.
	UpdateStatuses(ctx context.Context, now time.Time) (int, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}
