package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (Team, bool, error)
	List(ctx context.Context) ([]Summary, error)
	ListByCoach(ctx context.Context, coachID string) ([]Team, error)
	Create(ctx context.Context, t Team) error
	// Delete locks the team, passes its match count to guard and removes the
	// roster and team rows when guard returns nil.
	Delete(ctx context.Context, id string, guard func(matchCount int) error) error
	// SetCoach assigns coachID, or clears the coach when coachID is empty.
	SetCoach(ctx context.Context, teamID, coachID string) error
	CountActive(ctx context.Context) (int, error)
}
