package venue

import (
	"context"
	"time"
)

type Venue struct {
	ID           string
	Name         string
	Location     string
	Capacity     int
	FacilityType string
	CreatedAt    time.Time
}

// Repository describes venue persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (Venue, bool, error)
	List(ctx context.Context) ([]Venue, error)
	Create(ctx context.Context, v Venue) error
}
