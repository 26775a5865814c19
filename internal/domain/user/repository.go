package user

import (
	"context"

	"github.com/riskibarqy/sports-league/internal/domain/playersport"
)

// Repository describes account persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	List(ctx context.Context, filter Filter) ([]User, error)
	ListDetails(ctx context.Context, filter Filter) ([]Detail, error)
	CountByStatus(ctx context.Context, role Role) (map[Status]int, error)
	// Create inserts the user and its sport entries in one transaction.
	Create(ctx context.Context, u User, sports []playersport.Entry) error
	UpdateProfile(ctx context.Context, id string, profile Profile) error
	// UpdateRole switches the role only when the current role equals from.
	UpdateRole(ctx context.Context, id string, from, to Role) (bool, error)
	// SetStatus updates the status and, when removeMemberships is set, deletes
	// every team membership of the user in the same transaction.
	SetStatus(ctx context.Context, id string, status Status, removeMemberships bool) error
	// DeletePermanently removes the user and every dependent row in one transaction.
	DeletePermanently(ctx context.Context, id string) error
	// ApplyAdminChange locks the active admin rows, runs guard with their ids
	// and applies change only when guard returns nil.
	ApplyAdminChange(ctx context.Context, change AdminChange, guard func(activeAdminIDs []string) error) error
}
