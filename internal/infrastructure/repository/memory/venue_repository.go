package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/sports-league/internal/domain/repoerr"
	"github.com/riskibarqy/sports-league/internal/domain/venue"
)

type VenueRepository struct {
	store *Store
}

func NewVenueRepository(store *Store) *VenueRepository {
	return &VenueRepository{store: store}
}

func (r *VenueRepository) GetByID(_ context.Context, id string) (venue.Venue, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	v, ok := r.store.venues[id]
	return v, ok, nil
}

func (r *VenueRepository) List(_ context.Context) ([]venue.Venue, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]venue.Venue, 0, len(r.store.venues))
	for _, v := range r.store.venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessByName(out[i].Name, out[i].ID, out[j].Name, out[j].ID)
	})
	return out, nil
}

func (r *VenueRepository) Create(_ context.Context, v venue.Venue) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.venues[v.ID]; exists {
		return fmt.Errorf("%w: venue %s already exists", repoerr.ErrConflict, v.ID)
	}
	r.store.venues[v.ID] = v
	return nil
}
