package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/sports-league/internal/domain/registration"
	"github.com/riskibarqy/sports-league/internal/domain/repoerr"
)

type RegistrationRepository struct {
	store *Store
}

func NewRegistrationRepository(store *Store) *RegistrationRepository {
	return &RegistrationRepository{store: store}
}

func (r *RegistrationRepository) Exists(_ context.Context, playerID, tournamentID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.existsLocked(playerID, tournamentID), nil
}

func (r *RegistrationRepository) existsLocked(playerID, tournamentID string) bool {
	for _, reg := range r.store.registrations {
		if reg.PlayerID == playerID && reg.TournamentID == tournamentID {
			return true
		}
	}
	return false
}

func (r *RegistrationRepository) Create(_ context.Context, reg registration.Registration) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.existsLocked(reg.PlayerID, reg.TournamentID) {
		return fmt.Errorf("%w: already registered for this tournament", repoerr.ErrConflict)
	}
	r.store.registrations[reg.ID] = reg
	return nil
}

func (r *RegistrationRepository) ListByPlayer(_ context.Context, playerID string) ([]registration.Registration, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]registration.Registration, 0)
	for _, reg := range r.store.registrations {
		if reg.PlayerID == playerID {
			out = append(out, reg)
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
