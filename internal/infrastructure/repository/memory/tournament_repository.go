package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/repoerr"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
)

type TournamentRepository struct {
	store *Store
}

func NewTournamentRepository(store *Store) *TournamentRepository {
	return &TournamentRepository{store: store}
}

func (r *TournamentRepository) GetByID(_ context.Context, id string) (tournament.Tournament, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.tournaments[id]
	return t, ok, nil
}

func (r *TournamentRepository) List(_ context.Context) ([]tournament.Summary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	teamsByTournament := make(map[string]map[string]struct{})
	for _, reg := range r.store.registrations {
		set, ok := teamsByTournament[reg.TournamentID]
		if !ok {
			set = make(map[string]struct{})
			teamsByTournament[reg.TournamentID] = set
		}
		set[reg.TeamID] = struct{}{}
	}

	out := make([]tournament.Summary, 0, len(r.store.tournaments))
	for _, t := range r.store.tournaments {
		out = append(out, tournament.Summary{Tournament: t, RegisteredTeams: len(teamsByTournament[t.ID])})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TournamentRepository) Create(_ context.Context, t tournament.Tournament) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.tournaments[t.ID]; exists {
		return fmt.Errorf("%w: tournament %s already exists", repoerr.ErrConflict, t.ID)
	}
	r.store.tournaments[t.ID] = t
	return nil
}

func (r *TournamentRepository) Delete(_ context.Context, id string, guard func(matchCount int) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tournaments[id]; !ok {
		return fmt.Errorf("%w: tournament", repoerr.ErrNotFound)
	}
	count := 0
	for _, m := range r.store.matches {
		if m.TournamentID == id {
			count++
		}
	}
	if guard != nil {
		if err := guard(count); err != nil {
			return err
		}
	}

	for regID, reg := range r.store.registrations {
		if reg.TournamentID == id {
			delete(r.store.registrations, regID)
		}
	}
	delete(r.store.tournaments, id)
	return nil
}

func (r *TournamentRepository) UpdateStatuses(_ context.Context, now time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	changed := 0
	for id, t := range r.store.tournaments {
		next := t.StatusAt(now)
		if next == t.Status {
			continue
		}
		t.Status = next
		r.store.tournaments[id] = t
		changed++
	}
	return changed, nil
}

func (r *TournamentRepository) CountByStatus(_ context.Context) (map[tournament.Status]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[tournament.Status]int)
	for _, t := range r.store.tournaments {
		out[t.Status]++
	}
	return out, nil
}
