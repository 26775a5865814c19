package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/sports-league/internal/domain/repoerr"
	"github.com/riskibarqy/sports-league/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.teams[id]
	return t, ok, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Summary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Summary, 0, len(r.store.teams))
	for _, t := range r.store.teams {
		item := team.Summary{Team: t, CurrentPlayers: len(r.store.teamMembersLocked(t.ID))}
		if coach, ok := r.store.users[t.CoachID]; ok {
			item.CoachName = coach.FullName()
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessByName(out[i].Name, out[i].ID, out[j].Name, out[j].ID)
	})
	return out, nil
}

func (r *TeamRepository) ListByCoach(_ context.Context, coachID string) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, t := range r.store.teams {
		if t.CoachID == coachID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return lessByName(out[i].Name, out[i].ID, out[j].Name, out[j].ID)
	})
	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate team: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.teams[t.ID]; exists {
		return fmt.Errorf("%w: team %s already exists", repoerr.ErrConflict, t.ID)
	}
	r.store.teams[t.ID] = t
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, id string, guard func(matchCount int) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.teams[id]; !ok {
		return fmt.Errorf("%w: team", repoerr.ErrNotFound)
	}
	if guard != nil {
		if err := guard(r.store.teamMatchCountLocked(id)); err != nil {
			return err
		}
	}

	for playerID, m := range r.store.members {
		if m.TeamID == id {
			delete(r.store.members, playerID)
		}
	}
	for regID, reg := range r.store.registrations {
		if reg.TeamID == id {
			delete(r.store.registrations, regID)
		}
	}
	delete(r.store.teams, id)
	return nil
}

func (r *TeamRepository) SetCoach(_ context.Context, teamID, coachID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.teams[teamID]
	if !ok {
		return fmt.Errorf("%w: team", repoerr.ErrNotFound)
	}
	if coachID != "" {
		if _, ok := r.store.users[coachID]; !ok {
			return fmt.Errorf("%w: coach missing", repoerr.ErrConflict)
		}
	}
	t.CoachID = coachID
	r.store.teams[teamID] = t
	return nil
}

func (r *TeamRepository) CountActive(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, t := range r.store.teams {
		if t.Status == team.StatusActive {
			count++
		}
	}
	return count, nil
}

func lessByName(nameA, idA, nameB, idB string) bool {
	a, b := strings.ToLower(nameA), strings.ToLower(nameB)
	if a != b {
		return a < b
	}
	return idA < idB
}
