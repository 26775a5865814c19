package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/repoerr"
	"github.com/riskibarqy/sports-league/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	return u, ok, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) List(_ context.Context, filter user.Filter) ([]user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.listLocked(filter), nil
}

func (r *UserRepository) listLocked(filter user.Filter) []user.User {
	out := make([]user.User, 0)
	for _, u := range r.store.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *UserRepository) ListDetails(_ context.Context, filter user.Filter) ([]user.Detail, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := r.listLocked(filter)
	out := make([]user.Detail, 0, len(users))
	for _, u := range users {
		detail := user.Detail{User: u, Teams: []string{}, Sports: []string{}}
		if m, ok := r.store.members[u.ID]; ok {
			if t, ok := r.store.teams[m.TeamID]; ok {
				detail.Teams = append(detail.Teams, t.Name)
			}
		}
		for _, t := range r.store.teams {
			if t.CoachID == u.ID {
				detail.Teams = append(detail.Teams, t.Name)
			}
		}
		sort.Strings(detail.Teams)
		for _, e := range r.store.sportsOfLocked(u.ID) {
			detail.Sports = append(detail.Sports, e.Sport.String())
		}
		out = append(out, detail)
	}
	return out, nil
}

func (r *UserRepository) CountByStatus(_ context.Context, role user.Role) (map[user.Status]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[user.Status]int)
	for _, u := range r.store.users {
		if role != "" && u.Role != role {
			continue
		}
		out[u.Status]++
	}
	return out, nil
}

func (r *UserRepository) Create(_ context.Context, u user.User, sports []playersport.Entry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.users[u.ID]; exists {
		return fmt.Errorf("%w: user %s already exists", repoerr.ErrConflict, u.ID)
	}
	for _, existing := range r.store.users {
		if strings.EqualFold(existing.Email, u.Email) || existing.Username == u.Username {
			return fmt.Errorf("%w: email or username already registered", repoerr.ErrConflict)
		}
	}

	r.store.users[u.ID] = u
	for _, e := range sports {
		e.UserID = u.ID
		r.store.sports[e.ID] = e
	}
	return nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id string, profile user.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("%w: user", repoerr.ErrNotFound)
	}
	u.FirstName = profile.FirstName
	u.LastName = profile.LastName
	u.Email = profile.Email
	u.PhoneNumber = profile.PhoneNumber
	u.DateOfBirth = profile.DateOfBirth
	r.store.users[id] = u
	return nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id string, from, to user.Role) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok || u.Role != from {
		return false, nil
	}
	u.Role = to
	r.store.users[id] = u
	return true, nil
}

func (r *UserRepository) SetStatus(_ context.Context, id string, status user.Status, removeMemberships bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.setStatusLocked(id, status, removeMemberships)
}

func (r *UserRepository) setStatusLocked(id string, status user.Status, removeMemberships bool) error {
	u, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("%w: user", repoerr.ErrNotFound)
	}
	u.Status = status
	r.store.users[id] = u
	if removeMemberships {
		r.store.removeMembershipsLocked(id)
	}
	return nil
}

func (r *UserRepository) DeletePermanently(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.deleteUserLocked(id)
}

func (r *UserRepository) ApplyAdminChange(_ context.Context, change user.AdminChange, guard func(activeAdminIDs []string) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	active := make([]string, 0)
	for _, u := range r.store.users {
		if u.Role == user.RoleAdmin && u.Status == user.StatusActive {
			active = append(active, u.ID)
		}
	}
	sort.Strings(active)

	if guard != nil {
		if err := guard(active); err != nil {
			return err
		}
	}

	if change.Permanent {
		return r.store.deleteUserLocked(change.TargetID)
	}
	return r.setStatusLocked(change.TargetID, change.Status, change.Status != user.StatusActive)
}
