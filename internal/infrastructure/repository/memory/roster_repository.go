package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/repoerr"
	"github.com/riskibarqy/sports-league/internal/domain/roster"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
	"github.com/riskibarqy/sports-league/internal/domain/user"
)

type RosterRepository struct {
	store *Store
}

func NewRosterRepository(store *Store) *RosterRepository {
	return &RosterRepository{store: store}
}

func (r *RosterRepository) ListByTeam(_ context.Context, teamID string) ([]roster.MemberDetail, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	members := r.store.teamMembersLocked(teamID)
	out := make([]roster.MemberDetail, 0, len(members))
	for _, m := range members {
		u := r.store.users[m.PlayerID]
		out = append(out, roster.MemberDetail{
			Member:    m,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
	}
	return out, nil
}

func (r *RosterRepository) GetByPlayer(_ context.Context, playerID string) (roster.Member, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.members[playerID]
	return m, ok, nil
}

func (r *RosterRepository) AddMembers(_ context.Context, teamID string, members []roster.Member, guard func(roster.Snapshot) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.teams[teamID]
	if !ok {
		return fmt.Errorf("%w: team", repoerr.ErrNotFound)
	}

	current := r.store.teamMembersLocked(teamID)
	snapshot := roster.Snapshot{
		TeamID:        teamID,
		MaxPlayers:    t.MaxPlayers,
		MemberCount:   len(current),
		JerseyNumbers: make([]int, 0, len(current)),
		Memberships:   make(map[string]string),
		Statuses:      make(map[string]user.Status),
	}
	for _, m := range current {
		if m.JerseyNumber != nil {
			snapshot.JerseyNumbers = append(snapshot.JerseyNumbers, *m.JerseyNumber)
		}
	}
	for _, m := range members {
		if existing, ok := r.store.members[m.PlayerID]; ok {
			snapshot.Memberships[m.PlayerID] = existing.TeamID
		}
		if u, ok := r.store.users[m.PlayerID]; ok {
			snapshot.Statuses[m.PlayerID] = u.Status
		}
	}

	if guard != nil {
		if err := guard(snapshot); err != nil {
			return err
		}
	}

	for _, m := range members {
		m.TeamID = teamID
		r.store.members[m.PlayerID] = m
	}
	return nil
}

func (r *RosterRepository) RemoveMember(_ context.Context, teamID, playerID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.members[playerID]
	if !ok || m.TeamID != teamID {
		return false, nil
	}
	delete(r.store.members, playerID)
	return true, nil
}

func (r *RosterRepository) ListAvailable(_ context.Context, s sport.Sport) ([]roster.Candidate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]roster.Candidate, 0)
	for _, u := range r.store.users {
		if u.Role != user.RolePlayer || u.Status != user.StatusActive {
			continue
		}
		if _, rostered := r.store.members[u.ID]; rostered {
			continue
		}
		for _, e := range r.store.sportsOfLocked(u.ID) {
			if e.Sport != s {
				continue
			}
			out = append(out, roster.Candidate{
				UserID:     u.ID,
				Username:   u.Username,
				FirstName:  u.FirstName,
				LastName:   u.LastName,
				Email:      u.Email,
				SkillLevel: e.SkillLevel,
				IsPrimary:  e.IsPrimary,
			})
			break
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		if a, b := skillRank(out[i].SkillLevel), skillRank(out[j].SkillLevel); a != b {
			return a > b
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}

func skillRank(level playersport.SkillLevel) int {
	switch level {
	case playersport.SkillExpert:
		return 4
	case playersport.SkillAdvanced:
		return 3
	case playersport.SkillIntermediate:
		return 2
	case playersport.SkillBeginner:
		return 1
	default:
		return 0
	}
}
