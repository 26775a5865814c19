package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/sports-league/internal/domain/match"
	"github.com/riskibarqy/sports-league/internal/domain/notification"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/registration"
	"github.com/riskibarqy/sports-league/internal/domain/repoerr"
	"github.com/riskibarqy/sports-league/internal/domain/roster"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	"github.com/riskibarqy/sports-league/internal/domain/venue"
)

// Store holds every table behind one lock so that cascades and guarded
// writes observe the same state, like a single database transaction.
type Store struct {
	mu            sync.RWMutex
	users         map[string]user.User
	sports        map[string]playersport.Entry
	teams         map[string]team.Team
	members       map[string]roster.Member // keyed by player id
	matches       map[string]match.Match
	tournaments   map[string]tournament.Tournament
	venues        map[string]venue.Venue
	registrations map[string]registration.Registration
	notifications map[string]notification.Notification
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]user.User),
		sports:        make(map[string]playersport.Entry),
		teams:         make(map[string]team.Team),
		members:       make(map[string]roster.Member),
		matches:       make(map[string]match.Match),
		tournaments:   make(map[string]tournament.Tournament),
		venues:        make(map[string]venue.Venue),
		registrations: make(map[string]registration.Registration),
		notifications: make(map[string]notification.Notification),
	}
}

func (s *Store) sportsOfLocked(userID string) []playersport.Entry {
	out := make([]playersport.Entry, 0)
	for _, e := range s.sports {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) teamMembersLocked(teamID string) []roster.Member {
	out := make([]roster.Member, 0)
	for _, m := range s.members {
		if m.TeamID == teamID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

func (s *Store) teamMatchCountLocked(teamID string) int {
	count := 0
	for _, m := range s.matches {
		if m.HomeTeamID == teamID || m.AwayTeamID == teamID {
			count++
		}
	}
	return count
}

// deleteUserLocked removes a user and every row depending on it. Teams the
// user coached lose their coach.
func (s *Store) deleteUserLocked(userID string) error {
	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("%w: user", repoerr.ErrNotFound)
	}
	for id, e := range s.sports {
		if e.UserID == userID {
			delete(s.sports, id)
		}
	}
	delete(s.members, userID)
	for id, r := range s.registrations {
		if r.PlayerID == userID {
			delete(s.registrations, id)
		}
	}
	for id, n := range s.notifications {
		if n.UserID == userID {
			delete(s.notifications, id)
		}
	}
	for id, t := range s.teams {
		if t.CoachID == userID {
			t.CoachID = ""
			s.teams[id] = t
		}
	}
	delete(s.users, userID)
	return nil
}

func (s *Store) removeMembershipsLocked(userID string) {
	delete(s.members, userID)
}
