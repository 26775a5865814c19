package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/sports-league/internal/domain/match"
	"github.com/riskibarqy/sports-league/internal/domain/repoerr"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.matches[id]
	return m, ok, nil
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.View, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.View, 0)
	for _, m := range r.store.matches {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.TournamentID != "" && m.TournamentID != filter.TournamentID {
			continue
		}
		if filter.FriendlyOnly && !m.IsFriendly() {
			continue
		}
		if filter.TeamID != "" && m.HomeTeamID != filter.TeamID && m.AwayTeamID != filter.TeamID {
			continue
		}
		out = append(out, r.viewLocked(m))
	}

	ascending := filter.TournamentID != ""
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].MatchDate, out[j].MatchDate
		if !a.Equal(b) {
			if ascending {
				return a.Before(b)
			}
			return a.After(b)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchRepository) viewLocked(m match.Match) match.View {
	v := match.View{Match: m}
	if home, ok := r.store.teams[m.HomeTeamID]; ok {
		v.HomeTeamName = home.Name
		v.Sport = home.Sport
	}
	if away, ok := r.store.teams[m.AwayTeamID]; ok {
		v.AwayTeamName = away.Name
	}
	if venue, ok := r.store.venues[m.VenueID]; ok {
		v.VenueName = venue.Name
	}
	if t, ok := r.store.tournaments[m.TournamentID]; ok {
		v.TournamentName = t.Name
	}
	return v
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.matches[m.ID]; exists {
		return fmt.Errorf("%w: match %s already exists", repoerr.ErrConflict, m.ID)
	}
	if _, ok := r.store.teams[m.HomeTeamID]; !ok {
		return fmt.Errorf("%w: home team missing", repoerr.ErrConflict)
	}
	if _, ok := r.store.teams[m.AwayTeamID]; !ok {
		return fmt.Errorf("%w: away team missing", repoerr.ErrConflict)
	}
	r.store.matches[m.ID] = m
	return nil
}

func (r *MatchRepository) UpdateScore(_ context.Context, id string, home, away int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.matches[id]
	if !ok {
		return fmt.Errorf("%w: match", repoerr.ErrNotFound)
	}
	m.HomeScore = &home
	m.AwayScore = &away
	m.Status = match.StatusCompleted
	r.store.matches[id] = m
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, id string, guard func(match.Status) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.matches[id]
	if !ok {
		return fmt.Errorf("%w: match", repoerr.ErrNotFound)
	}
	if guard != nil {
		if err := guard(m.Status); err != nil {
			return err
		}
	}
	delete(r.store.matches, id)
	return nil
}

func (r *MatchRepository) CountByStatus(_ context.Context) (map[match.Status]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[match.Status]int)
	for _, m := range r.store.matches {
		out[m.Status]++
	}
	return out, nil
}

func (r *MatchRepository) TeamRecord(_ context.Context, teamID string) (match.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out match.Record
	for _, m := range r.store.matches {
		if m.Status != match.StatusCompleted || m.HomeScore == nil || m.AwayScore == nil {
			continue
		}
		var own, other int
		switch teamID {
		case m.HomeTeamID:
			own, other = *m.HomeScore, *m.AwayScore
		case m.AwayTeamID:
			own, other = *m.AwayScore, *m.HomeScore
		default:
			continue
		}
		out.Played++
		switch {
		case own > other:
			out.Wins++
		case own < other:
			out.Losses++
		default:
			out.Draws++
		}
	}
	return out, nil
}
