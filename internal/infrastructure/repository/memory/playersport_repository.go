package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/repoerr"
)

type PlayerSportRepository struct {
	store *Store
}

func NewPlayerSportRepository(store *Store) *PlayerSportRepository {
	return &PlayerSportRepository{store: store}
}

func (r *PlayerSportRepository) ListByUser(_ context.Context, userID string) ([]playersport.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.sportsOfLocked(userID), nil
}

func (r *PlayerSportRepository) Replace(_ context.Context, userID string, entries []playersport.Entry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[userID]; !ok {
		return fmt.Errorf("%w: user missing", repoerr.ErrConflict)
	}
	if err := checkSportBatch(entries); err != nil {
		return err
	}

	for id, e := range r.store.sports {
		if e.UserID == userID {
			delete(r.store.sports, id)
		}
	}
	for _, e := range entries {
		e.UserID = userID
		r.store.sports[e.ID] = e
	}
	return nil
}

func (r *PlayerSportRepository) Add(_ context.Context, entry playersport.Entry, demoteIDs []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, e := range r.store.sportsOfLocked(entry.UserID) {
		if e.Sport == entry.Sport {
			return fmt.Errorf("%w: sport %s already recorded", repoerr.ErrConflict, entry.Sport)
		}
	}
	r.demoteLocked(entry.UserID, demoteIDs)
	r.store.sports[entry.ID] = entry
	return nil
}

func (r *PlayerSportRepository) Update(_ context.Context, entry playersport.Entry, demoteIDs []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.sports[entry.ID]
	if !ok || current.UserID != entry.UserID {
		return fmt.Errorf("%w: player sport", repoerr.ErrNotFound)
	}
	r.demoteLocked(entry.UserID, demoteIDs)
	current.SkillLevel = entry.SkillLevel
	current.IsPrimary = entry.IsPrimary
	r.store.sports[entry.ID] = current
	return nil
}

func (r *PlayerSportRepository) Delete(_ context.Context, userID, entryID, promoteID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.sports[entryID]
	if !ok || current.UserID != userID {
		return false, nil
	}
	var promoted playersport.Entry
	if promoteID != "" {
		promoted, ok = r.store.sports[promoteID]
		if !ok || promoted.UserID != userID || promoteID == entryID {
			return false, fmt.Errorf("%w: player sport %s to promote", repoerr.ErrNotFound, promoteID)
		}
	}

	delete(r.store.sports, entryID)
	if promoteID != "" {
		promoted.IsPrimary = true
		r.store.sports[promoteID] = promoted
	}
	return true, nil
}

func (r *PlayerSportRepository) demoteLocked(userID string, ids []string) {
	for _, id := range ids {
		e, ok := r.store.sports[id]
		if !ok || e.UserID != userID {
			continue
		}
		e.IsPrimary = false
		r.store.sports[id] = e
	}
}

// checkSportBatch mirrors the unique indexes on (user_id, sport) and on the
// primary flag.
func checkSportBatch(entries []playersport.Entry) error {
	seen := make(map[string]struct{}, len(entries))
	primaries := 0
	for _, e := range entries {
		key := e.Sport.String()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: sport %s listed twice", repoerr.ErrConflict, key)
		}
		seen[key] = struct{}{}
		if e.IsPrimary {
			primaries++
		}
	}
	if primaries > 1 {
		return fmt.Errorf("%w: more than one primary sport", repoerr.ErrConflict)
	}
	return nil
}
