package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/venue"
	basecache "github.com/riskibarqy/sports-league/internal/platform/cache"
)

const (
	venueListKey        = "venue:list"
	venueKeyPrefix      = "venue:id:"
	tournamentKeyPrefix = "tournament:id:"
)

type VenueRepository struct {
	next  venue.Repository
	cache *basecache.Store
}

func NewVenueRepository(next venue.Repository, cache *basecache.Store) *VenueRepository {
	return &VenueRepository{next: next, cache: cache}
}

func (r *VenueRepository) List(ctx context.Context) ([]venue.Venue, error) {
	v, err := r.cache.GetOrLoad(ctx, venueListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]venue.Venue(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]venue.Venue)
	return append([]venue.Venue{}, items...), nil
}

func (r *VenueRepository) GetByID(ctx context.Context, id string) (venue.Venue, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, venueKeyPrefix+id, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedVenueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return venue.Venue{}, false, err
	}

	cached, _ := v.(cachedVenueByID)
	return cached.value, cached.exists, nil
}

func (r *VenueRepository) Create(ctx context.Context, item venue.Venue) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, venueListKey)
	r.cache.Delete(ctx, venueKeyPrefix+item.ID)
	return nil
}

type cachedVenueByID struct {
	value  venue.Venue
	exists bool
}

// TournamentRepository caches single lookups only. Listings carry
// registration counts that change outside this repository.
type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) GetByID(ctx context.Context, id string) (tournament.Tournament, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, tournamentKeyPrefix+id, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedTournamentByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}

	cached, _ := v.(cachedTournamentByID)
	return cached.value, cached.exists, nil
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Summary, error) {
	return r.next.List(ctx)
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, tournamentKeyPrefix+item.ID)
	return nil
}

func (r *TournamentRepository) Delete(ctx context.Context, id string, guard func(matchCount int) error) error {
	if err := r.next.Delete(ctx, id, guard); err != nil {
		return err
	}
	r.cache.Delete(ctx, tournamentKeyPrefix+id)
	return nil
}

func (r *TournamentRepository) UpdateStatuses(ctx context.Context, now time.Time) (int, error) {
	changed, err := r.next.UpdateStatuses(ctx, now)
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		r.cache.DeletePrefix(ctx, tournamentKeyPrefix)
	}
	return changed, nil
}

func (r *TournamentRepository) CountByStatus(ctx context.Context) (map[tournament.Status]int, error) {
	return r.next.CountByStatus(ctx)
}

type cachedTournamentByID struct {
	value  tournament.Tournament
	exists bool
}
