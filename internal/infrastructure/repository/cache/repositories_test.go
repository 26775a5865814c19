package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/venue"
	"github.com/riskibarqy/sports-league/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/sports-league/internal/platform/cache"
)

type countingVenues struct {
	venue.Repository
	lists int
}

func (c *countingVenues) List(ctx context.Context) ([]venue.Venue, error) {
	c.lists++
	return c.Repository.List(ctx)
}

type countingTournaments struct {
	tournament.Repository
	gets int
}

func (c *countingTournaments) GetByID(ctx context.Context, id string) (tournament.Tournament, bool, error) {
	c.gets++
	return c.Repository.GetByID(ctx, id)
}

func TestVenueRepository_ListIsCachedUntilCreate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	next := &countingVenues{Repository: memory.NewVenueRepository(memory.NewSeededStore(now))}
	repo := NewVenueRepository(next, basecache.NewStore(time.Minute))
	ctx := t.Context()

	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list venues: %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list venues again: %v", err)
	}
	if next.lists != 1 {
		t.Fatalf("expected one backing list call, got %d", next.lists)
	}

	if err := repo.Create(ctx, venue.Venue{ID: "venue-new", Name: "Annex Hall", Location: "1 Side St", Capacity: 50, CreatedAt: now}); err != nil {
		t.Fatalf("create venue: %v", err)
	}
	second, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list venues after create: %v", err)
	}
	if next.lists != 2 {
		t.Fatalf("expected create to invalidate the list, got %d calls", next.lists)
	}
	if len(second) != len(first)+1 {
		t.Fatalf("expected %d venues, got %d", len(first)+1, len(second))
	}
}

func TestVenueRepository_ListReturnsCopies(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := NewVenueRepository(memory.NewVenueRepository(memory.NewSeededStore(now)), basecache.NewStore(time.Minute))

	items, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list venues: %v", err)
	}
	items[0].Name = "mutated"

	again, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list venues again: %v", err)
	}
	if again[0].Name == "mutated" {
		t.Fatalf("cached slice was shared with the caller")
	}
}

func TestTournamentRepository_UpdateStatusesInvalidatesLookups(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	next := &countingTournaments{Repository: memory.NewTournamentRepository(memory.NewSeededStore(now))}
	repo := NewTournamentRepository(next, basecache.NewStore(time.Minute))
	ctx := t.Context()

	before, ok, err := repo.GetByID(ctx, memory.TournamentIDSpringFootball)
	if err != nil || !ok {
		t.Fatalf("get tournament: ok=%v err=%v", ok, err)
	}
	if before.Status != tournament.StatusUpcoming {
		t.Fatalf("expected upcoming, got %s", before.Status)
	}
	if _, _, err := repo.GetByID(ctx, memory.TournamentIDSpringFootball); err != nil {
		t.Fatalf("get tournament again: %v", err)
	}
	if next.gets != 1 {
		t.Fatalf("expected one backing lookup, got %d", next.gets)
	}

	changed, err := repo.UpdateStatuses(ctx, now.AddDate(0, 0, 20))
	if err != nil {
		t.Fatalf("update statuses: %v", err)
	}
	if changed == 0 {
		t.Fatalf("expected at least one status change")
	}

	after, _, err := repo.GetByID(ctx, memory.TournamentIDSpringFootball)
	if err != nil {
		t.Fatalf("get tournament after refresh: %v", err)
	}
	if after.Status != tournament.StatusOngoing {
		t.Fatalf("expected ongoing after refresh, got %s", after.Status)
	}
	if next.gets != 2 {
		t.Fatalf("expected refresh to invalidate the lookup, got %d calls", next.gets)
	}
}
