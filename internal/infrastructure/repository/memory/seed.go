package memory

import (
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/sport"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/venue"
)

const (
	VenueIDCentralStadium = "venue-central-stadium"
	VenueIDRiversideCourt = "venue-riverside-court"
	VenueIDNorthArena     = "venue-north-arena"

	TournamentIDSpringFootball = "tournament-spring-football"
	TournamentIDSummerCricket  = "tournament-summer-cricket"
)

func SeedVenues(now time.Time) []venue.Venue {
	return []venue.Venue{
		{ID: VenueIDCentralStadium, Name: "Central Stadium", Location: "12 Main Road", Capacity: 5000, FacilityType: "outdoor", CreatedAt: now},
		{ID: VenueIDRiversideCourt, Name: "Riverside Court", Location: "4 River Lane", Capacity: 300, FacilityType: "indoor", CreatedAt: now},
		{ID: VenueIDNorthArena, Name: "North Arena", Location: "88 North Avenue", Capacity: 1200, FacilityType: "indoor", CreatedAt: now},
	}
}

func SeedTournaments(now time.Time) []tournament.Tournament {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	items := []tournament.Tournament{
		{
			ID:          TournamentIDSpringFootball,
			Name:        "Spring Football Cup",
			Sport:       sport.Football,
			StartDate:   day.AddDate(0, 0, 14),
			EndDate:     day.AddDate(0, 0, 28),
			EntryFee:    150,
			MaxTeams:    8,
			Description: "Knockout cup for local football clubs",
			CreatedAt:   now,
		},
		{
			ID:          TournamentIDSummerCricket,
			Name:        "Summer Cricket League",
			Sport:       sport.Cricket,
			StartDate:   day.AddDate(0, 0, -7),
			EndDate:     day.AddDate(0, 1, 0),
			EntryFee:    200,
			MaxTeams:    6,
			Description: "Round robin league",
			CreatedAt:   now,
		},
	}
	for i := range items {
		items[i].Status = items[i].StatusAt(now)
	}
	return items
}

// NewSeededStore returns a store with demo venues and tournaments for local
// runs without a database.
func NewSeededStore(now time.Time) *Store {
	store := NewStore()
	for _, v := range SeedVenues(now) {
		store.venues[v.ID] = v
	}
	for _, t := range SeedTournaments(now) {
		store.tournaments[t.ID] = t
	}
	return store
}
