package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/venue"
	idgen "github.com/riskibarqy/sports-league/internal/platform/id"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
)

type CreateTournamentInput struct {
	Name        string
	Sport       string
	StartDate   time.Time
	EndDate     time.Time
	EntryFee    float64
	MaxTeams    int
	Description string
}

type CreateVenueInput struct {
	Name         string
	Location     string
	Capacity     int
	FacilityType string
}

const minTournamentTeams = 2

type TournamentService struct {
	tournaments tournament.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewTournamentService(tournaments tournament.Repository, idGen idgen.Generator, logger *logging.Logger) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TournamentService{
		tournaments: tournaments,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *TournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.CreateTournament")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if err := validateLength("tournament name", input.Name, 2, 100); err != nil {
		return tournament.Tournament{}, err
	}
	tourSport, ok := sport.Parse(input.Sport)
	if !ok {
		return tournament.Tournament{}, fmt.Errorf("%w: unsupported sport %q", ErrInvalidInput, input.Sport)
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return tournament.Tournament{}, fmt.Errorf("%w: start and end date are required", ErrInvalidInput)
	}
	if !input.StartDate.Before(input.EndDate) {
		return tournament.Tournament{}, fmt.Errorf("%w: start date must be before end date", ErrInvalidInput)
	}
	if input.EntryFee < 0 {
		return tournament.Tournament{}, fmt.Errorf("%w: entry fee cannot be negative", ErrInvalidInput)
	}
	if input.MaxTeams < minTournamentTeams {
		return tournament.Tournament{}, fmt.Errorf("%w: max teams must be at least %d", ErrInvalidInput, minTournamentTeams)
	}

	tournamentID, err := s.idGen.NewID()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("generate tournament id: %w", err)
	}
	now := s.now().UTC()
	t := tournament.Tournament{
		ID:          tournamentID,
		Name:        input.Name,
		Sport:       tourSport,
		StartDate:   input.StartDate.UTC(),
		EndDate:     input.EndDate.UTC(),
		EntryFee:    input.EntryFee,
		MaxTeams:    input.MaxTeams,
		Description: strings.TrimSpace(input.Description),
		Status:      tournament.StatusUpcoming,
		CreatedAt:   now,
	}
	t.Status = t.StatusAt(now)

	if err := s.tournaments.Create(ctx, t); err != nil {
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created", "tournament_id", t.ID, "sport", t.Sport, "status", t.Status)
	return t, nil
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]tournament.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListTournaments")
	defer span.End()

	items, err := s.tournaments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

// DeleteTournament removes a tournament that has no matches.
func (s *TournamentService) DeleteTournament(ctx context.Context, tournamentID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.DeleteTournament")
	defer span.End()

	tournamentID, err := requireID("tournament id", tournamentID)
	if err != nil {
		return err
	}
	if _, exists, err := s.tournaments.GetByID(ctx, tournamentID); err != nil {
		return fmt.Errorf("get tournament: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}

	if err := s.tournaments.Delete(ctx, tournamentID, league.ValidateNoScheduledMatches); err != nil {
		return fmt.Errorf("delete tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament deleted", "tournament_id", tournamentID)
	return nil
}

// RefreshStatuses moves tournaments to their calendar status.
func (s *TournamentService) RefreshStatuses(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.RefreshStatuses")
	defer span.End()

	changed, err := s.tournaments.UpdateStatuses(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("update tournament statuses: %w", err)
	}
	if changed > 0 {
		s.logger.InfoContext(ctx, "tournament statuses refreshed", "changed", changed)
	}
	return changed, nil
}

type VenueService struct {
	venues venue.Repository
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewVenueService(venues venue.Repository, idGen idgen.Generator, logger *logging.Logger) *VenueService {
	if logger == nil {
		logger = logging.Default()
	}
	return &VenueService{
		venues: venues,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *VenueService) CreateVenue(ctx context.Context, input CreateVenueInput) (venue.Venue, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.CreateVenue")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Location = strings.TrimSpace(input.Location)
	if err := validateLength("venue name", input.Name, 2, 100); err != nil {
		return venue.Venue{}, err
	}
	if err := validateLength("venue location", input.Location, 2, 200); err != nil {
		return venue.Venue{}, err
	}
	if input.Capacity < 1 {
		return venue.Venue{}, fmt.Errorf("%w: capacity must be at least 1", ErrInvalidInput)
	}

	venueID, err := s.idGen.NewID()
	if err != nil {
		return venue.Venue{}, fmt.Errorf("generate venue id: %w", err)
	}
	v := venue.Venue{
		ID:           venueID,
		Name:         input.Name,
		Location:     input.Location,
		Capacity:     input.Capacity,
		FacilityType: strings.TrimSpace(input.FacilityType),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.venues.Create(ctx, v); err != nil {
		return venue.Venue{}, fmt.Errorf("create venue: %w", err)
	}

	s.logger.InfoContext(ctx, "venue created", "venue_id", v.ID, "capacity", v.Capacity)
	return v, nil
}

func (s *VenueService) ListVenues(ctx context.Context) ([]venue.Venue, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.ListVenues")
	defer span.End()

	venues, err := s.venues.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}
