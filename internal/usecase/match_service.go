package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/domain/match"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/venue"
	idgen "github.com/riskibarqy/sports-league/internal/platform/id"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
)

type ScheduleMatchInput struct {
	TournamentID    string
	HomeTeamID      string
	AwayTeamID      string
	VenueID         string
	MatchDate       time.Time
	DurationMinutes int
}

type MatchService struct {
	matches     match.Repository
	teams       team.Repository
	tournaments tournament.Repository
	venues      venue.Repository
	rules       league.Rules
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewMatchService(
	matches match.Repository,
	teams team.Repository,
	tournaments tournament.Repository,
	venues venue.Repository,
	rules league.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matches:     matches,
		teams:       teams,
		tournaments: tournaments,
		venues:      venues,
		rules:       rules,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// ScheduleMatch creates a match after the same-team, sport, tournament
// window and tournament sport checks pass, in that order.
func (s *MatchService) ScheduleMatch(ctx context.Context, input ScheduleMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ScheduleMatch")
	defer span.End()

	homeID, err := requireID("home team id", input.HomeTeamID)
	if err != nil {
		return match.Match{}, err
	}
	awayID, err := requireID("away team id", input.AwayTeamID)
	if err != nil {
		return match.Match{}, err
	}
	venueID, err := requireID("venue id", input.VenueID)
	if err != nil {
		return match.Match{}, err
	}
	if input.MatchDate.IsZero() {
		return match.Match{}, fmt.Errorf("%w: match date is required", ErrInvalidInput)
	}
	duration := input.DurationMinutes
	if duration == 0 {
		duration = s.rules.DefaultMatchMinutes
	}
	if duration < s.rules.MinMatchMinutes || duration > s.rules.MaxMatchMinutes {
		return match.Match{}, fmt.Errorf("%w: duration must be between %d and %d minutes", ErrInvalidInput, s.rules.MinMatchMinutes, s.rules.MaxMatchMinutes)
	}

	home, err := s.getTeam(ctx, homeID)
	if err != nil {
		return match.Match{}, err
	}
	away := home
	if awayID != homeID {
		if away, err = s.getTeam(ctx, awayID); err != nil {
			return match.Match{}, err
		}
	}
	if _, exists, err := s.venues.GetByID(ctx, venueID); err != nil {
		return match.Match{}, fmt.Errorf("get venue: %w", err)
	} else if !exists {
		return match.Match{}, fmt.Errorf("%w: venue=%s", ErrNotFound, venueID)
	}

	var tour *tournament.Tournament
	tournamentID := strings.TrimSpace(input.TournamentID)
	if tournamentID != "" {
		t, exists, err := s.tournaments.GetByID(ctx, tournamentID)
		if err != nil {
			return match.Match{}, fmt.Errorf("get tournament: %w", err)
		}
		if !exists {
			return match.Match{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
		}
		tour = &t
	}

	if err := league.ValidateMatchSchedule(home, away, tour, input.MatchDate); err != nil {
		return match.Match{}, err
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	m := match.Match{
		ID:              matchID,
		TournamentID:    tournamentID,
		HomeTeamID:      home.ID,
		AwayTeamID:      away.ID,
		VenueID:         venueID,
		MatchDate:       input.MatchDate.UTC(),
		DurationMinutes: duration,
		Status:          match.StatusScheduled,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.matches.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match scheduled",
		"match_id", m.ID,
		"tournament_id", m.TournamentID,
		"home_team_id", m.HomeTeamID,
		"away_team_id", m.AwayTeamID,
		"match_date", m.MatchDate,
	)
	return m, nil
}

// RecordScore stores the final score and completes the match.
func (s *MatchService) RecordScore(ctx context.Context, matchID string, homeScore, awayScore int) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordScore")
	defer span.End()

	if homeScore < 0 || awayScore < 0 {
		return match.Match{}, fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}
	m, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if m.Status == match.StatusCancelled {
		return match.Match{}, fmt.Errorf("%w: match %s is cancelled", ErrConflict, m.ID)
	}

	if err := s.matches.UpdateScore(ctx, m.ID, homeScore, awayScore); err != nil {
		return match.Match{}, fmt.Errorf("update match score: %w", err)
	}
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	m.Status = match.StatusCompleted

	s.logger.InfoContext(ctx, "match score recorded", "match_id", m.ID, "home_score", homeScore, "away_score", awayScore)
	return m, nil
}

// ListMatches lists every match, optionally narrowed to one status.
func (s *MatchService) ListMatches(ctx context.Context, status string) ([]match.View, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	var filter match.Filter
	if status != "" {
		parsed, ok := match.ParseStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported match status %q", ErrInvalidInput, status)
		}
		filter.Status = parsed
	}
	matches, err := s.matches.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

func (s *MatchService) ListFriendlyMatches(ctx context.Context) ([]match.View, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListFriendlyMatches")
	defer span.End()

	matches, err := s.matches.List(ctx, match.Filter{FriendlyOnly: true})
	if err != nil {
		return nil, fmt.Errorf("list friendly matches: %w", err)
	}
	return matches, nil
}

func (s *MatchService) ListTournamentMatches(ctx context.Context, tournamentID string) ([]match.View, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListTournamentMatches")
	defer span.End()

	tournamentID, err := requireID("tournament id", tournamentID)
	if err != nil {
		return nil, err
	}
	if _, exists, err := s.tournaments.GetByID(ctx, tournamentID); err != nil {
		return nil, fmt.Errorf("get tournament: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}

	matches, err := s.matches.List(ctx, match.Filter{TournamentID: tournamentID})
	if err != nil {
		return nil, fmt.Errorf("list tournament matches: %w", err)
	}
	return matches, nil
}

// DeleteMatch removes a match unless it is in progress or completed.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.DeleteMatch")
	defer span.End()

	m, err := s.getMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if err := s.matches.Delete(ctx, m.ID, league.ValidateMatchDeletable); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	s.logger.InfoContext(ctx, "match deleted", "match_id", m.ID)
	return nil
}

func (s *MatchService) getMatch(ctx context.Context, matchID string) (match.Match, error) {
	matchID, err := requireID("match id", matchID)
	if err != nil {
		return match.Match{}, err
	}
	m, exists, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return m, nil
}

func (s *MatchService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
	t, exists, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return t, nil
}
