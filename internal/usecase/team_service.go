package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/domain/notification"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/roster"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	idgen "github.com/riskibarqy/sports-league/internal/platform/id"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
)

type CreateTeamInput struct {
	Name       string
	Sport      string
	MaxPlayers int
	CoachID    string
}

type AddPlayerInput struct {
	PlayerID     string
	Position     string
	JerseyNumber *int
}

// TeamDetail is a team with its current roster.
type TeamDetail struct {
	Team    team.Team
	Members []roster.MemberDetail
}

const maxJerseyNumber = 99

type TeamService struct {
	teams    team.Repository
	rosters  roster.Repository
	users    user.Repository
	sports   playersport.Repository
	notifier Notifier
	rules    league.Rules
	idGen    idgen.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewTeamService(
	teams team.Repository,
	rosters roster.Repository,
	users user.Repository,
	sports playersport.Repository,
	notifier Notifier,
	rules league.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}

	return &TeamService{
		teams:    teams,
		rosters:  rosters,
		users:    users,
		sports:   sports,
		notifier: notifier,
		rules:    rules,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.CoachID = strings.TrimSpace(input.CoachID)
	if err := validateLength("team name", input.Name, 2, 100); err != nil {
		return team.Team{}, err
	}
	teamSport, ok := sport.Parse(input.Sport)
	if !ok {
		return team.Team{}, fmt.Errorf("%w: unsupported sport %q", ErrInvalidInput, input.Sport)
	}
	maxPlayers := input.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = s.rules.DefaultTeamPlayers
	}
	if maxPlayers < s.rules.MinTeamPlayers || maxPlayers > s.rules.MaxTeamPlayers {
		return team.Team{}, fmt.Errorf("%w: max players must be between %d and %d", ErrInvalidInput, s.rules.MinTeamPlayers, s.rules.MaxTeamPlayers)
	}
	if input.CoachID != "" {
		if err := s.checkCoach(ctx, input.CoachID, teamSport); err != nil {
			return team.Team{}, err
		}
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	t := team.Team{
		ID:         teamID,
		Name:       input.Name,
		Sport:      teamSport,
		MaxPlayers: maxPlayers,
		CoachID:    input.CoachID,
		Status:     team.StatusActive,
		CreatedAt:  s.now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teams.Create(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", t.ID, "sport", t.Sport, "max_players", t.MaxPlayers, "coach_id", t.CoachID)
	return t, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return TeamDetail{}, err
	}
	members, err := s.rosters.ListByTeam(ctx, t.ID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("list team members: %w", err)
	}
	return TeamDetail{Team: t, Members: members}, nil
}

func (s *TeamService) ListTeamPlayers(ctx context.Context, teamID string) ([]roster.MemberDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeamPlayers")
	defer span.End()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	members, err := s.rosters.ListByTeam(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return members, nil
}

// ListAvailablePlayers lists active players of the team's sport who are not
// on any team.
func (s *TeamService) ListAvailablePlayers(ctx context.Context, teamID string) ([]roster.Candidate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListAvailablePlayers")
	defer span.End()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.rosters.ListAvailable(ctx, t.Sport)
	if err != nil {
		return nil, fmt.Errorf("list available players: %w", err)
	}
	return candidates, nil
}

// AddPlayers adds a batch of players to a team. Capacity, account status,
// single-team membership and jersey numbers are checked together under the
// team lock and either every player is added or none is.
func (s *TeamService) AddPlayers(ctx context.Context, teamID string, inputs []AddPlayerInput) ([]roster.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AddPlayers")
	defer span.End()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one player is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	members := make([]roster.Member, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		playerID, err := requireID("player id", in.PlayerID)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[playerID]; dup {
			return nil, fmt.Errorf("%w: player %s listed twice", ErrInvalidInput, playerID)
		}
		seen[playerID] = struct{}{}
		if in.JerseyNumber != nil && (*in.JerseyNumber < 0 || *in.JerseyNumber > maxJerseyNumber) {
			return nil, fmt.Errorf("%w: jersey number must be between 0 and %d", ErrInvalidInput, maxJerseyNumber)
		}

		p, exists, err := s.users.GetByID(ctx, playerID)
		if err != nil {
			return nil, fmt.Errorf("get player: %w", err)
		}
		if !exists || p.Role != user.RolePlayer {
			return nil, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		}
		if !p.IsActive() {
			return nil, fmt.Errorf("%w: player=%s status=%s", league.ErrPlayerNotActive, playerID, p.Status)
		}

		members = append(members, roster.Member{
			TeamID:       t.ID,
			PlayerID:     playerID,
			Position:     strings.TrimSpace(in.Position),
			JerseyNumber: in.JerseyNumber,
			JoinedAt:     now,
		})
	}

	guard := func(snapshot roster.Snapshot) error {
		return league.ValidateRosterAddition(snapshot, members)
	}
	if err := s.rosters.AddMembers(ctx, t.ID, members, guard); err != nil {
		return nil, fmt.Errorf("add team members: %w", err)
	}

	for _, m := range members {
		s.notifier.Notify(ctx, m.PlayerID, notification.KindRosterAdded, fmt.Sprintf("You have been added to %s", t.Name))
	}
	s.logger.InfoContext(ctx, "players added to team", "team_id", t.ID, "count", len(members))
	return members, nil
}

func (s *TeamService) RemovePlayer(ctx context.Context, teamID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RemovePlayer")
	defer span.End()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return err
	}
	playerID, err = requireID("player id", playerID)
	if err != nil {
		return err
	}

	removed, err := s.rosters.RemoveMember(ctx, t.ID, playerID)
	if err != nil {
		return fmt.Errorf("remove team member: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: player %s is not on team %s", ErrNotFound, playerID, t.ID)
	}

	s.notifier.Notify(ctx, playerID, notification.KindRosterRemoved, fmt.Sprintf("You have been removed from %s", t.Name))
	s.logger.InfoContext(ctx, "player removed from team", "team_id", t.ID, "player_id", playerID)
	return nil
}

// AssignCoach sets the team coach. An empty coachID clears it.
func (s *TeamService) AssignCoach(ctx context.Context, teamID, coachID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AssignCoach")
	defer span.End()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}
	coachID = strings.TrimSpace(coachID)
	if coachID != "" {
		if err := s.checkCoach(ctx, coachID, t.Sport); err != nil {
			return team.Team{}, err
		}
	}

	if err := s.teams.SetCoach(ctx, t.ID, coachID); err != nil {
		return team.Team{}, fmt.Errorf("set team coach: %w", err)
	}
	t.CoachID = coachID

	s.logger.InfoContext(ctx, "team coach updated", "team_id", t.ID, "coach_id", coachID)
	return t, nil
}

// DeleteTeam removes a team and its roster. Teams referenced by matches are
// kept.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.DeleteTeam")
	defer span.End()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if err := s.teams.Delete(ctx, t.ID, league.ValidateNoScheduledMatches); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", t.ID)
	return nil
}

func (s *TeamService) checkCoach(ctx context.Context, coachID string, teamSport sport.Sport) error {
	coach, exists, err := s.users.GetByID(ctx, coachID)
	if err != nil {
		return fmt.Errorf("get coach: %w", err)
	}
	if !exists || coach.Role != user.RoleCoach {
		return fmt.Errorf("%w: coach=%s", ErrNotFound, coachID)
	}
	if !coach.IsActive() {
		return fmt.Errorf("%w: coach %s is %s", ErrInvalidInput, coachID, coach.Status)
	}
	entries, err := s.sports.ListByUser(ctx, coachID)
	if err != nil {
		return fmt.Errorf("list coach sports: %w", err)
	}
	return league.ValidateCoachSportEligibility(entries, teamSport)
}

func (s *TeamService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID, err := requireID("team id", teamID)
	if err != nil {
		return team.Team{}, err
	}
	t, exists, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return t, nil
}
