package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	idgen "github.com/riskibarqy/sports-league/internal/platform/id"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
)

// PlayerStats counts player accounts per status.
type PlayerStats struct {
	Active   int
	Inactive int
	Deleted  int
	Total    int
}

// CoachProfile is a coach account with its sport entries.
type CoachProfile struct {
	User   user.User
	Sports []playersport.Entry
}

// UserService manages player, coach and admin accounts on behalf of admins.
type UserService struct {
	users    user.Repository
	sports   playersport.Repository
	accounts accountFactory
	rules    league.Rules
	idGen    idgen.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewUserService(
	users user.Repository,
	sports playersport.Repository,
	hasher PasswordHasher,
	rules league.Rules,
	idGen idgen.Generator,
	phoneRegion string,
	logger *logging.Logger,
) *UserService {
	if logger == nil {
		logger = logging.Default()
	}

	s := &UserService{
		users:  users,
		sports: sports,
		rules:  rules,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
	s.accounts = accountFactory{
		users:       users,
		hasher:      hasher,
		idGen:       idGen,
		phoneRegion: phoneRegion,
		now:         func() time.Time { return s.now() },
	}
	return s
}

func (s *UserService) ListPlayers(ctx context.Context) ([]user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.ListPlayers")
	defer span.End()

	players, err := s.users.List(ctx, user.Filter{Role: user.RolePlayer})
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// ListPlayerDetails lists players with their team and sport names. An empty
// status lists every player.
func (s *UserService) ListPlayerDetails(ctx context.Context, status string) ([]user.Detail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.ListPlayerDetails")
	defer span.End()

	filter := user.Filter{Role: user.RolePlayer}
	if status != "" {
		parsed, ok := user.ParseStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported status %q", ErrInvalidInput, status)
		}
		filter.Status = parsed
	}

	details, err := s.users.ListDetails(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list player details: %w", err)
	}
	return details, nil
}

func (s *UserService) PlayerStats(ctx context.Context) (PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.PlayerStats")
	defer span.End()

	counts, err := s.users.CountByStatus(ctx, user.RolePlayer)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("count players by status: %w", err)
	}
	return playerStatsFromCounts(counts), nil
}

func playerStatsFromCounts(counts map[user.Status]int) PlayerStats {
	out := PlayerStats{
		Active:   counts[user.StatusActive],
		Inactive: counts[user.StatusInactive],
		Deleted:  counts[user.StatusDeleted],
	}
	out.Total = out.Active + out.Inactive + out.Deleted
	return out
}

// GetUserSports lists the sport entries of a player or coach.
func (s *UserService) GetUserSports(ctx context.Context, userID string) ([]playersport.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetUserSports")
	defer span.End()

	if _, err := s.getSportsHolder(ctx, userID); err != nil {
		return nil, err
	}
	entries, err := s.sports.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user sports: %w", err)
	}
	return entries, nil
}

// ReplaceUserSports swaps the whole sport list of a player or coach.
func (s *UserService) ReplaceUserSports(ctx context.Context, userID string, inputs []SportInput) ([]playersport.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.ReplaceUserSports")
	defer span.End()

	holder, err := s.getSportsHolder(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one sport is required", ErrInvalidInput)
	}

	entries, err := parseSportInputs(inputs, s.idGen, league.NormalizePrimaryBatch)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	for i := range entries {
		entries[i].UserID = holder.ID
		entries[i].CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
	}

	if err := s.sports.Replace(ctx, holder.ID, entries); err != nil {
		return nil, fmt.Errorf("replace user sports: %w", err)
	}

	s.logger.InfoContext(ctx, "user sports replaced", "user_id", holder.ID, "count", len(entries))
	return entries, nil
}

func (s *UserService) UpdatePlayerStatus(ctx context.Context, playerID, status string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.UpdatePlayerStatus")
	defer span.End()

	return s.setStatus(ctx, playerID, user.RolePlayer, status)
}

func (s *UserService) DeletePlayer(ctx context.Context, playerID, mode string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.DeletePlayer")
	defer span.End()

	return s.deleteAccount(ctx, playerID, user.RolePlayer, mode)
}

func (s *UserService) PromotePlayerToCoach(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.PromotePlayerToCoach")
	defer span.End()

	playerID, err := requireID("player id", playerID)
	if err != nil {
		return err
	}

	updated, err := s.users.UpdateRole(ctx, playerID, user.RolePlayer, user.RoleCoach)
	if err != nil {
		return fmt.Errorf("promote player: %w", err)
	}
	if !updated {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	s.logger.InfoContext(ctx, "player promoted to coach", "user_id", playerID)
	return nil
}

func (s *UserService) ListCoaches(ctx context.Context) ([]user.Detail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.ListCoaches")
	defer span.End()

	coaches, err := s.users.ListDetails(ctx, user.Filter{Role: user.RoleCoach})
	if err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	return coaches, nil
}

func (s *UserService) GetCoach(ctx context.Context, coachID string) (CoachProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetCoach")
	defer span.End()

	coach, err := s.getByRole(ctx, coachID, user.RoleCoach)
	if err != nil {
		return CoachProfile{}, err
	}
	entries, err := s.sports.ListByUser(ctx, coach.ID)
	if err != nil {
		return CoachProfile{}, fmt.Errorf("list coach sports: %w", err)
	}
	return CoachProfile{User: coach, Sports: entries}, nil
}

// CreateCoach creates a coach account together with its sport entries.
func (s *UserService) CreateCoach(ctx context.Context, input CreateAccountInput) (CoachProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.CreateCoach")
	defer span.End()

	if len(input.Sports) == 0 {
		return CoachProfile{}, fmt.Errorf("%w: a coach needs at least one sport", ErrInvalidInput)
	}
	entries, err := parseSportInputs(input.Sports, s.idGen, league.NormalizePrimaryBatch)
	if err != nil {
		return CoachProfile{}, err
	}

	coach, err := s.accounts.create(ctx, input, user.RoleCoach, entries)
	if err != nil {
		return CoachProfile{}, err
	}

	s.logger.InfoContext(ctx, "coach created", "user_id", coach.ID, "sports", len(entries))
	return CoachProfile{User: coach, Sports: entries}, nil
}

func (s *UserService) UpdateCoachStatus(ctx context.Context, coachID, status string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.UpdateCoachStatus")
	defer span.End()

	return s.setStatus(ctx, coachID, user.RoleCoach, status)
}

func (s *UserService) DeleteCoach(ctx context.Context, coachID, mode string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.DeleteCoach")
	defer span.End()

	return s.deleteAccount(ctx, coachID, user.RoleCoach, mode)
}

func (s *UserService) setStatus(ctx context.Context, id string, role user.Role, rawStatus string) error {
	status, ok := user.ParseStatus(rawStatus)
	if !ok {
		return fmt.Errorf("%w: status must be one of active, inactive, deleted", ErrInvalidInput)
	}
	target, err := s.getByRole(ctx, id, role)
	if err != nil {
		return err
	}

	removeMemberships := league.RequiresRosterRemoval(status)
	if err := s.users.SetStatus(ctx, target.ID, status, removeMemberships); err != nil {
		return fmt.Errorf("set %s status: %w", role, err)
	}

	s.logger.InfoContext(ctx, "account status updated",
		"user_id", target.ID,
		"role", role,
		"from", target.Status,
		"to", status,
		"memberships_removed", removeMemberships,
	)
	return nil
}

func (s *UserService) deleteAccount(ctx context.Context, id string, role user.Role, rawMode string) error {
	mode, ok := user.ParseDeleteMode(rawMode)
	if !ok {
		return fmt.Errorf("%w: delete type must be soft or permanent", ErrInvalidInput)
	}
	target, err := s.getByRole(ctx, id, role)
	if err != nil {
		return err
	}

	if mode == user.DeleteSoft {
		if err := s.users.SetStatus(ctx, target.ID, user.StatusDeleted, true); err != nil {
			return fmt.Errorf("soft delete %s: %w", role, err)
		}
	} else {
		if err := s.users.DeletePermanently(ctx, target.ID); err != nil {
			return fmt.Errorf("permanently delete %s: %w", role, err)
		}
	}

	s.logger.InfoContext(ctx, "account deleted", "user_id", target.ID, "role", role, "mode", mode)
	return nil
}

func (s *UserService) getByRole(ctx context.Context, id string, role user.Role) (user.User, error) {
	id, err := requireID(string(role)+" id", id)
	if err != nil {
		return user.User{}, err
	}
	u, exists, err := s.users.GetByID(ctx, id)
	if err != nil {
		return user.User{}, fmt.Errorf("get %s: %w", role, err)
	}
	if !exists || u.Role != role {
		return user.User{}, fmt.Errorf("%w: %s=%s", ErrNotFound, role, id)
	}
	return u, nil
}

func (s *UserService) getSportsHolder(ctx context.Context, id string) (user.User, error) {
	id, err := requireID("user id", id)
	if err != nil {
		return user.User{}, err
	}
	u, exists, err := s.users.GetByID(ctx, id)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists || (u.Role != user.RolePlayer && u.Role != user.RoleCoach) {
		return user.User{}, fmt.Errorf("%w: player or coach=%s", ErrNotFound, id)
	}
	return u, nil
}
