package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/domain/match"
	"github.com/riskibarqy/sports-league/internal/domain/notification"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/registration"
	"github.com/riskibarqy/sports-league/internal/domain/roster"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	idgen "github.com/riskibarqy/sports-league/internal/platform/id"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

type MatchSide string

const (
	SideHome MatchSide = "home"
	SideAway MatchSide = "away"
)

// PortalMatch is a match seen from one of the caller's teams.
type PortalMatch struct {
	match.View
	Side MatchSide
}

type PortalMatches struct {
	Upcoming []PortalMatch
	History  []PortalMatch
}

// PortalTeam is a team the caller plays on or coaches.
type PortalTeam struct {
	Team         team.Team
	Coaching     bool
	Position     string
	JerseyNumber *int
}

type PortalTournament struct {
	tournament.Summary
	Registered bool
}

type TeamOverview struct {
	Team      team.Team
	CoachName string
	Members   []roster.MemberDetail
	Record    match.Record
}

type CoachInfo struct {
	User   user.User
	Sports []playersport.Entry
	Teams  []team.Team
}

type UpdateProfileInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	DateOfBirth *time.Time
}

type RegisterTournamentInput struct {
	TournamentID string
	TeamID       string
}

// PortalService is the self-service surface for players and coaches. Every
// method acts on behalf of the authenticated caller.
type PortalService struct {
	users         user.Repository
	sports        playersport.Repository
	teams         team.Repository
	rosters       roster.Repository
	matches       match.Repository
	tournaments   tournament.Repository
	registrations registration.Repository
	notifier      Notifier
	idGen         idgen.Generator
	phoneRegion   string
	logger        *logging.Logger
	now           func() time.Time
}

func NewPortalService(
	users user.Repository,
	sports playersport.Repository,
	teams team.Repository,
	rosters roster.Repository,
	matches match.Repository,
	tournaments tournament.Repository,
	registrations registration.Repository,
	notifier Notifier,
	idGen idgen.Generator,
	phoneRegion string,
	logger *logging.Logger,
) *PortalService {
	if logger == nil {
		logger = logging.Default()
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}

	return &PortalService{
		users:         users,
		sports:        sports,
		teams:         teams,
		rosters:       rosters,
		matches:       matches,
		tournaments:   tournaments,
		registrations: registrations,
		notifier:      notifier,
		idGen:         idGen,
		phoneRegion:   phoneRegion,
		logger:        logger,
		now:           time.Now,
	}
}

// MyMatches splits the matches of the caller's teams into upcoming ones and
// history. Completed and cancelled matches are history.
func (s *PortalService) MyMatches(ctx context.Context, userID string) (PortalMatches, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.MyMatches")
	defer span.End()

	teams, err := s.callerTeams(ctx, userID)
	if err != nil {
		return PortalMatches{}, err
	}

	out := PortalMatches{Upcoming: []PortalMatch{}, History: []PortalMatch{}}
	seen := make(map[string]struct{})
	for _, t := range teams {
		views, err := s.matches.List(ctx, match.Filter{TeamID: t.Team.ID})
		if err != nil {
			return PortalMatches{}, fmt.Errorf("list team matches: %w", err)
		}
		for _, v := range views {
			if _, dup := seen[v.ID]; dup {
				continue
			}
			seen[v.ID] = struct{}{}

			item := PortalMatch{View: v, Side: SideHome}
			if v.AwayTeamID == t.Team.ID {
				item.Side = SideAway
			}
			if v.Status == match.StatusCompleted || v.Status == match.StatusCancelled {
				out.History = append(out.History, item)
			} else {
				out.Upcoming = append(out.Upcoming, item)
			}
		}
	}
	return out, nil
}

func (s *PortalService) MyTeams(ctx context.Context, userID string) ([]PortalTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.MyTeams")
	defer span.End()

	return s.callerTeams(ctx, userID)
}

func (s *PortalService) GetProfile(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.GetProfile")
	defer span.End()

	return s.getCaller(ctx, userID)
}

// UpdateProfile rewrites the caller's personal fields. The email must stay
// unique across accounts.
func (s *PortalService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.UpdateProfile")
	defer span.End()

	caller, err := s.getCaller(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	profile := user.Profile{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       normalizeEmail(input.Email),
		DateOfBirth: input.DateOfBirth,
	}
	if err := validatePersonName("first name", profile.FirstName); err != nil {
		return user.User{}, err
	}
	if err := validatePersonName("last name", profile.LastName); err != nil {
		return user.User{}, err
	}
	if err := validateEmail(profile.Email); err != nil {
		return user.User{}, err
	}
	if profile.PhoneNumber, err = normalizePhone(input.PhoneNumber, s.phoneRegion); err != nil {
		return user.User{}, err
	}
	if profile.DateOfBirth != nil && profile.DateOfBirth.After(s.now()) {
		return user.User{}, fmt.Errorf("%w: date of birth cannot be in the future", ErrInvalidInput)
	}

	if profile.Email != caller.Email {
		other, exists, err := s.users.GetByEmail(ctx, profile.Email)
		if err != nil {
			return user.User{}, fmt.Errorf("get user by email: %w", err)
		}
		if exists && other.ID != caller.ID {
			return user.User{}, fmt.Errorf("%w: email %s is already registered", ErrConflict, profile.Email)
		}
	}

	if err := s.users.UpdateProfile(ctx, caller.ID, profile); err != nil {
		return user.User{}, fmt.Errorf("update profile: %w", err)
	}

	caller.FirstName = profile.FirstName
	caller.LastName = profile.LastName
	caller.Email = profile.Email
	caller.PhoneNumber = profile.PhoneNumber
	caller.DateOfBirth = profile.DateOfBirth
	caller.UpdatedAt = s.now().UTC()

	s.logger.InfoContext(ctx, "profile updated", "user_id", caller.ID)
	return caller, nil
}

func (s *PortalService) MySports(ctx context.Context, userID string) ([]playersport.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.MySports")
	defer span.End()

	caller, err := s.getCaller(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.sports.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list user sports: %w", err)
	}
	return entries, nil
}

// AddSport adds one sport entry. Marking it primary demotes the current
// primary; the first entry of a user is always primary.
func (s *PortalService) AddSport(ctx context.Context, userID string, input SportInput) (playersport.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.AddSport")
	defer span.End()

	caller, err := s.getCaller(ctx, userID)
	if err != nil {
		return playersport.Entry{}, err
	}
	entry, err := parseSportInput(input)
	if err != nil {
		return playersport.Entry{}, err
	}

	existing, err := s.sports.ListByUser(ctx, caller.ID)
	if err != nil {
		return playersport.Entry{}, fmt.Errorf("list user sports: %w", err)
	}
	if playersport.HasSport(existing, entry.Sport) {
		return playersport.Entry{}, fmt.Errorf("%w: sport %s is already on the profile", ErrConflict, entry.Sport)
	}

	if entry.ID, err = s.idGen.NewID(); err != nil {
		return playersport.Entry{}, fmt.Errorf("generate sport entry id: %w", err)
	}
	entry.UserID = caller.ID
	entry.CreatedAt = s.now().UTC()

	primary, demote := league.ResolvePrimarySport(existing, entry)
	entry.IsPrimary = primary
	if err := s.sports.Add(ctx, entry, demote); err != nil {
		return playersport.Entry{}, fmt.Errorf("add user sport: %w", err)
	}

	s.logger.InfoContext(ctx, "user sport added", "user_id", caller.ID, "sport", entry.Sport, "primary", entry.IsPrimary)
	return entry, nil
}

// UpdateSport changes skill level and primary flag of one entry.
func (s *PortalService) UpdateSport(ctx context.Context, userID, entryID string, skillLevel string, isPrimary bool) (playersport.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.UpdateSport")
	defer span.End()

	caller, err := s.getCaller(ctx, userID)
	if err != nil {
		return playersport.Entry{}, err
	}
	skill, ok := playersport.ParseSkillLevel(skillLevel)
	if !ok {
		return playersport.Entry{}, fmt.Errorf("%w: unsupported skill level %q", ErrInvalidInput, skillLevel)
	}

	existing, err := s.sports.ListByUser(ctx, caller.ID)
	if err != nil {
		return playersport.Entry{}, fmt.Errorf("list user sports: %w", err)
	}
	entry, ok := findSportEntry(existing, entryID)
	if !ok {
		return playersport.Entry{}, fmt.Errorf("%w: sport entry=%s", ErrNotFound, entryID)
	}

	entry.SkillLevel = skill
	entry.IsPrimary = isPrimary
	primary, demote := league.ResolvePrimarySport(existing, entry)
	entry.IsPrimary = primary
	if err := s.sports.Update(ctx, entry, demote); err != nil {
		return playersport.Entry{}, fmt.Errorf("update user sport: %w", err)
	}

	s.logger.InfoContext(ctx, "user sport updated", "user_id", caller.ID, "sport", entry.Sport, "primary", entry.IsPrimary)
	return entry, nil
}

// DeleteSport removes one entry. When the primary entry goes, the oldest
// remaining entry becomes primary in the same repository call.
func (s *PortalService) DeleteSport(ctx context.Context, userID, entryID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.DeleteSport")
	defer span.End()

	caller, err := s.getCaller(ctx, userID)
	if err != nil {
		return err
	}
	existing, err := s.sports.ListByUser(ctx, caller.ID)
	if err != nil {
		return fmt.Errorf("list user sports: %w", err)
	}
	removed, ok := findSportEntry(existing, entryID)
	if !ok {
		return fmt.Errorf("%w: sport entry=%s", ErrNotFound, entryID)
	}

	promoteID := ""
	if removed.IsPrimary {
		for _, e := range existing {
			if e.ID != removed.ID {
				promoteID = e.ID
				break
			}
		}
	}

	deleted, err := s.sports.Delete(ctx, caller.ID, removed.ID, promoteID)
	if err != nil {
		return fmt.Errorf("delete user sport: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: sport entry=%s", ErrNotFound, entryID)
	}

	s.logger.InfoContext(ctx, "user sport deleted", "user_id", caller.ID, "sport", removed.Sport)
	return nil
}

// MyTournaments lists every tournament with the caller's registration flag.
func (s *PortalService) MyTournaments(ctx context.Context, userID string) ([]PortalTournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.MyTournaments")
	defer span.End()

	caller, err := s.getCaller(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.tournaments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	regs, err := s.registrations.ListByPlayer(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	registered := make(map[string]struct{}, len(regs))
	for _, r := range regs {
		registered[r.TournamentID] = struct{}{}
	}
	out := make([]PortalTournament, 0, len(items))
	for _, item := range items {
		_, ok := registered[item.ID]
		out = append(out, PortalTournament{Summary: item, Registered: ok})
	}
	return out, nil
}

// RegisterForTournament signs the caller up through a team they play on.
func (s *PortalService) RegisterForTournament(ctx context.Context, userID string, input RegisterTournamentInput) (registration.Registration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.RegisterForTournament")
	defer span.End()

	caller, err := s.getCaller(ctx, userID)
	if err != nil {
		return registration.Registration{}, err
	}
	tournamentID, err := requireID("tournament id", input.TournamentID)
	if err != nil {
		return registration.Registration{}, err
	}
	teamID, err := requireID("team id", input.TeamID)
	if err != nil {
		return registration.Registration{}, err
	}

	tour, exists, err := s.tournaments.GetByID(ctx, tournamentID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return registration.Registration{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	if tour.Status == tournament.StatusCompleted || tour.Status == tournament.StatusCancelled {
		return registration.Registration{}, fmt.Errorf("%w: tournament %s is %s", ErrConflict, tour.ID, tour.Status)
	}
	t, exists, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return registration.Registration{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	member, onTeam, err := s.rosters.GetByPlayer(ctx, caller.ID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get membership: %w", err)
	}
	if !onTeam || member.TeamID != t.ID {
		return registration.Registration{}, fmt.Errorf("%w: caller is not on team %s", ErrForbidden, t.ID)
	}
	if err := league.ValidateTournamentSportMatch(t.Sport, tour.Sport); err != nil {
		return registration.Registration{}, err
	}

	if already, err := s.registrations.Exists(ctx, caller.ID, tour.ID); err != nil {
		return registration.Registration{}, fmt.Errorf("check registration: %w", err)
	} else if already {
		return registration.Registration{}, fmt.Errorf("%w: already registered for tournament %s", ErrConflict, tour.ID)
	}

	regID, err := s.idGen.NewID()
	if err != nil {
		return registration.Registration{}, fmt.Errorf("generate registration id: %w", err)
	}
	reg := registration.Registration{
		ID:           regID,
		PlayerID:     caller.ID,
		TournamentID: tour.ID,
		TeamID:       t.ID,
		Fee:          tour.EntryFee,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		return registration.Registration{}, fmt.Errorf("create registration: %w", err)
	}

	s.notifier.Notify(ctx, caller.ID, notification.KindTournamentSignup,
		fmt.Sprintf("You are registered for %s with %s", tour.Name, t.Name))
	s.logger.InfoContext(ctx, "tournament registration created",
		"registration_id", reg.ID,
		"user_id", caller.ID,
		"tournament_id", tour.ID,
		"team_id", t.ID,
	)
	return reg, nil
}

// TeamDetails returns a team with its roster and record. Only members and
// the team's coach may read it.
func (s *PortalService) TeamDetails(ctx context.Context, userID, teamID string) (TeamOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.TeamDetails")
	defer span.End()

	caller, err := s.getCaller(ctx, userID)
	if err != nil {
		return TeamOverview{}, err
	}
	teamID, err = requireID("team id", teamID)
	if err != nil {
		return TeamOverview{}, err
	}
	t, exists, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return TeamOverview{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamOverview{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	if t.CoachID != caller.ID {
		member, onTeam, err := s.rosters.GetByPlayer(ctx, caller.ID)
		if err != nil {
			return TeamOverview{}, fmt.Errorf("get membership: %w", err)
		}
		if !onTeam || member.TeamID != t.ID {
			return TeamOverview{}, fmt.Errorf("%w: caller is not a member of team %s", ErrForbidden, t.ID)
		}
	}

	out := TeamOverview{Team: t}
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		members, err := s.rosters.ListByTeam(ctx, t.ID)
		if err != nil {
			return fmt.Errorf("list team members: %w", err)
		}
		out.Members = members
		return nil
	})
	p.Go(func(ctx context.Context) error {
		record, err := s.matches.TeamRecord(ctx, t.ID)
		if err != nil {
			return fmt.Errorf("get team record: %w", err)
		}
		out.Record = record
		return nil
	})
	if t.CoachID != "" {
		p.Go(func(ctx context.Context) error {
			coach, exists, err := s.users.GetByID(ctx, t.CoachID)
			if err != nil {
				return fmt.Errorf("get coach: %w", err)
			}
			if exists {
				out.CoachName = coach.FullName()
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return TeamOverview{}, err
	}
	return out, nil
}

// CoachInfo returns a coach with sports and coached teams.
func (s *PortalService) CoachInfo(ctx context.Context, coachID string) (CoachInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.CoachInfo")
	defer span.End()

	coachID, err := requireID("coach id", coachID)
	if err != nil {
		return CoachInfo{}, err
	}
	coach, exists, err := s.users.GetByID(ctx, coachID)
	if err != nil {
		return CoachInfo{}, fmt.Errorf("get coach: %w", err)
	}
	if !exists || coach.Role != user.RoleCoach {
		return CoachInfo{}, fmt.Errorf("%w: coach=%s", ErrNotFound, coachID)
	}

	sports, err := s.sports.ListByUser(ctx, coach.ID)
	if err != nil {
		return CoachInfo{}, fmt.Errorf("list coach sports: %w", err)
	}
	teams, err := s.teams.ListByCoach(ctx, coach.ID)
	if err != nil {
		return CoachInfo{}, fmt.Errorf("list coached teams: %w", err)
	}
	return CoachInfo{User: coach, Sports: sports, Teams: teams}, nil
}

func (s *PortalService) callerTeams(ctx context.Context, userID string) ([]PortalTeam, error) {
	caller, err := s.getCaller(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]PortalTeam, 0, 1)
	member, onTeam, err := s.rosters.GetByPlayer(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	if onTeam {
		t, exists, err := s.teams.GetByID(ctx, member.TeamID)
		if err != nil {
			return nil, fmt.Errorf("get team: %w", err)
		}
		if exists {
			out = append(out, PortalTeam{Team: t, Position: member.Position, JerseyNumber: member.JerseyNumber})
		}
	}

	if caller.Role == user.RoleCoach {
		coached, err := s.teams.ListByCoach(ctx, caller.ID)
		if err != nil {
			return nil, fmt.Errorf("list coached teams: %w", err)
		}
		for _, t := range coached {
			out = append(out, PortalTeam{Team: t, Coaching: true})
		}
	}
	return out, nil
}

func (s *PortalService) getCaller(ctx context.Context, userID string) (user.User, error) {
	userID, err := requireID("user id", userID)
	if err != nil {
		return user.User{}, err
	}
	u, exists, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists || u.Status == user.StatusDeleted {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}
	return u, nil
}

func findSportEntry(entries []playersport.Entry, entryID string) (playersport.Entry, bool) {
	entryID = strings.TrimSpace(entryID)
	for _, e := range entries {
		if e.ID == entryID {
			return e, true
		}
	}
	return playersport.Entry{}, false
}
