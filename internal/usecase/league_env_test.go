package usecase

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	"github.com/riskibarqy/sports-league/internal/domain/venue"
	"github.com/riskibarqy/sports-league/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/sports-league/internal/platform/id"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
)

var envNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

// stubTokens encodes the principal in the token text.
type stubTokens struct{}

func (stubTokens) Issue(p user.Principal) (string, time.Time, error) {
	return fmt.Sprintf("tok|%s|%s|%s", p.UserID, p.Role, p.Email), envNow.Add(time.Hour), nil
}

func (stubTokens) Parse(token string) (user.Principal, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 || parts[0] != "tok" {
		return user.Principal{}, errors.New("malformed token")
	}
	return user.Principal{UserID: parts[1], Role: user.Role(parts[2]), Email: parts[3]}, nil
}

type leagueEnv struct {
	store         *memory.Store
	users         *memory.UserRepository
	sports        *memory.PlayerSportRepository
	teams         *memory.TeamRepository
	rosters       *memory.RosterRepository
	matches       *memory.MatchRepository
	tournaments   *memory.TournamentRepository
	venues        *memory.VenueRepository
	registrations *memory.RegistrationRepository
	notifications *memory.NotificationStore

	userSvc         *UserService
	teamSvc         *TeamService
	matchSvc        *MatchService
	tournamentSvc   *TournamentService
	venueSvc        *VenueService
	portalSvc       *PortalService
	notificationSvc *NotificationService
	authSvc         *AuthService
	dashboardSvc    *DashboardService
}

func newLeagueEnv(t *testing.T) *leagueEnv {
	t.Helper()

	store := memory.NewStore()
	ids := &idgen.Sequence{Prefix: "id"}
	logger := logging.NewNop()
	rules := league.DefaultRules()
	clock := func() time.Time { return envNow }

	env := &leagueEnv{
		store:         store,
		users:         memory.NewUserRepository(store),
		sports:        memory.NewPlayerSportRepository(store),
		teams:         memory.NewTeamRepository(store),
		rosters:       memory.NewRosterRepository(store),
		matches:       memory.NewMatchRepository(store),
		tournaments:   memory.NewTournamentRepository(store),
		venues:        memory.NewVenueRepository(store),
		registrations: memory.NewRegistrationRepository(store),
		notifications: memory.NewNotificationStore(store),
	}

	env.notificationSvc = NewNotificationService(env.notifications, ids, logger)
	env.notificationSvc.now = clock
	env.userSvc = NewUserService(env.users, env.sports, plainHasher{}, rules, ids, "US", logger)
	env.userSvc.now = clock
	env.teamSvc = NewTeamService(env.teams, env.rosters, env.users, env.sports, env.notificationSvc, rules, ids, logger)
	env.teamSvc.now = clock
	env.matchSvc = NewMatchService(env.matches, env.teams, env.tournaments, env.venues, rules, ids, logger)
	env.matchSvc.now = clock
	env.tournamentSvc = NewTournamentService(env.tournaments, ids, logger)
	env.tournamentSvc.now = clock
	env.venueSvc = NewVenueService(env.venues, ids, logger)
	env.venueSvc.now = clock
	env.portalSvc = NewPortalService(env.users, env.sports, env.teams, env.rosters, env.matches, env.tournaments, env.registrations, env.notificationSvc, ids, "US", logger)
	env.portalSvc.now = clock
	env.authSvc = NewAuthService(env.users, plainHasher{}, stubTokens{}, ids, "US", logger)
	env.authSvc.accounts.now = clock
	env.dashboardSvc = NewDashboardService(env.users, env.teams, env.matches, env.tournaments)

	return env
}

func accountInput(username string, sports ...SportInput) CreateAccountInput {
	return CreateAccountInput{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "secret-password",
		FirstName: "First",
		LastName:  "Last",
		Sports:    sports,
	}
}

func (e *leagueEnv) player(t *testing.T, username string, sports ...SportInput) user.User {
	t.Helper()

	if len(sports) == 0 {
		sports = []SportInput{{Sport: "football", SkillLevel: "intermediate", IsPrimary: true}}
	}
	u, err := e.authSvc.Register(t.Context(), accountInput(username, sports...))
	if err != nil {
		t.Fatalf("register player %s: %v", username, err)
	}
	return u
}

func (e *leagueEnv) coach(t *testing.T, username string, sports ...SportInput) user.User {
	t.Helper()

	if len(sports) == 0 {
		sports = []SportInput{{Sport: "football", SkillLevel: "expert", IsPrimary: true}}
	}
	c, err := e.userSvc.CreateCoach(t.Context(), accountInput(username, sports...))
	if err != nil {
		t.Fatalf("create coach %s: %v", username, err)
	}
	return c.User
}

func (e *leagueEnv) admin(t *testing.T, username string) user.User {
	t.Helper()

	a, err := e.userSvc.CreateAdmin(t.Context(), accountInput(username))
	if err != nil {
		t.Fatalf("create admin %s: %v", username, err)
	}
	return a
}

func (e *leagueEnv) team(t *testing.T, name, sportName string, maxPlayers int) team.Team {
	t.Helper()

	created, err := e.teamSvc.CreateTeam(t.Context(), CreateTeamInput{Name: name, Sport: sportName, MaxPlayers: maxPlayers})
	if err != nil {
		t.Fatalf("create team %s: %v", name, err)
	}
	return created
}

func (e *leagueEnv) venue(t *testing.T) venue.Venue {
	t.Helper()

	v, err := e.venueSvc.CreateVenue(t.Context(), CreateVenueInput{Name: "Central Stadium", Location: "12 Main Road", Capacity: 500})
	if err != nil {
		t.Fatalf("create venue: %v", err)
	}
	return v
}

func (e *leagueEnv) tournament(t *testing.T, sportName string, start, end time.Time) tournament.Tournament {
	t.Helper()

	created, err := e.tournamentSvc.CreateTournament(t.Context(), CreateTournamentInput{
		Name:      "Spring Cup",
		Sport:     sportName,
		StartDate: start,
		EndDate:   end,
		EntryFee:  75,
		MaxTeams:  8,
	})
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	return created
}

// roster fills teamID with n fresh football players wearing jerseys 1..n.
func (e *leagueEnv) roster(t *testing.T, teamID, prefix string, n int) []user.User {
	t.Helper()

	players := make([]user.User, 0, n)
	inputs := make([]AddPlayerInput, 0, n)
	for i := 1; i <= n; i++ {
		p := e.player(t, fmt.Sprintf("%s%02d", prefix, i))
		jersey := i
		players = append(players, p)
		inputs = append(inputs, AddPlayerInput{PlayerID: p.ID, JerseyNumber: &jersey})
	}
	if _, err := e.teamSvc.AddPlayers(t.Context(), teamID, inputs); err != nil {
		t.Fatalf("seed roster: %v", err)
	}
	return players
}

func intPtr(v int) *int {
	return &v
}
