package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/domain/notification"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
)

func TestPortalService_RegisterForTournament(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	hawks := env.team(t, "Hawks", "football", 20)
	kings := env.team(t, "Kings", "cricket", 20)
	hawkPlayers := env.roster(t, hawks.ID, "hawk", 2)
	bowler := env.player(t, "bowler", SportInput{Sport: "cricket", SkillLevel: "advanced", IsPrimary: true})
	if _, err := env.teamSvc.AddPlayers(t.Context(), kings.ID, []AddPlayerInput{{PlayerID: bowler.ID}}); err != nil {
		t.Fatalf("add bowler: %v", err)
	}

	start := envNow.AddDate(0, 0, 7)
	cup := env.tournament(t, "football", start, start.AddDate(0, 0, 5))

	reg, err := env.portalSvc.RegisterForTournament(t.Context(), hawkPlayers[0].ID, RegisterTournamentInput{TournamentID: cup.ID, TeamID: hawks.ID})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Fee != 75 || reg.TeamID != hawks.ID || reg.PlayerID != hawkPlayers[0].ID {
		t.Fatalf("unexpected registration: %+v", reg)
	}

	if _, err := env.portalSvc.RegisterForTournament(t.Context(), hawkPlayers[0].ID, RegisterTournamentInput{TournamentID: cup.ID, TeamID: hawks.ID}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate registration, got %v", err)
	}
	if _, err := env.portalSvc.RegisterForTournament(t.Context(), bowler.ID, RegisterTournamentInput{TournamentID: cup.ID, TeamID: hawks.ID}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a player on another team, got %v", err)
	}
	if _, err := env.portalSvc.RegisterForTournament(t.Context(), bowler.ID, RegisterTournamentInput{TournamentID: cup.ID, TeamID: kings.ID}); !errors.Is(err, league.ErrSportMismatch) {
		t.Fatalf("expected ErrSportMismatch, got %v", err)
	}
	if _, err := env.portalSvc.RegisterForTournament(t.Context(), bowler.ID, RegisterTournamentInput{TournamentID: "missing", TeamID: kings.ID}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := env.portalSvc.RegisterForTournament(t.Context(), hawkPlayers[1].ID, RegisterTournamentInput{TournamentID: cup.ID, TeamID: hawks.ID}); err != nil {
		t.Fatalf("register teammate: %v", err)
	}
	mine, err := env.portalSvc.MyTournaments(t.Context(), hawkPlayers[0].ID)
	if err != nil {
		t.Fatalf("my tournaments: %v", err)
	}
	if len(mine) != 1 || !mine[0].Registered || mine[0].RegisteredTeams != 1 {
		t.Fatalf("unexpected tournaments: %+v", mine)
	}

	items, err := env.notificationSvc.List(t.Context(), hawkPlayers[0].ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	found := false
	for _, n := range items {
		if n.Kind == notification.KindTournamentSignup {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a tournament signup notification, got %+v", items)
	}
}

func TestPortalService_RegisterForTournament_RejectsFinishedTournament(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	hawks := env.team(t, "Hawks", "football", 20)
	players := env.roster(t, hawks.ID, "hawk", 1)
	past := env.tournament(t, "football", envNow.AddDate(0, -2, 0), envNow.AddDate(0, -1, 0))

	_, err := env.portalSvc.RegisterForTournament(t.Context(), players[0].ID, RegisterTournamentInput{TournamentID: past.ID, TeamID: hawks.ID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for a completed tournament, got %v", err)
	}
}

func TestPortalService_TeamDetails_Access(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	coach := env.coach(t, "coachlee")
	hawks, err := env.teamSvc.CreateTeam(t.Context(), CreateTeamInput{Name: "Hawks", Sport: "football", CoachID: coach.ID})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	eagles := env.team(t, "Eagles", "football", 20)
	members := env.roster(t, hawks.ID, "hawk", 3)
	outsider := env.player(t, "outsider")
	v := env.venue(t)

	m, err := env.matchSvc.ScheduleMatch(t.Context(), ScheduleMatchInput{HomeTeamID: hawks.ID, AwayTeamID: eagles.ID, VenueID: v.ID, MatchDate: envNow.Add(-24 * time.Hour)})
	if err != nil {
		t.Fatalf("schedule match: %v", err)
	}
	if _, err := env.matchSvc.RecordScore(t.Context(), m.ID, 3, 1); err != nil {
		t.Fatalf("record score: %v", err)
	}

	if _, err := env.portalSvc.TeamDetails(t.Context(), outsider.ID, hawks.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}

	overview, err := env.portalSvc.TeamDetails(t.Context(), members[0].ID, hawks.ID)
	if err != nil {
		t.Fatalf("member team details: %v", err)
	}
	if len(overview.Members) != 3 {
		t.Fatalf("unexpected member count: %d", len(overview.Members))
	}
	if overview.Record.Played != 1 || overview.Record.Wins != 1 {
		t.Fatalf("unexpected record: %+v", overview.Record)
	}
	if overview.CoachName != coach.FullName() {
		t.Fatalf("unexpected coach name: %q", overview.CoachName)
	}

	if _, err := env.portalSvc.TeamDetails(t.Context(), coach.ID, hawks.ID); err != nil {
		t.Fatalf("coach should read their team: %v", err)
	}
}

func TestPortalService_MyMatches_SplitsUpcomingAndHistory(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	hawks := env.team(t, "Hawks", "football", 20)
	eagles := env.team(t, "Eagles", "football", 20)
	players := env.roster(t, hawks.ID, "hawk", 1)
	v := env.venue(t)

	played, err := env.matchSvc.ScheduleMatch(t.Context(), ScheduleMatchInput{HomeTeamID: eagles.ID, AwayTeamID: hawks.ID, VenueID: v.ID, MatchDate: envNow.Add(-48 * time.Hour)})
	if err != nil {
		t.Fatalf("schedule past match: %v", err)
	}
	if _, err := env.matchSvc.RecordScore(t.Context(), played.ID, 0, 0); err != nil {
		t.Fatalf("record score: %v", err)
	}
	next, err := env.matchSvc.ScheduleMatch(t.Context(), ScheduleMatchInput{HomeTeamID: hawks.ID, AwayTeamID: eagles.ID, VenueID: v.ID, MatchDate: envNow.Add(48 * time.Hour)})
	if err != nil {
		t.Fatalf("schedule next match: %v", err)
	}

	got, err := env.portalSvc.MyMatches(t.Context(), players[0].ID)
	if err != nil {
		t.Fatalf("my matches: %v", err)
	}
	if len(got.Upcoming) != 1 || got.Upcoming[0].ID != next.ID || got.Upcoming[0].Side != SideHome {
		t.Fatalf("unexpected upcoming: %+v", got.Upcoming)
	}
	if len(got.History) != 1 || got.History[0].ID != played.ID || got.History[0].Side != SideAway {
		t.Fatalf("unexpected history: %+v", got.History)
	}

	loner := env.player(t, "loner")
	empty, err := env.portalSvc.MyMatches(t.Context(), loner.ID)
	if err != nil {
		t.Fatalf("my matches without team: %v", err)
	}
	if len(empty.Upcoming) != 0 || len(empty.History) != 0 {
		t.Fatalf("player without team should have no matches: %+v", empty)
	}
}

func TestPortalService_SportEntries_PrimaryHandling(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	p := env.player(t, "multisport")

	cricket, err := env.portalSvc.AddSport(t.Context(), p.ID, SportInput{Sport: "cricket", SkillLevel: "beginner"})
	if err != nil {
		t.Fatalf("add cricket: %v", err)
	}
	if cricket.IsPrimary {
		t.Fatalf("secondary sport should not become primary while another is")
	}

	if _, err := env.portalSvc.AddSport(t.Context(), p.ID, SportInput{Sport: "Cricket", SkillLevel: "expert"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate sport, got %v", err)
	}

	volley, err := env.portalSvc.AddSport(t.Context(), p.ID, SportInput{Sport: "volleyball", SkillLevel: "advanced", IsPrimary: true})
	if err != nil {
		t.Fatalf("add volleyball: %v", err)
	}
	entries := mustSports(t, env, p.ID)
	if primary, _ := playersport.Primary(entries); primary.ID != volley.ID {
		t.Fatalf("new primary should demote the old one: %+v", entries)
	}

	updated, err := env.portalSvc.UpdateSport(t.Context(), p.ID, cricket.ID, "advanced", true)
	if err != nil {
		t.Fatalf("update cricket: %v", err)
	}
	if !updated.IsPrimary || updated.SkillLevel != playersport.SkillAdvanced {
		t.Fatalf("unexpected updated entry: %+v", updated)
	}
	entries = mustSports(t, env, p.ID)
	if primary, _ := playersport.Primary(entries); primary.Sport != sport.Cricket {
		t.Fatalf("cricket should be primary: %+v", entries)
	}

	if err := env.portalSvc.DeleteSport(t.Context(), p.ID, cricket.ID); err != nil {
		t.Fatalf("delete primary sport: %v", err)
	}
	entries = mustSports(t, env, p.ID)
	if len(entries) != 2 {
		t.Fatalf("unexpected entry count after delete: %d", len(entries))
	}
	if primary, ok := playersport.Primary(entries); !ok || primary.Sport != sport.Football {
		t.Fatalf("oldest remaining entry should be promoted: %+v", entries)
	}

	if err := env.portalSvc.DeleteSport(t.Context(), p.ID, cricket.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for removed entry, got %v", err)
	}
	if _, err := env.portalSvc.UpdateSport(t.Context(), p.ID, volley.ID, "legendary", false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for skill level, got %v", err)
	}
}

// vanishingSports drops one entry right after the first listing, the way a
// concurrent delete lands between DeleteSport reading the list and writing.
type vanishingSports struct {
	playersport.Repository
	entryID string
	done    bool
}

func (r *vanishingSports) ListByUser(ctx context.Context, userID string) ([]playersport.Entry, error) {
	entries, err := r.Repository.ListByUser(ctx, userID)
	if err != nil || r.done {
		return entries, err
	}
	r.done = true
	if _, err := r.Repository.Delete(ctx, userID, r.entryID, ""); err != nil {
		return nil, err
	}
	return entries, nil
}

func TestPortalService_DeleteSport_KeepsPrimaryWhenPromotionFails(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	p := env.player(t, "twosports")
	football := mustSports(t, env, p.ID)[0]
	cricket, err := env.portalSvc.AddSport(t.Context(), p.ID, SportInput{Sport: "cricket", SkillLevel: "beginner"})
	if err != nil {
		t.Fatalf("add cricket: %v", err)
	}
	env.portalSvc.sports = &vanishingSports{Repository: env.sports, entryID: cricket.ID}

	err = env.portalSvc.DeleteSport(t.Context(), p.ID, football.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for the vanished promotion target, got %v", err)
	}

	entries, err := env.sports.ListByUser(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("list sports: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != football.ID || !entries[0].IsPrimary {
		t.Fatalf("primary entry should survive the failed delete: %+v", entries)
	}
}

func TestPortalService_UpdateProfile(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	p := env.player(t, "profiled")
	env.player(t, "taken")

	future := envNow.AddDate(0, 0, 1)
	tests := []struct {
		name    string
		input   UpdateProfileInput
		wantErr error
	}{
		{name: "future birth date", input: UpdateProfileInput{FirstName: "Pat", LastName: "Doe", Email: "profiled@example.com", DateOfBirth: &future}, wantErr: ErrInvalidInput},
		{name: "bad email", input: UpdateProfileInput{FirstName: "Pat", LastName: "Doe", Email: "nope"}, wantErr: ErrInvalidInput},
		{name: "email of another user", input: UpdateProfileInput{FirstName: "Pat", LastName: "Doe", Email: "taken@example.com"}, wantErr: ErrConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.portalSvc.UpdateProfile(t.Context(), p.ID, tc.input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	birth := time.Date(2000, 5, 17, 0, 0, 0, 0, time.UTC)
	updated, err := env.portalSvc.UpdateProfile(t.Context(), p.ID, UpdateProfileInput{
		FirstName:   "Pat",
		LastName:    "Doe",
		Email:       "PAT.DOE@example.com",
		DateOfBirth: &birth,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Email != "pat.doe@example.com" || updated.FirstName != "Pat" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
	got, err := env.portalSvc.GetProfile(t.Context(), p.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.Email != "pat.doe@example.com" {
		t.Fatalf("profile change not stored: %+v", got)
	}
}

func TestPortalService_CoachInfo(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	coach := env.coach(t, "coachzed")
	if _, err := env.teamSvc.CreateTeam(t.Context(), CreateTeamInput{Name: "Hawks", Sport: "football", CoachID: coach.ID}); err != nil {
		t.Fatalf("create team: %v", err)
	}

	info, err := env.portalSvc.CoachInfo(t.Context(), coach.ID)
	if err != nil {
		t.Fatalf("coach info: %v", err)
	}
	if len(info.Teams) != 1 || info.Teams[0].Name != "Hawks" || len(info.Sports) != 1 {
		t.Fatalf("unexpected coach info: %+v", info)
	}

	p := env.player(t, "notacoach")
	if _, err := env.portalSvc.CoachInfo(t.Context(), p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a player, got %v", err)
	}
}

func mustSports(t *testing.T, env *leagueEnv, userID string) []playersport.Entry {
	t.Helper()

	entries, err := env.portalSvc.MySports(t.Context(), userID)
	if err != nil {
		t.Fatalf("my sports: %v", err)
	}
	return entries
}
