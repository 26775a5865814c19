package usecase

import (
	"testing"
	"time"
)

func TestDashboardService_Stats(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	hawks := env.team(t, "Hawks", "football", 20)
	eagles := env.team(t, "Eagles", "football", 20)
	players := env.roster(t, hawks.ID, "hawk", 3)
	if err := env.userSvc.UpdatePlayerStatus(t.Context(), players[0].ID, "inactive"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := env.userSvc.DeletePlayer(t.Context(), players[1].ID, "soft"); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	v := env.venue(t)

	done, err := env.matchSvc.ScheduleMatch(t.Context(), ScheduleMatchInput{HomeTeamID: hawks.ID, AwayTeamID: eagles.ID, VenueID: v.ID, MatchDate: envNow.Add(-time.Hour)})
	if err != nil {
		t.Fatalf("schedule match: %v", err)
	}
	if _, err := env.matchSvc.RecordScore(t.Context(), done.ID, 1, 1); err != nil {
		t.Fatalf("record score: %v", err)
	}
	if _, err := env.matchSvc.ScheduleMatch(t.Context(), ScheduleMatchInput{HomeTeamID: eagles.ID, AwayTeamID: hawks.ID, VenueID: v.ID, MatchDate: envNow.Add(time.Hour)}); err != nil {
		t.Fatalf("schedule match: %v", err)
	}

	env.tournament(t, "football", envNow.AddDate(0, 0, 3), envNow.AddDate(0, 0, 6))
	env.tournament(t, "cricket", envNow.AddDate(0, 0, -1), envNow.AddDate(0, 0, 6))

	stats, err := env.dashboardSvc.Stats(t.Context())
	if err != nil {
		t.Fatalf("dashboard stats: %v", err)
	}
	if stats.Players.Active != 1 || stats.Players.Inactive != 1 || stats.Players.Deleted != 1 || stats.Players.Total != 3 {
		t.Fatalf("unexpected player stats: %+v", stats.Players)
	}
	if stats.ActiveTeams != 2 {
		t.Fatalf("unexpected active teams: %d", stats.ActiveTeams)
	}
	if stats.Matches.Scheduled != 1 || stats.Matches.Completed != 1 || stats.Matches.Total != 2 {
		t.Fatalf("unexpected match stats: %+v", stats.Matches)
	}
	if stats.Tournaments.Upcoming != 1 || stats.Tournaments.Ongoing != 1 || stats.Tournaments.Total != 2 {
		t.Fatalf("unexpected tournament stats: %+v", stats.Tournaments)
	}
}

func TestTournamentService_RefreshStatuses(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	cup := env.tournament(t, "football", envNow.Add(time.Hour), envNow.AddDate(0, 0, 2))
	if cup.Status != "upcoming" {
		t.Fatalf("unexpected initial status: %s", cup.Status)
	}

	env.tournamentSvc.now = func() time.Time { return envNow.Add(2 * time.Hour) }
	changed, err := env.tournamentSvc.RefreshStatuses(t.Context())
	if err != nil {
		t.Fatalf("refresh statuses: %v", err)
	}
	if changed != 1 {
		t.Fatalf("unexpected changed count: %d", changed)
	}

	items, err := env.tournamentSvc.ListTournaments(t.Context())
	if err != nil {
		t.Fatalf("list tournaments: %v", err)
	}
	if len(items) != 1 || items[0].Status != "ongoing" {
		t.Fatalf("unexpected tournaments: %+v", items)
	}

	changed, err = env.tournamentSvc.RefreshStatuses(t.Context())
	if err != nil {
		t.Fatalf("refresh statuses again: %v", err)
	}
	if changed != 0 {
		t.Fatalf("second refresh should change nothing, got %d", changed)
	}
}
