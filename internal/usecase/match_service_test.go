package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/domain/match"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
)

func TestMatchService_ScheduleMatch_Checks(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	hawks := env.team(t, "Hawks", "football", 20)
	eagles := env.team(t, "Eagles", "football", 20)
	kings := env.team(t, "Kings", "cricket", 20)
	v := env.venue(t)

	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	cup := env.tournament(t, "football", day, day.AddDate(0, 0, 9))
	cricketCup := env.tournament(t, "cricket", day, day.AddDate(0, 0, 9))

	tests := []struct {
		name    string
		input   ScheduleMatchInput
		wantErr error
	}{
		{
			name:    "same team",
			input:   ScheduleMatchInput{HomeTeamID: hawks.ID, AwayTeamID: hawks.ID, VenueID: v.ID, MatchDate: day},
			wantErr: league.ErrSameTeam,
		},
		{
			name:    "team sport mismatch",
			input:   ScheduleMatchInput{HomeTeamID: hawks.ID, AwayTeamID: kings.ID, VenueID: v.ID, MatchDate: day},
			wantErr: league.ErrSportMismatch,
		},
		{
			name:    "before tournament window",
			input:   ScheduleMatchInput{TournamentID: cup.ID, HomeTeamID: hawks.ID, AwayTeamID: eagles.ID, VenueID: v.ID, MatchDate: day.Add(-time.Hour)},
			wantErr: league.ErrOutOfWindow,
		},
		{
			name:    "after tournament window",
			input:   ScheduleMatchInput{TournamentID: cup.ID, HomeTeamID: hawks.ID, AwayTeamID: eagles.ID, VenueID: v.ID, MatchDate: day.AddDate(0, 0, 10)},
			wantErr: league.ErrOutOfWindow,
		},
		{
			name:    "tournament sport mismatch",
			input:   ScheduleMatchInput{TournamentID: cricketCup.ID, HomeTeamID: hawks.ID, AwayTeamID: eagles.ID, VenueID: v.ID, MatchDate: day},
			wantErr: league.ErrSportMismatch,
		},
		{
			name:    "duration too short",
			input:   ScheduleMatchInput{HomeTeamID: hawks.ID, AwayTeamID: eagles.ID, VenueID: v.ID, MatchDate: day, DurationMinutes: 20},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown venue",
			input:   ScheduleMatchInput{HomeTeamID: hawks.ID, AwayTeamID: eagles.ID, VenueID: "missing", MatchDate: day},
			wantErr: ErrNotFound,
		},
		{
			name:    "unknown tournament",
			input:   ScheduleMatchInput{TournamentID: "missing", HomeTeamID: hawks.ID, AwayTeamID: eagles.ID, VenueID: v.ID, MatchDate: day},
			wantErr: ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.matchSvc.ScheduleMatch(t.Context(), tc.input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestMatchService_ScheduleMatch_EndDateCoversWholeDay(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	hawks := env.team(t, "Hawks", "football", 20)
	eagles := env.team(t, "Eagles", "football", 20)
	v := env.venue(t)

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	cup := env.tournament(t, "football", start, end)

	m, err := env.matchSvc.ScheduleMatch(t.Context(), ScheduleMatchInput{
		TournamentID: cup.ID,
		HomeTeamID:   hawks.ID,
		AwayTeamID:   eagles.ID,
		VenueID:      v.ID,
		MatchDate:    time.Date(2026, 4, 5, 18, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("evening match on the final day should be accepted: %v", err)
	}
	if m.Status != match.StatusScheduled || m.DurationMinutes != 90 {
		t.Fatalf("unexpected match defaults: status=%s duration=%d", m.Status, m.DurationMinutes)
	}

	listed, err := env.matchSvc.ListTournamentMatches(t.Context(), cup.ID)
	if err != nil {
		t.Fatalf("list tournament matches: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("unexpected tournament match count: %d", len(listed))
	}
	got := listed[0]
	if got.HomeTeamName != "Hawks" || got.AwayTeamName != "Eagles" || got.Sport != sport.Football {
		t.Fatalf("unexpected match view: %+v", got)
	}
	if got.TournamentName != cup.Name || got.VenueName != v.Name {
		t.Fatalf("unexpected match view names: %+v", got)
	}

	friendlies, err := env.matchSvc.ListFriendlyMatches(t.Context())
	if err != nil {
		t.Fatalf("list friendly matches: %v", err)
	}
	if len(friendlies) != 0 {
		t.Fatalf("tournament match listed as friendly: %+v", friendlies)
	}
}

func TestMatchService_RecordScore_ThenDeleteIsRejected(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	hawks := env.team(t, "Hawks", "football", 20)
	eagles := env.team(t, "Eagles", "football", 20)
	v := env.venue(t)

	scheduled, err := env.matchSvc.ScheduleMatch(t.Context(), ScheduleMatchInput{
		HomeTeamID: hawks.ID,
		AwayTeamID: eagles.ID,
		VenueID:    v.ID,
		MatchDate:  envNow.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("schedule match: %v", err)
	}

	if _, err := env.matchSvc.RecordScore(t.Context(), scheduled.ID, -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative score, got %v", err)
	}

	scored, err := env.matchSvc.RecordScore(t.Context(), scheduled.ID, 2, 1)
	if err != nil {
		t.Fatalf("record score: %v", err)
	}
	if scored.Status != match.StatusCompleted || *scored.HomeScore != 2 || *scored.AwayScore != 1 {
		t.Fatalf("unexpected scored match: %+v", scored)
	}

	completed, err := env.matchSvc.ListMatches(t.Context(), "completed")
	if err != nil {
		t.Fatalf("list completed matches: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != scheduled.ID {
		t.Fatalf("unexpected completed matches: %+v", completed)
	}

	if err := env.matchSvc.DeleteMatch(t.Context(), scheduled.ID); !errors.Is(err, league.ErrMatchNotDeletable) {
		t.Fatalf("expected ErrMatchNotDeletable, got %v", err)
	}
}

func TestMatchService_DeleteMatch_RemovesScheduledMatch(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	hawks := env.team(t, "Hawks", "football", 20)
	eagles := env.team(t, "Eagles", "football", 20)
	v := env.venue(t)

	m, err := env.matchSvc.ScheduleMatch(t.Context(), ScheduleMatchInput{
		HomeTeamID: hawks.ID,
		AwayTeamID: eagles.ID,
		VenueID:    v.ID,
		MatchDate:  envNow.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("schedule match: %v", err)
	}

	if err := env.matchSvc.DeleteMatch(t.Context(), m.ID); err != nil {
		t.Fatalf("delete match: %v", err)
	}
	if err := env.matchSvc.DeleteMatch(t.Context(), m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := env.teamSvc.DeleteTeam(t.Context(), hawks.ID); err != nil {
		t.Fatalf("team without matches should be deletable: %v", err)
	}
}

func TestMatchService_ListMatches_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	env := newLeagueEnv(t)
	if _, err := env.matchSvc.ListMatches(t.Context(), "postponed"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
