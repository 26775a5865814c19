package league

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/match"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/roster"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/user"
)

func jersey(n int) *int {
	return &n
}

func TestValidateRosterAddition_Falcons(t *testing.T) {
	falcons := roster.Snapshot{
		TeamID:        "falcons",
		MaxPlayers:    5,
		MemberCount:   4,
		JerseyNumbers: []int{1, 7, 9, 10},
		Memberships:   map[string]string{},
		Statuses:      map[string]user.Status{"p5": user.StatusActive, "p6": user.StatusActive},
	}

	tests := []struct {
		name      string
		incoming  []roster.Member
		targetErr error
	}{
		{
			name: "two new players exceed capacity",
			incoming: []roster.Member{
				{PlayerID: "p5", JerseyNumber: jersey(11)},
				{PlayerID: "p6", JerseyNumber: jersey(12)},
			},
			targetErr: ErrCapacityExceeded,
		},
		{
			name:      "one player with a jersey already used",
			incoming:  []roster.Member{{PlayerID: "p5", JerseyNumber: jersey(7)}},
			targetErr: ErrJerseyConflict,
		},
		{
			name:     "one player with an unused jersey",
			incoming: []roster.Member{{PlayerID: "p5", JerseyNumber: jersey(23)}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRosterAddition(falcons, tc.incoming)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestValidateRosterAddition_CheckOrder(t *testing.T) {
	snapshot := roster.Snapshot{
		MaxPlayers:    3,
		MemberCount:   2,
		JerseyNumbers: []int{4},
		Memberships:   map[string]string{"p9": "hawks"},
		Statuses:      map[string]user.Status{"p9": user.StatusActive, "p10": user.StatusActive},
	}

	err := ValidateRosterAddition(snapshot, []roster.Member{{PlayerID: "p9", JerseyNumber: jersey(4)}})
	if !errors.Is(err, ErrAlreadyRostered) {
		t.Fatalf("expected rostering to be checked before jerseys, got %v", err)
	}

	err = ValidateRosterAddition(snapshot, []roster.Member{{PlayerID: "p9"}, {PlayerID: "p10"}})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected capacity to be checked first, got %v", err)
	}
}

func TestValidateRosterAddition_RequiresActivePlayers(t *testing.T) {
	snapshot := roster.Snapshot{
		MaxPlayers:  10,
		MemberCount: 2,
		Memberships: map[string]string{"p2": "hawks"},
		Statuses: map[string]user.Status{
			"p1": user.StatusActive,
			"p2": user.StatusInactive,
			"p3": user.StatusDeleted,
		},
	}

	tests := []struct {
		name     string
		incoming []roster.Member
		wantErr  bool
	}{
		{name: "active player", incoming: []roster.Member{{PlayerID: "p1"}}},
		{name: "deactivated after the request was read", incoming: []roster.Member{{PlayerID: "p1"}, {PlayerID: "p2"}}, wantErr: true},
		{name: "soft deleted player", incoming: []roster.Member{{PlayerID: "p3"}}, wantErr: true},
		{name: "removed account", incoming: []roster.Member{{PlayerID: "p4"}}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRosterAddition(snapshot, tc.incoming)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrPlayerNotActive) {
				t.Fatalf("expected ErrPlayerNotActive, got %v", err)
			}
		})
	}
}

func TestValidateJerseyUniqueness(t *testing.T) {
	tests := []struct {
		name      string
		existing  []int
		incoming  []roster.Member
		targetErr error
	}{
		{
			name:     "no numbers",
			existing: []int{1},
			incoming: []roster.Member{{PlayerID: "a"}, {PlayerID: "b"}},
		},
		{
			name:      "used in team",
			existing:  []int{1, 2},
			incoming:  []roster.Member{{PlayerID: "a", JerseyNumber: jersey(2)}},
			targetErr: ErrJerseyInUse,
		},
		{
			name:      "duplicated in batch",
			incoming:  []roster.Member{{PlayerID: "a", JerseyNumber: jersey(5)}, {PlayerID: "b", JerseyNumber: jersey(5)}},
			targetErr: ErrJerseyDuplicated,
		},
		{
			name:      "team conflict reported before batch duplicate",
			existing:  []int{8},
			incoming:  []roster.Member{{PlayerID: "a", JerseyNumber: jersey(5)}, {PlayerID: "b", JerseyNumber: jersey(5)}, {PlayerID: "c", JerseyNumber: jersey(8)}},
			targetErr: ErrJerseyInUse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateJerseyUniqueness(tc.existing, tc.incoming)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
			if !errors.Is(err, ErrJerseyConflict) {
				t.Fatalf("expected error to match ErrJerseyConflict, got %v", err)
			}
		})
	}

	if errors.Is(ErrJerseyInUse, ErrJerseyDuplicated) {
		t.Fatalf("jersey reasons must stay distinct")
	}
}

func TestValidateMatchSchedule(t *testing.T) {
	hawks := team.Team{ID: "hawks", Sport: sport.Football}
	eagles := team.Team{ID: "eagles", Sport: sport.Football}
	stumps := team.Team{ID: "stumps", Sport: sport.Cricket}
	cup := tournament.Tournament{
		ID:        "cup",
		Sport:     sport.Football,
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	cricketCup := cup
	cricketCup.Sport = sport.Cricket
	inWindow := time.Date(2026, 6, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		home      team.Team
		away      team.Team
		tour      *tournament.Tournament
		date      time.Time
		targetErr error
	}{
		{name: "friendly", home: hawks, away: eagles, date: inWindow},
		{name: "tournament match", home: hawks, away: eagles, tour: &cup, date: inWindow},
		{name: "last day of tournament", home: hawks, away: eagles, tour: &cup, date: time.Date(2026, 6, 30, 20, 0, 0, 0, time.UTC)},
		{name: "same team", home: hawks, away: hawks, date: inWindow, targetErr: ErrSameTeam},
		{name: "different sports", home: hawks, away: stumps, date: inWindow, targetErr: ErrSportMismatch},
		{name: "before window", home: hawks, away: eagles, tour: &cup, date: time.Date(2026, 5, 31, 23, 0, 0, 0, time.UTC), targetErr: ErrOutOfWindow},
		{name: "after window", home: hawks, away: eagles, tour: &cup, date: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), targetErr: ErrOutOfWindow},
		{name: "tournament sport differs", home: hawks, away: eagles, tour: &cricketCup, date: inWindow, targetErr: ErrSportMismatch},
		{
			name: "window checked before tournament sport",
			home: hawks, away: eagles, tour: &cricketCup,
			date:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			targetErr: ErrOutOfWindow,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateMatchSchedule(tc.home, tc.away, tc.tour, tc.date)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestValidateLastAdminGuard(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name      string
		actor     string
		target    string
		active    []string
		targetErr error
	}{
		{name: "two active admins", actor: "a1", target: "a2", active: []string{"a1", "a2"}},
		{name: "self removal", actor: "a1", target: "a1", active: []string{"a1", "a2"}, targetErr: ErrSelfDeleteForbidden},
		{name: "last active admin", actor: "", target: "a1", active: []string{"a1"}, targetErr: ErrLastAdminProtected},
		{name: "inactive target does not reduce count", actor: "a1", target: "a3", active: []string{"a1"}},
		{name: "no active admins left", actor: "a9", target: "a3", active: nil, targetErr: ErrLastAdminProtected},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateLastAdminGuard(tc.actor, tc.target, tc.active, rules)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestResolvePrimarySport(t *testing.T) {
	existing := []playersport.Entry{
		{ID: "s1", Sport: sport.Football, IsPrimary: true},
		{ID: "s2", Sport: sport.Cricket},
	}

	primary, demote := ResolvePrimarySport(existing, playersport.Entry{ID: "s3", Sport: sport.Badminton, IsPrimary: true})
	if !primary || len(demote) != 1 || demote[0] != "s1" {
		t.Fatalf("expected s1 demoted, got primary=%v demote=%v", primary, demote)
	}

	primary, demote = ResolvePrimarySport(existing, playersport.Entry{ID: "s3", Sport: sport.Badminton})
	if primary || len(demote) != 0 {
		t.Fatalf("expected non-primary insert untouched, got primary=%v demote=%v", primary, demote)
	}

	primary, _ = ResolvePrimarySport(existing[1:], playersport.Entry{ID: "s3", Sport: sport.Badminton})
	if !primary {
		t.Fatalf("expected entry to be forced primary when no other primary exists")
	}

	primary, demote = ResolvePrimarySport(existing, playersport.Entry{ID: "s1", Sport: sport.Football, IsPrimary: true})
	if !primary || len(demote) != 0 {
		t.Fatalf("updating the current primary must not demote itself, got demote=%v", demote)
	}

	primary, _ = ResolvePrimarySport(nil, playersport.Entry{ID: "s1"})
	if !primary {
		t.Fatalf("expected first entry to become primary")
	}
}

func TestNormalizePrimaryBatch(t *testing.T) {
	t.Run("forces first primary", func(t *testing.T) {
		out, err := NormalizePrimaryBatch([]playersport.Entry{
			{Sport: sport.Football},
			{Sport: sport.Cricket},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out[0].IsPrimary || out[1].IsPrimary {
			t.Fatalf("expected only the first entry primary: %+v", out)
		}
	})

	t.Run("keeps the first flagged primary only", func(t *testing.T) {
		in := []playersport.Entry{
			{Sport: sport.Football},
			{Sport: sport.Cricket, IsPrimary: true},
			{Sport: sport.Volleyball, IsPrimary: true},
		}
		out, err := NormalizePrimaryBatch(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		count := 0
		for _, e := range out {
			if e.IsPrimary {
				count++
			}
		}
		if count != 1 || !out[1].IsPrimary {
			t.Fatalf("expected exactly cricket primary: %+v", out)
		}
		if !in[2].IsPrimary {
			t.Fatalf("input slice must not be modified")
		}
	})

	t.Run("duplicate sport", func(t *testing.T) {
		_, err := NormalizePrimaryBatch([]playersport.Entry{{Sport: sport.Football}, {Sport: sport.Football}})
		if !errors.Is(err, ErrDuplicateSport) {
			t.Fatalf("expected ErrDuplicateSport, got %v", err)
		}
	})
}

func TestSmallChecks(t *testing.T) {
	if err := ValidateCoachSportEligibility([]playersport.Entry{{Sport: sport.Cricket}, {Sport: sport.Football}}, sport.Football); err != nil {
		t.Fatalf("expected non-primary coach sport to qualify, got %v", err)
	}
	if err := ValidateCoachSportEligibility(nil, sport.Football); !errors.Is(err, ErrCoachSportMismatch) {
		t.Fatalf("expected ErrCoachSportMismatch, got %v", err)
	}
	if err := ValidateNoScheduledMatches(0); err != nil {
		t.Fatalf("expected zero matches to pass, got %v", err)
	}
	if err := ValidateNoScheduledMatches(1); !errors.Is(err, ErrHasScheduledMatches) {
		t.Fatalf("expected ErrHasScheduledMatches, got %v", err)
	}
	for _, status := range []match.Status{match.StatusCompleted, match.StatusInProgress} {
		if err := ValidateMatchDeletable(status); !errors.Is(err, ErrMatchNotDeletable) {
			t.Fatalf("expected %s to be protected, got %v", status, err)
		}
	}
	for _, status := range []match.Status{match.StatusScheduled, match.StatusCancelled} {
		if err := ValidateMatchDeletable(status); err != nil {
			t.Fatalf("expected %s to be deletable, got %v", status, err)
		}
	}
	if err := ValidatePlayersNotRostered([]string{"p1"}, map[string]string{"p2": "t1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if RequiresRosterRemoval(user.StatusActive) {
		t.Fatalf("active users keep their memberships")
	}
	if !RequiresRosterRemoval(user.StatusInactive) || !RequiresRosterRemoval(user.StatusDeleted) {
		t.Fatalf("inactive and deleted users lose their memberships")
	}
}
