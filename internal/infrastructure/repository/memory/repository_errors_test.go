package memory

import (
	"errors"
	"testing"

	"github.com/riskibarqy/sports-league/internal/domain/match"
	"github.com/riskibarqy/sports-league/internal/domain/repoerr"
	"github.com/riskibarqy/sports-league/internal/domain/roster"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/domain/user"
)

func TestRepositories_MissingRowsAreTyped(t *testing.T) {
	t.Parallel()

	store := NewStore()
	users := NewUserRepository(store)
	teams := NewTeamRepository(store)
	rosters := NewRosterRepository(store)
	matches := NewMatchRepository(store)

	if err := teams.Create(t.Context(), team.Team{ID: "t1", Name: "Hawks", Sport: sport.Football, MaxPlayers: 10}); err != nil {
		t.Fatalf("create team: %v", err)
	}

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{
			name: "add members to a deleted team",
			run: func() error {
				return rosters.AddMembers(t.Context(), "gone", []roster.Member{{PlayerID: "p1"}}, nil)
			},
			want: repoerr.ErrNotFound,
		},
		{
			name: "status of a deleted user",
			run: func() error {
				return users.SetStatus(t.Context(), "gone", user.StatusInactive, true)
			},
			want: repoerr.ErrNotFound,
		},
		{
			name: "permanent delete of a deleted user",
			run: func() error {
				return users.DeletePermanently(t.Context(), "gone")
			},
			want: repoerr.ErrNotFound,
		},
		{
			name: "score of a deleted match",
			run: func() error {
				return matches.UpdateScore(t.Context(), "gone", 1, 0)
			},
			want: repoerr.ErrNotFound,
		},
		{
			name: "coach that no longer exists",
			run: func() error {
				return teams.SetCoach(t.Context(), "t1", "gone")
			},
			want: repoerr.ErrConflict,
		},
		{
			name: "match against a deleted team",
			run: func() error {
				return matches.Create(t.Context(), match.Match{ID: "m1", HomeTeamID: "t1", AwayTeamID: "gone"})
			},
			want: repoerr.ErrConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
