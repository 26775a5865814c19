package roster

import (
	"context"

	"github.com/riskibarqy/sports-league/internal/domain/sport"
)

// Repository persists team_players rows.
type Repository interface {
	ListByTeam(ctx context.Context, teamID string) ([]MemberDetail, error)
	GetByPlayer(ctx context.Context, playerID string) (Member, bool, error)
	// AddMembers locks the team row, builds a Snapshot, runs guard and
	// inserts every member only when guard returns nil.
	AddMembers(ctx context.Context, teamID string, members []Member, guard func(Snapshot) error) error
	RemoveMember(ctx context.Context, teamID, playerID string) (bool, error)
	// ListAvailable returns active players holding s who are on no team,
	// primary holders and higher skill first.
	ListAvailable(ctx context.Context, s sport.Sport) ([]Candidate, error)
}
