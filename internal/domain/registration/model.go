package registration

import (
	"context"
	"time"
)

// Registration enrolls one player, through their team, in a tournament.
// A player registers at most once per tournament.
type Registration struct {
	ID           string
	PlayerID     string
	TournamentID string
	TeamID       string
	Fee          float64
	CreatedAt    time.Time
}

type Repository interface {
	Exists(ctx context.Context, playerID, tournamentID string) (bool, error)
	Create(ctx context.Context, r Registration) error
	ListByPlayer(ctx context.Context, playerID string) ([]Registration, error)
}
