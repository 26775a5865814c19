package team

import (
	"fmt"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/sport"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Team is a squad of players competing in a single sport.
type Team struct {
	ID         string
	Name       string
	Sport      sport.Sport
	MaxPlayers int
	// CoachID is empty when no coach is assigned.
	CoachID   string
	Status    Status
	CreatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if !t.Sport.Valid() {
		return fmt.Errorf("team sport %q is not supported", t.Sport)
	}
	if t.MaxPlayers <= 0 {
		return fmt.Errorf("team max players must be > 0")
	}
	return nil
}

// Summary is a team row joined with coach name and roster size.
type Summary struct {
	Team
	CoachName      string
	CurrentPlayers int
}
