package match

import (
	"strings"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/sport"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(v string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(v))) {
	case StatusScheduled:
		return StatusScheduled, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusCompleted:
		return StatusCompleted, true
	case StatusCancelled:
		return StatusCancelled, true
	default:
		return "", false
	}
}

type Match struct {
	ID string
	// TournamentID is empty for friendly matches.
	TournamentID    string
	HomeTeamID      string
	AwayTeamID      string
	VenueID         string
	MatchDate       time.Time
	DurationMinutes int
	Status          Status
	HomeScore       *int
	AwayScore       *int
	CreatedAt       time.Time
}

func (m Match) IsFriendly() bool {
	return m.TournamentID == ""
}

// View is a match joined with display names of the referenced rows.
type View struct {
	Match
	HomeTeamName   string
	AwayTeamName   string
	VenueName      string
	TournamentName string
	Sport          sport.Sport
}

type Filter struct {
	Status       Status
	TournamentID string
	FriendlyOnly bool
	// TeamID matches either side.
	TeamID string
}

// Record aggregates results of completed matches for one team.
type Record struct {
	Played int
	Wins   int
	Losses int
	Draws  int
}
