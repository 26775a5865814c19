package tournament

import (
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/sport"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Tournament struct {
	ID          string
	Name        string
	Sport       sport.Sport
	StartDate   time.Time
	EndDate     time.Time
	EntryFee    float64
	MaxTeams    int
	Description string
	Status      Status
	CreatedAt   time.Time
}

// StatusAt derives the calendar status at now. Cancelled tournaments stay
// cancelled.
func (t Tournament) StatusAt(now time.Time) Status {
	switch {
	case t.Status == StatusCancelled:
		return StatusCancelled
	case now.Before(t.StartDate):
		return StatusUpcoming
	case now.After(WindowEnd(t.EndDate)):
		return StatusCompleted
	default:
		return StatusOngoing
	}
}

// WindowEnd returns the last instant covered by end. A date without a clock
// component covers the whole day.
func WindowEnd(end time.Time) time.Time {
	h, m, s := end.Clock()
	if h == 0 && m == 0 && s == 0 && end.Nanosecond() == 0 {
		return end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return end
}

// Summary is a tournament with the number of distinct teams registered for it.
type Summary struct {
	Tournament
	RegisteredTeams int
}
