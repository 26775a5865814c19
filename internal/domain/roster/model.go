// Package roster models team membership.
//
// Membership is the presence of a team_players row and nothing else: there
// is no active flag on the row, removing a player deletes the row, and a
// player with a row is rostered. Storage backs the single-team rule with a
// unique index on player_id and jersey uniqueness with a unique index on
// (team_id, jersey_number).
package roster

import (
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/user"
)

type Member struct {
	TeamID       string
	PlayerID     string
	Position     string
	JerseyNumber *int
	JoinedAt     time.Time
}

// MemberDetail is a roster row joined with the player's account fields.
type MemberDetail struct {
	Member
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// Candidate is an active player eligible to join a team of a given sport.
type Candidate struct {
	UserID     string
	Username   string
	FirstName  string
	LastName   string
	Email      string
	SkillLevel playersport.SkillLevel
	IsPrimary  bool
}

// Snapshot is the roster state read under the team row lock, used to decide
// whether a batch of new members can be inserted.
type Snapshot struct {
	TeamID        string
	MaxPlayers    int
	MemberCount   int
	JerseyNumbers []int
	// Memberships maps each candidate already on a team to that team's id.
	Memberships map[string]string
	// Statuses holds the account status of each candidate, read under a
	// share lock. A candidate without an entry no longer exists.
	Statuses map[string]user.Status
}
