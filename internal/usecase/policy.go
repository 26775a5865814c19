package usecase

import (
	"fmt"

	"github.com/riskibarqy/sports-league/internal/domain/user"
)

// Operation names a group of endpoints sharing one access rule.
type Operation string

const (
	OpViewDashboard     Operation = "dashboard.view"
	OpManagePlayers     Operation = "players.manage"
	OpManageCoaches     Operation = "coaches.manage"
	OpManageAdmins      Operation = "admins.manage"
	OpManageTeams       Operation = "teams.manage"
	OpManageMatches     Operation = "matches.manage"
	OpManageTournaments Operation = "tournaments.manage"
	OpManageVenues      Operation = "venues.manage"
	OpUsePortal         Operation = "portal.use"
)

var rolePolicy = map[Operation][]user.Role{
	OpViewDashboard:     {user.RoleAdmin},
	OpManagePlayers:     {user.RoleAdmin},
	OpManageCoaches:     {user.RoleAdmin},
	OpManageAdmins:      {user.RoleAdmin},
	OpManageTeams:       {user.RoleAdmin},
	OpManageMatches:     {user.RoleAdmin},
	OpManageTournaments: {user.RoleAdmin},
	OpManageVenues:      {user.RoleAdmin},
	OpUsePortal:         {user.RolePlayer, user.RoleCoach, user.RoleAdmin},
}

// Authorize decides whether principal may run op. An empty principal is
// unauthenticated; a known principal without a listed role is forbidden.
func Authorize(principal user.Principal, op Operation) error {
	if principal.UserID == "" {
		return fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	roles, ok := rolePolicy[op]
	if !ok {
		return fmt.Errorf("%w: unknown operation %s", ErrForbidden, op)
	}
	for _, role := range roles {
		if principal.Role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s cannot %s", ErrForbidden, principal.Role, op)
}
