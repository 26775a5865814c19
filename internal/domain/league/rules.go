// Package league holds the cross-entity rules of the league: roster
// capacity and jersey numbers, single-team membership, sport compatibility
// between teams, tournaments and coaches, the active admin floor and primary
// sport exclusivity. Every check is a pure function of rows the caller has
// already read.
package league

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/match"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/roster"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/user"
)

var (
	ErrCapacityExceeded    = errors.New("team capacity exceeded")
	ErrJerseyConflict      = errors.New("jersey number conflict")
	ErrJerseyInUse         = fmt.Errorf("%w: number already used in team", ErrJerseyConflict)
	ErrJerseyDuplicated    = fmt.Errorf("%w: number repeated in request", ErrJerseyConflict)
	ErrAlreadyRostered     = errors.New("player already belongs to a team")
	ErrPlayerNotActive     = errors.New("player account is not active")
	ErrSportMismatch       = errors.New("sport mismatch")
	ErrOutOfWindow         = errors.New("match date outside tournament window")
	ErrLastAdminProtected  = errors.New("cannot remove the last active admin")
	ErrSelfDeleteForbidden = errors.New("admins cannot remove their own account")
	ErrCoachSportMismatch  = errors.New("coach does not play the team sport")
	ErrHasScheduledMatches = errors.New("matches are already scheduled")
	ErrMatchNotDeletable   = errors.New("match cannot be deleted in its current status")
	ErrSameTeam            = errors.New("home and away team must be different")
	ErrDuplicateSport      = errors.New("sport listed more than once")
)

// Rules stores the numeric limits of the league.
type Rules struct {
	MinTeamPlayers      int
	MaxTeamPlayers      int
	DefaultTeamPlayers  int
	MinMatchMinutes     int
	MaxMatchMinutes     int
	DefaultMatchMinutes int
	MinActiveAdmins     int
}

func DefaultRules() Rules {
	return Rules{
		MinTeamPlayers:      5,
		MaxTeamPlayers:      30,
		DefaultTeamPlayers:  15,
		MinMatchMinutes:     30,
		MaxMatchMinutes:     180,
		DefaultMatchMinutes: 90,
		MinActiveAdmins:     1,
	}
}

func ValidateTeamCapacity(maxPlayers, currentCount, incomingCount int) error {
	if currentCount+incomingCount > maxPlayers {
		return fmt.Errorf("%w: max=%d current=%d incoming=%d", ErrCapacityExceeded, maxPlayers, currentCount, incomingCount)
	}
	return nil
}

// ValidateJerseyUniqueness checks incoming numbers against the team first and
// against each other second. Members without a number are ignored.
func ValidateJerseyUniqueness(existing []int, incoming []roster.Member) error {
	used := make(map[int]struct{}, len(existing))
	for _, n := range existing {
		used[n] = struct{}{}
	}
	for _, m := range incoming {
		if m.JerseyNumber == nil {
			continue
		}
		if _, taken := used[*m.JerseyNumber]; taken {
			return fmt.Errorf("%w: jersey=%d player=%s", ErrJerseyInUse, *m.JerseyNumber, m.PlayerID)
		}
	}

	seen := make(map[int]string, len(incoming))
	for _, m := range incoming {
		if m.JerseyNumber == nil {
			continue
		}
		if other, dup := seen[*m.JerseyNumber]; dup {
			return fmt.Errorf("%w: jersey=%d players=%s,%s", ErrJerseyDuplicated, *m.JerseyNumber, other, m.PlayerID)
		}
		seen[*m.JerseyNumber] = m.PlayerID
	}
	return nil
}

// ValidatePlayersNotRostered enforces single-team membership. memberships
// maps rostered player ids to their team id.
func ValidatePlayersNotRostered(playerIDs []string, memberships map[string]string) error {
	for _, id := range playerIDs {
		if teamID, ok := memberships[id]; ok {
			return fmt.Errorf("%w: player=%s team=%s", ErrAlreadyRostered, id, teamID)
		}
	}
	return nil
}

// ValidatePlayersActive rejects any player whose account is missing or not
// active. Only active players may hold a roster spot.
func ValidatePlayersActive(playerIDs []string, statuses map[string]user.Status) error {
	for _, id := range playerIDs {
		status, ok := statuses[id]
		if !ok {
			return fmt.Errorf("%w: player=%s no longer exists", ErrPlayerNotActive, id)
		}
		if status != user.StatusActive {
			return fmt.Errorf("%w: player=%s status=%s", ErrPlayerNotActive, id, status)
		}
	}
	return nil
}

func ValidateSportMatch(a, b sport.Sport) error {
	if a != b {
		return fmt.Errorf("%w: %s vs %s", ErrSportMismatch, a, b)
	}
	return nil
}

// ValidateTournamentWindow accepts dates in [start, end]. An end date
// without a clock component covers its whole day.
func ValidateTournamentWindow(matchDate, start, end time.Time) error {
	if matchDate.Before(start) || matchDate.After(tournament.WindowEnd(end)) {
		return fmt.Errorf("%w: date=%s window=%s..%s", ErrOutOfWindow,
			matchDate.Format(time.RFC3339), start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return nil
}

func ValidateTournamentSportMatch(teamSport, tournamentSport sport.Sport) error {
	if teamSport != tournamentSport {
		return fmt.Errorf("%w: team=%s tournament=%s", ErrSportMismatch, teamSport, tournamentSport)
	}
	return nil
}

// ValidateLastAdminGuard rejects an admin removing themselves and any change
// that would leave fewer than rules.MinActiveAdmins active admins. actorID
// may be empty for system initiated changes.
func ValidateLastAdminGuard(actorID, targetID string, activeAdminIDs []string, rules Rules) error {
	if actorID != "" && actorID == targetID {
		return fmt.Errorf("%w: admin=%s", ErrSelfDeleteForbidden, targetID)
	}

	remaining := len(activeAdminIDs)
	for _, id := range activeAdminIDs {
		if id == targetID {
			remaining--
			break
		}
	}
	if remaining < rules.MinActiveAdmins {
		return fmt.Errorf("%w: active=%d min=%d", ErrLastAdminProtected, len(activeAdminIDs), rules.MinActiveAdmins)
	}
	return nil
}

// ResolvePrimarySport decides the primary flag of an entry being added or
// updated. It returns the flag the entry must be stored with and the ids of
// other entries whose primary flag must be cleared. When no other entry is
// primary the incoming one is forced primary.
func ResolvePrimarySport(existing []playersport.Entry, incoming playersport.Entry) (bool, []string) {
	var demote []string
	otherPrimary := false
	for _, e := range existing {
		if e.ID == incoming.ID || !e.IsPrimary {
			continue
		}
		otherPrimary = true
		if incoming.IsPrimary {
			demote = append(demote, e.ID)
		}
	}
	if incoming.IsPrimary {
		return true, demote
	}
	return !otherPrimary, nil
}

// NormalizePrimaryBatch prepares a full replacement list: a sport may appear
// once, the first entry is forced primary when none is, and only the first
// primary entry keeps its flag.
func NormalizePrimaryBatch(entries []playersport.Entry) ([]playersport.Entry, error) {
	out := make([]playersport.Entry, len(entries))
	copy(out, entries)

	seen := make(map[sport.Sport]struct{}, len(out))
	primaryIdx := -1
	for i, e := range out {
		if _, dup := seen[e.Sport]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSport, e.Sport)
		}
		seen[e.Sport] = struct{}{}
		if e.IsPrimary && primaryIdx < 0 {
			primaryIdx = i
		}
	}
	if len(out) == 0 {
		return out, nil
	}
	if primaryIdx < 0 {
		primaryIdx = 0
	}
	for i := range out {
		out[i].IsPrimary = i == primaryIdx
	}
	return out, nil
}

// ValidateCoachSportEligibility accepts a coach holding teamSport in any
// entry, primary or not.
func ValidateCoachSportEligibility(coachSports []playersport.Entry, teamSport sport.Sport) error {
	if !playersport.HasSport(coachSports, teamSport) {
		return fmt.Errorf("%w: sport=%s", ErrCoachSportMismatch, teamSport)
	}
	return nil
}

func ValidateNoScheduledMatches(matchCount int) error {
	if matchCount > 0 {
		return fmt.Errorf("%w: count=%d", ErrHasScheduledMatches, matchCount)
	}
	return nil
}

func ValidateMatchDeletable(status match.Status) error {
	switch status {
	case match.StatusCompleted, match.StatusInProgress:
		return fmt.Errorf("%w: status=%s", ErrMatchNotDeletable, status)
	default:
		return nil
	}
}

// ValidateMatchSchedule runs the scheduling checks in order and stops at
// the first failure. tour is nil for friendly matches.
func ValidateMatchSchedule(home, away team.Team, tour *tournament.Tournament, matchDate time.Time) error {
	if home.ID == away.ID {
		return fmt.Errorf("%w: team=%s", ErrSameTeam, home.ID)
	}
	if err := ValidateSportMatch(home.Sport, away.Sport); err != nil {
		return err
	}
	if tour == nil {
		return nil
	}
	if err := ValidateTournamentWindow(matchDate, tour.StartDate, tour.EndDate); err != nil {
		return err
	}
	return ValidateTournamentSportMatch(home.Sport, tour.Sport)
}

// ValidateRosterAddition is the combined check for a batch insert into a
// team: capacity, then account status, then single-team membership, then
// jersey numbers.
func ValidateRosterAddition(snapshot roster.Snapshot, incoming []roster.Member) error {
	if err := ValidateTeamCapacity(snapshot.MaxPlayers, snapshot.MemberCount, len(incoming)); err != nil {
		return err
	}

	ids := make([]string, 0, len(incoming))
	for _, m := range incoming {
		ids = append(ids, m.PlayerID)
	}
	if err := ValidatePlayersActive(ids, snapshot.Statuses); err != nil {
		return err
	}
	if err := ValidatePlayersNotRostered(ids, snapshot.Memberships); err != nil {
		return err
	}
	return ValidateJerseyUniqueness(snapshot.JerseyNumbers, incoming)
}

// RequiresRosterRemoval reports whether a user moving to status must lose
// every team membership.
func RequiresRosterRemoval(status user.Status) bool {
	return status != user.StatusActive
}
