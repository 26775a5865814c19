package httpapi

import (
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/match"
	"github.com/riskibarqy/sports-league/internal/domain/notification"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/registration"
	"github.com/riskibarqy/sports-league/internal/domain/roster"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	"github.com/riskibarqy/sports-league/internal/domain/venue"
	"github.com/riskibarqy/sports-league/internal/usecase"
)

type healthDTO struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Version string `json:"version,omitempty"`
}

type userDTO struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	DateOfBirth    string    `json:"date_of_birth,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type userDetailDTO struct {
	userDTO
	Teams  []string `json:"teams"`
	Sports []string `json:"sports"`
}

type playerStatsDTO struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Deleted  int `json:"deleted"`
	Total    int `json:"total"`
}

type sportEntryDTO struct {
	ID         string    `json:"id"`
	Sport      string    `json:"sport"`
	SkillLevel string    `json:"skill_level"`
	IsPrimary  bool      `json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
}

type coachDTO struct {
	userDTO
	Sports []sportEntryDTO `json:"sports"`
}

type teamDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Sport      string    `json:"sport"`
	MaxPlayers int       `json:"max_players"`
	CoachID    string    `json:"coach_id,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type teamSummaryDTO struct {
	teamDTO
	CoachName      string `json:"coach_name,omitempty"`
	CurrentPlayers int    `json:"current_players"`
}

type memberDTO struct {
	TeamID       string    `json:"team_id"`
	PlayerID     string    `json:"player_id"`
	Position     string    `json:"position,omitempty"`
	JerseyNumber *int      `json:"jersey_number,omitempty"`
	JoinedAt     time.Time `json:"joined_at"`
	Username     string    `json:"username,omitempty"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Email        string    `json:"email,omitempty"`
}

type teamDetailDTO struct {
	teamDTO
	Members []memberDTO `json:"members"`
}

type candidateDTO struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	SkillLevel string `json:"skill_level"`
	IsPrimary  bool   `json:"is_primary"`
}

type matchDTO struct {
	ID              string    `json:"id"`
	TournamentID    string    `json:"tournament_id,omitempty"`
	HomeTeamID      string    `json:"home_team_id"`
	AwayTeamID      string    `json:"away_team_id"`
	VenueID         string    `json:"venue_id"`
	MatchDate       time.Time `json:"match_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	HomeScore       *int      `json:"home_score"`
	AwayScore       *int      `json:"away_score"`
	IsFriendly      bool      `json:"is_friendly"`
	CreatedAt       time.Time `json:"created_at"`
}

type matchViewDTO struct {
	matchDTO
	HomeTeamName   string `json:"home_team_name"`
	AwayTeamName   string `json:"away_team_name"`
	VenueName      string `json:"venue_name"`
	TournamentName string `json:"tournament_name,omitempty"`
	Sport          string `json:"sport"`
}

type tournamentDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Sport       string    `json:"sport"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	EntryFee    float64   `json:"entry_fee"`
	MaxTeams    int       `json:"max_teams"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type tournamentSummaryDTO struct {
	tournamentDTO
	RegisteredTeams int `json:"registered_teams"`
}

type venueDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Capacity     int       `json:"capacity"`
	FacilityType string    `json:"facility_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type registrationDTO struct {
	ID           string    `json:"id"`
	PlayerID     string    `json:"player_id"`
	TournamentID string    `json:"tournament_id"`
	TeamID       string    `json:"team_id"`
	Fee          float64   `json:"fee"`
	CreatedAt    time.Time `json:"created_at"`
}

type notificationDTO struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type markAllReadDTO struct {
	Updated int `json:"updated"`
}

type dashboardStatsDTO struct {
	Players     playerStatsDTO `json:"players"`
	ActiveTeams int            `json:"active_teams"`
	Matches     struct {
		Scheduled  int `json:"scheduled"`
		InProgress int `json:"in_progress"`
		Completed  int `json:"completed"`
		Cancelled  int `json:"cancelled"`
		Total      int `json:"total"`
	} `json:"matches"`
	Tournaments struct {
		Upcoming  int `json:"upcoming"`
		Ongoing   int `json:"ongoing"`
		Completed int `json:"completed"`
		Cancelled int `json:"cancelled"`
		Total     int `json:"total"`
	} `json:"tournaments"`
}

type authTokenDTO struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        userDTO   `json:"user"`
}

type portalMatchDTO struct {
	matchViewDTO
	Side string `json:"side"`
}

type portalMatchesDTO struct {
	Upcoming []portalMatchDTO `json:"upcoming"`
	History  []portalMatchDTO `json:"history"`
}

type portalTeamDTO struct {
	teamDTO
	Coaching     bool   `json:"coaching"`
	Position     string `json:"position,omitempty"`
	JerseyNumber *int   `json:"jersey_number,omitempty"`
}

type portalTournamentDTO struct {
	tournamentSummaryDTO
	Registered bool `json:"registered"`
}

type recordDTO struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

type teamOverviewDTO struct {
	teamDTO
	CoachName string      `json:"coach_name,omitempty"`
	Members   []memberDTO `json:"members"`
	Record    recordDTO   `json:"record"`
}

type coachInfoDTO struct {
	userDTO
	Sports []sportEntryDTO `json:"sports"`
	Teams  []teamDTO       `json:"teams"`
}

func userToDTO(u user.User) userDTO {
	out := userDTO{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Role:           string(u.Role),
		Status:         string(u.Status),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		PhoneNumber:    u.PhoneNumber,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if u.DateOfBirth != nil {
		out.DateOfBirth = u.DateOfBirth.Format(time.DateOnly)
	}
	return out
}

func usersToDTO(items []user.User) []userDTO {
	out := make([]userDTO, 0, len(items))
	for _, u := range items {
		out = append(out, userToDTO(u))
	}
	return out
}

func userDetailsToDTO(items []user.Detail) []userDetailDTO {
	out := make([]userDetailDTO, 0, len(items))
	for _, d := range items {
		out = append(out, userDetailDTO{
			userDTO: userToDTO(d.User),
			Teams:   nonNilStrings(d.Teams),
			Sports:  nonNilStrings(d.Sports),
		})
	}
	return out
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func sportEntriesToDTO(items []playersport.Entry) []sportEntryDTO {
	out := make([]sportEntryDTO, 0, len(items))
	for _, e := range items {
		out = append(out, sportEntryToDTO(e))
	}
	return out
}

func sportEntryToDTO(e playersport.Entry) sportEntryDTO {
	return sportEntryDTO{
		ID:         e.ID,
		Sport:      e.Sport.String(),
		SkillLevel: string(e.SkillLevel),
		IsPrimary:  e.IsPrimary,
		CreatedAt:  e.CreatedAt,
	}
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:         t.ID,
		Name:       t.Name,
		Sport:      t.Sport.String(),
		MaxPlayers: t.MaxPlayers,
		CoachID:    t.CoachID,
		Status:     string(t.Status),
		CreatedAt:  t.CreatedAt,
	}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, t := range items {
		out = append(out, teamToDTO(t))
	}
	return out
}

func membersToDTO(items []roster.MemberDetail) []memberDTO {
	out := make([]memberDTO, 0, len(items))
	for _, m := range items {
		dto := memberToDTO(m.Member)
		dto.Username = m.Username
		dto.FirstName = m.FirstName
		dto.LastName = m.LastName
		dto.Email = m.Email
		out = append(out, dto)
	}
	return out
}

func memberToDTO(m roster.Member) memberDTO {
	return memberDTO{
		TeamID:       m.TeamID,
		PlayerID:     m.PlayerID,
		Position:     m.Position,
		JerseyNumber: m.JerseyNumber,
		JoinedAt:     m.JoinedAt,
	}
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:              m.ID,
		TournamentID:    m.TournamentID,
		HomeTeamID:      m.HomeTeamID,
		AwayTeamID:      m.AwayTeamID,
		VenueID:         m.VenueID,
		MatchDate:       m.MatchDate,
		DurationMinutes: m.DurationMinutes,
		Status:          string(m.Status),
		HomeScore:       m.HomeScore,
		AwayScore:       m.AwayScore,
		IsFriendly:      m.IsFriendly(),
		CreatedAt:       m.CreatedAt,
	}
}

func matchViewToDTO(v match.View) matchViewDTO {
	return matchViewDTO{
		matchDTO:       matchToDTO(v.Match),
		HomeTeamName:   v.HomeTeamName,
		AwayTeamName:   v.AwayTeamName,
		VenueName:      v.VenueName,
		TournamentName: v.TournamentName,
		Sport:          v.Sport.String(),
	}
}

func matchViewsToDTO(items []match.View) []matchViewDTO {
	out := make([]matchViewDTO, 0, len(items))
	for _, v := range items {
		out = append(out, matchViewToDTO(v))
	}
	return out
}

func tournamentToDTO(t tournament.Tournament) tournamentDTO {
	return tournamentDTO{
		ID:          t.ID,
		Name:        t.Name,
		Sport:       t.Sport.String(),
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		EntryFee:    t.EntryFee,
		MaxTeams:    t.MaxTeams,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
}

func tournamentSummaryToDTO(s tournament.Summary) tournamentSummaryDTO {
	return tournamentSummaryDTO{
		tournamentDTO:   tournamentToDTO(s.Tournament),
		RegisteredTeams: s.RegisteredTeams,
	}
}

func venueToDTO(v venue.Venue) venueDTO {
	return venueDTO{
		ID:           v.ID,
		Name:         v.Name,
		Location:     v.Location,
		Capacity:     v.Capacity,
		FacilityType: v.FacilityType,
		CreatedAt:    v.CreatedAt,
	}
}

func registrationToDTO(r registration.Registration) registrationDTO {
	return registrationDTO{
		ID:           r.ID,
		PlayerID:     r.PlayerID,
		TournamentID: r.TournamentID,
		TeamID:       r.TeamID,
		Fee:          r.Fee,
		CreatedAt:    r.CreatedAt,
	}
}

func notificationToDTO(n notification.Notification) notificationDTO {
	return notificationDTO{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func playerStatsToDTO(s usecase.PlayerStats) playerStatsDTO {
	return playerStatsDTO{
		Active:   s.Active,
		Inactive: s.Inactive,
		Deleted:  s.Deleted,
		Total:    s.Total,
	}
}

func dashboardStatsToDTO(s usecase.DashboardStats) dashboardStatsDTO {
	var out dashboardStatsDTO
	out.Players = playerStatsToDTO(s.Players)
	out.ActiveTeams = s.ActiveTeams
	out.Matches.Scheduled = s.Matches.Scheduled
	out.Matches.InProgress = s.Matches.InProgress
	out.Matches.Completed = s.Matches.Completed
	out.Matches.Cancelled = s.Matches.Cancelled
	out.Matches.Total = s.Matches.Total
	out.Tournaments.Upcoming = s.Tournaments.Upcoming
	out.Tournaments.Ongoing = s.Tournaments.Ongoing
	out.Tournaments.Completed = s.Tournaments.Completed
	out.Tournaments.Cancelled = s.Tournaments.Cancelled
	out.Tournaments.Total = s.Tournaments.Total
	return out
}

func portalMatchesToDTO(items []usecase.PortalMatch) []portalMatchDTO {
	out := make([]portalMatchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, portalMatchDTO{matchViewDTO: matchViewToDTO(m.View), Side: string(m.Side)})
	}
	return out
}

// ackDTO answers mutations that have no resource to return.
type ackDTO struct {
	ID     string `json:"id"`
	Result string `json:"result"`
}
