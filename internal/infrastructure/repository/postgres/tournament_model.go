package postgres

import (
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/registration"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/venue"
)

const tournamentColumns = "t.id, t.name, t.sport, t.start_date, t.end_date, t.entry_fee, t.max_teams, t.description, t.status, t.created_at"

type tournamentTableModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Sport       string    `db:"sport"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	EntryFee    float64   `db:"entry_fee"`
	MaxTeams    int       `db:"max_teams"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

type tournamentSummaryModel struct {
	tournamentTableModel
	RegisteredTeams int `db:"registered_teams"`
}

type venueTableModel struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Location     string    `db:"location"`
	Capacity     int       `db:"capacity"`
	FacilityType string    `db:"facility_type"`
	CreatedAt    time.Time `db:"created_at"`
}

type registrationTableModel struct {
	ID           string    `db:"id"`
	PlayerID     string    `db:"player_id"`
	TournamentID string    `db:"tournament_id"`
	TeamID       string    `db:"team_id"`
	Fee          float64   `db:"fee"`
	CreatedAt    time.Time `db:"created_at"`
}

func (m tournamentTableModel) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:          m.ID,
		Name:        m.Name,
		Sport:       sport.Sport(m.Sport),
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		EntryFee:    m.EntryFee,
		MaxTeams:    m.MaxTeams,
		Description: m.Description,
		Status:      tournament.Status(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

func toTournamentModel(t tournament.Tournament) tournamentTableModel {
	return tournamentTableModel{
		ID:          t.ID,
		Name:        t.Name,
		Sport:       string(t.Sport),
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		EntryFee:    t.EntryFee,
		MaxTeams:    t.MaxTeams,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
}

func (m venueTableModel) toDomain() venue.Venue {
	return venue.Venue{
		ID:           m.ID,
		Name:         m.Name,
		Location:     m.Location,
		Capacity:     m.Capacity,
		FacilityType: m.FacilityType,
		CreatedAt:    m.CreatedAt,
	}
}

func toVenueModel(v venue.Venue) venueTableModel {
	return venueTableModel{
		ID:           v.ID,
		Name:         v.Name,
		Location:     v.Location,
		Capacity:     v.Capacity,
		FacilityType: v.FacilityType,
		CreatedAt:    v.CreatedAt,
	}
}

func (m registrationTableModel) toDomain() registration.Registration {
	return registration.Registration{
		ID:           m.ID,
		PlayerID:     m.PlayerID,
		TournamentID: m.TournamentID,
		TeamID:       m.TeamID,
		Fee:          m.Fee,
		CreatedAt:    m.CreatedAt,
	}
}

func toRegistrationModel(r registration.Registration) registrationTableModel {
	return registrationTableModel{
		ID:           r.ID,
		PlayerID:     r.PlayerID,
		TournamentID: r.TournamentID,
		TeamID:       r.TeamID,
		Fee:          r.Fee,
		CreatedAt:    r.CreatedAt,
	}
}
