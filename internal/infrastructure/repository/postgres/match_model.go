package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/match"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
)

const matchColumns = "m.id, m.tournament_id, m.home_team_id, m.away_team_id, m.venue_id, m.match_date, m.duration_minutes, m.status, m.home_score, m.away_score, m.created_at"

type matchTableModel struct {
	ID              string         `db:"id"`
	TournamentID    sql.NullString `db:"tournament_id"`
	HomeTeamID      string         `db:"home_team_id"`
	AwayTeamID      string         `db:"away_team_id"`
	VenueID         string         `db:"venue_id"`
	MatchDate       time.Time      `db:"match_date"`
	DurationMinutes int            `db:"duration_minutes"`
	Status          string         `db:"status"`
	HomeScore       sql.NullInt64  `db:"home_score"`
	AwayScore       sql.NullInt64  `db:"away_score"`
	CreatedAt       time.Time      `db:"created_at"`
}

type matchInsertModel struct {
	ID              string    `db:"id"`
	TournamentID    *string   `db:"tournament_id"`
	HomeTeamID      string    `db:"home_team_id"`
	AwayTeamID      string    `db:"away_team_id"`
	VenueID         string    `db:"venue_id"`
	MatchDate       time.Time `db:"match_date"`
	DurationMinutes int       `db:"duration_minutes"`
	Status          string    `db:"status"`
	HomeScore       *int      `db:"home_score"`
	AwayScore       *int      `db:"away_score"`
	CreatedAt       time.Time `db:"created_at"`
}

type matchViewModel struct {
	matchTableModel
	HomeTeamName   string         `db:"home_team_name"`
	AwayTeamName   string         `db:"away_team_name"`
	VenueName      string         `db:"venue_name"`
	TournamentName sql.NullString `db:"tournament_name"`
	Sport          string         `db:"sport"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:              m.ID,
		TournamentID:    nullStringValue(m.TournamentID),
		HomeTeamID:      m.HomeTeamID,
		AwayTeamID:      m.AwayTeamID,
		VenueID:         m.VenueID,
		MatchDate:       m.MatchDate,
		DurationMinutes: m.DurationMinutes,
		Status:          match.Status(m.Status),
		HomeScore:       nullIntPtr(m.HomeScore),
		AwayScore:       nullIntPtr(m.AwayScore),
		CreatedAt:       m.CreatedAt,
	}
}

func (m matchViewModel) toDomain() match.View {
	return match.View{
		Match:          m.matchTableModel.toDomain(),
		HomeTeamName:   m.HomeTeamName,
		AwayTeamName:   m.AwayTeamName,
		VenueName:      m.VenueName,
		TournamentName: nullStringValue(m.TournamentName),
		Sport:          sport.Sport(m.Sport),
	}
}

func toMatchInsertModel(m match.Match) matchInsertModel {
	return matchInsertModel{
		ID:              m.ID,
		TournamentID:    nullableString(m.TournamentID),
		HomeTeamID:      m.HomeTeamID,
		AwayTeamID:      m.AwayTeamID,
		VenueID:         m.VenueID,
		MatchDate:       m.MatchDate,
		DurationMinutes: m.DurationMinutes,
		Status:          string(m.Status),
		HomeScore:       m.HomeScore,
		AwayScore:       m.AwayScore,
		CreatedAt:       m.CreatedAt,
	}
}
