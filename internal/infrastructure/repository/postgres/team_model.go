package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/roster"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/domain/user"
)

const teamColumns = "t.id, t.name, t.sport, t.max_players, t.coach_id, t.status, t.created_at"

type teamTableModel struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	Sport      string         `db:"sport"`
	MaxPlayers int            `db:"max_players"`
	CoachID    sql.NullString `db:"coach_id"`
	Status     string         `db:"status"`
	CreatedAt  time.Time      `db:"created_at"`
}

type teamInsertModel struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	Sport      string    `db:"sport"`
	MaxPlayers int       `db:"max_players"`
	CoachID    *string   `db:"coach_id"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

type teamSummaryModel struct {
	teamTableModel
	CoachFirstName sql.NullString `db:"coach_first_name"`
	CoachLastName  sql.NullString `db:"coach_last_name"`
	CurrentPlayers int            `db:"current_players"`
}

type teamMemberModel struct {
	TeamID       string        `db:"team_id"`
	PlayerID     string        `db:"player_id"`
	Position     string        `db:"position"`
	JerseyNumber sql.NullInt64 `db:"jersey_number"`
	JoinedAt     time.Time     `db:"joined_at"`
}

type teamMemberInsertModel struct {
	TeamID       string    `db:"team_id"`
	PlayerID     string    `db:"player_id"`
	Position     string    `db:"position"`
	JerseyNumber *int      `db:"jersey_number"`
	JoinedAt     time.Time `db:"joined_at"`
}

type teamMemberDetailModel struct {
	teamMemberModel
	Username  string `db:"username"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
}

type candidateModel struct {
	UserID     string `db:"user_id"`
	Username   string `db:"username"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	Email      string `db:"email"`
	SkillLevel string `db:"skill_level"`
	IsPrimary  bool   `db:"is_primary"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:         m.ID,
		Name:       m.Name,
		Sport:      sport.Sport(m.Sport),
		MaxPlayers: m.MaxPlayers,
		CoachID:    nullStringValue(m.CoachID),
		Status:     team.Status(m.Status),
		CreatedAt:  m.CreatedAt,
	}
}

func (m teamSummaryModel) toDomain() team.Summary {
	out := team.Summary{Team: m.teamTableModel.toDomain(), CurrentPlayers: m.CurrentPlayers}
	if m.CoachFirstName.Valid {
		coach := user.User{FirstName: m.CoachFirstName.String, LastName: nullStringValue(m.CoachLastName)}
		out.CoachName = coach.FullName()
	}
	return out
}

func toTeamInsertModel(t team.Team) teamInsertModel {
	return teamInsertModel{
		ID:         t.ID,
		Name:       t.Name,
		Sport:      string(t.Sport),
		MaxPlayers: t.MaxPlayers,
		CoachID:    nullableString(t.CoachID),
		Status:     string(t.Status),
		CreatedAt:  t.CreatedAt,
	}
}

func (m teamMemberModel) toDomain() roster.Member {
	return roster.Member{
		TeamID:       m.TeamID,
		PlayerID:     m.PlayerID,
		Position:     m.Position,
		JerseyNumber: nullIntPtr(m.JerseyNumber),
		JoinedAt:     m.JoinedAt,
	}
}

func toTeamMemberInsertModel(m roster.Member) teamMemberInsertModel {
	return teamMemberInsertModel{
		TeamID:       m.TeamID,
		PlayerID:     m.PlayerID,
		Position:     m.Position,
		JerseyNumber: m.JerseyNumber,
		JoinedAt:     m.JoinedAt,
	}
}

func (m candidateModel) toDomain() roster.Candidate {
	return roster.Candidate{
		UserID:     m.UserID,
		Username:   m.Username,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      m.Email,
		SkillLevel: playersport.SkillLevel(m.SkillLevel),
		IsPrimary:  m.IsPrimary,
	}
}
