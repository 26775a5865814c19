package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
	"github.com/riskibarqy/sports-league/internal/domain/user"
)

const userColumns = "u.id, u.username, u.email, u.password_hash, u.role, u.status, u.first_name, u.last_name, u.phone_number, u.date_of_birth, u.profile_picture, u.created_at, u.updated_at"

type userTableModel struct {
	ID             string       `db:"id"`
	Username       string       `db:"username"`
	Email          string       `db:"email"`
	PasswordHash   string       `db:"password_hash"`
	Role           string       `db:"role"`
	Status         string       `db:"status"`
	FirstName      string       `db:"first_name"`
	LastName       string       `db:"last_name"`
	PhoneNumber    string       `db:"phone_number"`
	DateOfBirth    sql.NullTime `db:"date_of_birth"`
	ProfilePicture string       `db:"profile_picture"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

type userInsertModel struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	Status       string     `db:"status"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	PhoneNumber  string     `db:"phone_number"`
	DateOfBirth  *time.Time `db:"date_of_birth"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

type userDetailModel struct {
	userTableModel
	TeamNames  pq.StringArray `db:"team_names"`
	SportNames pq.StringArray `db:"sport_names"`
}

type playerSportTableModel struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Sport      string    `db:"sport"`
	SkillLevel string    `db:"skill_level"`
	IsPrimary  bool      `db:"is_primary"`
	CreatedAt  time.Time `db:"created_at"`
}

func (m userTableModel) toDomain() user.User {
	return user.User{
		ID:             m.ID,
		Username:       m.Username,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Role:           user.Role(m.Role),
		Status:         user.Status(m.Status),
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		PhoneNumber:    m.PhoneNumber,
		DateOfBirth:    nullTimePtr(m.DateOfBirth),
		ProfilePicture: m.ProfilePicture,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toUserInsertModel(u user.User) userInsertModel {
	return userInsertModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Status:       string(u.Status),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PhoneNumber:  u.PhoneNumber,
		DateOfBirth:  u.DateOfBirth,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m playerSportTableModel) toDomain() playersport.Entry {
	return playersport.Entry{
		ID:         m.ID,
		UserID:     m.UserID,
		Sport:      sport.Sport(m.Sport),
		SkillLevel: playersport.SkillLevel(m.SkillLevel),
		IsPrimary:  m.IsPrimary,
		CreatedAt:  m.CreatedAt,
	}
}

func toPlayerSportModel(e playersport.Entry) playerSportTableModel {
	return playerSportTableModel{
		ID:         e.ID,
		UserID:     e.UserID,
		Sport:      string(e.Sport),
		SkillLevel: string(e.SkillLevel),
		IsPrimary:  e.IsPrimary,
		CreatedAt:  e.CreatedAt,
	}
}
