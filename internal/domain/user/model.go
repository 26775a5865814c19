package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
	RoleCoach  Role = "coach"
)

func ParseRole(v string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(v))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RolePlayer:
		return RolePlayer, true
	case RoleCoach:
		return RoleCoach, true
	default:
		return "", false
	}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

var AllStatuses = []Status{StatusActive, StatusInactive, StatusDeleted}

func ParseStatus(v string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(v))) {
	case StatusActive:
		return StatusActive, true
	case StatusInactive:
		return StatusInactive, true
	case StatusDeleted:
		return StatusDeleted, true
	default:
		return "", false
	}
}

// User is an account of any role.
type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	Role           Role
	Status         Status
	FirstName      string
	LastName       string
	PhoneNumber    string
	DateOfBirth    *time.Time
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) IsActive() bool {
	return u.Status == StatusActive
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID string
	Role   Role
	Email  string
}

// DeleteMode selects between a status transition and a cascading removal.
type DeleteMode string

const (
	DeleteSoft      DeleteMode = "soft"
	DeletePermanent DeleteMode = "permanent"
)

// ParseDeleteMode defaults an empty value to soft.
func ParseDeleteMode(v string) (DeleteMode, bool) {
	switch DeleteMode(strings.ToLower(strings.TrimSpace(v))) {
	case "", DeleteSoft:
		return DeleteSoft, true
	case DeletePermanent:
		return DeletePermanent, true
	default:
		return "", false
	}
}

type Filter struct {
	Role   Role
	Status Status
}

// Profile carries the self-editable account fields.
type Profile struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	DateOfBirth *time.Time
}

// Detail is an account with the names of the teams it plays for or coaches
// and the sports it holds.
type Detail struct {
	User
	Teams  []string
	Sports []string
}

// AdminChange describes a deactivation or removal of an admin account.
type AdminChange struct {
	TargetID  string
	Status    Status
	Permanent bool
}
