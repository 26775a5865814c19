package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/sport"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	idgen "github.com/riskibarqy/sports-league/internal/platform/id"
	"github.com/riskibarqy/sports-league/internal/platform/phone"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

const minPasswordLength = 8

// CreateAccountInput is shared by admin, coach and self registration.
type CreateAccountInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	DateOfBirth *time.Time
	Sports      []SportInput
}

type SportInput struct {
	Sport      string
	SkillLevel string
	IsPrimary  bool
}

type accountFactory struct {
	users       user.Repository
	hasher      PasswordHasher
	idGen       idgen.Generator
	phoneRegion string
	now         func() time.Time
}

func (f accountFactory) create(ctx context.Context, input CreateAccountInput, role user.Role, sports []playersport.Entry) (user.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = normalizeEmail(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if err := validateUsername(input.Username); err != nil {
		return user.User{}, err
	}
	if err := validateEmail(input.Email); err != nil {
		return user.User{}, err
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return user.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if err := validatePersonName("first name", input.FirstName); err != nil {
		return user.User{}, err
	}
	if err := validatePersonName("last name", input.LastName); err != nil {
		return user.User{}, err
	}
	phoneNumber, err := normalizePhone(input.PhoneNumber, f.phoneRegion)
	if err != nil {
		return user.User{}, err
	}

	if _, exists, err := f.users.GetByEmail(ctx, input.Email); err != nil {
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	} else if exists {
		return user.User{}, fmt.Errorf("%w: email %s is already registered", ErrConflict, input.Email)
	}
	if _, exists, err := f.users.GetByUsername(ctx, input.Username); err != nil {
		return user.User{}, fmt.Errorf("get user by username: %w", err)
	} else if exists {
		return user.User{}, fmt.Errorf("%w: username %s is already taken", ErrConflict, input.Username)
	}

	hash, err := f.hasher.Hash(input.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}
	userID, err := f.idGen.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	now := f.now().UTC()
	u := user.User{
		ID:           userID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       user.StatusActive,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  phoneNumber,
		DateOfBirth:  input.DateOfBirth,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i := range sports {
		sports[i].UserID = userID
		if sports[i].ID == "" {
			entryID, err := f.idGen.NewID()
			if err != nil {
				return user.User{}, fmt.Errorf("generate sport entry id: %w", err)
			}
			sports[i].ID = entryID
		}
		sports[i].CreatedAt = now
	}

	if err := f.users.Create(ctx, u, sports); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// parseSportInputs converts request entries to sport rows, normalizing the
// primary flag across the list.
func parseSportInputs(inputs []SportInput, idGen idgen.Generator, ruleset func([]playersport.Entry) ([]playersport.Entry, error)) ([]playersport.Entry, error) {
	entries := make([]playersport.Entry, 0, len(inputs))
	for _, in := range inputs {
		entry, err := parseSportInput(in)
		if err != nil {
			return nil, err
		}
		entryID, err := idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate sport entry id: %w", err)
		}
		entry.ID = entryID
		entries = append(entries, entry)
	}
	return ruleset(entries)
}

func parseSportInput(in SportInput) (playersport.Entry, error) {
	s, ok := sport.Parse(in.Sport)
	if !ok {
		return playersport.Entry{}, fmt.Errorf("%w: unsupported sport %q", ErrInvalidInput, in.Sport)
	}
	skill, ok := playersport.ParseSkillLevel(in.SkillLevel)
	if !ok {
		return playersport.Entry{}, fmt.Errorf("%w: unsupported skill level %q", ErrInvalidInput, in.SkillLevel)
	}
	return playersport.Entry{Sport: s, SkillLevel: skill, IsPrimary: in.IsPrimary}, nil
}

func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: email %q is not valid", ErrInvalidInput, email)
	}
	return nil
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < 3 || n > 30 {
		return fmt.Errorf("%w: username must be 3-30 characters", ErrInvalidInput)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username may only contain letters, digits, dot, dash and underscore", ErrInvalidInput)
	}
	return nil
}

func validatePersonName(field, v string) error {
	n := utf8.RuneCountInString(v)
	if n < 2 || n > 50 {
		return fmt.Errorf("%w: %s must be 2-50 characters", ErrInvalidInput, field)
	}
	return nil
}

func validateLength(field, v string, min, max int) error {
	n := utf8.RuneCountInString(v)
	if n < min || n > max {
		return fmt.Errorf("%w: %s must be %d-%d characters", ErrInvalidInput, field, min, max)
	}
	return nil
}

func normalizePhone(raw, region string) (string, error) {
	out, err := phone.Normalize(raw, region)
	if err != nil {
		if errors.Is(err, phone.ErrInvalid) {
			return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return "", fmt.Errorf("normalize phone: %w", err)
	}
	return out, nil
}

func requireID(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	return v, nil
}
