package usecase

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	idgen "github.com/riskibarqy/sports-league/internal/platform/id"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
)

type DefaultAdmin struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// SeedService prepares the data a fresh installation needs to be usable.
type SeedService struct {
	users    user.Repository
	accounts accountFactory
	logger   *logging.Logger
}

func NewSeedService(users user.Repository, hasher PasswordHasher, idGen idgen.Generator, logger *logging.Logger) *SeedService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeedService{
		users: users,
		accounts: accountFactory{
			users:  users,
			hasher: hasher,
			idGen:  idGen,
			now:    time.Now,
		},
		logger: logger,
	}
}

// EnsureDefaultAdmin creates the bootstrap admin unless an account with the
// same email or username already exists. It reports whether it created one.
func (s *SeedService) EnsureDefaultAdmin(ctx context.Context, admin DefaultAdmin) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeedService.EnsureDefaultAdmin")
	defer span.End()

	email := normalizeEmail(admin.Email)
	if email == "" {
		return false, crerr.New("seed admin email is empty")
	}
	if _, exists, err := s.users.GetByEmail(ctx, email); err != nil {
		return false, crerr.Wrap(err, "lookup seed admin by email")
	} else if exists {
		s.logger.InfoContext(ctx, "seed admin already present", "email", email)
		return false, nil
	}
	if _, exists, err := s.users.GetByUsername(ctx, admin.Username); err != nil {
		return false, crerr.Wrap(err, "lookup seed admin by username")
	} else if exists {
		s.logger.WarnContext(ctx, "seed admin username taken by another account", "username", admin.Username)
		return false, nil
	}

	firstName := admin.FirstName
	if firstName == "" {
		firstName = "System"
	}
	lastName := admin.LastName
	if lastName == "" {
		lastName = "Admin"
	}

	created, err := s.accounts.create(ctx, CreateAccountInput{
		Username:  admin.Username,
		Email:     email,
		Password:  admin.Password,
		FirstName: firstName,
		LastName:  lastName,
	}, user.RoleAdmin, nil)
	if err != nil {
		return false, crerr.Wrapf(err, "create seed admin %q", email)
	}

	s.logger.InfoContext(ctx, "seed admin created", "user_id", created.ID, "email", created.Email)
	return true, nil
}
