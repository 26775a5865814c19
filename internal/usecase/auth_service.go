package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	idgen "github.com/riskibarqy/sports-league/internal/platform/id"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
)

// TokenIssuer signs and parses access tokens.
type TokenIssuer interface {
	Issue(principal user.Principal) (string, time.Time, error)
	Parse(token string) (user.Principal, error)
}

type LoginInput struct {
	// Identifier is an email address or a username.
	Identifier string
	Password   string
}

type AuthToken struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        user.User
}

type AuthService struct {
	users    user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	accounts accountFactory
	idGen    idgen.Generator
	logger   *logging.Logger
}

func NewAuthService(
	users user.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	idGen idgen.Generator,
	phoneRegion string,
	logger *logging.Logger,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		accounts: accountFactory{
			users:       users,
			hasher:      hasher,
			idGen:       idGen,
			phoneRegion: phoneRegion,
			now:         time.Now,
		},
		idGen:  idGen,
		logger: logger,
	}
}

// Register creates an active player account. Sport entries are optional.
func (s *AuthService) Register(ctx context.Context, input CreateAccountInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	var entries []playersport.Entry
	if len(input.Sports) > 0 {
		parsed, err := parseSportInputs(input.Sports, s.idGen, league.NormalizePrimaryBatch)
		if err != nil {
			return user.User{}, err
		}
		entries = parsed
	}

	player, err := s.accounts.create(ctx, input, user.RolePlayer, entries)
	if err != nil {
		return user.User{}, err
	}

	s.logger.InfoContext(ctx, "player registered", "user_id", player.ID, "sports", len(entries))
	return player, nil
}

// Login checks the password of an active account and issues a token.
// Unknown accounts and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthToken, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Password == "" {
		return AuthToken{}, fmt.Errorf("%w: identifier and password are required", ErrInvalidInput)
	}

	var (
		account user.User
		exists  bool
		err     error
	)
	if strings.Contains(identifier, "@") {
		account, exists, err = s.users.GetByEmail(ctx, normalizeEmail(identifier))
	} else {
		account, exists, err = s.users.GetByUsername(ctx, identifier)
	}
	if err != nil {
		return AuthToken{}, fmt.Errorf("get account: %w", err)
	}
	if !exists {
		return AuthToken{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := s.hasher.Compare(account.PasswordHash, input.Password); err != nil {
		s.logger.WarnContext(ctx, "login rejected", "user_id", account.ID, "reason", "password mismatch")
		return AuthToken{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if !account.IsActive() {
		s.logger.WarnContext(ctx, "login rejected", "user_id", account.ID, "reason", "account "+string(account.Status))
		return AuthToken{}, fmt.Errorf("%w: account is %s", ErrUnauthorized, account.Status)
	}

	token, expiresAt, err := s.tokens.Issue(user.Principal{UserID: account.ID, Role: account.Role, Email: account.Email})
	if err != nil {
		return AuthToken{}, fmt.Errorf("issue access token: %w", err)
	}

	s.logger.InfoContext(ctx, "login succeeded", "user_id", account.ID, "role", account.Role)
	return AuthToken{AccessToken: token, TokenType: "Bearer", ExpiresAt: expiresAt, User: account}, nil
}

// VerifyAccessToken resolves a bearer token to the principal stored for it.
// The stored role wins over the role claim in the token.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifyAccessToken")
	defer span.End()

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	account, exists, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get account: %w", err)
	}
	if !exists || !account.IsActive() {
		return user.Principal{}, fmt.Errorf("%w: account is not active", ErrUnauthorized)
	}
	return user.Principal{UserID: account.ID, Role: account.Role, Email: account.Email}, nil
}
