package auth

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/sports-league/internal/domain/user"
)

const defaultTokenTTL = 24 * time.Hour

var (
	errTokenEmpty   = crerr.New("token is empty")
	errClaimsBroken = crerr.New("token claims are incomplete")
)

type claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and parses HS256 access tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret, issuer string, ttl time.Duration) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, crerr.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (m *TokenManager) Issue(principal user.Principal) (string, time.Time, error) {
	if strings.TrimSpace(principal.UserID) == "" {
		return "", time.Time{}, crerr.Wrap(errClaimsBroken, "subject is required")
	}

	issuedAt := m.now().UTC()
	expiresAt := issuedAt.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:  string(principal.Role),
		Email: principal.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, crerr.Wrap(err, "sign access token")
	}
	return signed, expiresAt, nil
}

// Parse validates signature, expiry and issuer. The returned role is the one
// at issue time; callers that need the current role reload the account.
func (m *TokenManager) Parse(token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, errTokenEmpty
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		options = append(options, jwt.WithIssuer(m.issuer))
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, options...)
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "parse access token")
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return user.Principal{}, crerr.Wrap(errClaimsBroken, "subject is missing")
	}

	role, ok := user.ParseRole(parsed.Role)
	if !ok {
		return user.Principal{}, crerr.Wrapf(errClaimsBroken, "unknown role %q", parsed.Role)
	}
	return user.Principal{UserID: parsed.Subject, Role: role, Email: parsed.Email}, nil
}
