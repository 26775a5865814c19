package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/sports-league/internal/domain/user"
)

func newTestTokenManager(t *testing.T, now time.Time) *TokenManager {
	t.Helper()

	m, err := NewTokenManager("test-secret", "sports-league", time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	m.now = func() time.Time { return now }
	return m
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	m := newTestTokenManager(t, now)

	token, expiresAt, err := m.Issue(user.Principal{UserID: "user-1", Role: user.RoleCoach, Email: "coach@example.com"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %s", expiresAt)
	}

	principal, err := m.Parse(" " + token + " ")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if principal.UserID != "user-1" || principal.Role != user.RoleCoach || principal.Email != "coach@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestTokenManager_ParseRejects(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	issuer := newTestTokenManager(t, now)
	token, _, err := issuer.Issue(user.Principal{UserID: "user-1", Role: user.RolePlayer})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	t.Run("expired", func(t *testing.T) {
		later := newTestTokenManager(t, now.Add(2*time.Hour))
		_, err := later.Parse(token)
		if !errors.Is(err, jwt.ErrTokenExpired) {
			t.Fatalf("expected expired error, got %v", err)
		}
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewTokenManager("another-secret", "sports-league", time.Hour)
		if err != nil {
			t.Fatalf("new token manager: %v", err)
		}
		other.now = func() time.Time { return now }
		if _, err := other.Parse(token); !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			t.Fatalf("expected signature error, got %v", err)
		}
	})

	t.Run("other issuer", func(t *testing.T) {
		other, err := NewTokenManager("test-secret", "someone-else", time.Hour)
		if err != nil {
			t.Fatalf("new token manager: %v", err)
		}
		other.now = func() time.Time { return now }
		if _, err := other.Parse(token); !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
			t.Fatalf("expected issuer error, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := issuer.Parse("not-a-token"); err == nil {
			t.Fatalf("expected error for garbage token")
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := issuer.Parse("   "); !errors.Is(err, errTokenEmpty) {
			t.Fatalf("expected empty token error, got %v", err)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		forged, _, err := issuer.Issue(user.Principal{UserID: "user-1", Role: user.Role("root")})
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		if _, err := issuer.Parse(forged); !errors.Is(err, errClaimsBroken) {
			t.Fatalf("expected claims error, got %v", err)
		}
	})
}

func TestNewTokenManager(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenManager("  ", "", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}

	m, err := NewTokenManager("secret", "", 0)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	if m.ttl != defaultTokenTTL {
		t.Fatalf("expected default ttl, got %s", m.ttl)
	}

	if _, _, err := m.Issue(user.Principal{Role: user.RoleAdmin}); err == nil || !strings.Contains(err.Error(), "subject") {
		t.Fatalf("expected subject error, got %v", err)
	}
}
