package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/sports-league/internal/config"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
	"github.com/riskibarqy/sports-league/internal/usecase"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                   config.EnvDev,
		ServiceName:              "sports-league-api",
		ServiceVersion:           "test",
		HTTPAddr:                 ":0",
		StorageDriver:            config.StorageMemory,
		CacheEnabled:             true,
		CacheTTL:                 time.Minute,
		CORSAllowedOrigins:       []string{"*"},
		JWTSecret:                "app-test-secret",
		JWTIssuer:                "sports-league",
		JWTTTL:                   time.Hour,
		BcryptCost:               4,
		PhoneDefaultRegion:       "US",
		TournamentStatusInterval: time.Hour,
	}
}

func TestNew_MemoryStorage(t *testing.T) {
	a, err := New(t.Context(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	if a.Server == nil || a.Seed == nil || a.Tournaments == nil {
		t.Fatalf("expected server and background services to be wired")
	}

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sports-league-api") {
		t.Fatalf("expected service name in health body, got %s", rec.Body.String())
	}
}

func TestNew_SeedAdminCanLogin(t *testing.T) {
	a, err := New(t.Context(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	created, err := a.Seed.EnsureDefaultAdmin(t.Context(), usecase.DefaultAdmin{
		Email:    "admin@sportsleague.local",
		Username: "admin",
		Password: "admin12345",
	})
	if err != nil || !created {
		t.Fatalf("seed admin: created=%v err=%v", created, err)
	}

	body := strings.NewReader(`{"identifier":"admin","password":"admin12345"}`)
	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected login 200, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(t.Context(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}
