package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/infrastructure/auth"
	"github.com/riskibarqy/sports-league/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/sports-league/internal/platform/id"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
	"github.com/riskibarqy/sports-league/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

type routerEnv struct {
	router  http.Handler
	authSvc *usecase.AuthService
	userSvc *usecase.UserService
}

func newRouterEnv(t *testing.T, cfg RouterConfig) *routerEnv {
	t.Helper()

	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	sports := memory.NewPlayerSportRepository(store)
	teams := memory.NewTeamRepository(store)
	rosters := memory.NewRosterRepository(store)
	matches := memory.NewMatchRepository(store)
	tournaments := memory.NewTournamentRepository(store)
	venues := memory.NewVenueRepository(store)
	registrations := memory.NewRegistrationRepository(store)
	notifications := memory.NewNotificationStore(store)

	ids := idgen.NewUUIDGenerator()
	logger := logging.NewNop()
	rules := league.DefaultRules()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens, err := auth.NewTokenManager("router-test-secret", "sports-league-test", time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}

	notificationSvc := usecase.NewNotificationService(notifications, ids, logger)
	authSvc := usecase.NewAuthService(users, hasher, tokens, ids, "US", logger)
	userSvc := usecase.NewUserService(users, sports, hasher, rules, ids, "US", logger)
	handler := NewHandler(
		authSvc,
		userSvc,
		usecase.NewTeamService(teams, rosters, users, sports, notificationSvc, rules, ids, logger),
		usecase.NewMatchService(matches, teams, tournaments, venues, rules, ids, logger),
		usecase.NewTournamentService(tournaments, ids, logger),
		usecase.NewVenueService(venues, ids, logger),
		usecase.NewPortalService(users, sports, teams, rosters, matches, tournaments, registrations, notificationSvc, ids, "US", logger),
		notificationSvc,
		usecase.NewDashboardService(users, teams, matches, tournaments),
		ServiceInfo{Name: "sports-league", Version: "test"},
		logger,
	)

	return &routerEnv{
		router:  NewRouter(handler, authSvc, logger, cfg),
		authSvc: authSvc,
		userSvc: userSvc,
	}
}

func (e *routerEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.10:40000"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *routerEnv) login(t *testing.T, identifier string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/v1/auth/login", "", fmt.Sprintf(`{"identifier":%q,"password":"secret-password"}`, identifier))
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", identifier, rec.Code, rec.Body.String())
	}
	var out struct {
		Data authTokenDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return out.Data.AccessToken
}

func (e *routerEnv) adminToken(t *testing.T) string {
	t.Helper()

	_, err := e.userSvc.CreateAdmin(t.Context(), usecase.CreateAccountInput{
		Username:  "root",
		Email:     "root@example.com",
		Password:  "secret-password",
		FirstName: "League",
		LastName:  "Admin",
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return e.login(t, "root@example.com")
}

func (e *routerEnv) player(t *testing.T, username string) string {
	t.Helper()

	created, err := e.authSvc.Register(t.Context(), usecase.CreateAccountInput{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "secret-password",
		FirstName: "First",
		LastName:  "Last",
		Sports:    []usecase.SportInput{{Sport: "football", SkillLevel: "intermediate", IsPrimary: true}},
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return created.ID
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out struct {
		Data T `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode data: %v (body %s)", err, rec.Body.String())
	}
	return out.Data
}

func TestRouter_Healthz(t *testing.T) {
	env := newRouterEnv(t, RouterConfig{})

	rec := env.do(t, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	health := decodeData[healthDTO](t, rec)
	if health.Status != "ok" || health.Service != "sports-league" || health.Version != "test" {
		t.Fatalf("unexpected health payload: %+v", health)
	}
}

func TestRouter_RegisterLoginAndPortalProfile(t *testing.T) {
	env := newRouterEnv(t, RouterConfig{})

	rec := env.do(t, http.MethodPost, "/v1/auth/register", "", `{
		"username": "striker9",
		"email": "Striker9@Example.com",
		"password": "secret-password",
		"first_name": "Sam",
		"last_name": "Kerr",
		"date_of_birth": "1998-04-21",
		"sports": [{"sport": "Football", "skill_level": "advanced", "is_primary": true}]
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d body %s", rec.Code, rec.Body.String())
	}
	registered := decodeData[userDTO](t, rec)
	if registered.Role != "player" || registered.Status != "active" {
		t.Fatalf("unexpected registered user: %+v", registered)
	}

	token := env.login(t, "striker9")

	rec = env.do(t, http.MethodGet, "/v1/portal/profile", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/v1/admin/teams", token, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("player on admin route: expected 403, got %d", rec.Code)
	}
}

func TestRouter_LoginRejectsBadPassword(t *testing.T) {
	env := newRouterEnv(t, RouterConfig{})
	env.player(t, "keeper1")

	rec := env.do(t, http.MethodPost, "/v1/auth/login", "", `{"identifier":"keeper1","password":"wrong-password"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	env := newRouterEnv(t, RouterConfig{})

	rec := env.do(t, http.MethodGet, "/v1/admin/dashboard/stats", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_RejectsUnknownFields(t *testing.T) {
	env := newRouterEnv(t, RouterConfig{})
	token := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/v1/admin/venues", token, `{"name":"North Field","location":"1 North Rd","capacity":200,"owner":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_TeamCapacityEnforcedAcrossBatch(t *testing.T) {
	env := newRouterEnv(t, RouterConfig{})
	token := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/v1/admin/teams", token, `{"name":"Red Lions","sport":"football","max_players":5}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create team: expected 201, got %d body %s", rec.Code, rec.Body.String())
	}
	created := decodeData[teamDTO](t, rec)

	items := make([]string, 0, 6)
	for i := 1; i <= 6; i++ {
		id := env.player(t, fmt.Sprintf("lion%02d", i))
		items = append(items, fmt.Sprintf(`{"player_id":%q,"jersey_number":%d}`, id, i))
	}

	path := "/v1/admin/teams/" + created.ID + "/players/add-batch"
	rec = env.do(t, http.MethodPost, path, token, `{"players":[`+strings.Join(items, ",")+`]}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("oversized batch: expected 409, got %d body %s", rec.Code, rec.Body.String())
	}
	if got := errorReason(t, decodeEnvelope(t, rec)); got != "capacityExceeded" {
		t.Fatalf("expected capacityExceeded, got %q", got)
	}

	rec = env.do(t, http.MethodPost, path, token, `{"players":[`+strings.Join(items[:5], ",")+`]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("full batch: expected 201, got %d body %s", rec.Code, rec.Body.String())
	}
	if members := decodeData[[]memberDTO](t, rec); len(members) != 5 {
		t.Fatalf("expected 5 members, got %d", len(members))
	}

	rec = env.do(t, http.MethodGet, "/v1/admin/teams/"+created.ID+"/players", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list roster: expected 200, got %d", rec.Code)
	}
}

func TestRouter_AdminCannotDeleteSelf(t *testing.T) {
	env := newRouterEnv(t, RouterConfig{})
	token := env.adminToken(t)

	principal, err := env.authSvc.VerifyAccessToken(t.Context(), token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}

	rec := env.do(t, http.MethodDelete, "/v1/admin/admins/"+principal.UserID, token, "")
	if rec.Code != http.StatusForbidden && rec.Code != http.StatusConflict {
		t.Fatalf("expected self delete to be refused, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_SwaggerRoutesFollowConfig(t *testing.T) {
	disabled := newRouterEnv(t, RouterConfig{})
	if rec := disabled.do(t, http.MethodGet, "/openapi.yaml", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with swagger disabled, got %d", rec.Code)
	}

	enabled := newRouterEnv(t, RouterConfig{SwaggerEnabled: true})
	rec := enabled.do(t, http.MethodGet, "/openapi.yaml", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with swagger enabled, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/v1/admin/teams") {
		t.Fatalf("expected openapi document to describe admin routes")
	}
}

func TestRouter_RateLimited(t *testing.T) {
	env := newRouterEnv(t, RouterConfig{RateLimiter: NewRateLimiter(2, time.Minute)})

	for i := 0; i < 2; i++ {
		if rec := env.do(t, http.MethodGet, "/healthz", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	if rec := env.do(t, http.MethodGet, "/healthz", "", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}
