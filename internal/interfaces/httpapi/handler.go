package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
	"github.com/riskibarqy/sports-league/internal/usecase"
)

// ServiceInfo identifies the running build on the health endpoint.
type ServiceInfo struct {
	Name    string
	Version string
}

type Handler struct {
	authService         *usecase.AuthService
	userService         *usecase.UserService
	teamService         *usecase.TeamService
	matchService        *usecase.MatchService
	tournamentService   *usecase.TournamentService
	venueService        *usecase.VenueService
	portalService       *usecase.PortalService
	notificationService *usecase.NotificationService
	dashboardService    *usecase.DashboardService
	info                ServiceInfo
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	userService *usecase.UserService,
	teamService *usecase.TeamService,
	matchService *usecase.MatchService,
	tournamentService *usecase.TournamentService,
	venueService *usecase.VenueService,
	portalService *usecase.PortalService,
	notificationService *usecase.NotificationService,
	dashboardService *usecase.DashboardService,
	info ServiceInfo,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:         authService,
		userService:         userService,
		teamService:         teamService,
		matchService:        matchService,
		tournamentService:   tournamentService,
		venueService:        venueService,
		portalService:       portalService,
		notificationService: notificationService,
		dashboardService:    dashboardService,
		info:                info,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, healthDTO{
		Status:  "ok",
		Service: h.info.Name,
		Version: h.info.Version,
	})
}

// decodeRequest reads a JSON body into payload and validates its struct
// tags. An empty body decodes to the zero value.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	if r.Body != nil && r.Body != http.NoBody {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(payload); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
		}
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(field, raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s must be an RFC 3339 timestamp or YYYY-MM-DD date", usecase.ErrInvalidInput, field)
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
