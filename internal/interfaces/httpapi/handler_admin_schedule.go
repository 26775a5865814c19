package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/sports-league/internal/usecase"
)

type scheduleMatchRequest struct {
	TournamentID    string `json:"tournament_id" validate:"omitempty"`
	HomeTeamID      string `json:"home_team_id" validate:"required"`
	AwayTeamID      string `json:"away_team_id" validate:"required"`
	VenueID         string `json:"venue_id" validate:"required"`
	MatchDate       string `json:"match_date" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,min=30,max=180"`
}

type recordScoreRequest struct {
	HomeScore *int `json:"home_score" validate:"required,min=0"`
	AwayScore *int `json:"away_score" validate:"required,min=0"`
}

type createTournamentRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Sport       string   `json:"sport" validate:"required"`
	StartDate   string   `json:"start_date" validate:"required"`
	EndDate     string   `json:"end_date" validate:"required"`
	EntryFee    *float64 `json:"entry_fee" validate:"omitempty,min=0"`
	MaxTeams    int      `json:"max_teams" validate:"required,min=2"`
	Description string   `json:"description" validate:"omitempty,max=1000"`
}

type createVenueRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Location     string `json:"location" validate:"required,min=2,max=200"`
	Capacity     int    `json:"capacity" validate:"required,min=1"`
	FacilityType string `json:"facility_type" validate:"omitempty,max=50"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	views, err := h.matchService.ListMatches(ctx, status)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "status", status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchViewsToDTO(views))
}

func (h *Handler) ListFriendlyMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFriendlyMatches")
	defer span.End()

	views, err := h.matchService.ListFriendlyMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list friendly matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchViewsToDTO(views))
}

func (h *Handler) ScheduleMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScheduleMatch")
	defer span.End()

	var req scheduleMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	matchDate, err := parseDate("match_date", req.MatchDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchService.ScheduleMatch(ctx, usecase.ScheduleMatchInput{
		TournamentID:    req.TournamentID,
		HomeTeamID:      req.HomeTeamID,
		AwayTeamID:      req.AwayTeamID,
		VenueID:         req.VenueID,
		MatchDate:       matchDate,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "schedule match failed",
			"home_team_id", req.HomeTeamID,
			"away_team_id", req.AwayTeamID,
			"tournament_id", req.TournamentID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) RecordScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordScore")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req recordScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.matchService.RecordScore(ctx, matchID, *req.HomeScore, *req.AwayScore)
	if err != nil {
		h.logger.WarnContext(ctx, "record score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	if err := h.matchService.DeleteMatch(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: matchID, Result: "removed"})
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	summaries, err := h.tournamentService.ListTournaments(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tournamentSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, tournamentSummaryToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	var req createTournamentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endDate, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var entryFee float64
	if req.EntryFee != nil {
		entryFee = *req.EntryFee
	}

	created, err := h.tournamentService.CreateTournament(ctx, usecase.CreateTournamentInput{
		Name:        req.Name,
		Sport:       req.Sport,
		StartDate:   startDate,
		EndDate:     endDate,
		EntryFee:    entryFee,
		MaxTeams:    req.MaxTeams,
		Description: req.Description,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create tournament failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(created))
}

func (h *Handler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTournament")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	if err := h.tournamentService.DeleteTournament(ctx, tournamentID); err != nil {
		h.logger.WarnContext(ctx, "delete tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: tournamentID, Result: "removed"})
}

func (h *Handler) ListTournamentMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournamentMatches")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	views, err := h.matchService.ListTournamentMatches(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournament matches failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchViewsToDTO(views))
}

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVenues")
	defer span.End()

	venues, err := h.venueService.ListVenues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list venues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]venueDTO, 0, len(venues))
	for _, v := range venues {
		items = append(items, venueToDTO(v))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateVenue")
	defer span.End()

	var req createVenueRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.venueService.CreateVenue(ctx, usecase.CreateVenueInput{
		Name:         req.Name,
		Location:     req.Location,
		Capacity:     req.Capacity,
		FacilityType: req.FacilityType,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create venue failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, venueToDTO(created))
}

func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboardStats")
	defer span.End()

	stats, err := h.dashboardService.Stats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardStatsToDTO(stats))
}
