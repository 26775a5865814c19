package httpapi

import (
	"net/http"

	"github.com/riskibarqy/sports-league/internal/usecase"
)

type registerTournamentRequest struct {
	TournamentID string `json:"tournament_id" validate:"required"`
	TeamID       string `json:"team_id" validate:"required"`
}

type updateProfileRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=2,max=50"`
	LastName    string `json:"last_name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=30"`
	DateOfBirth string `json:"date_of_birth"`
}

type updateSportRequest struct {
	SkillLevel string `json:"skill_level" validate:"required"`
	IsPrimary  bool   `json:"is_primary"`
}

func (h *Handler) PortalMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalMatches")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.portalService.MyMatches(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "portal matches failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, portalMatchesDTO{
		Upcoming: portalMatchesToDTO(matches.Upcoming),
		History:  portalMatchesToDTO(matches.History),
	})
}

func (h *Handler) PortalRegisterTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalRegisterTournament")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req registerTournamentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	reg, err := h.portalService.RegisterForTournament(ctx, principal.UserID, usecase.RegisterTournamentInput{
		TournamentID: req.TournamentID,
		TeamID:       req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "tournament registration failed",
			"user_id", principal.UserID,
			"tournament_id", req.TournamentID,
			"team_id", req.TeamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, registrationToDTO(reg))
}

func (h *Handler) PortalTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalTeams")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.portalService.MyTeams(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "portal teams failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]portalTeamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, portalTeamDTO{
			teamDTO:      teamToDTO(t.Team),
			Coaching:     t.Coaching,
			Position:     t.Position,
			JerseyNumber: t.JerseyNumber,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) PortalProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.portalService.GetProfile(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(profile))
}

func (h *Handler) PortalUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalUpdateProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req updateProfileRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	dob, err := parseOptionalDate("date_of_birth", req.DateOfBirth)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.portalService.UpdateProfile(ctx, principal.UserID, usecase.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: dob,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(updated))
}

func (h *Handler) PortalSports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalSports")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.portalService.MySports(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sportEntriesToDTO(entries))
}

func (h *Handler) PortalAddSport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalAddSport")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req sportRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.portalService.AddSport(ctx, principal.UserID, usecase.SportInput{
		Sport:      req.Sport,
		SkillLevel: req.SkillLevel,
		IsPrimary:  req.IsPrimary,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add sport failed", "user_id", principal.UserID, "sport", req.Sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sportEntryToDTO(entry))
}

func (h *Handler) PortalUpdateSport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalUpdateSport")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	entryID := r.PathValue("sportID")
	var req updateSportRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.portalService.UpdateSport(ctx, principal.UserID, entryID, req.SkillLevel, req.IsPrimary)
	if err != nil {
		h.logger.WarnContext(ctx, "update sport failed", "user_id", principal.UserID, "sport_entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sportEntryToDTO(entry))
}

func (h *Handler) PortalDeleteSport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalDeleteSport")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	entryID := r.PathValue("sportID")

	if err := h.portalService.DeleteSport(ctx, principal.UserID, entryID); err != nil {
		h.logger.WarnContext(ctx, "delete sport failed", "user_id", principal.UserID, "sport_entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: entryID, Result: "removed"})
}

func (h *Handler) PortalTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalTournaments")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tournaments, err := h.portalService.MyTournaments(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "portal tournaments failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]portalTournamentDTO, 0, len(tournaments))
	for _, t := range tournaments {
		items = append(items, portalTournamentDTO{
			tournamentSummaryDTO: tournamentSummaryToDTO(t.Summary),
			Registered:           t.Registered,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) PortalNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalNotifications")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.notificationService.List(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list notifications failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]notificationDTO, 0, len(items))
	for _, n := range items {
		out = append(out, notificationToDTO(n))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) PortalMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalMarkNotificationRead")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	notificationID := r.PathValue("notificationID")

	if err := h.notificationService.MarkRead(ctx, principal.UserID, notificationID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: notificationID, Result: "read"})
}

func (h *Handler) PortalMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalMarkAllNotificationsRead")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.notificationService.MarkAllRead(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, markAllReadDTO{Updated: updated})
}

func (h *Handler) PortalTeamDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalTeamDetails")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID := r.PathValue("teamID")

	overview, err := h.portalService.TeamDetails(ctx, principal.UserID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "portal team details failed", "user_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamOverviewDTO{
		teamDTO:   teamToDTO(overview.Team),
		CoachName: overview.CoachName,
		Members:   membersToDTO(overview.Members),
		Record: recordDTO{
			Played: overview.Record.Played,
			Wins:   overview.Record.Wins,
			Losses: overview.Record.Losses,
			Draws:  overview.Record.Draws,
		},
	})
}

func (h *Handler) PortalCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PortalCoach")
	defer span.End()

	coachID := r.PathValue("coachID")
	info, err := h.portalService.CoachInfo(ctx, coachID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, coachInfoDTO{
		userDTO: userToDTO(info.User),
		Sports:  sportEntriesToDTO(info.Sports),
		Teams:   teamsToDTO(info.Teams),
	})
}
