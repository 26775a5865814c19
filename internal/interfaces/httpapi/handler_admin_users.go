package httpapi

import (
	"net/http"
	"strings"
)

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type deleteRequest struct {
	DeleteType string `json:"deleteType"`
}

type replaceSportsRequest struct {
	Sports []sportRequest `json:"sports" validate:"required,min=1,dive"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.userService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, usersToDTO(players))
}

func (h *Handler) ListPlayerDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerDetails")
	defer span.End()

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	details, err := h.userService.ListPlayerDetails(ctx, status)
	if err != nil {
		h.logger.WarnContext(ctx, "list player details failed", "status", status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userDetailsToDTO(details))
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	stats, err := h.userService.PlayerStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "player stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerStatsToDTO(stats))
}

func (h *Handler) GetPlayerSports(w http.ResponseWriter, r *http.Request) {
	h.getUserSports(w, r, "httpapi.Handler.GetPlayerSports", r.PathValue("playerID"))
}

func (h *Handler) ReplacePlayerSports(w http.ResponseWriter, r *http.Request) {
	h.replaceUserSports(w, r, "httpapi.Handler.ReplacePlayerSports", r.PathValue("playerID"))
}

func (h *Handler) UpdatePlayerStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayerStatus")
	defer span.End()

	playerID := r.PathValue("playerID")
	var req statusRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.userService.UpdatePlayerStatus(ctx, playerID, req.Status); err != nil {
		h.logger.WarnContext(ctx, "update player status failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: playerID, Result: req.Status})
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	var req deleteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.userService.DeletePlayer(ctx, playerID, req.DeleteType); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: playerID, Result: deleteResult(req.DeleteType)})
}

func (h *Handler) PromotePlayerToCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PromotePlayerToCoach")
	defer span.End()

	playerID := r.PathValue("playerID")
	if err := h.userService.PromotePlayerToCoach(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "promote player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: playerID, Result: "promoted"})
}

func (h *Handler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAdmins")
	defer span.End()

	admins, err := h.userService.ListAdmins(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list admins failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, usersToDTO(admins))
}

func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateAdmin")
	defer span.End()

	var req accountRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.userService.CreateAdmin(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create admin failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, userToDTO(created))
}

func (h *Handler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveAdmin")
	defer span.End()

	actor, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	adminID := r.PathValue("adminID")
	var req deleteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.userService.RemoveAdmin(ctx, actor, adminID, req.DeleteType); err != nil {
		h.logger.WarnContext(ctx, "remove admin failed", "admin_id", adminID, "actor_id", actor.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: adminID, Result: deleteResult(req.DeleteType)})
}

func (h *Handler) SetAdminStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAdminStatus")
	defer span.End()

	actor, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	adminID := r.PathValue("adminID")
	var req statusRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.userService.SetAdminStatus(ctx, actor, adminID, req.Status); err != nil {
		h.logger.WarnContext(ctx, "set admin status failed", "admin_id", adminID, "actor_id", actor.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: adminID, Result: req.Status})
}

func (h *Handler) ReactivateAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReactivateAdmin")
	defer span.End()

	adminID := r.PathValue("adminID")
	if err := h.userService.ReactivateAdmin(ctx, adminID); err != nil {
		h.logger.WarnContext(ctx, "reactivate admin failed", "admin_id", adminID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: adminID, Result: "active"})
}

func (h *Handler) ListCoaches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCoaches")
	defer span.End()

	coaches, err := h.userService.ListCoaches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list coaches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userDetailsToDTO(coaches))
}

func (h *Handler) CreateCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCoach")
	defer span.End()

	var req accountRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.userService.CreateCoach(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create coach failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, coachDTO{
		userDTO: userToDTO(profile.User),
		Sports:  sportEntriesToDTO(profile.Sports),
	})
}

func (h *Handler) UpdateCoachStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateCoachStatus")
	defer span.End()

	coachID := r.PathValue("coachID")
	var req statusRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.userService.UpdateCoachStatus(ctx, coachID, req.Status); err != nil {
		h.logger.WarnContext(ctx, "update coach status failed", "coach_id", coachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: coachID, Result: req.Status})
}

func (h *Handler) GetCoachSports(w http.ResponseWriter, r *http.Request) {
	h.getUserSports(w, r, "httpapi.Handler.GetCoachSports", r.PathValue("coachID"))
}

func (h *Handler) ReplaceCoachSports(w http.ResponseWriter, r *http.Request) {
	h.replaceUserSports(w, r, "httpapi.Handler.ReplaceCoachSports", r.PathValue("coachID"))
}

func (h *Handler) DeleteCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteCoach")
	defer span.End()

	coachID := r.PathValue("coachID")
	var req deleteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.userService.DeleteCoach(ctx, coachID, req.DeleteType); err != nil {
		h.logger.WarnContext(ctx, "delete coach failed", "coach_id", coachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: coachID, Result: deleteResult(req.DeleteType)})
}

func (h *Handler) getUserSports(w http.ResponseWriter, r *http.Request, spanName, userID string) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	entries, err := h.userService.GetUserSports(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get user sports failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sportEntriesToDTO(entries))
}

func (h *Handler) replaceUserSports(w http.ResponseWriter, r *http.Request, spanName, userID string) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	var req replaceSportsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.userService.ReplaceUserSports(ctx, userID, sportRequestsToInput(req.Sports))
	if err != nil {
		h.logger.WarnContext(ctx, "replace user sports failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sportEntriesToDTO(entries))
}

func deleteResult(deleteType string) string {
	if strings.EqualFold(strings.TrimSpace(deleteType), "permanent") {
		return "removed"
	}
	return "deleted"
}
