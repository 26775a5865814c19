package httpapi

import (
	"net/http"

	"github.com/riskibarqy/sports-league/internal/domain/roster"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/usecase"
)

type createTeamRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Sport      string `json:"sport" validate:"required"`
	MaxPlayers int    `json:"max_players" validate:"required,min=5,max=30"`
	CoachID    string `json:"coach_id" validate:"omitempty"`
}

type addPlayerRequest struct {
	PlayerID     string `json:"player_id" validate:"required"`
	Position     string `json:"position" validate:"omitempty,max=50"`
	JerseyNumber *int   `json:"jersey_number" validate:"omitempty,min=0,max=99"`
}

type addPlayersRequest struct {
	Players []addPlayerRequest `json:"players" validate:"required,min=1,dive"`
}

type assignCoachRequest struct {
	CoachID string `json:"coach_id"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamSummaryDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamSummaryToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{
		Name:       req.Name,
		Sport:      req.Sport,
		MaxPlayers: req.MaxPlayers,
		CoachID:    req.CoachID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	detail, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailDTO{
		teamDTO: teamToDTO(detail.Team),
		Members: membersToDTO(detail.Members),
	})
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	if err := h.teamService.DeleteTeam(ctx, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: teamID, Result: "removed"})
}

func (h *Handler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPlayers")
	defer span.End()

	teamID := r.PathValue("teamID")
	members, err := h.teamService.ListTeamPlayers(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, membersToDTO(members))
}

func (h *Handler) ListAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailablePlayers")
	defer span.End()

	teamID := r.PathValue("teamID")
	candidates, err := h.teamService.ListAvailablePlayers(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list available players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]candidateDTO, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, candidateToDTO(c))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddTeamPlayers")
	defer span.End()

	teamID := r.PathValue("teamID")
	var req addPlayersRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.AddPlayerInput, 0, len(req.Players))
	for _, p := range req.Players {
		inputs = append(inputs, usecase.AddPlayerInput{
			PlayerID:     p.PlayerID,
			Position:     p.Position,
			JerseyNumber: p.JerseyNumber,
		})
	}

	added, err := h.teamService.AddPlayers(ctx, teamID, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "add team players failed", "team_id", teamID, "count", len(inputs), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]memberDTO, 0, len(added))
	for _, m := range added {
		items = append(items, memberToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusCreated, items)
}

func (h *Handler) RemoveTeamPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveTeamPlayer")
	defer span.End()

	teamID := r.PathValue("teamID")
	playerID := r.PathValue("playerID")
	if err := h.teamService.RemovePlayer(ctx, teamID, playerID); err != nil {
		h.logger.WarnContext(ctx, "remove team player failed", "team_id", teamID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ackDTO{ID: playerID, Result: "removed"})
}

func (h *Handler) AssignTeamCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignTeamCoach")
	defer span.End()

	teamID := r.PathValue("teamID")
	var req assignCoachRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.teamService.AssignCoach(ctx, teamID, req.CoachID)
	if err != nil {
		h.logger.WarnContext(ctx, "assign coach failed", "team_id", teamID, "coach_id", req.CoachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(updated))
}

func teamSummaryToDTO(s team.Summary) teamSummaryDTO {
	return teamSummaryDTO{
		teamDTO:        teamToDTO(s.Team),
		CoachName:      s.CoachName,
		CurrentPlayers: s.CurrentPlayers,
	}
}

func candidateToDTO(c roster.Candidate) candidateDTO {
	return candidateDTO{
		UserID:     c.UserID,
		Username:   c.Username,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		SkillLevel: string(c.SkillLevel),
		IsPrimary:  c.IsPrimary,
	}
}
