package httpapi

import (
	"net/http"

	"github.com/riskibarqy/sports-league/internal/usecase"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/register", handler.Register)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
}

// guarded wraps h with authentication followed by the policy check for op.
func guarded(verifier TokenVerifier, op usecase.Operation, h http.HandlerFunc) http.Handler {
	return RequireAuth(verifier, RequirePermission(op, h))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/dashboard/stats", guarded(verifier, usecase.OpViewDashboard, handler.GetDashboardStats))

	registerAdminPlayerRoutes(mux, handler, verifier)
	registerAdminAccountRoutes(mux, handler, verifier)
	registerAdminTeamRoutes(mux, handler, verifier)
	registerAdminScheduleRoutes(mux, handler, verifier)
}

func registerAdminPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	op := usecase.OpManagePlayers
	mux.Handle("GET /v1/admin/players", guarded(verifier, op, handler.ListPlayers))
	mux.Handle("GET /v1/admin/players/details", guarded(verifier, op, handler.ListPlayerDetails))
	mux.Handle("GET /v1/admin/players/stats", guarded(verifier, op, handler.GetPlayerStats))
	mux.Handle("GET /v1/admin/players/{playerID}/sports", guarded(verifier, op, handler.GetPlayerSports))
	mux.Handle("PUT /v1/admin/players/{playerID}/status", guarded(verifier, op, handler.UpdatePlayerStatus))
	mux.Handle("PUT /v1/admin/players/{playerID}/sports", guarded(verifier, op, handler.ReplacePlayerSports))
	mux.Handle("DELETE /v1/admin/players/{playerID}", guarded(verifier, op, handler.DeletePlayer))
	mux.Handle("PUT /v1/admin/players/{playerID}/promote-to-coach", guarded(verifier, op, handler.PromotePlayerToCoach))
}

func registerAdminAccountRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/admins", guarded(verifier, usecase.OpManageAdmins, handler.ListAdmins))
	mux.Handle("POST /v1/admin/admins", guarded(verifier, usecase.OpManageAdmins, handler.CreateAdmin))
	mux.Handle("DELETE /v1/admin/admins/{adminID}", guarded(verifier, usecase.OpManageAdmins, handler.RemoveAdmin))
	mux.Handle("PUT /v1/admin/admins/{adminID}/status", guarded(verifier, usecase.OpManageAdmins, handler.SetAdminStatus))
	mux.Handle("PUT /v1/admin/admins/{adminID}/reactivate", guarded(verifier, usecase.OpManageAdmins, handler.ReactivateAdmin))

	mux.Handle("GET /v1/admin/coaches", guarded(verifier, usecase.OpManageCoaches, handler.ListCoaches))
	mux.Handle("POST /v1/admin/coaches", guarded(verifier, usecase.OpManageCoaches, handler.CreateCoach))
	mux.Handle("PUT /v1/admin/coaches/{coachID}/status", guarded(verifier, usecase.OpManageCoaches, handler.UpdateCoachStatus))
	mux.Handle("PUT /v1/admin/coaches/{coachID}/sports", guarded(verifier, usecase.OpManageCoaches, handler.ReplaceCoachSports))
	mux.Handle("GET /v1/admin/coaches/{coachID}/sports", guarded(verifier, usecase.OpManageCoaches, handler.GetCoachSports))
	mux.Handle("DELETE /v1/admin/coaches/{coachID}", guarded(verifier, usecase.OpManageCoaches, handler.DeleteCoach))
}

func registerAdminTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	op := usecase.OpManageTeams
	mux.Handle("GET /v1/admin/teams", guarded(verifier, op, handler.ListTeams))
	mux.Handle("POST /v1/admin/teams", guarded(verifier, op, handler.CreateTeam))
	mux.Handle("GET /v1/admin/teams/{teamID}", guarded(verifier, op, handler.GetTeam))
	mux.Handle("DELETE /v1/admin/teams/{teamID}", guarded(verifier, op, handler.DeleteTeam))
	mux.Handle("GET /v1/admin/teams/{teamID}/players", guarded(verifier, op, handler.ListTeamPlayers))
	mux.Handle("GET /v1/admin/teams/{teamID}/available-players", guarded(verifier, op, handler.ListAvailablePlayers))
	mux.Handle("POST /v1/admin/teams/{teamID}/players/add-batch", guarded(verifier, op, handler.AddTeamPlayers))
	mux.Handle("DELETE /v1/admin/teams/{teamID}/players/{playerID}", guarded(verifier, op, handler.RemoveTeamPlayer))
	mux.Handle("PUT /v1/admin/teams/{teamID}/coach", guarded(verifier, op, handler.AssignTeamCoach))
}

func registerAdminScheduleRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/matches", guarded(verifier, usecase.OpManageMatches, handler.ListMatches))
	mux.Handle("POST /v1/admin/matches", guarded(verifier, usecase.OpManageMatches, handler.ScheduleMatch))
	mux.Handle("GET /v1/admin/matches/friendly", guarded(verifier, usecase.OpManageMatches, handler.ListFriendlyMatches))
	mux.Handle("PUT /v1/admin/matches/{matchID}/score", guarded(verifier, usecase.OpManageMatches, handler.RecordScore))
	mux.Handle("DELETE /v1/admin/matches/{matchID}", guarded(verifier, usecase.OpManageMatches, handler.DeleteMatch))

	mux.Handle("GET /v1/admin/tournaments", guarded(verifier, usecase.OpManageTournaments, handler.ListTournaments))
	mux.Handle("POST /v1/admin/tournaments", guarded(verifier, usecase.OpManageTournaments, handler.CreateTournament))
	mux.Handle("DELETE /v1/admin/tournaments/{tournamentID}", guarded(verifier, usecase.OpManageTournaments, handler.DeleteTournament))
	mux.Handle("GET /v1/admin/tournaments/{tournamentID}/matches", guarded(verifier, usecase.OpManageTournaments, handler.ListTournamentMatches))

	mux.Handle("GET /v1/admin/venues", guarded(verifier, usecase.OpManageVenues, handler.ListVenues))
	mux.Handle("POST /v1/admin/venues", guarded(verifier, usecase.OpManageVenues, handler.CreateVenue))
}

func registerPortalRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	op := usecase.OpUsePortal
	mux.Handle("GET /v1/portal/matches", guarded(verifier, op, handler.PortalMatches))
	mux.Handle("POST /v1/portal/register-tournament", guarded(verifier, op, handler.PortalRegisterTournament))
	mux.Handle("GET /v1/portal/teams", guarded(verifier, op, handler.PortalTeams))
	mux.Handle("GET /v1/portal/teams/{teamID}/details", guarded(verifier, op, handler.PortalTeamDetails))
	mux.Handle("GET /v1/portal/profile", guarded(verifier, op, handler.PortalProfile))
	mux.Handle("PUT /v1/portal/profile", guarded(verifier, op, handler.PortalUpdateProfile))
	mux.Handle("GET /v1/portal/sports", guarded(verifier, op, handler.PortalSports))
	mux.Handle("POST /v1/portal/sports", guarded(verifier, op, handler.PortalAddSport))
	mux.Handle("PUT /v1/portal/sports/{sportID}", guarded(verifier, op, handler.PortalUpdateSport))
	mux.Handle("DELETE /v1/portal/sports/{sportID}", guarded(verifier, op, handler.PortalDeleteSport))
	mux.Handle("GET /v1/portal/tournaments", guarded(verifier, op, handler.PortalTournaments))
	mux.Handle("GET /v1/portal/notifications", guarded(verifier, op, handler.PortalNotifications))
	mux.Handle("PUT /v1/portal/notifications/read-all", guarded(verifier, op, handler.PortalMarkAllNotificationsRead))
	mux.Handle("PUT /v1/portal/notifications/{notificationID}/read", guarded(verifier, op, handler.PortalMarkNotificationRead))
	mux.Handle("GET /v1/portal/coaches/{coachID}", guarded(verifier, op, handler.PortalCoach))
}
