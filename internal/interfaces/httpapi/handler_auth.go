package httpapi

import (
	"net/http"

	"github.com/riskibarqy/sports-league/internal/usecase"
)

type sportRequest struct {
	Sport      string `json:"sport" validate:"required"`
	SkillLevel string `json:"skill_level" validate:"required"`
	IsPrimary  bool   `json:"is_primary"`
}

type accountRequest struct {
	Username    string         `json:"username" validate:"required,min=3,max=30"`
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=8"`
	FirstName   string         `json:"first_name" validate:"required,min=2,max=50"`
	LastName    string         `json:"last_name" validate:"required,min=2,max=50"`
	PhoneNumber string         `json:"phone_number" validate:"omitempty,max=30"`
	DateOfBirth string         `json:"date_of_birth" validate:"omitempty"`
	Sports      []sportRequest `json:"sports" validate:"omitempty,dive"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (req accountRequest) toInput() (usecase.CreateAccountInput, error) {
	dob, err := parseOptionalDate("date_of_birth", req.DateOfBirth)
	if err != nil {
		return usecase.CreateAccountInput{}, err
	}
	return usecase.CreateAccountInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: dob,
		Sports:      sportRequestsToInput(req.Sports),
	}, nil
}

func sportRequestsToInput(items []sportRequest) []usecase.SportInput {
	out := make([]usecase.SportInput, 0, len(items))
	for _, s := range items {
		out = append(out, usecase.SportInput{Sport: s.Sport, SkillLevel: s.SkillLevel, IsPrimary: s.IsPrimary})
	}
	return out
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Register")
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

	created, err := h.authService.Register(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "register failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, userToDTO(created))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	token, err := h.authService.Login(ctx, usecase.LoginInput{Identifier: req.Identifier, Password: req.Password})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, authTokenDTO{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        userToDTO(token.User),
	})
}
