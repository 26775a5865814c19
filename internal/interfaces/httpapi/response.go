package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "sports-league"

	internalErrorMessage = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// errorMappings is walked in order; the first sentinel matched by errors.Is
// decides the response. Rule errors come before the generic usecase ones.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{league.ErrSelfDeleteForbidden, mappedError{http.StatusForbidden, "selfDeleteForbidden", "PERMISSION_DENIED"}},
	{league.ErrCapacityExceeded, mappedError{http.StatusConflict, "capacityExceeded", "FAILED_PRECONDITION"}},
	{league.ErrJerseyInUse, mappedError{http.StatusConflict, "jerseyConflict", "ALREADY_EXISTS"}},
	{league.ErrJerseyDuplicated, mappedError{http.StatusConflict, "jerseyDuplicated", "ALREADY_EXISTS"}},
	{league.ErrAlreadyRostered, mappedError{http.StatusConflict, "alreadyRostered", "ALREADY_EXISTS"}},
	{league.ErrPlayerNotActive, mappedError{http.StatusConflict, "playerNotActive", "FAILED_PRECONDITION"}},
	{league.ErrSportMismatch, mappedError{http.StatusConflict, "sportMismatch", "FAILED_PRECONDITION"}},
	{league.ErrOutOfWindow, mappedError{http.StatusConflict, "outOfWindow", "FAILED_PRECONDITION"}},
	{league.ErrLastAdminProtected, mappedError{http.StatusConflict, "lastAdminProtected", "FAILED_PRECONDITION"}},
	{league.ErrCoachSportMismatch, mappedError{http.StatusConflict, "coachSportMismatch", "FAILED_PRECONDITION"}},
	{league.ErrHasScheduledMatches, mappedError{http.StatusConflict, "hasScheduledMatches", "FAILED_PRECONDITION"}},
	{league.ErrMatchNotDeletable, mappedError{http.StatusConflict, "matchNotDeletable", "FAILED_PRECONDITION"}},
	{league.ErrSameTeam, mappedError{http.StatusBadRequest, "sameTeam", "INVALID_ARGUMENT"}},
	{league.ErrDuplicateSport, mappedError{http.StatusBadRequest, "duplicateSport", "INVALID_ARGUMENT"}},
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrForbidden, mappedError{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrConflict, mappedError{http.StatusConflict, "conflict", "ALREADY_EXISTS"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

var internalError = mappedError{
	HTTPStatus: http.StatusInternalServerError,
	Reason:     "internalError",
	Status:     "INTERNAL",
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := clientMessage(err)
	if mapped.HTTPStatus >= http.StatusInternalServerError && !internalErrorsExposed(ctx) {
		message = internalErrorMessage
	}
	writeErrorBody(ctx, w, mapped, message)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeErrorBody(ctx, w, internalError, internalErrorMessage)
}

func writeErrorBody(ctx context.Context, w http.ResponseWriter, mapped mappedError, message string) {
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.mapped
		}
	}
	return internalError
}

// clientMessage drops the wrap prefixes added on the way up, so a mapped
// error reads from its sentinel onwards. Unmapped errors are returned whole.
func clientMessage(err error) string {
	msg := err.Error()
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		if i := strings.Index(msg, m.target.Error()); i >= 0 {
			return msg[i:]
		}
		return m.target.Error()
	}
	return msg
}
