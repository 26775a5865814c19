package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/usecase"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func errorObject(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response, got %v", body)
	}
	return errorObj
}

func errorReason(t *testing.T, body map[string]any) string {
	t.Helper()

	items, ok := errorObject(t, body)["errors"].([]any)
	if !ok || len(items) == 0 {
		t.Fatalf("expected error items in response")
	}
	item, _ := items[0].(map[string]any)
	reason, _ := item["reason"].(string)
	return reason
}

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(t.Context(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(t.Context(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if got, _ := errorObject(t, body)["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObject(t, body)["status"])
	}
	if got := errorReason(t, body); got != "invalidInput" {
		t.Fatalf("expected reason invalidInput, got %q", got)
	}
}

func TestWriteError_MessageStartsAtMappedError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "rule error under repository prefixes",
			err:  fmt.Errorf("add team members: insert team player p1: %w", league.ErrJerseyInUse),
			want: league.ErrJerseyInUse.Error(),
		},
		{
			name: "detail after the sentinel is kept",
			err:  fmt.Errorf("delete user sport: %w", fmt.Errorf("%w: sport entry=e1", usecase.ErrNotFound)),
			want: "resource not found: sport entry=e1",
		},
		{
			name: "unwrapped sentinel",
			err:  usecase.ErrForbidden,
			want: "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			writeError(t.Context(), rec, tt.err)

			body := decodeEnvelope(t, rec)
			if got, _ := errorObject(t, body)["message"].(string); got != tt.want {
				t.Fatalf("expected message %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{name: "capacity", err: fmt.Errorf("%w: team is full", league.ErrCapacityExceeded), status: http.StatusConflict, reason: "capacityExceeded"},
		{name: "jersey in use", err: league.ErrJerseyInUse, status: http.StatusConflict, reason: "jerseyConflict"},
		{name: "inactive player", err: fmt.Errorf("add team members: %w", league.ErrPlayerNotActive), status: http.StatusConflict, reason: "playerNotActive"},
		{name: "last admin", err: league.ErrLastAdminProtected, status: http.StatusConflict, reason: "lastAdminProtected"},
		{name: "self delete", err: league.ErrSelfDeleteForbidden, status: http.StatusForbidden, reason: "selfDeleteForbidden"},
		{name: "same team", err: league.ErrSameTeam, status: http.StatusBadRequest, reason: "sameTeam"},
		{name: "not found", err: fmt.Errorf("%w: team", usecase.ErrNotFound), status: http.StatusNotFound, reason: "notFound"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, status: http.StatusUnauthorized, reason: "unauthorized"},
		{name: "forbidden", err: usecase.ErrForbidden, status: http.StatusForbidden, reason: "forbidden"},
		{name: "dependency", err: usecase.ErrDependencyUnavailable, status: http.StatusServiceUnavailable, reason: "dependencyUnavailable"},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, reason: "internalError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mapError(t.Context(), tt.err)
			if got.HTTPStatus != tt.status || got.Reason != tt.reason {
				t.Fatalf("mapError(%v)=%d/%s want %d/%s", tt.err, got.HTTPStatus, got.Reason, tt.status, tt.reason)
			}
		})
	}
}

func TestWriteError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(t.Context(), rec, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if got, _ := errorObject(t, decodeEnvelope(t, rec))["message"].(string); got != internalErrorMessage {
		t.Fatalf("expected generic message, got %q", got)
	}
}

func TestWriteError_ExposesInternalMessageWhenEnabled(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(withExposedErrors(t.Context()), rec, errors.New("pq: connection refused"))

	if got, _ := errorObject(t, decodeEnvelope(t, rec))["message"].(string); got != "pq: connection refused" {
		t.Fatalf("expected raw message, got %q", got)
	}
}
