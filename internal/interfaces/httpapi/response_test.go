package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-stats/external/apifootball"
	"github.com/riskibarqy/football-stats/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

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
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: password authentication failed for user postgres"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	var body googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil || body.Error.Message != "internal server error" {
		t.Fatalf("unexpected error body: %+v", body.Error)
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: fmt.Errorf("%w: job x", usecase.ErrNotFound), want: http.StatusNotFound},
		{name: "unauthorized", err: usecase.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "ledger down", err: fmt.Errorf("%w: redis", usecase.ErrDependencyUnavailable), want: http.StatusServiceUnavailable},
		{name: "rejected", err: fmt.Errorf("wrap: %w", usecase.ErrRejected), want: http.StatusUnprocessableEntity},
		{name: "upstream timeout", err: &apifootball.FetchError{Kind: apifootball.KindTimeout, Resource: "/teams", Err: context.DeadlineExceeded}, want: http.StatusGatewayTimeout},
		{name: "unresolved parent", err: usecase.ErrUnresolvedDependency, want: http.StatusUnprocessableEntity},
		{name: "malformed feed", err: apifootball.ErrMalformedResponse, want: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "upstream status", err: &apifootball.FetchError{Kind: apifootball.KindUnexpectedStatus, Resource: "/teams", StatusCode: 500, Err: errors.New("boom")}, want: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapError(context.Background(), tt.err).HTTPStatus; got != tt.want {
				t.Fatalf("mapError(%v)=%d want=%d", tt.err, got, tt.want)
			}
		})
	}
}

func TestWriteInternalError_MatchesUnmappedError(t *testing.T) {
	internal := httptest.NewRecorder()
	writeInternalError(context.Background(), internal)

	unmapped := httptest.NewRecorder()
	writeError(context.Background(), unmapped, errors.New("driver exploded"))

	if internal.Code != unmapped.Code {
		t.Fatalf("status mismatch: %d vs %d", internal.Code, unmapped.Code)
	}
	if internal.Body.String() != unmapped.Body.String() {
		t.Fatalf("body mismatch:\n%s\n%s", internal.Body.String(), unmapped.Body.String())
	}
}
