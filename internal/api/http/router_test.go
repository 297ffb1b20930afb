package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	registry    *mocks.MockRegistryService
	sharing     *mocks.MockSharingService
	utilization *mocks.MockUtilizationService
	handler     http.Handler
}

func newFixture(health func(ctx context.Context) error) *fixture {
	f := &fixture{
		registry:    new(mocks.MockRegistryService),
		sharing:     new(mocks.MockSharingService),
		utilization: new(mocks.MockUtilizationService),
	}
	f.handler = NewRouter(Dependencies{
		Registry:    f.registry,
		Sharing:     f.sharing,
		Utilization: f.utilization,
		Health:      health,
	})
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthz(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		w := newFixture(func(context.Context) error { return nil }).do(http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("Database Down", func(t *testing.T) {
		w := newFixture(func(context.Context) error { return errors.New("connection refused") }).do(http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	f := newFixture(nil)

	t.Run("Generated", func(t *testing.T) {
		w := f.do(http.MethodGet, "/healthz", "")
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})

	t.Run("Propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		f.handler.ServeHTTP(w, req)
		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	})
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"Validation", domain.NewValidationError("type", "is required"), http.StatusBadRequest, "validation_error"},
		{"Not Found", domain.NewNotFoundError("equipment", "EQX0"), http.StatusNotFound, "not_found"},
		{"Conflict", domain.NewConflictError("equipment", "EQX1001", "not available"), http.StatusConflict, "conflict"},
		{"Internal", errors.New("pq: connection reset"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(nil)
			f.registry.On("GetEquipment", mock.Anything, "EQX1001").Return(nil, tt.err).Once()

			w := f.do(http.MethodGet, "/api/v1/equipment/EQX1001", "")
			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.code, resp.Code)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, resp.Error, "pq:")
			}
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	f := newFixture(nil)
	f.registry.On("ListAvailableTypes", mock.Anything).Panic("boom").Once()

	w := f.do(http.MethodGet, "/api/v1/available/types", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", decodeError(t, w).Code)
}

func TestUnknownRoute(t *testing.T) {
	w := newFixture(nil).do(http.MethodGet, "/api/v1/vendors", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
