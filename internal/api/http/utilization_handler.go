package http

import (
	"context"
	"net/http"
	"time"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service"
)

const healthTimeout = 2 * time.Second

type UtilizationHandler struct {
	utilization service.UtilizationService
}

func NewUtilizationHandler(utilization service.UtilizationService) *UtilizationHandler {
	return &UtilizationHandler{utilization: utilization}
}

func (h *UtilizationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	groups, err := h.utilization.SummarizeUtilization(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(groups))
}

// healthHandler reports 503 when check fails, typically a database ping.
func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := check(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
