package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/water-station-map/internal/domain"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"station not found", fmt.Errorf("get: %w", domain.ErrStationNotFound), http.StatusNotFound},
		{"report not found", domain.ErrReportNotFound, http.StatusNotFound},
		{"not connected", fmt.Errorf("supabase: %w", domain.ErrNotConnected), http.StatusServiceUnavailable},
		{"unsupported", domain.ErrUnsupported, http.StatusNotImplemented},
		{"invalid station", domain.ErrInvalidStation, http.StatusBadRequest},
		{"invalid report", fmt.Errorf("station id: %w", domain.ErrInvalidReport), http.StatusBadRequest},
		{"app error passthrough", ErrInvalidRadius, http.StatusBadRequest},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, FromDomain(tt.err).StatusCode)
		})
	}
}

func TestWithDetails_DoesNotMutateShared(t *testing.T) {
	withDetails := ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "lat"})

	assert.Equal(t, "lat", withDetails.Details["field"])
	assert.Empty(t, ErrInvalidRequest.Details)
}
