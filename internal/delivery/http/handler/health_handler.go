package handler

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"

	"github.com/water-station-map/internal/usecase"
	"github.com/water-station-map/internal/usecase/dto"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker - зависимость, состояние которой попадает в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	stationUC *usecase.StationUseCase
	clock     clockwork.Clock
	checks    map[string]HealthChecker
}

func NewHealthHandler(stationUC *usecase.StationUseCase, clock clockwork.Clock, checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{stationUC: stationUC, clock: clock, checks: checks}
}

// Health godoc
// @Summary Проверка состояния
// @Description Недоступная вспомогательная зависимость переводит статус в degraded, ответ остаётся 200
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status: "ok",
		Store:  h.stationUC.StoreName(),
		Time:   h.clock.Now().UTC(),
	}

	if len(h.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
		defer cancel()

		names := make([]string, 0, len(h.checks))
		for name := range h.checks {
			names = append(names, name)
		}
		sort.Strings(names)

		resp.Components = make(map[string]string, len(names))
		for _, name := range names {
			if err := h.checks[name].Health(ctx); err != nil {
				resp.Components[name] = "down"
				resp.Status = "degraded"
				continue
			}
			resp.Components[name] = "ok"
		}
	}

	return c.JSON(resp)
}
