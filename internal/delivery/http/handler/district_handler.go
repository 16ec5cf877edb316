package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/water-station-map/internal/pkg/errors"
	"github.com/water-station-map/internal/pkg/utils"
	"github.com/water-station-map/internal/usecase"
)

// DistrictHandler - справочник районных администраций
type DistrictHandler struct {
	districtUC *usecase.DistrictUseCase
	logger     *zap.Logger
}

func NewDistrictHandler(districtUC *usecase.DistrictUseCase, logger *zap.Logger) *DistrictHandler {
	return &DistrictHandler{
		districtUC: districtUC,
		logger:     logger,
	}
}

// ListDistricts godoc
// @Summary Районы
// @Tags Districts
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.District}
// @Router /api/v1/districts [get]
func (h *DistrictHandler) ListDistricts(c *fiber.Ctx) error {
	districts := h.districtUC.GetAllDistricts()
	return utils.SendSuccess(c, districts, &utils.Meta{Total: len(districts)})
}

// DistrictStats godoc
// @Summary Количество станций по районам
// @Tags Districts
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.DistrictStat}
// @Router /api/v1/districts/stats [get]
func (h *DistrictHandler) DistrictStats(c *fiber.Ctx) error {
	stats, status := h.districtUC.GetDistrictStats(c.UserContext())
	return utils.SendSuccess(c, stats, &utils.Meta{
		Total:  len(stats),
		Status: string(status),
	})
}

// GetDistrict godoc
// @Summary Район по названию
// @Description Телефон и сайт районной администрации, например 중구
// @Tags Districts
// @Produce json
// @Param name path string true "Название района"
// @Success 200 {object} utils.SuccessResponse{data=domain.District}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/districts/{name} [get]
func (h *DistrictHandler) GetDistrict(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	district, err := h.districtUC.GetDistrict(name)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, district, nil)
}
