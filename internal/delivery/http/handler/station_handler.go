package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/pkg/errors"
	"github.com/water-station-map/internal/pkg/utils"
	"github.com/water-station-map/internal/pkg/validator"
	"github.com/water-station-map/internal/usecase"
	"github.com/water-station-map/internal/usecase/dto"
)

// StationHandler - обработчик запросов к справочнику станций
type StationHandler struct {
	stationUC *usecase.StationUseCase
	logger    *zap.Logger
}

// NewStationHandler - создание нового StationHandler
func NewStationHandler(stationUC *usecase.StationUseCase, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		stationUC: stationUC,
		logger:    logger,
	}
}

// ListStations godoc
// @Summary Список станций
// @Description Возвращает станции с фильтрами. Порядок применения: district заменяет набор, type и status сужают его, search снова заменяет набор. meta.status: ok, empty или unavailable (хранилище недоступно).
// @Tags Stations
// @Produce json
// @Param district query string false "Район (구)"
// @Param type query string false "Тип станции"
// @Param status query string false "Статус (운영중 - работает)"
// @Param search query string false "Поиск по названию, адресу и оператору"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.StationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/stations [get]
func (h *StationHandler) ListStations(c *fiber.Ctx) error {
	req := dto.StationFilterRequest{
		District: c.Query("district"),
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	list := h.stationUC.GetStationsByFilter(c.UserContext(), req.ToDomain())
	return h.sendList(c, list)
}

// NearbyStations godoc
// @Summary Станции рядом
// @Description Станции в радиусе от точки, ближайшие первыми. Расстояние (км) по формуле гаверсинуса, R = 6371 км.
// @Tags Stations
// @Produce json
// @Param lat query number true "Широта"
// @Param lng query number true "Долгота"
// @Param radius query number false "Радиус в км (0-100)" default(5)
// @Success 200 {object} utils.SuccessResponse{data=[]dto.StationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/stations/nearby [get]
func (h *StationHandler) NearbyStations(c *fiber.Ctx) error {
	var req dto.NearbyStationsRequest
	lat, err := queryFloat(c, "lat")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	lng, err := queryFloat(c, "lng")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	req.Lat, req.Lng = lat, lng

	req.RadiusKm = usecase.DefaultNearbyRadiusKm
	if raw := c.Query("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidRadius)
		}
		req.RadiusKm = radius
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	list := h.stationUC.GetNearbyStations(c.UserContext(), domain.Position{Lat: *req.Lat, Lng: *req.Lng}, req.RadiusKm)
	return h.sendList(c, list)
}

// GetStation godoc
// @Summary Станция по id
// @Tags Stations
// @Produce json
// @Param id path int true "ID станции"
// @Success 200 {object} utils.SuccessResponse{data=dto.StationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id} [get]
func (h *StationHandler) GetStation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidStationID)
	}

	station, err := h.stationUC.GetStation(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, h.toResponse(station), &utils.Meta{Store: h.stationUC.StoreName()})
}

// CreateStation godoc
// @Summary Добавить станцию
// @Description id и метки времени назначает хранилище
// @Tags Stations
// @Accept json
// @Produce json
// @Param request body dto.CreateStationRequest true "Станция"
// @Success 201 {object} utils.SuccessResponse{data=dto.StationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/stations [post]
func (h *StationHandler) CreateStation(c *fiber.Ctx) error {
	var req dto.CreateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.stationUC.AddStation(c.UserContext(), req.ToDomain())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, h.toResponse(station))
}

// UpdateStation godoc
// @Summary Изменить станцию
// @Description Частичное обновление: переданные поля перезаписываются, остальные не меняются, updated_at обновляется
// @Tags Stations
// @Accept json
// @Produce json
// @Param id path int true "ID станции"
// @Param request body dto.UpdateStationRequest true "Изменения"
// @Success 200 {object} utils.SuccessResponse{data=dto.StationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id} [patch]
func (h *StationHandler) UpdateStation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidStationID)
	}

	var req dto.UpdateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	updates := req.ToDomain()
	if updates.IsEmpty() {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "no fields to update",
		}))
	}

	station, err := h.stationUC.UpdateStation(c.UserContext(), id, updates)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, h.toResponse(station), nil)
}

// DeleteStation godoc
// @Summary Удалить станцию
// @Tags Stations
// @Param id path int true "ID станции"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id} [delete]
func (h *StationHandler) DeleteStation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidStationID)
	}

	if err := h.stationUC.DeleteStation(c.UserContext(), id); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *StationHandler) sendList(c *fiber.Ctx, list domain.StationList) error {
	data := make([]dto.StationResponse, 0, len(list.Stations))
	for _, s := range list.Stations {
		data = append(data, h.toResponse(s))
	}
	return utils.SendSuccess(c, data, &utils.Meta{
		Total:  len(data),
		Status: string(list.Status),
		Store:  h.stationUC.StoreName(),
	})
}

func (h *StationHandler) toResponse(s *domain.Station) dto.StationResponse {
	return dto.StationResponse{
		Station:     s,
		IsOperating: h.stationUC.IsOperating(s),
		Is24Hours:   h.stationUC.Is24Hours(s),
	}
}
