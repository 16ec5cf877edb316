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

// ReportHandler - обработчик сообщений об ошибках в данных станций
type ReportHandler struct {
	reportUC *usecase.ReportUseCase
	logger   *zap.Logger
}

// NewReportHandler - создание нового ReportHandler
func NewReportHandler(reportUC *usecase.ReportUseCase, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportUC: reportUC,
		logger:   logger,
	}
}

// SubmitReport godoc
// @Summary Отправить сообщение об ошибке
// @Description Подпись типа из интерфейса приводится к каноническому типу, приоритет вычисляется по типу. Если удалённое хранилище недоступно, сообщение сохраняется локально (fallback=true) и ставится в очередь синхронизации.
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body dto.SubmitReportRequest true "Сообщение"
// @Success 201 {object} utils.SuccessResponse{data=domain.SubmitResult}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/reports [post]
func (h *ReportHandler) SubmitReport(c *fiber.Ctx) error {
	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.reportUC.SubmitErrorReport(c.UserContext(), req.ToDomain())
	if err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Report submitted",
		zap.String("station_id", req.StationID.String()),
		zap.String("report_id", result.ReportID),
		zap.Bool("fallback", result.Fallback))

	return utils.SendCreated(c, result)
}

// ListReports godoc
// @Summary Список сообщений
// @Description Новые первыми. Если удалённое хранилище недоступно, возвращается локальный журнал (meta.source=fallback).
// @Tags Reports
// @Produce json
// @Param limit query int false "Лимит" default(50)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Report}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/reports [get]
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	req := dto.ListReportsRequest{
		Limit:  c.QueryInt("limit", usecase.DefaultReportLimit),
		Offset: c.QueryInt("offset", 0),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	list := h.reportUC.GetAllReports(c.UserContext(), req.Limit, req.Offset)
	return utils.SendSuccess(c, list.Reports, &utils.Meta{
		Total:  len(list.Reports),
		Limit:  req.Limit,
		Offset: req.Offset,
		Source: string(list.Source),
	})
}

// GetStationReports godoc
// @Summary Сообщения по станции
// @Tags Reports
// @Produce json
// @Param id path int true "ID станции"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Report}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/reports [get]
func (h *ReportHandler) GetStationReports(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidStationID)
	}

	list := h.reportUC.GetReportsByStation(c.UserContext(), id)
	return utils.SendSuccess(c, list.Reports, &utils.Meta{
		Total:  len(list.Reports),
		Source: string(list.Source),
	})
}

// GetReportStats godoc
// @Summary Статистика сообщений
// @Description Всего, ожидающие, решённые, за последние 7 дней, а также разбивка по типу и по станции
// @Tags Reports
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.ReportStats}
// @Router /api/v1/reports/stats [get]
func (h *ReportHandler) GetReportStats(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.reportUC.GetReportStats(c.UserContext()), nil)
}

// UpdateReportStatus godoc
// @Summary Изменить статус сообщения
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path int true "ID сообщения"
// @Param request body dto.UpdateReportStatusRequest true "Статус и комментарий"
// @Success 200 {object} utils.SuccessResponse{data=domain.Report}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/reports/{id}/status [patch]
func (h *ReportHandler) UpdateReportStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidReportID)
	}

	var req dto.UpdateReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	report, err := h.reportUC.UpdateReportStatus(c.UserContext(), id, domain.ReportStatus(req.Status), req.AdminNote)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, report, nil)
}
