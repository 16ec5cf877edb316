package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
	"github.com/water-station-map/internal/observability"
)

const (
	// DefaultReportLimit - размер страницы по умолчанию
	DefaultReportLimit = 50

	recentWindow = 7 * 24 * time.Hour

	msgSubmitted    = "오류 신고가 성공적으로 제출되었습니다. 빠른 시일 내에 검토하겠습니다."
	msgSavedLocally = "오류 신고가 임시 저장되었습니다. 관리자가 확인 후 처리하겠습니다."
)

// ReportUseCase - доска сообщений об ошибках.
// Отправка никогда не теряет сообщение: при сбое удалённого хранилища
// оно сохраняется в локальный журнал и публикуется в стрим для досылки.
type ReportUseCase struct {
	remote         repository.ReportRepository // nil, если удалённое хранилище не настроено
	fallback       repository.FallbackLog
	stream         repository.StreamRepository // nil без Redis
	publishPending bool
	metrics        *observability.Metrics
	clock          clockwork.Clock
	logger         *zap.Logger
}

// NewReportUseCase - создание нового ReportUseCase
func NewReportUseCase(
	remote repository.ReportRepository,
	fallback repository.FallbackLog,
	stream repository.StreamRepository,
	publishPending bool,
	metrics *observability.Metrics,
	clock clockwork.Clock,
	logger *zap.Logger,
) *ReportUseCase {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ReportUseCase{
		remote:         remote,
		fallback:       fallback,
		stream:         stream,
		publishPending: publishPending,
		metrics:        metrics,
		clock:          clock,
		logger:         logger,
	}
}

// Initialize проверяет доступность таблицы error_reports.
// Недоступность не ошибка: сообщения будут сохраняться локально.
func (uc *ReportUseCase) Initialize(ctx context.Context) bool {
	if uc.remote == nil {
		uc.logger.Warn("Report store is not configured, using local fallback log")
		return false
	}
	if err := uc.remote.Ping(ctx); err != nil {
		uc.logger.Warn("Report store is unavailable, using local fallback log",
			zap.String("store", uc.remote.Name()),
			zap.Error(err))
		return false
	}
	uc.logger.Info("Report store connected", zap.String("store", uc.remote.Name()))
	return true
}

// SubmitErrorReport сохраняет сообщение. Ошибка возвращается только для
// некорректного stationId: сбои хранилища уводят сообщение в локальный журнал.
func (uc *ReportUseCase) SubmitErrorReport(ctx context.Context, sub domain.ReportSubmission) (*domain.SubmitResult, error) {
	stationID, err := strconv.ParseInt(strings.TrimSpace(sub.StationID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("stationId %q: %w", sub.StationID, domain.ErrInvalidReport)
	}

	errorType := domain.CanonicalErrorType(sub.ErrorType)
	description := strings.TrimSpace(sub.Description)
	if description == "" {
		description = errorType + " 신고"
	}

	report := &domain.Report{
		StationID:    stationID,
		StationTitle: sub.StationTitle,
		ErrorType:    errorType,
		Description:  description,
		ContactInfo:  sub.ContactInfo,
		Priority:     domain.PriorityFor(errorType),
		Status:       domain.ReportStatusPending,
	}

	if uc.remote != nil {
		created, err := uc.remote.InsertReport(ctx, report)
		if err == nil {
			uc.appendFallback(ctx, created)
			uc.metrics.ReportSubmissions.WithLabelValues(observability.DestinationRemote).Inc()
			uc.logger.Info("Error report submitted",
				zap.Int64("report_id", created.ID),
				zap.Int64("station_id", stationID),
				zap.String("error_type", errorType))
			return &domain.SubmitResult{
				Success:  true,
				ReportID: strconv.FormatInt(created.ID, 10),
				Message:  msgSubmitted,
			}, nil
		}
		uc.logger.Warn("Remote report insert failed, saving locally",
			zap.String("store", uc.remote.Name()),
			zap.Int64("station_id", stationID),
			zap.Error(err))
	}

	return uc.fallbackSubmit(ctx, report), nil
}

func (uc *ReportUseCase) fallbackSubmit(ctx context.Context, report *domain.Report) *domain.SubmitResult {
	now := uc.clock.Now().UTC()
	report.Timestamp = &now
	report.Method = domain.FallbackMethod

	uc.appendFallback(ctx, report)
	uc.metrics.ReportSubmissions.WithLabelValues(observability.DestinationFallback).Inc()

	if uc.stream != nil && uc.publishPending {
		event := &domain.ReportSyncEvent{
			EventID:  uuid.New(),
			Report:   report,
			QueuedAt: now,
		}
		if err := uc.stream.PublishToStream(ctx, domain.StreamReportsPending, event); err != nil {
			uc.logger.Error("Failed to queue report for sync", zap.Error(err))
		}
	}

	return &domain.SubmitResult{
		Success:  true,
		ReportID: now.Format(domain.FallbackTimestampLayout),
		Message:  msgSavedLocally,
		Fallback: true,
	}
}

// appendFallback пишет копию в локальный журнал; сбой журнала только логируется
func (uc *ReportUseCase) appendFallback(ctx context.Context, report *domain.Report) {
	if err := uc.fallback.Append(ctx, report); err != nil {
		uc.logger.Error("Failed to append report to fallback log", zap.Error(err))
		return
	}
	if n, err := uc.fallback.Len(ctx); err == nil {
		uc.metrics.FallbackLogSize.Set(float64(n))
	}
}

// GetAllReports - сообщения по убыванию времени создания. При недоступности
// удалённого хранилища возвращается весь локальный журнал без пагинации.
func (uc *ReportUseCase) GetAllReports(ctx context.Context, limit, offset int) domain.ReportList {
	if limit <= 0 {
		limit = DefaultReportLimit
	}
	if offset < 0 {
		offset = 0
	}

	if uc.remote != nil {
		reports, err := uc.remote.ListReports(ctx, limit, offset)
		if err == nil {
			return domain.ReportList{Reports: reports, Source: domain.ReportSourceRemote}
		}
		uc.logger.Warn("Failed to list remote reports, using local fallback log",
			zap.String("store", uc.remote.Name()),
			zap.Error(err))
	}

	return domain.ReportList{Reports: uc.localReports(ctx), Source: domain.ReportSourceFallback}
}

func (uc *ReportUseCase) localReports(ctx context.Context) []*domain.Report {
	reports, err := uc.fallback.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to read fallback log", zap.Error(err))
		return []*domain.Report{}
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].SubmittedAt().After(reports[j].SubmittedAt())
	})
	return reports
}

// GetReportsByStation - сообщения по одной станции (из первой страницы GetAllReports)
func (uc *ReportUseCase) GetReportsByStation(ctx context.Context, stationID int64) domain.ReportList {
	all := uc.GetAllReports(ctx, DefaultReportLimit, 0)

	filtered := make([]*domain.Report, 0)
	for _, r := range all.Reports {
		if r.StationID == stationID {
			filtered = append(filtered, r)
		}
	}
	return domain.ReportList{Reports: filtered, Source: all.Source}
}

// GetReportStats - агрегаты по тем же сообщениям, что возвращает GetAllReports
func (uc *ReportUseCase) GetReportStats(ctx context.Context) *domain.ReportStats {
	reports := uc.GetAllReports(ctx, DefaultReportLimit, 0).Reports
	weekAgo := uc.clock.Now().Add(-recentWindow)

	stats := &domain.ReportStats{
		Total:     len(reports),
		ByType:    make(map[string]int),
		ByStation: make(map[string]int),
	}
	for _, r := range reports {
		switch r.Status {
		case domain.ReportStatusPending:
			stats.Pending++
		case domain.ReportStatusResolved:
			stats.Resolved++
		}
		if r.SubmittedAt().After(weekAgo) {
			stats.Recent++
		}

		errorType := r.ErrorType
		if errorType == "" {
			errorType = domain.ErrorTypeOther
		}
		stats.ByType[errorType]++

		title := r.StationTitle
		if title == "" {
			title = domain.UnknownStationTitle
		}
		stats.ByStation[title]++
	}
	return stats
}

// UpdateReportStatus меняет статус сообщения в удалённом хранилище
func (uc *ReportUseCase) UpdateReportStatus(ctx context.Context, id int64, status domain.ReportStatus, adminNote string) (*domain.Report, error) {
	if !domain.IsValidReportStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, domain.ErrInvalidReport)
	}
	if uc.remote == nil {
		uc.logger.Warn("Report status update is unavailable offline", zap.Int64("report_id", id))
		return nil, domain.ErrNotConnected
	}

	report, err := uc.remote.UpdateReportStatus(ctx, id, status, adminNote)
	if err != nil {
		uc.logger.Error("Failed to update report status",
			zap.Int64("report_id", id),
			zap.String("status", string(status)),
			zap.Error(err))
		return nil, err
	}
	uc.logger.Info("Report status updated", zap.Int64("report_id", id), zap.String("status", string(status)))
	return report, nil
}

// SyncFallbackReport досылает локально сохранённое сообщение в удалённое хранилище
func (uc *ReportUseCase) SyncFallbackReport(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	if uc.remote == nil {
		return nil, domain.ErrNotConnected
	}

	pending := *report
	pending.ID = 0
	pending.Timestamp = nil
	pending.Method = ""
	if pending.Status == "" {
		pending.Status = domain.ReportStatusPending
	}

	created, err := uc.remote.InsertReport(ctx, &pending)
	if err != nil {
		uc.metrics.ReportsSynced.WithLabelValues(observability.OutcomeError).Inc()
		return nil, err
	}
	uc.metrics.ReportsSynced.WithLabelValues(observability.OutcomeOK).Inc()
	return created, nil
}
