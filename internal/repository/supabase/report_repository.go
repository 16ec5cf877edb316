package supabase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
	"go.uber.org/zap"
)

// reportPayload - тело вставки в error_reports
type reportPayload struct {
	StationID    int64  `json:"station_id"`
	StationTitle string `json:"station_title"`
	ErrorType    string `json:"error_type"`
	Description  string `json:"description"`
	ContactInfo  string `json:"contact_info"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
}

// statusPayload - тело изменения статуса
type statusPayload struct {
	Status    string    `json:"status"`
	AdminNote *string   `json:"admin_note,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type reportRepository struct {
	client *Client
	clock  clockwork.Clock
	logger *zap.Logger
}

// NewReportRepository создает хранилище сообщений поверх таблицы error_reports
func NewReportRepository(client *Client, clock clockwork.Clock, logger *zap.Logger) repository.ReportRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &reportRepository{
		client: client,
		clock:  clock,
		logger: logger,
	}
}

func (r *reportRepository) Name() string {
	return Name
}

// Ping - запрос error_reports?select=id&limit=1
func (r *reportRepository) Ping(ctx context.Context) error {
	resp, err := r.client.request(ctx).
		SetQueryParams(map[string]string{"select": "id", "limit": "1"}).
		Get("/" + tableReports)
	if err := r.client.check("ping", resp, err); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotConnected, err)
	}
	return nil
}

func (r *reportRepository) InsertReport(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	payload := reportPayload{
		StationID:    report.StationID,
		StationTitle: report.StationTitle,
		ErrorType:    report.ErrorType,
		Description:  report.Description,
		ContactInfo:  report.ContactInfo,
		Priority:     string(report.Priority),
		Status:       string(report.Status),
	}

	var created []*domain.Report
	resp, err := r.client.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody([]reportPayload{payload}).
		SetResult(&created).
		Post("/" + tableReports)
	if err := r.client.check("insert report", resp, err); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("supabase insert report: empty response")
	}
	return created[0], nil
}

func (r *reportRepository) ListReports(ctx context.Context, limit, offset int) ([]*domain.Report, error) {
	var reports []*domain.Report
	resp, err := r.client.request(ctx).
		SetQueryParams(map[string]string{
			"select": "*",
			"order":  "created_at.desc",
			"limit":  strconv.Itoa(limit),
			"offset": strconv.Itoa(offset),
		}).
		SetResult(&reports).
		Get("/" + tableReports)
	if err := r.client.check("list reports", resp, err); err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []*domain.Report{}
	}
	return reports, nil
}

func (r *reportRepository) UpdateReportStatus(ctx context.Context, id int64, status domain.ReportStatus, adminNote string) (*domain.Report, error) {
	payload := statusPayload{Status: string(status), UpdatedAt: r.clock.Now().UTC()}
	if adminNote != "" {
		payload.AdminNote = &adminNote
	}

	var updated []*domain.Report
	resp, err := r.client.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", eqID(id)).
		SetBody(payload).
		SetResult(&updated).
		Patch("/" + tableReports)
	if err := r.client.check("update report status", resp, err); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, domain.ErrReportNotFound
	}
	return updated[0], nil
}
