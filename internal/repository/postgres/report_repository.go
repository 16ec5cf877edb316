package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
	"go.uber.org/zap"
)

const reportColumns = `id, station_id, station_title, error_type, description, contact_info,
	priority, status, admin_note, created_at, updated_at`

// reportRow - строка таблицы error_reports
type reportRow struct {
	ID           int64          `db:"id"`
	StationID    int64          `db:"station_id"`
	StationTitle string         `db:"station_title"`
	ErrorType    string         `db:"error_type"`
	Description  string         `db:"description"`
	ContactInfo  string         `db:"contact_info"`
	Priority     string         `db:"priority"`
	Status       string         `db:"status"`
	AdminNote    sql.NullString `db:"admin_note"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r *reportRow) toDomain() *domain.Report {
	created, updated := r.CreatedAt, r.UpdatedAt
	return &domain.Report{
		ID:           r.ID,
		StationID:    r.StationID,
		StationTitle: r.StationTitle,
		ErrorType:    r.ErrorType,
		Description:  r.Description,
		ContactInfo:  r.ContactInfo,
		Priority:     domain.Priority(r.Priority),
		Status:       domain.ReportStatus(r.Status),
		AdminNote:    r.AdminNote.String,
		CreatedAt:    &created,
		UpdatedAt:    &updated,
	}
}

type reportRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewReportRepository создает хранилище сообщений об ошибках поверх PostgreSQL
func NewReportRepository(db *DB, logger *zap.Logger) repository.ReportRepository {
	return &reportRepository{
		db:     db,
		logger: logger,
	}
}

func (r *reportRepository) Name() string {
	return Name
}

// Ping проверяет, что таблица error_reports доступна
func (r *reportRepository) Ping(ctx context.Context) error {
	var id int64
	err := r.db.GetContext(ctx, &id, `SELECT id FROM error_reports LIMIT 1`)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", domain.ErrNotConnected, err)
	}
	return nil
}

func (r *reportRepository) InsertReport(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	query := `
		INSERT INTO error_reports (station_id, station_title, error_type, description, contact_info, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + reportColumns

	var row reportRow
	err := r.db.GetContext(ctx, &row, query,
		report.StationID, report.StationTitle, report.ErrorType, report.Description,
		report.ContactInfo, string(report.Priority), string(report.Status),
	)
	if err != nil {
		r.logger.Error("Failed to insert error report",
			zap.Int64("station_id", report.StationID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}
	return row.toDomain(), nil
}

func (r *reportRepository) ListReports(ctx context.Context, limit, offset int) ([]*domain.Report, error) {
	limit, offset = clampLimit(limit, offset)
	query := `SELECT ` + reportColumns + ` FROM error_reports ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*domain.Report, 0, len(rows))
	for i := range rows {
		reports = append(reports, rows[i].toDomain())
	}
	return reports, nil
}

func (r *reportRepository) UpdateReportStatus(ctx context.Context, id int64, status domain.ReportStatus, adminNote string) (*domain.Report, error) {
	query := `
		UPDATE error_reports
		SET status = $2, admin_note = COALESCE($3, admin_note), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reportColumns

	var row reportRow
	if err := r.db.GetContext(ctx, &row, query, id, string(status), nullString(adminNote)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to update report status: %w", err)
	}
	return row.toDomain(), nil
}
