package repository

import (
	"context"

	"github.com/water-station-map/internal/domain"
)

// ReportRepository - удалённое хранилище сообщений об ошибках (таблица error_reports)
type ReportRepository interface {
	// Name возвращает имя технологии хранилища
	Name() string

	// Ping проверяет доступность таблицы error_reports
	Ping(ctx context.Context) error

	// InsertReport сохраняет сообщение и возвращает созданную запись
	InsertReport(ctx context.Context, report *domain.Report) (*domain.Report, error)

	// ListReports - сообщения по убыванию created_at
	ListReports(ctx context.Context, limit, offset int) ([]*domain.Report, error)

	// UpdateReportStatus меняет статус и заметку администратора
	UpdateReportStatus(ctx context.Context, id int64, status domain.ReportStatus, adminNote string) (*domain.Report, error)
}

// FallbackLog - ограниченный локальный журнал сообщений.
// При переполнении удаляются самые старые записи.
type FallbackLog interface {
	// Append добавляет запись в конец журнала
	Append(ctx context.Context, report *domain.Report) error

	// List возвращает записи в порядке добавления
	List(ctx context.Context) ([]*domain.Report, error)

	// Len - текущее количество записей
	Len(ctx context.Context) (int, error)
}
