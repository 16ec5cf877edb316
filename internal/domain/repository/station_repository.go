package repository

import (
	"context"

	"github.com/water-station-map/internal/domain"
)

// StationRepository - общий контракт хранилища станций.
// Реализации: local (JSON-файл), postgres, supabase, firestore.
//
// Ошибки: domain.ErrNotConnected если хранилище недоступно,
// domain.ErrStationNotFound для отсутствующего id,
// domain.ErrUnsupported для неподдерживаемых операций.
type StationRepository interface {
	// Name возвращает имя технологии хранилища
	Name() string

	// Connect устанавливает или проверяет соединение
	Connect(ctx context.Context) error

	// Close освобождает ресурсы
	Close() error

	// GetAllStations возвращает все станции в порядке хранилища
	GetAllStations(ctx context.Context) ([]*domain.Station, error)

	// GetStationByID возвращает станцию по id
	GetStationByID(ctx context.Context, id int64) (*domain.Station, error)

	// GetStationsByDistrict - точное совпадение по району
	GetStationsByDistrict(ctx context.Context, district string) ([]*domain.Station, error)

	// GetStationsByType - точное совпадение по типу
	GetStationsByType(ctx context.Context, stationType string) ([]*domain.Station, error)

	// GetStationsByStatus - точное совпадение по статусу
	GetStationsByStatus(ctx context.Context, status string) ([]*domain.Station, error)

	// SearchStations - регистронезависимый поиск подстроки (минимум title и address)
	SearchStations(ctx context.Context, query string) ([]*domain.Station, error)

	// GetNearbyStations возвращает станции в радиусе radiusKm, отсортированные по расстоянию
	GetNearbyStations(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Station, error)

	// AddStation добавляет станцию; id и метки времени назначает хранилище
	AddStation(ctx context.Context, station *domain.Station) (*domain.Station, error)

	// UpdateStation накладывает updates на существующую станцию
	UpdateStation(ctx context.Context, id int64, updates domain.StationUpdate) (*domain.Station, error)

	// DeleteStation удаляет станцию
	DeleteStation(ctx context.Context, id int64) error
}
