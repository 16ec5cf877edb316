package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
	"go.uber.org/zap"
)

const stationColumns = `id, title, address, operator, district, type, status,
	operating_hours, operating_period, phone, lat, lng, end_date, created_at, updated_at`

// stationRow - строка таблицы water_stations
type stationRow struct {
	ID              int64     `db:"id"`
	Title           string    `db:"title"`
	Address         string    `db:"address"`
	Operator        string    `db:"operator"`
	District        string    `db:"district"`
	Type            string    `db:"type"`
	Status          string    `db:"status"`
	OperatingHours  string    `db:"operating_hours"`
	OperatingPeriod string    `db:"operating_period"`
	Phone           string    `db:"phone"`
	Lat             float64   `db:"lat"`
	Lng             float64   `db:"lng"`
	EndDate         string    `db:"end_date"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// nearbyRow - строка с вычисленным расстоянием
type nearbyRow struct {
	stationRow
	Distance float64 `db:"distance"`
}

func (r *stationRow) toDomain() *domain.Station {
	return &domain.Station{
		ID:              r.ID,
		Title:           r.Title,
		Address:         r.Address,
		Operator:        r.Operator,
		District:        r.District,
		Type:            r.Type,
		Status:          r.Status,
		OperatingHours:  r.OperatingHours,
		OperatingPeriod: r.OperatingPeriod,
		Phone:           r.Phone,
		Position:        domain.Position{Lat: r.Lat, Lng: r.Lng},
		EndDate:         r.EndDate,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type stationRepository struct {
	db     *DB
	clock  clockwork.Clock
	logger *zap.Logger
}

// NewStationRepository создает хранилище станций поверх PostgreSQL
func NewStationRepository(db *DB, clock clockwork.Clock, logger *zap.Logger) repository.StationRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &stationRepository{
		db:     db,
		clock:  clock,
		logger: logger,
	}
}

func (r *stationRepository) Name() string {
	return Name
}

func (r *stationRepository) Connect(ctx context.Context) error {
	if err := r.db.Health(ctx); err != nil {
		r.logger.Error("PostgreSQL is not reachable", zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrNotConnected, err)
	}
	r.logger.Info("PostgreSQL station store connected")
	return nil
}

func (r *stationRepository) Close() error {
	return r.db.Close()
}

func (r *stationRepository) selectStations(ctx context.Context, query string, args ...interface{}) ([]*domain.Station, error) {
	var rows []stationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}

	stations := make([]*domain.Station, 0, len(rows))
	for i := range rows {
		stations = append(stations, rows[i].toDomain())
	}
	return stations, nil
}

func (r *stationRepository) GetAllStations(ctx context.Context) ([]*domain.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM water_stations ORDER BY id`
	return r.selectStations(ctx, query)
}

func (r *stationRepository) GetStationByID(ctx context.Context, id int64) (*domain.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM water_stations WHERE id = $1`

	var row stationRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStationNotFound
		}
		return nil, fmt.Errorf("failed to get station: %w", err)
	}
	return row.toDomain(), nil
}

func (r *stationRepository) GetStationsByDistrict(ctx context.Context, district string) ([]*domain.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM water_stations WHERE district = $1 ORDER BY id`
	return r.selectStations(ctx, query, district)
}

func (r *stationRepository) GetStationsByType(ctx context.Context, stationType string) ([]*domain.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM water_stations WHERE type = $1 ORDER BY id`
	return r.selectStations(ctx, query, stationType)
}

func (r *stationRepository) GetStationsByStatus(ctx context.Context, status string) ([]*domain.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM water_stations WHERE status = $1 ORDER BY id`
	return r.selectStations(ctx, query, status)
}

func (r *stationRepository) SearchStations(ctx context.Context, query string) ([]*domain.Station, error) {
	sqlQuery := `SELECT ` + stationColumns + ` FROM water_stations
		WHERE title ILIKE $1 OR address ILIKE $1 OR operator ILIKE $1
		ORDER BY id`
	return r.selectStations(ctx, sqlQuery, "%"+escapeLike(query)+"%")
}

// GetNearbyStations считает расстояние по формуле гаверсинуса на стороне БД
func (r *stationRepository) GetNearbyStations(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Station, error) {
	query := `
		WITH distances AS (
			SELECT ` + stationColumns + `,
				6371 * 2 * ASIN(SQRT(
					POWER(SIN(RADIANS(lat - $1) / 2), 2) +
					COS(RADIANS($1)) * COS(RADIANS(lat)) * POWER(SIN(RADIANS(lng - $2) / 2), 2)
				)) AS distance
			FROM water_stations
		)
		SELECT * FROM distances
		WHERE distance <= $3
		ORDER BY distance, id`

	var rows []nearbyRow
	if err := r.db.SelectContext(ctx, &rows, query, lat, lng, radiusKm); err != nil {
		return nil, fmt.Errorf("failed to query nearby stations: %w", err)
	}

	stations := make([]*domain.Station, 0, len(rows))
	for i := range rows {
		stations = append(stations, rows[i].toDomain().WithDistance(rows[i].Distance))
	}
	return stations, nil
}

func (r *stationRepository) AddStation(ctx context.Context, station *domain.Station) (*domain.Station, error) {
	now := r.clock.Now().UTC()
	query := `
		INSERT INTO water_stations (title, address, operator, district, type, status,
			operating_hours, operating_period, phone, lat, lng, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		RETURNING ` + stationColumns

	var row stationRow
	err := r.db.GetContext(ctx, &row, query,
		station.Title, station.Address, station.Operator, station.District, station.Type, station.Status,
		station.OperatingHours, station.OperatingPeriod, station.Phone,
		station.Position.Lat, station.Position.Lng, station.EndDate, now,
	)
	if err != nil {
		r.logger.Error("Failed to insert station", zap.String("title", station.Title), zap.Error(err))
		return nil, fmt.Errorf("failed to insert station: %w", err)
	}
	return row.toDomain(), nil
}

// UpdateStation читает текущую запись, накладывает изменения и сохраняет её целиком
func (r *stationRepository) UpdateStation(ctx context.Context, id int64, updates domain.StationUpdate) (*domain.Station, error) {
	current, err := r.GetStationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates.ApplyTo(current)
	current.UpdatedAt = domain.NextUpdatedAt(current.UpdatedAt, r.clock.Now().UTC())

	query := `
		UPDATE water_stations SET
			title = $2, address = $3, operator = $4, district = $5, type = $6, status = $7,
			operating_hours = $8, operating_period = $9, phone = $10, lat = $11, lng = $12,
			end_date = $13, updated_at = $14
		WHERE id = $1
		RETURNING ` + stationColumns

	var row stationRow
	err = r.db.GetContext(ctx, &row, query,
		id, current.Title, current.Address, current.Operator, current.District, current.Type, current.Status,
		current.OperatingHours, current.OperatingPeriod, current.Phone,
		current.Position.Lat, current.Position.Lng, current.EndDate, current.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStationNotFound
		}
		r.logger.Error("Failed to update station", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update station: %w", err)
	}
	return row.toDomain(), nil
}

func (r *stationRepository) DeleteStation(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM water_stations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete station: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete station: %w", err)
	}
	if affected == 0 {
		return domain.ErrStationNotFound
	}
	return nil
}
