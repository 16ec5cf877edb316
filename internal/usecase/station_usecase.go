package usecase

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
	"github.com/water-station-map/internal/observability"
)

// DefaultNearbyRadiusKm - радиус поиска по умолчанию
const DefaultNearbyRadiusKm = 5.0

// StationUseCase - справочник станций поверх одного хранилища.
// Ошибки чтения логируются и превращаются в пустой список со статусом unavailable.
type StationUseCase struct {
	repo    repository.StationRepository
	metrics *observability.Metrics
	clock   clockwork.Clock
	logger  *zap.Logger
}

// NewStationUseCase - создание нового StationUseCase
func NewStationUseCase(
	repo repository.StationRepository,
	metrics *observability.Metrics,
	clock clockwork.Clock,
	logger *zap.Logger,
) *StationUseCase {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StationUseCase{
		repo:    repo,
		metrics: metrics,
		clock:   clock,
		logger:  logger.With(zap.String("store", repo.Name())),
	}
}

// Initialize подключает хранилище
func (uc *StationUseCase) Initialize(ctx context.Context) error {
	err := uc.repo.Connect(ctx)
	if err != nil {
		uc.metrics.StoreConnected.Set(0)
		uc.logger.Error("Failed to connect station store", zap.Error(err))
		return err
	}
	uc.metrics.StoreConnected.Set(1)
	uc.logger.Info("Station store connected")
	return nil
}

// StoreName - имя технологии хранилища
func (uc *StationUseCase) StoreName() string {
	return uc.repo.Name()
}

// GetAllStations - все станции
func (uc *StationUseCase) GetAllStations(ctx context.Context) domain.StationList {
	stations, err := uc.observe("get_all", func() ([]*domain.Station, error) {
		return uc.repo.GetAllStations(ctx)
	})
	return domain.NewStationList(stations, err)
}

// GetStationsByFilter применяет фильтры в порядке: district (заменяет набор),
// type и status (сужают), search (снова заменяет набор)
func (uc *StationUseCase) GetStationsByFilter(ctx context.Context, filter domain.StationFilter) domain.StationList {
	var (
		stations []*domain.Station
		err      error
	)

	if filter.District != "" {
		stations, err = uc.observe("by_district", func() ([]*domain.Station, error) {
			return uc.repo.GetStationsByDistrict(ctx, filter.District)
		})
	} else {
		stations, err = uc.observe("get_all", func() ([]*domain.Station, error) {
			return uc.repo.GetAllStations(ctx)
		})
	}
	if err != nil {
		return domain.NewStationList(nil, err)
	}

	if filter.Type != "" {
		stations = narrow(stations, func(s *domain.Station) bool { return s.Type == filter.Type })
	}
	if filter.Status != "" {
		stations = narrow(stations, func(s *domain.Station) bool { return s.Status == filter.Status })
	}

	if filter.Search != "" {
		stations, err = uc.observe("search", func() ([]*domain.Station, error) {
			return uc.repo.SearchStations(ctx, filter.Search)
		})
	}

	return domain.NewStationList(stations, err)
}

// GetNearbyStations - станции в радиусе radiusKm, ближайшие первыми.
// Отрицательный радиус заменяется значением по умолчанию (5 км).
func (uc *StationUseCase) GetNearbyStations(ctx context.Context, location domain.Position, radiusKm float64) domain.StationList {
	if radiusKm < 0 {
		radiusKm = DefaultNearbyRadiusKm
	}
	stations, err := uc.observe("nearby", func() ([]*domain.Station, error) {
		return uc.repo.GetNearbyStations(ctx, location.Lat, location.Lng, radiusKm)
	})
	return domain.NewStationList(stations, err)
}

// GetStation возвращает станцию по id
func (uc *StationUseCase) GetStation(ctx context.Context, id int64) (*domain.Station, error) {
	station, err := uc.repo.GetStationByID(ctx, id)
	if err != nil {
		uc.logger.Warn("Failed to get station", zap.Int64("station_id", id), zap.Error(err))
		return nil, err
	}
	return station, nil
}

// AddStation добавляет станцию. Координаты обязательны.
func (uc *StationUseCase) AddStation(ctx context.Context, station *domain.Station) (*domain.Station, error) {
	if !station.Position.Valid() {
		return nil, domain.ErrInvalidStation
	}
	if station.Status == "" {
		station.Status = domain.StationStatusOperating
	}

	created, err := uc.repo.AddStation(ctx, station)
	if err != nil {
		uc.logger.Error("Failed to add station", zap.String("title", station.Title), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("Station added", zap.Int64("station_id", created.ID))
	return created, nil
}

// UpdateStation накладывает изменения на станцию
func (uc *StationUseCase) UpdateStation(ctx context.Context, id int64, updates domain.StationUpdate) (*domain.Station, error) {
	if updates.Position != nil && !updates.Position.Valid() {
		return nil, domain.ErrInvalidStation
	}

	updated, err := uc.repo.UpdateStation(ctx, id, updates)
	if err != nil {
		uc.logger.Error("Failed to update station", zap.Int64("station_id", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// DeleteStation удаляет станцию
func (uc *StationUseCase) DeleteStation(ctx context.Context, id int64) error {
	if err := uc.repo.DeleteStation(ctx, id); err != nil {
		uc.logger.Error("Failed to delete station", zap.Int64("station_id", id), zap.Error(err))
		return err
	}
	uc.logger.Info("Station deleted", zap.Int64("station_id", id))
	return nil
}

// IsOperating - станция работает сейчас: статус 운영중 и endDate не в прошлом
func (uc *StationUseCase) IsOperating(station *domain.Station) bool {
	return station.IsOperatingAt(uc.clock.Now())
}

// Is24Hours - круглосуточная ли станция
func (uc *StationUseCase) Is24Hours(station *domain.Station) bool {
	return station.Is24Hours()
}

// observe выполняет запрос к хранилищу и пишет метрики и лог ошибки
func (uc *StationUseCase) observe(op string, fn func() ([]*domain.Station, error)) ([]*domain.Station, error) {
	start := time.Now()
	stations, err := fn()
	store := uc.repo.Name()
	uc.metrics.StoreDuration.WithLabelValues(store, op).Observe(time.Since(start).Seconds())

	outcome := observability.OutcomeOK
	switch {
	case err != nil:
		outcome = observability.OutcomeUnavailable
		uc.logger.Error("Station store query failed", zap.String("operation", op), zap.Error(err))
	case len(stations) == 0:
		outcome = observability.OutcomeEmpty
	}
	uc.metrics.StoreOperations.WithLabelValues(store, op, outcome).Inc()

	return stations, err
}

func narrow(stations []*domain.Station, keep func(*domain.Station) bool) []*domain.Station {
	out := make([]*domain.Station, 0, len(stations))
	for _, s := range stations {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
