package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
	"github.com/water-station-map/internal/pkg/utils"
	"go.uber.org/zap"
)

// Name - имя технологии хранилища
const Name = "local"

// stationRepository хранит станции в памяти, загружая их из JSON-файла.
// Изменения не записываются обратно в файл.
type stationRepository struct {
	path   string
	clock  clockwork.Clock
	logger *zap.Logger

	mu        sync.RWMutex
	stations  []*domain.Station
	connected bool
}

// NewStationRepository создает хранилище поверх JSON-файла path
func NewStationRepository(path string, clock clockwork.Clock, logger *zap.Logger) repository.StationRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &stationRepository{
		path:   path,
		clock:  clock,
		logger: logger,
	}
}

func (r *stationRepository) Name() string {
	return Name
}

// Connect читает файл. Повторный вызов после успешной загрузки ничего не делает.
func (r *stationRepository) Connect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connectLocked()
}

func (r *stationRepository) connectLocked() error {
	if r.connected {
		return nil
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Error("Failed to read local stations file",
			zap.String("path", r.path),
			zap.Error(err))
		r.stations = nil
		return fmt.Errorf("%w: %v", domain.ErrNotConnected, err)
	}

	var stations []*domain.Station
	if err := json.Unmarshal(raw, &stations); err != nil {
		r.logger.Error("Failed to parse local stations file",
			zap.String("path", r.path),
			zap.Error(err))
		r.stations = nil
		return fmt.Errorf("%w: invalid stations file: %v", domain.ErrNotConnected, err)
	}

	r.stations = stations
	r.connected = true
	r.logger.Info("Local station store loaded",
		zap.String("path", r.path),
		zap.Int("stations", len(stations)))
	return nil
}

func (r *stationRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stations = nil
	r.connected = false
	return nil
}

// ensure подключается при первом обращении
func (r *stationRepository) ensure() error {
	r.mu.RLock()
	connected := r.connected
	r.mu.RUnlock()
	if connected {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connectLocked()
}

// filter возвращает копии станций, удовлетворяющих match
func (r *stationRepository) filter(match func(*domain.Station) bool) ([]*domain.Station, error) {
	if err := r.ensure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Station, 0)
	for _, s := range r.stations {
		if match(s) {
			result = append(result, s.Clone())
		}
	}
	return result, nil
}

func (r *stationRepository) GetAllStations(ctx context.Context) ([]*domain.Station, error) {
	return r.filter(func(*domain.Station) bool { return true })
}

func (r *stationRepository) GetStationByID(ctx context.Context, id int64) (*domain.Station, error) {
	if err := r.ensure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.stations[i].Clone(), nil
	}
	return nil, domain.ErrStationNotFound
}

// GetStationsByDistrict - совпадение района или вхождение названия района в оператора
func (r *stationRepository) GetStationsByDistrict(ctx context.Context, district string) ([]*domain.Station, error) {
	return r.filter(func(s *domain.Station) bool {
		return s.District == district ||
			(district != "" && s.Operator != "" && strings.Contains(s.Operator, district))
	})
}

func (r *stationRepository) GetStationsByType(ctx context.Context, stationType string) ([]*domain.Station, error) {
	return r.filter(func(s *domain.Station) bool { return s.Type == stationType })
}

func (r *stationRepository) GetStationsByStatus(ctx context.Context, status string) ([]*domain.Station, error) {
	return r.filter(func(s *domain.Station) bool { return s.Status == status })
}

func (r *stationRepository) SearchStations(ctx context.Context, query string) ([]*domain.Station, error) {
	return r.filter(func(s *domain.Station) bool { return s.MatchesQuery(query, true) })
}

func (r *stationRepository) GetNearbyStations(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Station, error) {
	if err := r.ensure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return utils.NearbyStations(r.stations, lat, lng, radiusKm), nil
}

// AddStation назначает id = max(id)+1 и метки времени
func (r *stationRepository) AddStation(ctx context.Context, station *domain.Station) (*domain.Station, error) {
	if err := r.ensure(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	for _, s := range r.stations {
		if s.ID > maxID {
			maxID = s.ID
		}
	}

	now := r.clock.Now().UTC()
	stored := station.Clone()
	stored.ID = maxID + 1
	stored.Distance = nil
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.stations = append(r.stations, stored)

	return stored.Clone(), nil
}

func (r *stationRepository) UpdateStation(ctx context.Context, id int64, updates domain.StationUpdate) (*domain.Station, error) {
	if err := r.ensure(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrStationNotFound
	}

	updated := r.stations[i].Clone()
	updates.ApplyTo(updated)
	updated.UpdatedAt = domain.NextUpdatedAt(updated.UpdatedAt, r.clock.Now().UTC())
	r.stations[i] = updated

	return updated.Clone(), nil
}

func (r *stationRepository) DeleteStation(ctx context.Context, id int64) error {
	if err := r.ensure(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrStationNotFound
	}
	r.stations = append(r.stations[:i], r.stations[i+1:]...)
	return nil
}

func (r *stationRepository) indexOf(id int64) int {
	for i, s := range r.stations {
		if s.ID == id {
			return i
		}
	}
	return -1
}
