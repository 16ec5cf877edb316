package supabase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
	"github.com/water-station-map/internal/pkg/utils"
	"go.uber.org/zap"
)

// stationRecord - строка water_stations в формате PostgREST
type stationRecord struct {
	ID              int64      `json:"id,omitempty"`
	Title           string     `json:"title"`
	Address         string     `json:"address"`
	Operator        string     `json:"operator"`
	District        string     `json:"district"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	OperatingHours  string     `json:"operating_hours"`
	OperatingPeriod string     `json:"operating_period"`
	Phone           string     `json:"phone"`
	Lat             float64    `json:"lat"`
	Lng             float64    `json:"lng"`
	EndDate         string     `json:"end_date"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func newStationRecord(s *domain.Station) stationRecord {
	rec := stationRecord{
		Title:           s.Title,
		Address:         s.Address,
		Operator:        s.Operator,
		District:        s.District,
		Type:            s.Type,
		Status:          s.Status,
		OperatingHours:  s.OperatingHours,
		OperatingPeriod: s.OperatingPeriod,
		Phone:           s.Phone,
		Lat:             s.Position.Lat,
		Lng:             s.Position.Lng,
		EndDate:         s.EndDate,
	}
	if !s.CreatedAt.IsZero() {
		created := s.CreatedAt
		rec.CreatedAt = &created
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		rec.UpdatedAt = &updated
	}
	return rec
}

func (r *stationRecord) toDomain() *domain.Station {
	s := &domain.Station{
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
	}
	if r.CreatedAt != nil {
		s.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		s.UpdatedAt = *r.UpdatedAt
	}
	return s
}

func toDomainList(records []stationRecord) []*domain.Station {
	stations := make([]*domain.Station, 0, len(records))
	for i := range records {
		stations = append(stations, records[i].toDomain())
	}
	return stations
}

type stationRepository struct {
	client *Client
	clock  clockwork.Clock
	logger *zap.Logger

	mu        sync.RWMutex
	connected bool
}

// NewStationRepository создает хранилище станций поверх таблицы water_stations
func NewStationRepository(client *Client, clock clockwork.Clock, logger *zap.Logger) repository.StationRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &stationRepository{
		client: client,
		clock:  clock,
		logger: logger,
	}
}

func (r *stationRepository) Name() string {
	return Name
}

func (r *stationRepository) Connect(ctx context.Context) error {
	resp, err := r.client.request(ctx).
		SetQueryParams(map[string]string{"select": "id", "limit": "1"}).
		Get("/" + tableStations)
	if err := r.client.check("connect", resp, err); err != nil {
		r.setConnected(false)
		return fmt.Errorf("%w: %v", domain.ErrNotConnected, err)
	}

	r.setConnected(true)
	r.logger.Info("Supabase station store connected")
	return nil
}

func (r *stationRepository) Close() error {
	r.setConnected(false)
	return nil
}

func (r *stationRepository) setConnected(v bool) {
	r.mu.Lock()
	r.connected = v
	r.mu.Unlock()
}

// ensure повторяет проверку подключения, пока хранилище не ответит
func (r *stationRepository) ensure(ctx context.Context) error {
	r.mu.RLock()
	connected := r.connected
	r.mu.RUnlock()
	if connected {
		return nil
	}
	return r.Connect(ctx)
}

// list выполняет GET по water_stations с дополнительными параметрами
func (r *stationRepository) list(ctx context.Context, op string, params map[string]string) ([]*domain.Station, error) {
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}

	query := map[string]string{"select": "*", "order": "id.asc"}
	for k, v := range params {
		query[k] = v
	}

	var records []stationRecord
	resp, err := r.client.request(ctx).
		SetQueryParams(query).
		SetResult(&records).
		Get("/" + tableStations)
	if err := r.client.check(op, resp, err); err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *stationRepository) GetAllStations(ctx context.Context) ([]*domain.Station, error) {
	return r.list(ctx, "get all stations", nil)
}

func (r *stationRepository) GetStationByID(ctx context.Context, id int64) (*domain.Station, error) {
	stations, err := r.list(ctx, "get station", map[string]string{"id": eqID(id)})
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		return nil, domain.ErrStationNotFound
	}
	return stations[0], nil
}

func (r *stationRepository) GetStationsByDistrict(ctx context.Context, district string) ([]*domain.Station, error) {
	return r.list(ctx, "get stations by district", map[string]string{"district": eq(district)})
}

func (r *stationRepository) GetStationsByType(ctx context.Context, stationType string) ([]*domain.Station, error) {
	return r.list(ctx, "get stations by type", map[string]string{"type": eq(stationType)})
}

func (r *stationRepository) GetStationsByStatus(ctx context.Context, status string) ([]*domain.Station, error) {
	return r.list(ctx, "get stations by status", map[string]string{"status": eq(status)})
}

func (r *stationRepository) SearchStations(ctx context.Context, query string) ([]*domain.Station, error) {
	return r.list(ctx, "search stations", map[string]string{
		"or": ilikeAny(query, "title", "address", "operator"),
	})
}

// GetNearbyStations загружает таблицу и фильтрует по расстоянию на клиенте
func (r *stationRepository) GetNearbyStations(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Station, error) {
	all, err := r.GetAllStations(ctx)
	if err != nil {
		return nil, err
	}
	return utils.NearbyStations(all, lat, lng, radiusKm), nil
}

func (r *stationRepository) AddStation(ctx context.Context, station *domain.Station) (*domain.Station, error) {
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}

	now := r.clock.Now().UTC()
	rec := newStationRecord(station)
	rec.ID = 0
	rec.CreatedAt = &now
	rec.UpdatedAt = &now

	var created []stationRecord
	resp, err := r.client.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody([]stationRecord{rec}).
		SetResult(&created).
		Post("/" + tableStations)
	if err := r.client.check("add station", resp, err); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("supabase add station: empty response")
	}
	return created[0].toDomain(), nil
}

// UpdateStation читает текущую запись, накладывает изменения и отправляет её целиком
func (r *stationRepository) UpdateStation(ctx context.Context, id int64, updates domain.StationUpdate) (*domain.Station, error) {
	current, err := r.GetStationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates.ApplyTo(current)
	current.UpdatedAt = domain.NextUpdatedAt(current.UpdatedAt, r.clock.Now().UTC())
	rec := newStationRecord(current)
	rec.ID = 0
	rec.CreatedAt = nil

	var updated []stationRecord
	resp, err := r.client.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", eqID(id)).
		SetBody(rec).
		SetResult(&updated).
		Patch("/" + tableStations)
	if err := r.client.check("update station", resp, err); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, domain.ErrStationNotFound
	}
	return updated[0].toDomain(), nil
}

func (r *stationRepository) DeleteStation(ctx context.Context, id int64) error {
	if err := r.ensure(ctx); err != nil {
		return err
	}

	var deleted []stationRecord
	resp, err := r.client.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", eqID(id)).
		SetResult(&deleted).
		Delete("/" + tableStations)
	if err := r.client.check("delete station", resp, err); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return domain.ErrStationNotFound
	}
	return nil
}
