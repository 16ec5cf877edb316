package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/water-station-map/internal/domain"
)

// MockStationRepository is a mock of StationRepository
type MockStationRepository struct {
	mock.Mock
}

func (m *MockStationRepository) Name() string {
	return "mock"
}

func (m *MockStationRepository) Connect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStationRepository) Close() error {
	return nil
}

func stations(args mock.Arguments) ([]*domain.Station, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Station), args.Error(1)
}

func station(args mock.Arguments) (*domain.Station, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationRepository) GetAllStations(ctx context.Context) ([]*domain.Station, error) {
	return stations(m.Called(ctx))
}

func (m *MockStationRepository) GetStationByID(ctx context.Context, id int64) (*domain.Station, error) {
	return station(m.Called(ctx, id))
}

func (m *MockStationRepository) GetStationsByDistrict(ctx context.Context, district string) ([]*domain.Station, error) {
	return stations(m.Called(ctx, district))
}

func (m *MockStationRepository) GetStationsByType(ctx context.Context, stationType string) ([]*domain.Station, error) {
	return stations(m.Called(ctx, stationType))
}

func (m *MockStationRepository) GetStationsByStatus(ctx context.Context, status string) ([]*domain.Station, error) {
	return stations(m.Called(ctx, status))
}

func (m *MockStationRepository) SearchStations(ctx context.Context, query string) ([]*domain.Station, error) {
	return stations(m.Called(ctx, query))
}

func (m *MockStationRepository) GetNearbyStations(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Station, error) {
	return stations(m.Called(ctx, lat, lng, radiusKm))
}

func (m *MockStationRepository) AddStation(ctx context.Context, s *domain.Station) (*domain.Station, error) {
	return station(m.Called(ctx, s))
}

func (m *MockStationRepository) UpdateStation(ctx context.Context, id int64, updates domain.StationUpdate) (*domain.Station, error) {
	return station(m.Called(ctx, id, updates))
}

func (m *MockStationRepository) DeleteStation(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReportRepository is a mock of ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Name() string {
	return "mock"
}

func (m *MockReportRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReportRepository) InsertReport(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) ListReports(ctx context.Context, limit, offset int) ([]*domain.Report, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Report), args.Error(1)
}

func (m *MockReportRepository) UpdateReportStatus(ctx context.Context, id int64, status domain.ReportStatus, adminNote string) (*domain.Report, error) {
	args := m.Called(ctx, id, status, adminNote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}
