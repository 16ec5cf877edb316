package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/usecase"
)

// MockDistrictRepository is a mock of DistrictRepository
type MockDistrictRepository struct {
	mock.Mock
}

func (m *MockDistrictRepository) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDistrictRepository) GetDistrict(name string) (*domain.District, bool) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.District), args.Bool(1)
}

func (m *MockDistrictRepository) GetAllDistricts() []*domain.District {
	args := m.Called()
	return args.Get(0).([]*domain.District)
}

var (
	jungguDistrict = &domain.District{Name: "중구", Phone: "02-3396-4114", Website: "https://www.junggu.seoul.kr"}
	jongnoDistrict = &domain.District{Name: "종로구", Phone: "02-2148-1114", Website: "https://www.jongno.go.kr"}
)

func newDistrictUseCase(districts *MockDistrictRepository, stations *MockStationRepository) *usecase.DistrictUseCase {
	stationUC, _ := newStationUseCase(stations)
	return usecase.NewDistrictUseCase(districts, stationUC, zap.NewNop())
}

func TestDistrictUseCase_Lookup(t *testing.T) {
	districts := &MockDistrictRepository{}
	districts.On("GetDistrict", "중구").Return(jungguDistrict, true)
	districts.On("GetDistrict", "없는구").Return(nil, false)
	uc := newDistrictUseCase(districts, &MockStationRepository{})

	d, err := uc.GetDistrict("중구")
	require.NoError(t, err)
	assert.Equal(t, jungguDistrict, d)

	_, err = uc.GetDistrict("없는구")
	assert.ErrorIs(t, err, domain.ErrDistrictNotFound)

	assert.Equal(t, "02-3396-4114", uc.GetDistrictPhone("중구"))
	assert.Equal(t, "https://www.junggu.seoul.kr", uc.GetDistrictWebsite("중구"))
	assert.Empty(t, uc.GetDistrictPhone("없는구"))
	assert.Empty(t, uc.GetDistrictWebsite("없는구"))
}

func TestDistrictUseCase_Initialize(t *testing.T) {
	ctx := context.Background()
	districts := &MockDistrictRepository{}
	districts.On("Load", ctx).Return(errors.New("missing file"))
	uc := newDistrictUseCase(districts, &MockStationRepository{})

	assert.Error(t, uc.Initialize(ctx))
}

func TestDistrictUseCase_GetDistrictStats(t *testing.T) {
	ctx := context.Background()
	districts := &MockDistrictRepository{}
	districts.On("GetAllDistricts").Return([]*domain.District{jungguDistrict, jongnoDistrict})

	stations := &MockStationRepository{}
	stations.On("GetAllStations", ctx).Return([]*domain.Station{
		st(1, "중구", "", ""), st(2, "중구", "", ""), st(3, "강남구", "", ""),
	}, nil)

	stats, status := newDistrictUseCase(districts, stations).GetDistrictStats(ctx)
	assert.Equal(t, domain.QueryStatusOK, status)
	require.Len(t, stats, 2)
	assert.Equal(t, "중구", stats[0].District.Name)
	assert.Equal(t, 2, stats[0].StationCount)
	assert.Equal(t, "종로구", stats[1].District.Name)
	assert.Equal(t, 0, stats[1].StationCount)
}

func TestDistrictUseCase_GetDistrictStats_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	districts := &MockDistrictRepository{}
	districts.On("GetAllDistricts").Return([]*domain.District{jungguDistrict})

	stations := &MockStationRepository{}
	stations.On("GetAllStations", ctx).Return(nil, domain.ErrNotConnected)

	stats, status := newDistrictUseCase(districts, stations).GetDistrictStats(ctx)
	assert.Equal(t, domain.QueryStatusUnavailable, status)
	require.Len(t, stats, 1)
	assert.Equal(t, 0, stats[0].StationCount)
}
