package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
)

// DistrictUseCase - справочник районных администраций
type DistrictUseCase struct {
	districts repository.DistrictRepository
	stations  *StationUseCase
	logger    *zap.Logger
}

// NewDistrictUseCase - создание нового DistrictUseCase
func NewDistrictUseCase(districts repository.DistrictRepository, stations *StationUseCase, logger *zap.Logger) *DistrictUseCase {
	return &DistrictUseCase{
		districts: districts,
		stations:  stations,
		logger:    logger,
	}
}

// Initialize загружает справочник. Без него сервис продолжает работу с пустым списком.
func (uc *DistrictUseCase) Initialize(ctx context.Context) error {
	if err := uc.districts.Load(ctx); err != nil {
		uc.logger.Error("Failed to load districts", zap.Error(err))
		return err
	}
	return nil
}

// GetDistrict возвращает район по названию
func (uc *DistrictUseCase) GetDistrict(name string) (*domain.District, error) {
	d, ok := uc.districts.GetDistrict(name)
	if !ok {
		return nil, domain.ErrDistrictNotFound
	}
	return d, nil
}

// GetDistrictPhone - телефон района или пустая строка
func (uc *DistrictUseCase) GetDistrictPhone(name string) string {
	if d, ok := uc.districts.GetDistrict(name); ok {
		return d.Phone
	}
	return ""
}

// GetDistrictWebsite - сайт района или пустая строка
func (uc *DistrictUseCase) GetDistrictWebsite(name string) string {
	if d, ok := uc.districts.GetDistrict(name); ok {
		return d.Website
	}
	return ""
}

func (uc *DistrictUseCase) GetAllDistricts() []*domain.District {
	return uc.districts.GetAllDistricts()
}

// GetDistrictStats - число станций в каждом районе справочника (точное совпадение district)
func (uc *DistrictUseCase) GetDistrictStats(ctx context.Context) ([]domain.DistrictStat, domain.QueryStatus) {
	list := uc.stations.GetAllStations(ctx)

	counts := make(map[string]int, len(list.Stations))
	for _, s := range list.Stations {
		counts[s.District]++
	}

	districts := uc.districts.GetAllDistricts()
	stats := make([]domain.DistrictStat, 0, len(districts))
	for _, d := range districts {
		stats = append(stats, domain.DistrictStat{
			District:     d,
			StationCount: counts[d.Name],
		})
	}
	return stats, list.Status
}
