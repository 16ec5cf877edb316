package repository

import (
	"context"

	"github.com/water-station-map/internal/domain"
)

// DistrictRepository - справочник районов, загружается один раз
type DistrictRepository interface {
	// Load читает справочник; повторный вызов ничего не делает
	Load(ctx context.Context) error

	// GetDistrict возвращает район по названию
	GetDistrict(name string) (*domain.District, bool)

	// GetAllDistricts возвращает все районы в порядке файла
	GetAllDistricts() []*domain.District
}
