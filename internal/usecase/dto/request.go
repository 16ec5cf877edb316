package dto

import (
	"encoding/json"

	"github.com/water-station-map/internal/domain"
)

// StationFilterRequest - фильтры списка станций (query-параметры)
type StationFilterRequest struct {
	District string `query:"district" validate:"omitempty,max=50"`
	Type     string `query:"type" validate:"omitempty,max=50"`
	Status   string `query:"status" validate:"omitempty,max=50"`
	Search   string `query:"search" validate:"omitempty,max=100"`
}

// ToDomain - фильтр для StationUseCase
func (r StationFilterRequest) ToDomain() domain.StationFilter {
	return domain.StationFilter{
		District: r.District,
		Type:     r.Type,
		Status:   r.Status,
		Search:   r.Search,
	}
}

// NearbyStationsRequest - поиск станций в радиусе
type NearbyStationsRequest struct {
	Lat      *float64 `query:"lat" validate:"required,min=-90,max=90"`
	Lng      *float64 `query:"lng" validate:"required,min=-180,max=180"`
	RadiusKm float64  `query:"radius" validate:"min=0,max=100"`
}

// PositionRequest - координаты станции
type PositionRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng *float64 `json:"lng" validate:"required,min=-180,max=180"`
}

// CreateStationRequest - новая станция
type CreateStationRequest struct {
	Title           string           `json:"title" validate:"required,max=200"`
	Address         string           `json:"address" validate:"max=300"`
	Operator        string           `json:"operator" validate:"max=200"`
	District        string           `json:"district" validate:"max=50"`
	Type            string           `json:"type" validate:"max=50"`
	Status          string           `json:"status" validate:"max=50"`
	OperatingHours  string           `json:"operatingHours" validate:"max=100"`
	OperatingPeriod string           `json:"operatingPeriod" validate:"max=100"`
	Phone           string           `json:"phone" validate:"max=50"`
	Position        *PositionRequest `json:"position" validate:"required"`
	EndDate         string           `json:"endDate" validate:"max=40"`
}

// ToDomain - станция без id и меток времени
func (r CreateStationRequest) ToDomain() *domain.Station {
	return &domain.Station{
		Title:           r.Title,
		Address:         r.Address,
		Operator:        r.Operator,
		District:        r.District,
		Type:            r.Type,
		Status:          r.Status,
		OperatingHours:  r.OperatingHours,
		OperatingPeriod: r.OperatingPeriod,
		Phone:           r.Phone,
		Position:        domain.Position{Lat: *r.Position.Lat, Lng: *r.Position.Lng},
		EndDate:         r.EndDate,
	}
}

// UpdateStationRequest - частичное обновление, отсутствующие поля не меняются
type UpdateStationRequest struct {
	Title           *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Address         *string          `json:"address" validate:"omitempty,max=300"`
	Operator        *string          `json:"operator" validate:"omitempty,max=200"`
	District        *string          `json:"district" validate:"omitempty,max=50"`
	Type            *string          `json:"type" validate:"omitempty,max=50"`
	Status          *string          `json:"status" validate:"omitempty,max=50"`
	OperatingHours  *string          `json:"operatingHours" validate:"omitempty,max=100"`
	OperatingPeriod *string          `json:"operatingPeriod" validate:"omitempty,max=100"`
	Phone           *string          `json:"phone" validate:"omitempty,max=50"`
	Position        *PositionRequest `json:"position" validate:"omitempty"`
	EndDate         *string          `json:"endDate" validate:"omitempty,max=40"`
}

func (r UpdateStationRequest) ToDomain() domain.StationUpdate {
	u := domain.StationUpdate{
		Title:           r.Title,
		Address:         r.Address,
		Operator:        r.Operator,
		District:        r.District,
		Type:            r.Type,
		Status:          r.Status,
		OperatingHours:  r.OperatingHours,
		OperatingPeriod: r.OperatingPeriod,
		Phone:           r.Phone,
		EndDate:         r.EndDate,
	}
	if r.Position != nil {
		u.Position = &domain.Position{Lat: *r.Position.Lat, Lng: *r.Position.Lng}
	}
	return u
}

// SubmitReportRequest - форма сообщения об ошибке.
// stationId принимается и числом, и строкой.
type SubmitReportRequest struct {
	StationID    json.Number `json:"stationId" validate:"required,numeric"`
	StationTitle string      `json:"stationTitle" validate:"max=200"`
	ErrorType    string      `json:"errorType" validate:"required,max=50"`
	Description  string      `json:"description" validate:"max=2000"`
	ContactInfo  string      `json:"contactInfo" validate:"max=200"`
}

func (r SubmitReportRequest) ToDomain() domain.ReportSubmission {
	return domain.ReportSubmission{
		StationID:    r.StationID.String(),
		StationTitle: r.StationTitle,
		ErrorType:    r.ErrorType,
		Description:  r.Description,
		ContactInfo:  r.ContactInfo,
	}
}

// ListReportsRequest - пагинация списка сообщений
type ListReportsRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=1000"`
	Offset int `query:"offset" validate:"min=0"`
}

// UpdateReportStatusRequest - смена статуса сообщения администратором
type UpdateReportStatusRequest struct {
	Status    string `json:"status" validate:"required,oneof=pending in_progress resolved rejected"`
	AdminNote string `json:"adminNote" validate:"max=1000"`
}
