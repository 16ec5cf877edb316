package dto

import (
	"time"

	"github.com/water-station-map/internal/domain"
)

// StationResponse - станция с вычисленными признаками
type StationResponse struct {
	*domain.Station
	IsOperating bool `json:"isOperating"`
	Is24Hours   bool `json:"is24Hours"`
}

// HealthResponse - состояние сервиса
type HealthResponse struct {
	Status     string            `json:"status"`
	Store      string            `json:"store"`
	Time       time.Time         `json:"time"`
	Components map[string]string `json:"components,omitempty"`
}
