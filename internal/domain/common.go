package domain

// Position - координаты станции (WGS84)
type Position struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

// Valid проверяет, что координаты лежат в допустимых пределах
func (p Position) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// QueryStatus - результат запроса к хранилищу.
// Позволяет отличить "нет совпадений" от "хранилище недоступно".
type QueryStatus string

const (
	QueryStatusOK          QueryStatus = "ok"
	QueryStatusEmpty       QueryStatus = "empty"
	QueryStatusUnavailable QueryStatus = "unavailable"
)

// StationList - список станций вместе со статусом запроса
type StationList struct {
	Stations []*Station `json:"stations"`
	Status   QueryStatus `json:"status"`
}

// NewStationList собирает StationList; при ошибке список пустой, статус unavailable
func NewStationList(stations []*Station, err error) StationList {
	if err != nil {
		return StationList{Stations: []*Station{}, Status: QueryStatusUnavailable}
	}
	if len(stations) == 0 {
		return StationList{Stations: []*Station{}, Status: QueryStatusEmpty}
	}
	return StationList{Stations: stations, Status: QueryStatusOK}
}
