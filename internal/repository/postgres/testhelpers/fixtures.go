package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// StationFixture - минимальный набор полей станции для тестовых данных
type StationFixture struct {
	Title    string
	Address  string
	Operator string
	District string
	Type     string
	Status   string
	Lat      float64
	Lng      float64
}

// DefaultStations - станции вокруг Сеульской мэрии (37.5665, 126.9780)
var DefaultStations = []StationFixture{
	{Title: "서울시청", Address: "서울 중구 세종대로 110", Operator: "중구청", District: "중구", Type: "급수차", Status: "운영중", Lat: 37.5665, Lng: 126.9780},
	{Title: "광화문광장", Address: "서울 종로구 세종대로 172", Operator: "종로구청", District: "종로구", Type: "음수대", Status: "운영중", Lat: 37.5720, Lng: 126.9769},
	{Title: "강남역", Address: "서울 강남구 강남대로 396", Operator: "강남구청", District: "강남구", Type: "음수대", Status: "운영종료", Lat: 37.4979, Lng: 127.0276},
}

// SeedStations вставляет станции и возвращает их id в порядке вставки
func SeedStations(ctx context.Context, db *sqlx.DB, stations []StationFixture) ([]int64, error) {
	ids := make([]int64, 0, len(stations))
	for _, s := range stations {
		var id int64
		err := db.GetContext(ctx, &id, `
			INSERT INTO water_stations (title, address, operator, district, type, status, lat, lng)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			s.Title, s.Address, s.Operator, s.District, s.Type, s.Status, s.Lat, s.Lng,
		)
		if err != nil {
			return nil, fmt.Errorf("seed station %s: %w", s.Title, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
