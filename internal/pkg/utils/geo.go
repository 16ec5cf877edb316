package utils

import (
	"math"
	"sort"

	"github.com/water-station-map/internal/domain"
)

const earthRadiusKm = 6371.0

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// NearbyStations возвращает копии станций с полем distance в пределах radiusKm,
// отсортированные по возрастанию расстояния. Станции с невалидными координатами пропускаются.
func NearbyStations(stations []*domain.Station, lat, lng, radiusKm float64) []*domain.Station {
	result := make([]*domain.Station, 0)
	for _, s := range stations {
		if !s.Position.Valid() {
			continue
		}
		d := HaversineDistance(lat, lng, s.Position.Lat, s.Position.Lng)
		if d <= radiusKm {
			result = append(result, s.WithDistance(d))
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return *result[i].Distance < *result[j].Distance
	})

	return result
}
