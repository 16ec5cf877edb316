package domain

import (
	"strings"
	"time"
)

const (
	// StationStatusOperating - единственный статус, означающий "работает"
	StationStatusOperating = "운영중"

	// TwentyFourHoursMarker - подстрока в operatingHours для круглосуточных станций
	TwentyFourHoursMarker = "24시간"

	endDateLayout = "2006-01-02"
)

// Station представляет пункт раздачи питьевой воды
type Station struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Address         string    `json:"address"`
	Operator        string    `json:"operator"`
	District        string    `json:"district"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	OperatingHours  string    `json:"operatingHours"`
	OperatingPeriod string    `json:"operatingPeriod"`
	Phone           string    `json:"phone"`
	Position        Position  `json:"position"`
	EndDate         string    `json:"endDate,omitempty"`
	Distance        *float64  `json:"distance,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitzero"`
	UpdatedAt       time.Time `json:"updated_at,omitzero"`
}

// Clone возвращает независимую копию станции
func (s *Station) Clone() *Station {
	c := *s
	if s.Distance != nil {
		d := *s.Distance
		c.Distance = &d
	}
	return &c
}

// WithDistance возвращает копию станции с вычисленным расстоянием (км)
func (s *Station) WithDistance(km float64) *Station {
	c := s.Clone()
	c.Distance = &km
	return c
}

// EndTime разбирает endDate. Дата без времени действует до конца дня.
func (s *Station) EndTime() (time.Time, bool) {
	if s.EndDate == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s.EndDate); err == nil {
		return t, true
	}
	if t, err := time.Parse(endDateLayout, s.EndDate); err == nil {
		return t.Add(24*time.Hour - time.Nanosecond), true
	}
	return time.Time{}, false
}

// IsOperatingAt - работает ли станция в момент now
func (s *Station) IsOperatingAt(now time.Time) bool {
	if end, ok := s.EndTime(); ok && now.After(end) {
		return false
	}
	return s.Status == StationStatusOperating
}

// Is24Hours - круглосуточная ли станция
func (s *Station) Is24Hours() bool {
	return strings.Contains(s.OperatingHours, TwentyFourHoursMarker)
}

// MatchesQuery - регистронезависимый поиск подстроки по названию, адресу и оператору
func (s *Station) MatchesQuery(query string, withOperator bool) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(s.Title), q) ||
		strings.Contains(strings.ToLower(s.Address), q) {
		return true
	}
	return withOperator && strings.Contains(strings.ToLower(s.Operator), q)
}

// StationUpdate - частичное обновление станции. nil-поля не меняются.
type StationUpdate struct {
	Title           *string   `json:"title,omitempty"`
	Address         *string   `json:"address,omitempty"`
	Operator        *string   `json:"operator,omitempty"`
	District        *string   `json:"district,omitempty"`
	Type            *string   `json:"type,omitempty"`
	Status          *string   `json:"status,omitempty"`
	OperatingHours  *string   `json:"operatingHours,omitempty"`
	OperatingPeriod *string   `json:"operatingPeriod,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	Position        *Position `json:"position,omitempty"`
	EndDate         *string   `json:"endDate,omitempty"`
}

// ApplyTo накладывает заданные поля на станцию (shallow merge)
func (u StationUpdate) ApplyTo(s *Station) {
	setString(&s.Title, u.Title)
	setString(&s.Address, u.Address)
	setString(&s.Operator, u.Operator)
	setString(&s.District, u.District)
	setString(&s.Type, u.Type)
	setString(&s.Status, u.Status)
	setString(&s.OperatingHours, u.OperatingHours)
	setString(&s.OperatingPeriod, u.OperatingPeriod)
	setString(&s.Phone, u.Phone)
	setString(&s.EndDate, u.EndDate)
	if u.Position != nil {
		s.Position = *u.Position
	}
}

// IsEmpty - нет ни одного поля для обновления
func (u StationUpdate) IsEmpty() bool {
	return u.Title == nil && u.Address == nil && u.Operator == nil &&
		u.District == nil && u.Type == nil && u.Status == nil &&
		u.OperatingHours == nil && u.OperatingPeriod == nil &&
		u.Phone == nil && u.Position == nil && u.EndDate == nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// StationFilter - критерии фильтрации списка станций
type StationFilter struct {
	District string `json:"district,omitempty"`
	Type     string `json:"type,omitempty"`
	Status   string `json:"status,omitempty"`
	Search   string `json:"search,omitempty"`
}

// NextUpdatedAt возвращает метку обновления, строго большую предыдущей
func NextUpdatedAt(prev, now time.Time) time.Time {
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}
