package firestore

import (
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/water-station-map/internal/domain"
)

// value - типизированное значение Firestore REST API
type value struct {
	StringValue    *string   `json:"stringValue,omitempty"`
	IntegerValue   *string   `json:"integerValue,omitempty"`
	DoubleValue    *float64  `json:"doubleValue,omitempty"`
	BooleanValue   *bool     `json:"booleanValue,omitempty"`
	TimestampValue *string   `json:"timestampValue,omitempty"`
	NullValue      *string   `json:"nullValue,omitempty"`
	MapValue       *mapValue `json:"mapValue,omitempty"`
}

type mapValue struct {
	Fields map[string]value `json:"fields"`
}

// document - документ Firestore
type document struct {
	Name       string           `json:"name,omitempty"`
	Fields     map[string]value `json:"fields"`
	CreateTime string           `json:"createTime,omitempty"`
	UpdateTime string           `json:"updateTime,omitempty"`
}

func stringVal(s string) value {
	return value{StringValue: &s}
}

func doubleVal(f float64) value {
	return value{DoubleValue: &f}
}

func timestampVal(t time.Time) value {
	s := t.UTC().Format(time.RFC3339Nano)
	return value{TimestampValue: &s}
}

// asString читает строковое значение; отсутствующее поле - пустая строка
func (v value) asString() string {
	switch {
	case v.StringValue != nil:
		return *v.StringValue
	case v.IntegerValue != nil:
		return *v.IntegerValue
	case v.DoubleValue != nil:
		return strconv.FormatFloat(*v.DoubleValue, 'f', -1, 64)
	}
	return ""
}

// asFloat принимает doubleValue и integerValue
func (v value) asFloat() (float64, bool) {
	switch {
	case v.DoubleValue != nil:
		return *v.DoubleValue, true
	case v.IntegerValue != nil:
		f, err := strconv.ParseFloat(*v.IntegerValue, 64)
		return f, err == nil
	}
	return 0, false
}

func (v value) asTime() time.Time {
	if v.TimestampValue == nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, *v.TimestampValue)
	if err != nil {
		return time.Time{}
	}
	return t
}

// encodeStation превращает станцию в поля документа. id хранится в имени документа.
func encodeStation(s *domain.Station) map[string]value {
	fields := map[string]value{
		"title":           stringVal(s.Title),
		"address":         stringVal(s.Address),
		"operator":        stringVal(s.Operator),
		"district":        stringVal(s.District),
		"type":            stringVal(s.Type),
		"status":          stringVal(s.Status),
		"operatingHours":  stringVal(s.OperatingHours),
		"operatingPeriod": stringVal(s.OperatingPeriod),
		"phone":           stringVal(s.Phone),
		"position": {MapValue: &mapValue{Fields: map[string]value{
			"lat": doubleVal(s.Position.Lat),
			"lng": doubleVal(s.Position.Lng),
		}}},
	}
	if s.EndDate != "" {
		fields["endDate"] = stringVal(s.EndDate)
	}
	if !s.CreatedAt.IsZero() {
		fields["created_at"] = timestampVal(s.CreatedAt)
	}
	if !s.UpdatedAt.IsZero() {
		fields["updated_at"] = timestampVal(s.UpdatedAt)
	}
	return fields
}

// decodeStation восстанавливает станцию из документа; id берется из последнего сегмента имени
func decodeStation(doc *document) (*domain.Station, error) {
	id, err := strconv.ParseInt(path.Base(doc.Name), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("document %q has non-numeric id", doc.Name)
	}

	f := doc.Fields
	s := &domain.Station{
		ID:              id,
		Title:           f["title"].asString(),
		Address:         f["address"].asString(),
		Operator:        f["operator"].asString(),
		District:        f["district"].asString(),
		Type:            f["type"].asString(),
		Status:          f["status"].asString(),
		OperatingHours:  f["operatingHours"].asString(),
		OperatingPeriod: f["operatingPeriod"].asString(),
		Phone:           f["phone"].asString(),
		EndDate:         f["endDate"].asString(),
		CreatedAt:       f["created_at"].asTime(),
		UpdatedAt:       f["updated_at"].asTime(),
	}

	if pos := f["position"].MapValue; pos != nil {
		lat, latOK := pos.Fields["lat"].asFloat()
		lng, lngOK := pos.Fields["lng"].asFloat()
		if !latOK || !lngOK {
			return nil, fmt.Errorf("document %q has invalid position", doc.Name)
		}
		s.Position = domain.Position{Lat: lat, Lng: lng}
	}

	return s, nil
}
