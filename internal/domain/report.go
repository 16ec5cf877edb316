package domain

import (
	"strings"
	"time"
)

// Priority - срочность сообщения об ошибке
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ReportStatus - жизненный цикл сообщения
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusResolved   ReportStatus = "resolved"
	ReportStatusRejected   ReportStatus = "rejected"
)

// Канонические типы ошибок (ограничение колонки error_type)
const (
	ErrorTypeSuspended = "운영중지"
	ErrorTypeSafety    = "안전문제"
	ErrorTypeLocation  = "위치오류"
	ErrorTypeHours     = "운영시간"
	ErrorTypeContact   = "연락처"
	ErrorTypeState     = "운영상태"
	ErrorTypeFacility  = "시설문제"
	ErrorTypeOther     = "기타"
)

const (
	// FallbackMethod помечает сообщения, сохранённые только локально
	FallbackMethod = "localStorage_fallback"

	// UnknownStationTitle - ключ статистики для сообщений без названия станции
	UnknownStationTitle = "알 수 없음"

	// FallbackTimestampLayout - формат идентификатора локального сообщения (ISO-8601, мс)
	FallbackTimestampLayout = "2006-01-02T15:04:05.000Z"
)

// errorTypeLabels - подписи из интерфейса -> канонический тип
var errorTypeLabels = map[string]string{
	"운영시간 오류": ErrorTypeHours,
	"운영상태 오류": ErrorTypeState,
	"위치 오류":   ErrorTypeLocation,
	"시설 문제":   ErrorTypeFacility,
	"기타":      ErrorTypeOther,
}

var priorities = map[string]Priority{
	ErrorTypeSuspended: PriorityHigh,
	ErrorTypeSafety:    PriorityHigh,
	ErrorTypeLocation:  PriorityMedium,
	ErrorTypeHours:     PriorityMedium,
	ErrorTypeContact:   PriorityLow,
	ErrorTypeOther:     PriorityLow,
}

// CanonicalErrorType переводит подпись из интерфейса в канонический тип.
// Неизвестные значения возвращаются без изменений.
func CanonicalErrorType(label string) string {
	label = strings.TrimSpace(label)
	if canonical, ok := errorTypeLabels[label]; ok {
		return canonical
	}
	return label
}

// PriorityFor - приоритет по каноническому типу ошибки, по умолчанию low
func PriorityFor(errorType string) Priority {
	if p, ok := priorities[errorType]; ok {
		return p
	}
	return PriorityLow
}

// Report - сообщение пользователя об ошибке в данных станции
type Report struct {
	ID           int64        `json:"id,omitempty" db:"id"`
	StationID    int64        `json:"station_id" db:"station_id"`
	StationTitle string       `json:"station_title" db:"station_title"`
	ErrorType    string       `json:"error_type" db:"error_type"`
	Description  string       `json:"description" db:"description"`
	ContactInfo  string       `json:"contact_info" db:"contact_info"`
	Priority     Priority     `json:"priority" db:"priority"`
	Status       ReportStatus `json:"status" db:"status"`
	AdminNote    string       `json:"admin_note,omitempty" db:"admin_note"`
	CreatedAt    *time.Time   `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt    *time.Time   `json:"updated_at,omitempty" db:"updated_at"`

	// Только для локальных копий
	Timestamp *time.Time `json:"timestamp,omitempty" db:"-"`
	Method    string     `json:"method,omitempty" db:"-"`
}

// IsFallback - сообщение сохранено только локально
func (r *Report) IsFallback() bool {
	return r.Method == FallbackMethod
}

// SubmittedAt - время создания: created_at для удалённых, timestamp для локальных
func (r *Report) SubmittedAt() time.Time {
	if r.CreatedAt != nil {
		return *r.CreatedAt
	}
	if r.Timestamp != nil {
		return *r.Timestamp
	}
	return time.Time{}
}

// ReportSubmission - данные формы сообщения об ошибке
type ReportSubmission struct {
	StationID    string `json:"stationId"`
	StationTitle string `json:"stationTitle"`
	ErrorType    string `json:"errorType"`
	Description  string `json:"description"`
	ContactInfo  string `json:"contactInfo"`
}

// SubmitResult - результат отправки. Success всегда true: при сбое
// удалённого хранилища сообщение сохраняется локально.
type SubmitResult struct {
	Success  bool   `json:"success"`
	ReportID string `json:"reportId"`
	Message  string `json:"message"`
	Fallback bool   `json:"fallback"`
}

// ReportSource - откуда получен список сообщений
type ReportSource string

const (
	ReportSourceRemote   ReportSource = "remote"
	ReportSourceFallback ReportSource = "fallback"
)

// ReportList - список сообщений и его источник
type ReportList struct {
	Reports []*Report    `json:"reports"`
	Source  ReportSource `json:"source"`
}

// ReportStats - агрегаты по сообщениям
type ReportStats struct {
	Total     int            `json:"total"`
	Pending   int            `json:"pending"`
	Resolved  int            `json:"resolved"`
	Recent    int            `json:"recent"`
	ByType    map[string]int `json:"byType"`
	ByStation map[string]int `json:"byStation"`
}

// IsValidReportStatus проверяет значение статуса
func IsValidReportStatus(status ReportStatus) bool {
	switch status {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved, ReportStatusRejected:
		return true
	}
	return false
}
