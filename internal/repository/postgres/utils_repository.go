package postgres

import (
	"strings"
)

// Константы для лимитов запросов сообщений
const (
	// DefaultReportLimit - лимит по умолчанию для списка сообщений
	DefaultReportLimit = 50
	// MaxReportLimit - максимальный лимит для списка сообщений
	MaxReportLimit = 1000
)

// likeEscaper экранирует спецсимволы шаблона LIKE
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует пользовательский ввод для ILIKE
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// clampLimit нормализует limit/offset для пагинации
func clampLimit(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultReportLimit
	}
	if limit > MaxReportLimit {
		limit = MaxReportLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// nullString конвертирует пустую строку в NULL
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
