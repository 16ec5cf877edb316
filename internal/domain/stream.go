package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamReportsPending = "stream:reports:pending"
)

// ReportSyncEvent - локально сохранённое сообщение, ожидающее отправки в удалённое хранилище
type ReportSyncEvent struct {
	EventID  uuid.UUID `json:"event_id"`
	Report   *Report   `json:"report"`
	QueuedAt time.Time `json:"queued_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string // JSON строка
}
