package cache

import (
	"context"
	"sync"

	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
)

type memoryFallbackLog struct {
	mu       sync.Mutex
	entries  []*domain.Report
	capacity int
}

// NewMemoryFallbackLog - журнал в памяти процесса, используется без Redis
func NewMemoryFallbackLog(capacity int) repository.FallbackLog {
	if capacity <= 0 {
		capacity = DefaultFallbackCapacity
	}
	return &memoryFallbackLog{
		entries:  make([]*domain.Report, 0, capacity),
		capacity: capacity,
	}
}

func (l *memoryFallbackLog) Append(_ context.Context, report *domain.Report) error {
	copied := *report

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, &copied)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
	return nil
}

func (l *memoryFallbackLog) List(_ context.Context) ([]*domain.Report, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*domain.Report, len(l.entries))
	for i, r := range l.entries {
		copied := *r
		out[i] = &copied
	}
	return out, nil
}

func (l *memoryFallbackLog) Len(_ context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries), nil
}
