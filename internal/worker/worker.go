package worker

import (
	"context"
)

// Worker - фоновая задача, управляемая WorkerManager
type Worker interface {
	// Start блокирует до остановки
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
