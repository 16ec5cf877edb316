package reportsync

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
	"github.com/water-station-map/internal/worker"
)

const (
	defaultBatchSize    = 20
	defaultIdleSleep    = time.Second
	defaultClaimMinIdle = 30 * time.Second
	errorSleep          = time.Second
)

// ReportSyncer досылает локальное сообщение в удалённое хранилище
type ReportSyncer interface {
	SyncFallbackReport(ctx context.Context, report *domain.Report) (*domain.Report, error)
}

// Worker читает stream:reports:pending и переносит сообщения в удалённое хранилище
type Worker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	syncer       ReportSyncer
	consumerName string
	batchSize    int
	maxRetries   int
	idleSleep    time.Duration
	claimMinIdle time.Duration
	retryDelay   time.Duration
}

// NewWorker создает воркер синхронизации. Имя потребителя - hostname-pid-uuid,
// поэтому сообщения прежних экземпляров забираются через ClaimPending после claimMinIdle.
func NewWorker(
	streamRepo repository.StreamRepository,
	syncer ReportSyncer,
	consumerGroup string,
	batchSize int,
	maxRetries int,
	idleSleep time.Duration,
	claimMinIdle time.Duration,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d-%s", hostname, os.Getpid(), uuid.NewString()[:8])

	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if maxRetries <= 0 {
		maxRetries = 1
	}
	if idleSleep <= 0 {
		idleSleep = defaultIdleSleep
	}
	if claimMinIdle <= 0 {
		claimMinIdle = defaultClaimMinIdle
	}

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("report-sync", consumerGroup, logger),
		streamRepo:   streamRepo,
		syncer:       syncer,
		consumerName: consumerName,
		batchSize:    batchSize,
		maxRetries:   maxRetries,
		idleSleep:    idleSleep,
		claimMinIdle: claimMinIdle,
		retryDelay:   200 * time.Millisecond,
	}
}

// Start запускает цикл обработки до Stop или отмены контекста
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting report sync worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize),
		zap.Duration("claim_min_idle", w.claimMinIdle))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamReportsPending, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.processBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.sleep(ctx, errorSleep)
			continue
		}
		if processed == 0 {
			w.sleep(ctx, w.idleSleep)
		}
	}
}

func (w *Worker) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	case <-w.StopChan():
	}
}

// fetch сначала забирает зависшие в pending сообщения (свои и чужие),
// затем добирает пачку новыми
func (w *Worker) fetch(ctx context.Context) ([]domain.StreamMessage, error) {
	logger := w.Logger()

	claimed, err := w.streamRepo.ClaimPending(ctx, domain.StreamReportsPending, w.ConsumerGroup(), w.consumerName, w.claimMinIdle, w.batchSize)
	if err != nil {
		logger.Warn("Failed to claim pending messages", zap.Error(err))
	}
	if len(claimed) >= w.batchSize {
		return claimed, nil
	}

	fresh, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamReportsPending, w.ConsumerGroup(), w.consumerName, w.batchSize-len(claimed))
	if err != nil {
		if len(claimed) > 0 {
			logger.Warn("Failed to consume new messages, processing claimed only", zap.Error(err))
			return claimed, nil
		}
		return nil, fmt.Errorf("failed to consume batch: %w", err)
	}
	return append(claimed, fresh...), nil
}

// processBatch возвращает количество прочитанных сообщений.
// Подтверждаются успешно перенесённые и нечитаемые сообщения; остальные
// остаются в pending и будут забраны повторно через claimMinIdle.
func (w *Worker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.fetch(ctx)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ack := make([]string, 0, len(messages))
	synced := 0
	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			ack = append(ack, msg.ID)
			continue
		}

		created, err := w.syncWithRetry(ctx, event.Report)
		if err != nil {
			logger.Error("Failed to sync report, leaving pending",
				zap.String("message_id", msg.ID),
				zap.String("event_id", event.EventID.String()),
				zap.Int64("station_id", event.Report.StationID),
				zap.Error(err))
			continue
		}

		logger.Info("Fallback report synced",
			zap.String("event_id", event.EventID.String()),
			zap.Int64("report_id", created.ID))
		ack = append(ack, msg.ID)
		synced++
	}

	if len(ack) > 0 {
		if err := w.streamRepo.AckMessages(ctx, domain.StreamReportsPending, w.ConsumerGroup(), ack); err != nil {
			logger.Error("Failed to ack messages", zap.Error(err))
		}
	}

	logger.Info("Batch processed",
		zap.Int("received", len(messages)),
		zap.Int("synced", synced),
		zap.Int("acked", len(ack)))

	return len(messages), nil
}

func (w *Worker) syncWithRetry(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		created, err := w.syncer.SyncFallbackReport(ctx, report)
		if err == nil {
			return created, nil
		}
		lastErr = err
		if attempt < w.maxRetries {
			w.sleep(ctx, w.retryDelay)
		}
	}
	return nil, lastErr
}

func parseMessage(msg domain.StreamMessage) (*domain.ReportSyncEvent, error) {
	var event domain.ReportSyncEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.Report == nil {
		return nil, fmt.Errorf("event %s has no report", event.EventID)
	}
	return &event, nil
}
