package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
	"go.uber.org/zap"
)

// DefaultFallbackCapacity - сколько последних сообщений хранит журнал
const DefaultFallbackCapacity = 100

type redisFallbackLog struct {
	client   *redis.Client
	key      string
	capacity int
	logger   *zap.Logger
}

// NewRedisFallbackLog - журнал в Redis-списке. Новые записи добавляются
// в хвост, после чего список обрезается до capacity последних элементов.
func NewRedisFallbackLog(r *Redis, key string, capacity int) repository.FallbackLog {
	if capacity <= 0 {
		capacity = DefaultFallbackCapacity
	}
	return &redisFallbackLog{
		client:   r.Client(),
		key:      key,
		capacity: capacity,
		logger:   r.logger,
	}
}

func (l *redisFallbackLog) Append(ctx context.Context, report *domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	pipe := l.client.TxPipeline()
	pipe.RPush(ctx, l.key, data)
	pipe.LTrim(ctx, l.key, int64(-l.capacity), -1)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Error("Failed to append to fallback log", zap.String("key", l.key), zap.Error(err))
		return fmt.Errorf("fallback log append error: %w", err)
	}

	l.logger.Debug("Report appended to fallback log", zap.String("key", l.key))
	return nil
}

func (l *redisFallbackLog) List(ctx context.Context) ([]*domain.Report, error) {
	items, err := l.client.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		l.logger.Error("Failed to read fallback log", zap.String("key", l.key), zap.Error(err))
		return nil, fmt.Errorf("fallback log read error: %w", err)
	}

	reports := make([]*domain.Report, 0, len(items))
	for _, item := range items {
		var report domain.Report
		if err := json.Unmarshal([]byte(item), &report); err != nil {
			l.logger.Warn("Skipping malformed fallback entry", zap.Error(err))
			continue
		}
		reports = append(reports, &report)
	}
	return reports, nil
}

func (l *redisFallbackLog) Len(ctx context.Context) (int, error) {
	n, err := l.client.LLen(ctx, l.key).Result()
	if err != nil {
		return 0, fmt.Errorf("fallback log len error: %w", err)
	}
	return int(n), nil
}
