//go:build ignore

// Публикует тестовое сообщение в stream:reports:pending для проверки воркера синхронизации.
//
//	go run scripts/test_publish.go -redis localhost:6379 -station 1
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/water-station-map/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	stationID := flag.Int64("station", 1, "Station id")
	errorType := flag.String("type", "위치 오류", "Error type label")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	now := time.Now().UTC()
	canonical := domain.CanonicalErrorType(*errorType)
	event := domain.ReportSyncEvent{
		EventID: uuid.New(),
		Report: &domain.Report{
			StationID:    *stationID,
			StationTitle: "테스트 스테이션",
			ErrorType:    canonical,
			Description:  canonical + " 신고",
			Priority:     domain.PriorityFor(canonical),
			Status:       domain.ReportStatusPending,
			Timestamp:    &now,
			Method:       domain.FallbackMethod,
		},
		QueuedAt: now,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamReportsPending,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish: %v", err)
	}

	fmt.Printf("Published %s (event %s) to %s\n", id, event.EventID, domain.StreamReportsPending)
	fmt.Println(string(data))
}
