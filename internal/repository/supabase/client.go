package supabase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/water-station-map/internal/config"
	"go.uber.org/zap"
)

// Name - имя технологии хранилища
const Name = "supabase"

const (
	tableStations = "water_stations"
	tableReports  = "error_reports"
)

// Client - тонкий клиент PostgREST API Supabase
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient создает клиент для {SUPABASE_URL}/rest/v1
func NewClient(cfg *config.SupabaseConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")+"/rest/v1").
		SetTimeout(timeout).
		SetHeader("apikey", cfg.AnonKey).
		SetAuthToken(cfg.AnonKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// APIError - ответ PostgREST с кодом ошибки
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: status %d: %s", e.StatusCode, e.Body)
}

// request готовит запрос с контекстом
func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// check превращает транспортную ошибку или не-2xx ответ в error
func (c *Client) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Error("Supabase request failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("supabase %s: %w", op, err)
	}
	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
		c.logger.Error("Supabase returned error",
			zap.String("op", op),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("body", resp.String()))
		return fmt.Errorf("supabase %s: %w", op, apiErr)
	}
	return nil
}

// eq - фильтр PostgREST "равно"
func eq(value string) string {
	return "eq." + value
}

func eqID(id int64) string {
	return eq(strconv.FormatInt(id, 10))
}

// ilikeAny строит выражение or=(...) для регистронезависимого поиска по колонкам.
// Значение берется в кавычки, чтобы запятые и скобки не ломали синтаксис.
func ilikeAny(query string, columns ...string) string {
	q := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(query)
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf(`%s.ilike."*%s*"`, col, q))
	}
	return "(" + strings.Join(parts, ",") + ")"
}
