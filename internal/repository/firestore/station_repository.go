package firestore

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"
	"github.com/water-station-map/internal/config"
	"github.com/water-station-map/internal/domain"
	"github.com/water-station-map/internal/domain/repository"
	"github.com/water-station-map/internal/pkg/utils"
	"go.uber.org/zap"
)

// Name - имя технологии хранилища
const Name = "firebase"

const (
	collectionStations = "water_stations"
	pageSize           = 300
)

type listResponse struct {
	Documents     []document `json:"documents"`
	NextPageToken string     `json:"nextPageToken"`
}

type runQueryResult struct {
	Document *document `json:"document,omitempty"`
}

type stationRepository struct {
	http   *resty.Client
	clock  clockwork.Clock
	logger *zap.Logger

	mu        sync.Mutex
	connected bool
}

// NewStationRepository создает хранилище станций поверх Firestore REST API
func NewStationRepository(cfg *config.FirebaseConfig, clock clockwork.Clock, logger *zap.Logger) repository.StationRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	databaseID := cfg.DatabaseID
	if databaseID == "" {
		databaseID = "(default)"
	}

	baseURL := fmt.Sprintf("%s/projects/%s/databases/%s",
		strings.TrimRight(cfg.BaseURL, "/"), cfg.ProjectID, databaseID)

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetQueryParam("key", cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &stationRepository{
		http:   httpClient,
		clock:  clock,
		logger: logger,
	}
}

func (r *stationRepository) Name() string {
	return Name
}

func (r *stationRepository) Connect(ctx context.Context) error {
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("pageSize", "1").
		Get("/documents/" + collectionStations)
	if err := r.check("connect", resp, err); err != nil {
		r.setConnected(false)
		return fmt.Errorf("%w: %v", domain.ErrNotConnected, err)
	}

	r.setConnected(true)
	r.logger.Info("Firestore station store connected")
	return nil
}

func (r *stationRepository) Close() error {
	r.setConnected(false)
	return nil
}

func (r *stationRepository) setConnected(v bool) {
	r.mu.Lock()
	r.connected = v
	r.mu.Unlock()
}

// ensure повторяет проверку подключения, пока Firestore не ответит
func (r *stationRepository) ensure(ctx context.Context) error {
	r.mu.Lock()
	connected := r.connected
	r.mu.Unlock()
	if connected {
		return nil
	}
	return r.Connect(ctx)
}

func (r *stationRepository) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		r.logger.Error("Firestore request failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("firestore %s: %w", op, err)
	}
	if resp.IsError() {
		r.logger.Error("Firestore returned error",
			zap.String("op", op),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("body", resp.String()))
		return fmt.Errorf("firestore %s: status %d: %s", op, resp.StatusCode(), resp.String())
	}
	return nil
}

// decodeAll пропускает документы с некорректными данными и упорядочивает по id:
// Firestore сортирует по имени документа, т.е. "10" раньше "2"
func (r *stationRepository) decodeAll(docs []document) []*domain.Station {
	stations := make([]*domain.Station, 0, len(docs))
	for i := range docs {
		s, err := decodeStation(&docs[i])
		if err != nil {
			r.logger.Warn("Skipping malformed station document", zap.Error(err))
			continue
		}
		stations = append(stations, s)
	}
	sort.Slice(stations, func(i, j int) bool {
		return stations[i].ID < stations[j].ID
	})
	return stations
}

// GetAllStations обходит коллекцию постранично
func (r *stationRepository) GetAllStations(ctx context.Context) ([]*domain.Station, error) {
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}

	var docs []document
	pageToken := ""
	for {
		var page listResponse
		req := r.http.R().
			SetContext(ctx).
			SetQueryParam("pageSize", strconv.Itoa(pageSize)).
			SetResult(&page)
		if pageToken != "" {
			req.SetQueryParam("pageToken", pageToken)
		}

		resp, err := req.Get("/documents/" + collectionStations)
		if err := r.check("list stations", resp, err); err != nil {
			return nil, err
		}

		docs = append(docs, page.Documents...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return r.decodeAll(docs), nil
}

func (r *stationRepository) GetStationByID(ctx context.Context, id int64) (*domain.Station, error) {
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}

	var doc document
	resp, err := r.http.R().
		SetContext(ctx).
		SetResult(&doc).
		Get(r.docPath(id))
	if err == nil && resp.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrStationNotFound
	}
	if err := r.check("get station", resp, err); err != nil {
		return nil, err
	}
	return decodeStation(&doc)
}

// queryEqual выполняет structuredQuery с фильтром field == value
func (r *stationRepository) queryEqual(ctx context.Context, field, val string) ([]*domain.Station, error) {
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"structuredQuery": map[string]interface{}{
			"from": []map[string]string{{"collectionId": collectionStations}},
			"where": map[string]interface{}{
				"fieldFilter": map[string]interface{}{
					"field": map[string]string{"fieldPath": field},
					"op":    "EQUAL",
					"value": stringVal(val),
				},
			},
		},
	}

	var results []runQueryResult
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&results).
		Post("/documents:runQuery")
	if err := r.check("query "+field, resp, err); err != nil {
		return nil, err
	}

	docs := make([]document, 0, len(results))
	for _, res := range results {
		if res.Document != nil {
			docs = append(docs, *res.Document)
		}
	}
	return r.decodeAll(docs), nil
}

func (r *stationRepository) GetStationsByDistrict(ctx context.Context, district string) ([]*domain.Station, error) {
	return r.queryEqual(ctx, "district", district)
}

func (r *stationRepository) GetStationsByType(ctx context.Context, stationType string) ([]*domain.Station, error) {
	return r.queryEqual(ctx, "type", stationType)
}

func (r *stationRepository) GetStationsByStatus(ctx context.Context, status string) ([]*domain.Station, error) {
	return r.queryEqual(ctx, "status", status)
}

// SearchStations - Firestore не умеет искать подстроку, фильтруем на клиенте
func (r *stationRepository) SearchStations(ctx context.Context, query string) ([]*domain.Station, error) {
	all, err := r.GetAllStations(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Station, 0)
	for _, s := range all {
		if s.MatchesQuery(query, true) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *stationRepository) GetNearbyStations(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Station, error) {
	all, err := r.GetAllStations(ctx)
	if err != nil {
		return nil, err
	}
	return utils.NearbyStations(all, lat, lng, radiusKm), nil
}

// AddStation назначает id = max(id)+1 и создает документ с этим id.
// При гонке двух добавлений второе получит 409 от Firestore.
func (r *stationRepository) AddStation(ctx context.Context, station *domain.Station) (*domain.Station, error) {
	all, err := r.GetAllStations(ctx)
	if err != nil {
		return nil, err
	}

	var maxID int64
	for _, s := range all {
		if s.ID > maxID {
			maxID = s.ID
		}
	}

	now := r.clock.Now().UTC()
	stored := station.Clone()
	stored.ID = maxID + 1
	stored.Distance = nil
	stored.CreatedAt = now
	stored.UpdatedAt = now

	var doc document
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("documentId", strconv.FormatInt(stored.ID, 10)).
		SetBody(document{Fields: encodeStation(stored)}).
		SetResult(&doc).
		Post("/documents/" + collectionStations)
	if err := r.check("add station", resp, err); err != nil {
		return nil, err
	}
	return decodeStation(&doc)
}

// UpdateStation перезаписывает документ целиком после слияния изменений
func (r *stationRepository) UpdateStation(ctx context.Context, id int64, updates domain.StationUpdate) (*domain.Station, error) {
	current, err := r.GetStationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates.ApplyTo(current)
	current.UpdatedAt = domain.NextUpdatedAt(current.UpdatedAt, r.clock.Now().UTC())

	var doc document
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("currentDocument.exists", "true").
		SetBody(document{Fields: encodeStation(current)}).
		SetResult(&doc).
		Patch(r.docPath(id))
	if err == nil && resp.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrStationNotFound
	}
	if err := r.check("update station", resp, err); err != nil {
		return nil, err
	}
	return decodeStation(&doc)
}

func (r *stationRepository) DeleteStation(ctx context.Context, id int64) error {
	if _, err := r.GetStationByID(ctx, id); err != nil {
		return err
	}

	resp, err := r.http.R().
		SetContext(ctx).
		Delete(r.docPath(id))
	return r.check("delete station", resp, err)
}

func (r *stationRepository) docPath(id int64) string {
	return "/documents/" + collectionStations + "/" + strconv.FormatInt(id, 10)
}
