package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/water-station-map/internal/config"
	"github.com/water-station-map/internal/domain"
)

const testKey = "anon-key"

var testNow = time.Date(2025, time.July, 15, 9, 0, 0, 0, time.UTC)

const stationsJSON = `[
 {"id":1,"title":"서울시청","address":"서울 중구 세종대로 110","operator":"중구청","district":"중구","type":"급수차",
  "status":"운영중","operating_hours":"24시간","operating_period":"","phone":"","lat":37.5665,"lng":126.9780,"end_date":"",
  "created_at":"2025-07-01T00:00:00Z","updated_at":"2025-07-01T00:00:00Z"},
 {"id":2,"title":"광화문광장","address":"서울 종로구 세종대로 172","operator":"종로구청","district":"종로구","type":"음수대",
  "status":"운영중","operating_hours":"","operating_period":"","phone":"","lat":37.5720,"lng":126.9769,"end_date":"",
  "created_at":"2025-07-01T00:00:00Z","updated_at":"2025-07-01T00:00:00Z"},
 {"id":3,"title":"강남역","address":"서울 강남구 강남대로 396","operator":"강남구청","district":"강남구","type":"음수대",
  "status":"운영종료","operating_hours":"","operating_period":"","phone":"","lat":37.4979,"lng":127.0276,"end_date":"",
  "created_at":"2025-07-01T00:00:00Z","updated_at":"2025-07-01T00:00:00Z"}
]`

// recordedRequest - запрос, полученный тестовым сервером
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Header http.Header
	Body   string
}

// fakePostgREST отвечает по очереди заранее заданными ответами и записывает запросы
type fakePostgREST struct {
	t         *testing.T
	mu        sync.Mutex
	responses []fakeResponse
	requests  []recordedRequest
}

func (f *fakePostgREST) request(i int) recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.Greater(f.t, len(f.requests), i, "request %d was not sent", i)
	return f.requests[i]
}

type fakeResponse struct {
	status int
	body   string
}

func (f *fakePostgREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	query := make(map[string]string)
	for k, v := range r.URL.Query() {
		query[k] = v[0]
	}
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  query,
		Header: r.Header.Clone(),
		Body:   string(body),
	})

	if len(f.responses) == 0 {
		f.t.Errorf("unexpected request %s %s", r.Method, r.URL.String())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func newFakeServer(t *testing.T, responses ...fakeResponse) (*fakePostgREST, *Client) {
	t.Helper()
	fake := &fakePostgREST{t: t, responses: responses}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := NewClient(&config.SupabaseConfig{URL: server.URL, AnonKey: testKey, Timeout: 2 * time.Second}, zap.NewNop())
	return fake, client
}

func ok(body string) fakeResponse {
	return fakeResponse{status: http.StatusOK, body: body}
}

func connectedStationRepo(t *testing.T, responses ...fakeResponse) (*fakePostgREST, *stationRepository) {
	t.Helper()
	fake, client := newFakeServer(t, append([]fakeResponse{ok(`[]`)}, responses...)...)
	repo := NewStationRepository(client, clockwork.NewFakeClockAt(testNow), zap.NewNop()).(*stationRepository)
	require.NoError(t, repo.Connect(context.Background()))
	return fake, repo
}

func TestStationRepository_Connect(t *testing.T) {
	fake, repo := connectedStationRepo(t)

	req := fake.request(0)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/rest/v1/water_stations", req.Path)
	assert.Equal(t, "id", req.Query["select"])
	assert.Equal(t, "1", req.Query["limit"])
	assert.Equal(t, testKey, req.Header.Get("apikey"))
	assert.Equal(t, "Bearer "+testKey, req.Header.Get("Authorization"))
	assert.Equal(t, Name, repo.Name())
}

func TestStationRepository_ConnectFailure(t *testing.T) {
	unauthorized := fakeResponse{status: http.StatusUnauthorized, body: `{"message":"Invalid API key"}`}
	fake, client := newFakeServer(t, unauthorized, unauthorized)
	repo := NewStationRepository(client, nil, zap.NewNop())

	err := repo.Connect(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	// чтение повторяет проверку подключения и снова получает отказ
	_, err = repo.GetAllStations(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConnected)
	assert.Equal(t, "id", fake.request(1).Query["select"])
}

func TestStationRepository_ReconnectsAfterFailedConnect(t *testing.T) {
	fake, client := newFakeServer(t,
		fakeResponse{status: http.StatusServiceUnavailable, body: `{"message":"upstream unavailable"}`},
		ok(`[]`),
		ok(stationsJSON),
	)
	repo := NewStationRepository(client, nil, zap.NewNop())
	require.ErrorIs(t, repo.Connect(context.Background()), domain.ErrNotConnected)

	stations, err := repo.GetAllStations(context.Background())
	require.NoError(t, err)
	assert.Len(t, stations, 3)
	assert.Equal(t, "1", fake.request(1).Query["limit"])
	assert.Equal(t, "id.asc", fake.request(2).Query["order"])
}

func TestStationRepository_GetAllStations(t *testing.T) {
	fake, repo := connectedStationRepo(t, ok(stationsJSON))

	stations, err := repo.GetAllStations(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 3)
	assert.Equal(t, "서울시청", stations[0].Title)
	assert.Equal(t, "24시간", stations[0].OperatingHours)
	assert.Equal(t, domain.Position{Lat: 37.5665, Lng: 126.9780}, stations[0].Position)

	req := fake.request(1)
	assert.Equal(t, "*", req.Query["select"])
	assert.Equal(t, "id.asc", req.Query["order"])
}

func TestStationRepository_EqualityFilters(t *testing.T) {
	fake, repo := connectedStationRepo(t, ok(`[]`), ok(`[]`), ok(`[]`))
	ctx := context.Background()

	_, err := repo.GetStationsByDistrict(ctx, "중구")
	require.NoError(t, err)
	_, err = repo.GetStationsByType(ctx, "급수차")
	require.NoError(t, err)
	stations, err := repo.GetStationsByStatus(ctx, "운영중")
	require.NoError(t, err)
	assert.NotNil(t, stations)
	assert.Empty(t, stations)

	assert.Equal(t, "eq.중구", fake.request(1).Query["district"])
	assert.Equal(t, "eq.급수차", fake.request(2).Query["type"])
	assert.Equal(t, "eq.운영중", fake.request(3).Query["status"])
}

func TestStationRepository_SearchStations(t *testing.T) {
	fake, repo := connectedStationRepo(t, ok(`[]`))

	_, err := repo.SearchStations(context.Background(), "세종")
	require.NoError(t, err)

	assert.Equal(t,
		`(title.ilike."*세종*",address.ilike."*세종*",operator.ilike."*세종*")`,
		fake.request(1).Query["or"])
}

func TestStationRepository_GetStationByID_NotFound(t *testing.T) {
	fake, repo := connectedStationRepo(t, ok(`[]`))

	_, err := repo.GetStationByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrStationNotFound)
	assert.Equal(t, "eq.42", fake.request(1).Query["id"])
}

func TestStationRepository_GetNearbyStations(t *testing.T) {
	_, repo := connectedStationRepo(t, ok(stationsJSON))

	stations, err := repo.GetNearbyStations(context.Background(), 37.5665, 126.9780, 5)
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, int64(1), stations[0].ID)
	assert.Equal(t, int64(2), stations[1].ID)
	assert.LessOrEqual(t, *stations[0].Distance, *stations[1].Distance)
}

func TestStationRepository_AddStation(t *testing.T) {
	created := `[{"id":9,"title":"New","address":"","operator":"","district":"중구","type":"","status":"운영중",
		"operating_hours":"","operating_period":"","phone":"","lat":37.55,"lng":126.97,"end_date":"",
		"created_at":"2025-07-15T09:00:00Z","updated_at":"2025-07-15T09:00:00Z"}]`
	fake, repo := connectedStationRepo(t, fakeResponse{status: http.StatusCreated, body: created})

	added, err := repo.AddStation(context.Background(), &domain.Station{
		ID:       77,
		Title:    "New",
		District: "중구",
		Status:   domain.StationStatusOperating,
		Position: domain.Position{Lat: 37.55, Lng: 126.97},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), added.ID)
	assert.Equal(t, testNow, added.CreatedAt.UTC())

	req := fake.request(1)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "return=representation", req.Header.Get("Prefer"))

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(req.Body), &body))
	require.Len(t, body, 1)
	assert.NotContains(t, body[0], "id")
	assert.Equal(t, "New", body[0]["title"])
	assert.Equal(t, "2025-07-15T09:00:00Z", body[0]["created_at"])
}

func TestStationRepository_UpdateStation(t *testing.T) {
	updated := `[{"id":1,"title":"서울시청 별관","address":"서울 중구 세종대로 110","operator":"중구청","district":"중구",
		"type":"급수차","status":"운영중","operating_hours":"24시간","operating_period":"","phone":"","lat":37.5665,"lng":126.9780,
		"end_date":"","created_at":"2025-07-01T00:00:00Z","updated_at":"2025-07-15T09:00:00Z"}]`
	current := `[{"id":1,"title":"서울시청","address":"서울 중구 세종대로 110","operator":"중구청","district":"중구",
		"type":"급수차","status":"운영중","operating_hours":"24시간","operating_period":"","phone":"","lat":37.5665,"lng":126.9780,
		"end_date":"","created_at":"2025-07-01T00:00:00Z","updated_at":"2025-07-01T00:00:00Z"}]`

	fake, repo := connectedStationRepo(t, ok(current), ok(updated))

	title := "서울시청 별관"
	station, err := repo.UpdateStation(context.Background(), 1, domain.StationUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, station.Title)

	patch := fake.request(2)
	assert.Equal(t, http.MethodPatch, patch.Method)
	assert.Equal(t, "eq.1", patch.Query["id"])

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(patch.Body), &body))
	assert.Equal(t, title, body["title"])
	assert.Equal(t, "서울 중구 세종대로 110", body["address"], "unchanged fields are preserved")
	assert.Equal(t, "2025-07-15T09:00:00Z", body["updated_at"])
	assert.NotContains(t, body, "id")
	assert.NotContains(t, body, "created_at")
}

func TestStationRepository_DeleteStation(t *testing.T) {
	fake, repo := connectedStationRepo(t, ok(`[{"id":1}]`), ok(`[]`))

	require.NoError(t, repo.DeleteStation(context.Background(), 1))
	assert.ErrorIs(t, repo.DeleteStation(context.Background(), 2), domain.ErrStationNotFound)

	assert.Equal(t, http.MethodDelete, fake.request(1).Method)
	assert.Equal(t, "eq.2", fake.request(2).Query["id"])
}

func TestStationRepository_APIError(t *testing.T) {
	_, repo := connectedStationRepo(t, fakeResponse{status: http.StatusInternalServerError, body: `{"message":"boom"}`})

	_, err := repo.GetAllStations(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestReportRepository_Ping(t *testing.T) {
	fake, client := newFakeServer(t, ok(`[]`), fakeResponse{status: http.StatusNotFound, body: `{"code":"42P01"}`})
	repo := NewReportRepository(client, nil, zap.NewNop())

	require.NoError(t, repo.Ping(context.Background()))
	assert.ErrorIs(t, repo.Ping(context.Background()), domain.ErrNotConnected)

	assert.Equal(t, "/rest/v1/error_reports", fake.request(0).Path)
	assert.Equal(t, "id", fake.request(0).Query["select"])
	assert.Equal(t, "1", fake.request(0).Query["limit"])
}

func TestReportRepository_InsertReport(t *testing.T) {
	created := `[{"id":5,"station_id":12,"station_title":"서울시청","error_type":"위치오류","description":"위치오류 신고",
		"contact_info":"","priority":"medium","status":"pending","admin_note":null,"created_at":"2025-07-15T09:00:00Z"}]`
	fake, client := newFakeServer(t, fakeResponse{status: http.StatusCreated, body: created})
	repo := NewReportRepository(client, nil, zap.NewNop())

	report, err := repo.InsertReport(context.Background(), &domain.Report{
		StationID:    12,
		StationTitle: "서울시청",
		ErrorType:    domain.ErrorTypeLocation,
		Description:  "위치오류 신고",
		Priority:     domain.PriorityMedium,
		Status:       domain.ReportStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), report.ID)
	assert.Equal(t, domain.PriorityMedium, report.Priority)
	assert.Empty(t, report.AdminNote)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(fake.request(0).Body), &body))
	assert.Equal(t, "위치오류", body[0]["error_type"])
	assert.Equal(t, float64(12), body[0]["station_id"])
	assert.NotContains(t, body[0], "method")
}

func TestReportRepository_ListReports(t *testing.T) {
	fake, client := newFakeServer(t, ok(`[{"id":2,"status":"pending"},{"id":1,"status":"resolved"}]`))
	repo := NewReportRepository(client, nil, zap.NewNop())

	reports, err := repo.ListReports(context.Background(), 50, 10)
	require.NoError(t, err)
	assert.Len(t, reports, 2)

	q := fake.request(0).Query
	assert.Equal(t, "created_at.desc", q["order"])
	assert.Equal(t, "50", q["limit"])
	assert.Equal(t, "10", q["offset"])
}

func TestReportRepository_UpdateReportStatus(t *testing.T) {
	fake, client := newFakeServer(t,
		ok(`[{"id":3,"status":"resolved","admin_note":"ok"}]`),
		ok(`[]`),
	)
	repo := NewReportRepository(client, clockwork.NewFakeClockAt(testNow), zap.NewNop())

	report, err := repo.UpdateReportStatus(context.Background(), 3, domain.ReportStatusResolved, "ok")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusResolved, report.Status)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(fake.request(0).Body), &body))
	assert.Equal(t, "resolved", body["status"])
	assert.Equal(t, "ok", body["admin_note"])
	assert.Equal(t, "2025-07-15T09:00:00Z", body["updated_at"])

	_, err = repo.UpdateReportStatus(context.Background(), 4, domain.ReportStatusRejected, "")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestIlikeAny_QuotesSpecialCharacters(t *testing.T) {
	assert.Equal(t, `(title.ilike."*a,b \"c\"*")`, ilikeAny(`a,b "c"`, "title"))
}
