package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/water-station-map/internal/domain"
)

var (
	testNow     = time.Date(2025, time.July, 15, 9, 0, 0, 0, time.UTC)
	stationCols = []string{
		"id", "title", "address", "operator", "district", "type", "status",
		"operating_hours", "operating_period", "phone", "lat", "lng", "end_date", "created_at", "updated_at",
	}
)

func setupMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewDBForTest(sqlx.NewDb(mockDB, "sqlmock"), zap.NewNop()), mock
}

func setupStationRepo(t *testing.T) (*stationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := setupMockDB(t)
	repo := NewStationRepository(db, clockwork.NewFakeClockAt(testNow), zap.NewNop()).(*stationRepository)
	return repo, mock
}

func stationRows() *sqlmock.Rows {
	return sqlmock.NewRows(stationCols).
		AddRow(1, "서울시청", "서울 중구 세종대로 110", "중구청", "중구", "급수차", "운영중",
			"24시간", "", "02-120", 37.5665, 126.9780, "", testNow, testNow).
		AddRow(2, "광화문광장", "서울 종로구 세종대로 172", "종로구청", "종로구", "음수대", "운영중",
			"09:00~18:00", "", "", 37.5720, 126.9769, "", testNow, testNow)
}

func TestStationRepository_Connect(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewStationRepository(NewDBForTest(sqlx.NewDb(mockDB, "sqlmock"), nil), nil, zap.NewNop())

	mock.ExpectPing()
	assert.NoError(t, repo.Connect(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = repo.Connect(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_GetAllStations(t *testing.T) {
	repo, mock := setupStationRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM water_stations ORDER BY id`).WillReturnRows(stationRows())

	stations, err := repo.GetAllStations(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, "서울시청", stations[0].Title)
	assert.Equal(t, domain.Position{Lat: 37.5665, Lng: 126.9780}, stations[0].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_GetAllStations_Error(t *testing.T) {
	repo, mock := setupStationRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM water_stations`).WillReturnError(sql.ErrConnDone)

	_, err := repo.GetAllStations(context.Background())
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestStationRepository_GetStationByID(t *testing.T) {
	repo, mock := setupStationRepo(t)

	mock.ExpectQuery(`FROM water_stations WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(stationRows())
	mock.ExpectQuery(`FROM water_stations WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(stationCols))

	s, err := repo.GetStationByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)

	_, err = repo.GetStationByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrStationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_ExactFilters(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		arg     string
		call    func(r *stationRepository) ([]*domain.Station, error)
	}{
		{
			name:    "district",
			pattern: `WHERE district = \$1`,
			arg:     "중구",
			call: func(r *stationRepository) ([]*domain.Station, error) {
				return r.GetStationsByDistrict(context.Background(), "중구")
			},
		},
		{
			name:    "type",
			pattern: `WHERE type = \$1`,
			arg:     "급수차",
			call: func(r *stationRepository) ([]*domain.Station, error) {
				return r.GetStationsByType(context.Background(), "급수차")
			},
		},
		{
			name:    "status",
			pattern: `WHERE status = \$1`,
			arg:     "운영중",
			call: func(r *stationRepository) ([]*domain.Station, error) {
				return r.GetStationsByStatus(context.Background(), "운영중")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupStationRepo(t)
			mock.ExpectQuery(tt.pattern).WithArgs(tt.arg).WillReturnRows(stationRows())

			stations, err := tt.call(repo)
			require.NoError(t, err)
			assert.Len(t, stations, 2)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStationRepository_SearchStations_EscapesPattern(t *testing.T) {
	repo, mock := setupStationRepo(t)

	mock.ExpectQuery(`title ILIKE \$1 OR address ILIKE \$1 OR operator ILIKE \$1`).
		WithArgs(`%100\%%`).
		WillReturnRows(sqlmock.NewRows(stationCols))

	stations, err := repo.SearchStations(context.Background(), "100%")
	require.NoError(t, err)
	assert.NotNil(t, stations)
	assert.Empty(t, stations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_GetNearbyStations(t *testing.T) {
	repo, mock := setupStationRepo(t)

	cols := append(append([]string{}, stationCols...), "distance")
	rows := sqlmock.NewRows(cols).
		AddRow(1, "서울시청", "", "", "중구", "", "운영중", "", "", "", 37.5665, 126.9780, "", testNow, testNow, 0.0).
		AddRow(2, "광화문광장", "", "", "종로구", "", "운영중", "", "", "", 37.5720, 126.9769, "", testNow, testNow, 0.62)

	mock.ExpectQuery(`WITH distances AS .+ WHERE distance <= \$3 ORDER BY distance, id`).
		WithArgs(37.5665, 126.9780, 5.0).
		WillReturnRows(rows)

	stations, err := repo.GetNearbyStations(context.Background(), 37.5665, 126.9780, 5)
	require.NoError(t, err)
	require.Len(t, stations, 2)
	require.NotNil(t, stations[1].Distance)
	assert.Equal(t, 0.62, *stations[1].Distance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_AddStation(t *testing.T) {
	repo, mock := setupStationRepo(t)

	mock.ExpectQuery(`INSERT INTO water_stations`).
		WithArgs("New", "addr", "", "중구", "", "운영중", "", "", "", 37.55, 126.97, "", testNow).
		WillReturnRows(sqlmock.NewRows(stationCols).
			AddRow(3, "New", "addr", "", "중구", "", "운영중", "", "", "", 37.55, 126.97, "", testNow, testNow))

	added, err := repo.AddStation(context.Background(), &domain.Station{
		Title:    "New",
		Address:  "addr",
		District: "중구",
		Status:   domain.StationStatusOperating,
		Position: domain.Position{Lat: 37.55, Lng: 126.97},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), added.ID)
	assert.Equal(t, testNow, added.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_UpdateStation_MergesAndBumpsUpdatedAt(t *testing.T) {
	repo, mock := setupStationRepo(t)

	mock.ExpectQuery(`FROM water_stations WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(stationRows())

	// текущая updated_at совпадает с часами: новая метка должна быть строго больше
	bumped := testNow.Add(time.Microsecond)
	mock.ExpectQuery(`UPDATE water_stations SET`).
		WithArgs(int64(1), "New title", "서울 중구 세종대로 110", "중구청", "중구", "급수차", "운영중",
			"24시간", "", "02-120", 37.5665, 126.9780, "", bumped).
		WillReturnRows(sqlmock.NewRows(stationCols).
			AddRow(1, "New title", "서울 중구 세종대로 110", "중구청", "중구", "급수차", "운영중",
				"24시간", "", "02-120", 37.5665, 126.9780, "", testNow, bumped))

	title := "New title"
	updated, err := repo.UpdateStation(context.Background(), 1, domain.StationUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "02-120", updated.Phone)
	assert.True(t, updated.UpdatedAt.After(testNow))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_UpdateStation_NotFound(t *testing.T) {
	repo, mock := setupStationRepo(t)

	mock.ExpectQuery(`FROM water_stations WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(stationCols))

	title := "x"
	_, err := repo.UpdateStation(context.Background(), 9, domain.StationUpdate{Title: &title})
	assert.ErrorIs(t, err, domain.ErrStationNotFound)
}

func TestStationRepository_DeleteStation(t *testing.T) {
	repo, mock := setupStationRepo(t)

	mock.ExpectExec(`DELETE FROM water_stations WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM water_stations WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteStation(context.Background(), 1))
	assert.ErrorIs(t, repo.DeleteStation(context.Background(), 2), domain.ErrStationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
	assert.Equal(t, "서울", escapeLike("서울"))
}

func TestClampLimit(t *testing.T) {
	limit, offset := clampLimit(0, -5)
	assert.Equal(t, DefaultReportLimit, limit)
	assert.Equal(t, 0, offset)

	limit, _ = clampLimit(5000, 0)
	assert.Equal(t, MaxReportLimit, limit)
}
