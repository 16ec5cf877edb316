package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/water-station-map/internal/domain/repository"
	"github.com/water-station-map/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewStationRepositoryForTest creates a station repository with test database and logger
func NewStationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.StationRepository {
	return postgres.NewStationRepository(NewDBForTest(db, logger), clockwork.NewRealClock(), logger)
}

// NewReportRepositoryForTest creates a report repository with test database and logger
func NewReportRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ReportRepository {
	return postgres.NewReportRepository(NewDBForTest(db, logger), logger)
}
