package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/water-station-map/internal/config"
)

func TestNew_RequiresHostAndName(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Port: 5432}, zap.NewNop())
	assert.Error(t, err)
}

func TestNew_ConfiguresPoolWithoutConnecting(t *testing.T) {
	db, err := New(&config.DatabaseConfig{
		Host:         "127.0.0.1",
		Port:         1,
		DBName:       "water",
		SSLMode:      "disable",
		MaxConns:     4,
		MaxIdleConns: 2,
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 4, db.Stats().MaxOpenConnections)
	require.NoError(t, db.DB.Close())
}

func TestDB_Health(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	db := NewDBForTest(sqlx.NewDb(mockDB, "sqlmock"), nil)

	mock.ExpectPing()
	assert.NoError(t, db.Health(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = db.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres ping")

	assert.NoError(t, mock.ExpectationsWereMet())
}
