package factory

import (
	"errors"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/water-station-map/internal/config"
	"github.com/water-station-map/internal/domain/repository"
	"github.com/water-station-map/internal/repository/firestore"
	"github.com/water-station-map/internal/repository/local"
	"github.com/water-station-map/internal/repository/postgres"
	"github.com/water-station-map/internal/repository/supabase"
	"go.uber.org/zap"
)

var errDatabaseNotConfigured = errors.New("DB_HOST and DB_NAME are not set")

// AvailableTypes - поддерживаемые технологии хранилища станций
func AvailableTypes() []string {
	return []string{local.Name, supabase.Name, firestore.Name, postgres.Name}
}

// Factory создает хранилища по имени технологии.
// Создание никогда не падает: при неизвестном имени или неверных
// учетных данных возвращается локальное хранилище.
type Factory struct {
	cfg    *config.Config
	clock  clockwork.Clock
	logger *zap.Logger

	mu       sync.Mutex
	db       *postgres.DB
	supabase *supabase.Client
}

func New(cfg *config.Config, clock clockwork.Clock, logger *zap.Logger) *Factory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Factory{
		cfg:    cfg,
		clock:  clock,
		logger: logger,
	}
}

// CreateStationRepository возвращает хранилище станций для storeType
func (f *Factory) CreateStationRepository(storeType string) repository.StationRepository {
	storeType = strings.ToLower(strings.TrimSpace(storeType))
	log := f.logger.With(zap.String("store", storeType))

	switch storeType {
	case local.Name:
		return f.localStore()

	case supabase.Name:
		if !f.cfg.HasValidSupabase() {
			log.Warn("Supabase credentials are missing or placeholders, using local store")
			return f.localStore()
		}
		return supabase.NewStationRepository(f.supabaseClient(), f.clock, f.logger.Named("supabase"))

	case firestore.Name:
		if !f.cfg.HasValidFirebase() {
			log.Warn("Firebase config is missing apiKey or projectId, using local store")
			return f.localStore()
		}
		return firestore.NewStationRepository(&f.cfg.Firebase, f.clock, f.logger.Named("firestore"))

	case postgres.Name:
		db, err := f.database()
		if err != nil {
			log.Warn("PostgreSQL is not configured, using local store", zap.Error(err))
			return f.localStore()
		}
		return postgres.NewStationRepository(db, f.clock, f.logger.Named("postgres"))
	}

	log.Warn("Unknown store type, using local store", zap.Strings("available", AvailableTypes()))
	return f.localStore()
}

// CreateReportRepository возвращает удалённое хранилище сообщений или nil,
// если ни Supabase, ни PostgreSQL не настроены
func (f *Factory) CreateReportRepository() repository.ReportRepository {
	if f.cfg.HasValidSupabase() {
		return supabase.NewReportRepository(f.supabaseClient(), f.clock, f.logger.Named("supabase"))
	}
	if f.cfg.Store.Type == config.StorePostgres {
		if db, err := f.database(); err == nil {
			return postgres.NewReportRepository(db, f.logger.Named("postgres"))
		}
	}
	f.logger.Warn("No remote report store configured, reports will be kept locally")
	return nil
}

// Close закрывает пул соединений PostgreSQL, если он создавался
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.db == nil {
		return nil
	}
	err := f.db.Close()
	f.db = nil
	return err
}

func (f *Factory) localStore() repository.StationRepository {
	return local.NewStationRepository(f.cfg.Store.LocalDataPath, f.clock, f.logger.Named("local"))
}

func (f *Factory) supabaseClient() *supabase.Client {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.supabase == nil {
		f.supabase = supabase.NewClient(&f.cfg.Supabase, f.logger.Named("supabase"))
	}
	return f.supabase
}

func (f *Factory) database() (*postgres.DB, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.db != nil {
		return f.db, nil
	}
	if !f.cfg.HasDatabase() {
		return nil, errDatabaseNotConfigured
	}

	db, err := postgres.New(&f.cfg.Database, f.logger.Named("postgres"))
	if err != nil {
		return nil, err
	}
	f.db = db
	return db, nil
}
