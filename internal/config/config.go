package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Технологии хранилища станций
const (
	StoreLocal    = "local"
	StoreSupabase = "supabase"
	StoreFirebase = "firebase"
	StorePostgres = "postgres"
)

// Плейсхолдеры из шаблона .env, означающие "не настроено"
var supabasePlaceholders = []string{"your-project-id", "your-anon-key"}

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Store    StoreConfig
	Supabase SupabaseConfig
	Firebase FirebaseConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Report   ReportConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type LogConfig struct {
	Level string
}

type StoreConfig struct {
	Type              string
	LocalDataPath     string
	DistrictsDataPath string
}

type SupabaseConfig struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

// FirebaseConfig - разобранный FIREBASE_CONFIG (JSON-объект)
type FirebaseConfig struct {
	APIKey     string        `json:"apiKey"`
	ProjectID  string        `json:"projectId"`
	DatabaseID string        `json:"databaseId"`
	BaseURL    string        `json:"baseUrl"`
	Timeout    time.Duration `json:"-"`
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type ReportConfig struct {
	FallbackCapacity int
	FallbackKey      string
	PublishPending   bool
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
	BatchSize     int
	IdleInterval  time.Duration
	ClaimMinIdle  time.Duration
}

// Load читает конфигурацию из .env и переменных окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom читает конфигурацию из указанного файла и окружения.
// Отсутствие файла не является ошибкой: переменные окружения имеют приоритет.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Store: StoreConfig{
			Type:              strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_TYPE"))),
			LocalDataPath:     v.GetString("LOCAL_DATA_PATH"),
			DistrictsDataPath: v.GetString("DISTRICTS_DATA_PATH"),
		},
		Supabase: SupabaseConfig{
			URL:     strings.TrimRight(strings.TrimSpace(v.GetString("SUPABASE_URL")), "/"),
			AnonKey: strings.TrimSpace(v.GetString("SUPABASE_ANON_KEY")),
			Timeout: time.Duration(v.GetInt("SUPABASE_TIMEOUT")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Report: ReportConfig{
			FallbackCapacity: v.GetInt("REPORT_FALLBACK_CAPACITY"),
			FallbackKey:      v.GetString("REPORT_FALLBACK_KEY"),
			PublishPending:   v.GetBool("REPORT_PUBLISH_PENDING"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    v.GetInt("WORKER_MAX_RETRIES"),
			BatchSize:     v.GetInt("WORKER_BATCH_SIZE"),
			IdleInterval:  time.Duration(v.GetInt("WORKER_IDLE_INTERVAL")) * time.Millisecond,
			ClaimMinIdle:  time.Duration(v.GetInt("WORKER_CLAIM_MIN_IDLE")) * time.Second,
		},
	}

	if raw := strings.TrimSpace(v.GetString("FIREBASE_CONFIG")); raw != "" {
		fb, err := parseFirebaseConfig(raw)
		if err != nil {
			return nil, err
		}
		cfg.Firebase = fb
	}
	cfg.Firebase.Timeout = cfg.Supabase.Timeout

	if cfg.Report.FallbackCapacity <= 0 {
		cfg.Report.FallbackCapacity = 100
	}
	if cfg.Worker.MaxRetries <= 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Worker.BatchSize <= 0 {
		cfg.Worker.BatchSize = 20
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_TYPE", StoreLocal)
	v.SetDefault("LOCAL_DATA_PATH", "./data/water_stations.json")
	v.SetDefault("DISTRICTS_DATA_PATH", "./data/districts.json")
	v.SetDefault("SUPABASE_TIMEOUT", 10)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REPORT_FALLBACK_KEY", "reports:fallback")
	v.SetDefault("REPORT_PUBLISH_PENDING", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "report-sync-workers")
	v.SetDefault("WORKER_IDLE_INTERVAL", 1000)
	v.SetDefault("WORKER_CLAIM_MIN_IDLE", 30)
}

func parseFirebaseConfig(raw string) (FirebaseConfig, error) {
	var fb FirebaseConfig
	if err := json.Unmarshal([]byte(raw), &fb); err != nil {
		return FirebaseConfig{}, fmt.Errorf("invalid FIREBASE_CONFIG: %w", err)
	}
	if fb.DatabaseID == "" {
		fb.DatabaseID = "(default)"
	}
	if fb.BaseURL == "" {
		fb.BaseURL = "https://firestore.googleapis.com/v1"
	}
	return fb, nil
}

// HasValidSupabase - заданы ли настоящие (не шаблонные) параметры Supabase
func (c *Config) HasValidSupabase() bool {
	if c.Supabase.URL == "" || c.Supabase.AnonKey == "" {
		return false
	}
	for _, p := range supabasePlaceholders {
		if strings.Contains(c.Supabase.URL, p) || strings.Contains(c.Supabase.AnonKey, p) {
			return false
		}
	}
	return true
}

// HasValidFirebase - заданы ли apiKey и projectId
func (c *Config) HasValidFirebase() bool {
	return c.Firebase.APIKey != "" && c.Firebase.ProjectID != ""
}

// HasDatabase - задан ли хост Postgres
func (c *Config) HasDatabase() bool {
	return c.Database.Host != "" && c.Database.DBName != ""
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN - строка подключения в формате key=value для драйвера pgx
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
