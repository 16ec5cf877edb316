package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, StoreLocal, cfg.Store.Type)
	assert.Equal(t, "./data/water_stations.json", cfg.Store.LocalDataPath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000,http://localhost:5173", cfg.Server.CORSOrigins)
	assert.Equal(t, 100, cfg.Report.FallbackCapacity)
	assert.Equal(t, 10*time.Second, cfg.Supabase.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Worker.ClaimMinIdle)
	assert.False(t, cfg.HasValidSupabase())
	assert.False(t, cfg.HasValidFirebase())
}

func TestLoadFrom_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "DATABASE_TYPE=Supabase\n" +
		"SUPABASE_URL=https://abc.supabase.co/\n" +
		"SUPABASE_ANON_KEY=secret\n" +
		"API_PORT=9090\n" +
		"REPORT_FALLBACK_CAPACITY=10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, StoreSupabase, cfg.Store.Type)
	assert.Equal(t, "https://abc.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Report.FallbackCapacity)
	assert.True(t, cfg.HasValidSupabase())
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("API_PORT=9090\n"), 0o600))
	t.Setenv("API_PORT", "7070")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadFrom_FirebaseConfig(t *testing.T) {
	t.Setenv("FIREBASE_CONFIG", `{"apiKey":"k","projectId":"water-map"}`)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.True(t, cfg.HasValidFirebase())
	assert.Equal(t, "water-map", cfg.Firebase.ProjectID)
	assert.Equal(t, "(default)", cfg.Firebase.DatabaseID)
	assert.Equal(t, "https://firestore.googleapis.com/v1", cfg.Firebase.BaseURL)
}

func TestLoadFrom_InvalidFirebaseConfig(t *testing.T) {
	t.Setenv("FIREBASE_CONFIG", `{not json`)

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestHasValidSupabase(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		key      string
		expected bool
	}{
		{"configured", "https://abc.supabase.co", "key", true},
		{"empty url", "", "key", false},
		{"empty key", "https://abc.supabase.co", "", false},
		{"placeholder url", "https://your-project-id.supabase.co", "key", false},
		{"placeholder key", "https://abc.supabase.co", "your-anon-key", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Supabase: SupabaseConfig{URL: tt.url, AnonKey: tt.key}}
			assert.Equal(t, tt.expected, cfg.HasValidSupabase())
		})
	}
}

func TestGetAddrs(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Host: "127.0.0.1", Port: 8080},
		Redis:    RedisConfig{Host: "redis", Port: 6379},
		Database: DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "water", SSLMode: "disable"},
	}

	assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddr())
	assert.Equal(t, "redis:6379", cfg.GetRedisAddr())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=water sslmode=disable", cfg.GetDatabaseDSN())
	assert.True(t, cfg.HasDatabase())
}
