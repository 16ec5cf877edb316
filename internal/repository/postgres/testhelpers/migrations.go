package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ApplyMigrations выполняет *.up.sql из migrationsPath в лексикографическом порядке.
// Миграции идемпотентны (IF NOT EXISTS), поэтому повторный запуск безопасен.
func ApplyMigrations(ctx context.Context, db *sqlx.DB, migrationsPath string) ([]string, error) {
	pattern := filepath.Join(migrationsPath, "*.up.sql")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migrations found in %s", migrationsPath)
	}
	sort.Strings(files)

	applied := make([]string, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", file, err)
		}

		if strings.TrimSpace(string(content)) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", filepath.Base(file), err)
		}
		applied = append(applied, filepath.Base(file))
	}

	return applied, nil
}
