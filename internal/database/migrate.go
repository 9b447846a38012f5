package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"study-deck/internal/logger"

	"go.uber.org/zap"
)

// oraAlreadyExists covers ORA-00955 (name already used) and ORA-01408
// (column list already indexed), which make re-running a migration safe.
var oraAlreadyExists = []string{"ORA-00955", "ORA-01408"}

// RunMigrations executes every *.up.sql file in dir in name order. Oracle has
// no IF NOT EXISTS for DDL, so "already exists" failures are skipped.
func RunMigrations(ctx context.Context, db *sql.DB, dir string) error {
	return runMigrations(ctx, db, os.DirFS(dir))
}

func runMigrations(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	l := logger.Get()
	files, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		stmt := strings.TrimRight(strings.TrimSpace(string(content)), ";")
		if stmt == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if alreadyApplied(err) {
				l.Info("Migration already applied", zap.String("file", name))
				continue
			}
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}
		l.Info("Executed migration", zap.String("file", name))
	}

	l.Info("Migrations completed successfully", zap.Int("files", len(files)))
	return nil
}

func alreadyApplied(err error) bool {
	msg := err.Error()
	for _, code := range oraAlreadyExists {
		if strings.Contains(msg, code) {
			return true
		}
	}
	return false
}

// NewMigrateOracleDB opens a plain database/sql handle for migrations.
func NewMigrateOracleDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}
	return db, nil
}
