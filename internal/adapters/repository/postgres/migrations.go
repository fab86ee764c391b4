package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var ErrMigrationNotFound = errors.New("migration file not found")

// MigrationFile returns the name of the first migration whose file name ends
// with "<name>.sql", e.g. "init.up" or "000001_init.down".
func MigrationFile(name string) (string, error) {
	pattern, err := regexp.Compile(`^.*` + regexp.QuoteMeta(name) + `\.sql$`)
	if err != nil {
		return "", fmt.Errorf("invalid migration name %q: %w", name, err)
	}

	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return "", fmt.Errorf("failed to read migrations: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && pattern.MatchString(e.Name()) {
			return e.Name(), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMigrationNotFound, name)
}

// RunMigration executes the migration file matching name.
func RunMigration(ctx context.Context, db *sql.DB, name string) (string, error) {
	file, err := MigrationFile(name)
	if err != nil {
		return "", err
	}
	content, err := migrationFiles.ReadFile("migrations/" + file)
	if err != nil {
		return "", fmt.Errorf("failed to read migration %s: %w", file, err)
	}
	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return "", fmt.Errorf("failed to execute migration %s: %w", file, err)
	}
	return file, nil
}

// MigrateUp applies every *.up.sql migration in file name order.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return err
	}
	sort.Strings(ups)
	for _, path := range ups {
		content, err := migrationFiles.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", path, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", path, err)
		}
	}
	return nil
}
