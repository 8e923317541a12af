//go:build integration

package testutil

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	_ "github.com/jackc/pgx/v5/stdlib" // драйвер database/sql "pgx"
	"github.com/pressly/goose/v3"
)

// migrationsDir — <repo_root>/migrations, считается от расположения этого файла.
func migrationsDir() (string, error) {
	_, thisFile, _, _ := runtime.Caller(0)
	dir := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "migrations"))
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return "", fmt.Errorf("migrations dir not found: %q", dir)
	}
	return dir, nil
}

// ApplyMigrationsGoose — накатывает все миграции goose на базу по DSN.
func ApplyMigrationsGoose(dsn string) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}

	goose.SetLogger(log.New(os.Stdout, "[goose] ", 0))
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
