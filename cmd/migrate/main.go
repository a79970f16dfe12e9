package main

// Run database migrations:
//   go run ./cmd/migrate             (postgres, DATABASE_URL)
//   go run ./cmd/migrate -sqlite     (SQLITE_PATH)
//   go run ./cmd/migrate -status

import (
	"context"
	"database/sql"
	"flag"
	"os"

	"magang-intel/internal/shared/config"
	"magang-intel/internal/shared/storage/db"
	"magang-intel/internal/shared/telemetry"
)

func main() {
	useSQLite := flag.Bool("sqlite", false, "migrate the SQLite favorites database instead of Postgres")
	statusOnly := flag.Bool("status", false, "print migration status without applying")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	var (
		sqlDB   *sql.DB
		dialect string
		err     error
	)
	if *useSQLite || cfg.FavoritesStore == "sqlite" {
		dialect = db.DialectSQLite
		sqlDB, err = db.OpenSQLite(ctx, cfg.SQLitePath, db.OptionsFromEnv(db.DefaultSQLiteOptions()))
	} else {
		dialect = db.DialectPostgres
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	}
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"dialect": dialect, "error": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if *statusOnly {
		if err := db.MigrationStatus(ctx, sqlDB, dialect); err != nil {
			telemetry.Error("migrate.status_failed", map[string]any{"dialect": dialect, "error": err})
			os.Exit(1)
		}
		return
	}
	if err := db.RunMigrations(ctx, sqlDB, dialect); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"dialect": dialect, "error": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"dialect": dialect})
}
