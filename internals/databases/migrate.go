package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	migrateDB "github.com/golang-migrate/migrate/v4/database"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migrateSQLite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"csr_backend/internals/configs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate menjalankan semua migrasi "up" yang belum diterapkan.
func Migrate(cfg *configs.Config) error {
	return withMigrate(cfg, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("run migrations: %w", err)
		}
		return nil
	})
}

// MigrateDown membatalkan satu langkah migrasi terakhir.
func MigrateDown(cfg *configs.Config) error {
	return withMigrate(cfg, func(m *migrate.Migrate) error {
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("rollback migration: %w", err)
		}
		return nil
	})
}

func withMigrate(cfg *configs.Config, fn func(m *migrate.Migrate) error) error {
	// koneksi terpisah: m.Close() ikut menutup *sql.DB miliknya
	var (
		sqlDB   *sql.DB
		driver  migrateDB.Driver
		srcPath string
		err     error
	)

	switch cfg.DBDriver {
	case configs.DriverSQLite:
		sqlDB, err = sql.Open("sqlite", SQLiteDSN(cfg.SQLitePath))
		if err != nil {
			return fmt.Errorf("open migration database: %w", err)
		}
		driver, err = migrateSQLite.WithInstance(sqlDB, &migrateSQLite.Config{})
		srcPath = "migrations/sqlite"
	default:
		sqlDB, err = sql.Open("postgres", cfg.DBURL)
		if err != nil {
			return fmt.Errorf("open migration database: %w", err)
		}
		driver, err = migratePostgres.WithInstance(sqlDB, &migratePostgres.Config{})
		srcPath = "migrations/postgres"
	}
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create %s driver: %w", cfg.DBDriver, err)
	}

	src, err := iofs.New(migrationsFS, srcPath)
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, cfg.DBDriver, driver)
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := fn(m); err != nil {
		return err
	}

	if v, dirty, err := m.Version(); err == nil {
		log.Printf("[MIGRATE] %s schema version=%d dirty=%v", cfg.DBDriver, v, dirty)
	}
	return nil
}
