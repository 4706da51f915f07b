// Package testdb menyiapkan database SQLite sementara yang sudah dimigrasi
// untuk dipakai di test paket lain.
package testdb

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"csr_backend/internals/configs"
	database "csr_backend/internals/databases"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &configs.Config{
		DBDriver:   configs.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "csr_test.db"),
	}
	if err := database.Migrate(cfg); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := database.OpenSQLite(cfg.SQLitePath, gormLogger.Default.LogMode(gormLogger.Silent))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}
