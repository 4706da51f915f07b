package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"csr_backend/internals/configs"
)

// Open membuka koneksi GORM sesuai DB_DRIVER lalu men-tune pool.
func Open(cfg *configs.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case configs.DriverSQLite:
		log.Printf("🔌 Koneksi ke SQLite (%s)...", cfg.SQLitePath)
		db, err = OpenSQLite(cfg.SQLitePath, configs.NewGormLogger())
	default:
		log.Println("🔌 Koneksi ke PostgreSQL...")
		db, err = OpenPostgres(cfg.DBURL, configs.NewGormLogger())
	}
	if err != nil {
		return nil, err
	}

	TunePool(db, cfg)
	log.Println("✅ DB connected.")
	return db, nil
}

func OpenPostgres(dsn string, logger gormLogger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:         logger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// OpenSQLite memakai driver pure-Go modernc lewat dialector GORM sqlite.
func OpenSQLite(path string, logger gormLogger.Interface) (*gorm.DB, error) {
	sqlDB, err := sql.Open("sqlite", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// satu writer saja, SQLite mengunci file per transaksi
	sqlDB.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.New(sqlite.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

// SQLiteDSN menambahkan pragma yang dibutuhkan: foreign key aktif, busy timeout,
// dan format waktu yang bisa dibaca strftime().
func SQLiteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Set("_time_format", "sqlite")
	return "file:" + path + "?" + q.Encode()
}

func TunePool(db *gorm.DB, cfg *configs.Config) {
	if cfg.DBDriver == configs.DriverSQLite {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpen)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdle)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
}

func WarmUp(db *gorm.DB) {
	// jalankan ringan supaya koneksi/pool “keisi” & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
