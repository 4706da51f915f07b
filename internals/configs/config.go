package configs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config menampung seluruh setting aplikasi yang dibaca dari ENV.
type Config struct {
	Port string

	DBDriver          string
	DBURL             string
	SQLitePath        string
	DBMaxOpen         int
	DBMaxIdle         int
	DBConnMaxLifetime time.Duration
	AutoMigrate       bool

	JWTSecret string
	JWTTTL    time.Duration

	UploadDir     string
	PublicBaseURL string
	MaxUploadMB   int
	ImageMaxWidth int

	CorsAllowOrigins string
	GoogleClientID   string

	AMQPURL      string
	AMQPExchange string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// Load membaca ENV (panggil LoadEnv dulu kalau ingin .env ikut dibaca)
// lalu memvalidasi hasilnya.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              GetEnv("PORT", "3000"),
		DBDriver:          strings.ToLower(GetEnv("DB_DRIVER", DriverPostgres)),
		DBURL:             GetEnv("DB_URL"),
		SQLitePath:        GetEnv("SQLITE_PATH", "csr.db"),
		DBMaxOpen:         getEnvInt("DB_MAX_OPEN", 20),
		DBMaxIdle:         getEnvInt("DB_MAX_IDLE", 10),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 10*time.Minute),
		AutoMigrate:       getEnvBool("AUTO_MIGRATE", true),
		JWTSecret:         GetEnv("JWT_SECRET"),
		JWTTTL:            getEnvDuration("JWT_TTL", 24*time.Hour),
		UploadDir:         GetEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:     strings.TrimRight(GetEnv("PUBLIC_BASE_URL"), "/"),
		MaxUploadMB:       getEnvInt("MAX_UPLOAD_MB", 5),
		ImageMaxWidth:     getEnvInt("IMAGE_MAX_WIDTH", 1600),
		CorsAllowOrigins:  GetEnv("CORS_ALLOW_ORIGINS", "*"),
		GoogleClientID:    GetEnv("GOOGLE_CLIENT_ID"),
		AMQPURL:           GetEnv("AMQP_URL"),
		AMQPExchange:      GetEnv("AMQP_EXCHANGE", "csr.events"),
	}

	// fallback ke variabel DB_* lama kalau DB_URL kosong
	if cfg.DBURL == "" && GetEnv("DB_HOST") != "" {
		cfg.DBURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			GetEnv("DB_USER"),
			GetEnv("DB_PASSWORD"),
			GetEnv("DB_HOST"),
			GetEnv("DB_PORT", "5432"),
			GetEnv("DB_NAME"),
			GetEnv("DB_SSLMODE", "require"),
		)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate mengumpulkan semua masalah konfigurasi sekaligus.
func (c *Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case DriverPostgres:
		if c.DBURL == "" {
			errs = append(errs, errors.New("DB_URL is required when DB_DRIVER=postgres"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required when DB_DRIVER=sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DBDriver))
	}

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.UploadDir == "" {
		errs = append(errs, errors.New("UPLOAD_DIR is required"))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB must be positive"))
	}
	if c.ImageMaxWidth <= 0 {
		errs = append(errs, errors.New("IMAGE_MAX_WIDTH must be positive"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
}

// MaxUploadBytes ukuran maksimum satu file upload.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ %s=%q bukan angka, pakai default %d", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("⚠️ %s=%q bukan boolean, pakai default %v", key, v, def)
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ %s=%q bukan durasi, pakai default %s", key, v, def)
		return def
	}
	return d
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if strings.EqualFold(GetEnv("DB_LOG_LEVEL"), "info") {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gormLogger.ErrRecordNotFound):
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
