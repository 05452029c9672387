package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/constants"
	"github.com/akeren/interest-waitlist/pkg/retry"
	"github.com/akeren/interest-waitlist/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	// SSLMode applies when POSTGRES_SSLMODE is unset. Default "require".
	SSLMode string
	// ConnectAttempts bounds the startup connect and ping retries.
	ConnectAttempts int
}

func (cfg *DBConfig) withDefaults() *DBConfig {
	out := DBConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Minute,
		SSLMode:         "require",
		ConnectAttempts: constants.DefaultDBConnectAttempts,
	}
	if cfg == nil {
		return &out
	}

	out.MaxIdleConns = cmpOr(cfg.MaxIdleConns, out.MaxIdleConns)
	out.MaxOpenConns = cmpOr(cfg.MaxOpenConns, out.MaxOpenConns)
	out.ConnMaxLifetime = cmpOr(cfg.ConnMaxLifetime, out.ConnMaxLifetime)
	out.ConnectAttempts = cmpOr(cfg.ConnectAttempts, out.ConnectAttempts)
	if cfg.SSLMode != "" {
		out.SSLMode = cfg.SSLMode
	}
	return &out
}

func cmpOr[T int | time.Duration](v, fallback T) T {
	if v > 0 {
		return v
	}
	return fallback
}

// postgresEnv holds the POSTGRES_* variables. APP_DATABASE_URL, when set,
// replaces all of them.
type postgresEnv struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func loadPostgresEnv() postgresEnv {
	get := func(key string) string { return unquote(utils.GetEnvTrimmed(key)) }

	return postgresEnv{
		URL:      get("APP_DATABASE_URL"),
		Host:     get("POSTGRES_HOST"),
		Port:     get("POSTGRES_PORT"),
		User:     get("POSTGRES_USER"),
		Password: get("POSTGRES_PASSWORD"),
		DBName:   get("POSTGRES_DB_NAME"),
		SSLMode:  get("POSTGRES_SSLMODE"),
	}
}

// unquote strips one pair of matching quotes left by some .env writers.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func (e postgresEnv) dsn(defaultSSLMode string) (string, error) {
	if e.URL != "" {
		return e.URL, nil
	}

	var missing []string
	for _, v := range []struct{ key, value string }{
		{"POSTGRES_HOST", e.Host},
		{"POSTGRES_PORT", e.Port},
		{"POSTGRES_USER", e.User},
		{"POSTGRES_DB_NAME", e.DBName},
	} {
		if v.value == "" {
			missing = append(missing, v.key)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing required database env vars: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(e.Port)
	if err != nil || port <= 0 {
		return "", fmt.Errorf("invalid POSTGRES_PORT %q", e.Port)
	}

	sslMode := e.SSLMode
	if sslMode == "" {
		sslMode = defaultSSLMode
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		e.Host, port, e.User, quoteDSNValue(e.Password), e.DBName, sslMode), nil
}

// quoteDSNValue quotes a keyword/value DSN value when it holds spaces or quotes.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
	return "'" + v + "'"
}

// NewDatabase connects to Postgres, retrying while the server is unreachable.
func NewDatabase(logger *log.Logger, cfg *DBConfig) (*gorm.DB, error) {
	cfg = cfg.withDefaults()

	env := loadPostgresEnv()
	dsn, err := env.dsn(cfg.SSLMode)
	if err != nil {
		return nil, err
	}
	if env.URL != "" {
		logger.Info("Connecting to database", "source", "APP_DATABASE_URL")
	} else {
		logger.Info("Connecting to database", "host", env.Host, "port", env.Port, "dbname", env.DBName, "user", env.User)
	}

	backoff := retry.NewExponentialBackoff(&retry.Config{
		MaxAttempts: cfg.ConnectAttempts,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		Multiplier:  2,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			logger.Warn("Database not ready, retrying", "attempt", attempt, "delay", delay.String(), "error", err)
		},
	})

	var db *gorm.DB
	err = backoff.Execute(func() error {
		var openErr error
		db, openErr = openDatabase(postgres.Open(dsn), cfg)
		return openErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Database connection established")
	return db, nil
}

// openDatabase opens, tunes and pings a pool. A pool whose ping fails is
// closed so retries do not leak connections.
func openDatabase(dialector gorm.Dialector, cfg *DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, errors.Join(fmt.Errorf("database ping failed: %w", err), sqlDB.Close())
	}
	return db, nil
}

// AutoMigrate creates missing tables for models. It is for development; the
// migrate command owns production schemas.
func AutoMigrate(logger *log.Logger, db *gorm.DB, models ...any) error {
	if db == nil {
		return errors.New("cannot migrate: no database")
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Auto-migration completed", "models", len(models))
	return nil
}

func CloseDatabase(db *gorm.DB, logger *log.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
		return
	}
	logger.Info("Database closed")
}
