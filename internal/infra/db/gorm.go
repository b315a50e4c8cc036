package db

import (
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/logger"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// STORE_DRIVER=memory のときは呼ばない。
func Connect(cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.NewGormLogger(gormLogLevel(cfg.LogLevel)),
	}

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		return connectPostgres(cfg.PostgresDSN(), gormCfg)
	case config.StoreDriverSQLite:
		return OpenSQLite(cfg.SQLitePath, gormCfg)
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", cfg.StoreDriver)
	}
}

// pgxのドライバで*sql.DBを作ってからgormへ渡す
func connectPostgres(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	pgxCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pgxCfg)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return gdb, nil
}

// sqliteは書き込みが1本なので接続も1本にする
func OpenSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{Logger: gormlogger.Discard}
	}
	gdb, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), gormCfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return gdb, nil
}

// テーブル作成（AutoMigrate）
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.Product{},
		&model.SiteSettingsRecord{},
		&model.AuditLog{},
	)
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
