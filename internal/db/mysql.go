package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storerating/internal/model"
)

// PoolOptions tunes the underlying database/sql pool.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewMySQL returns a connected GORM DB instance. Driver errors are translated
// so duplicate keys surface as gorm.ErrDuplicatedKey.
func NewMySQL(dsn string, pool PoolOptions, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), Config(log))
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql pool: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	return db, nil
}

// Config is the gorm configuration shared by the server, the seeder and tests.
func Config(log logrus.FieldLogger) *gorm.Config {
	cfg := &gorm.Config{TranslateError: true}
	if log != nil {
		cfg.Logger = gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}
	return cfg
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Store{},
		&model.Rating{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table, children first. Missing tables are not an error.
func Reset(db *gorm.DB, log logrus.FieldLogger) {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			log.WithError(err).Warn("drop table failed (may not exist)")
		}
	}
	log.Info("tables dropped")
}
