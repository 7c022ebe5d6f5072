package db

import (
	"fmt"
	stdlog "log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hostel-backend/config"
	"hostel-backend/internal/logger"
	"hostel-backend/internal/model"
)

// Models lists every table the application owns, in migration order.
func Models() []any {
	return []any{
		&model.User{},
		&model.Complaint{},
		&model.LeaveRequest{},
		&model.Notification{},
	}
}

// Open connects to the configured database without migrating it.
func Open(cfg *config.DatabaseConfig, release bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	level := gormlogger.Info
	if release {
		level = gormlogger.Warn
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			stdlog.New(logger.Get(), "", 0),
			gormlogger.Config{LogLevel: level, SlowThreshold: 200 * time.Millisecond},
		),
		// References between collections are application-level only.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
}

// Init opens the database, applies the pool settings and runs migrations.
func Init(cfg *config.DatabaseConfig, release bool) (*gorm.DB, error) {
	db, err := Open(cfg, release)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	logger.Info().Str("driver", cfg.Driver).Msg("running database migrations")
	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	logger.Info().Msg("database initialization complete")
	return db, nil
}
