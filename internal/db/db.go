package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/groomer-scheduler/internal/config"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

const sqlitePrefix = "sqlite:"

// slotIndex closes the check-then-write race: at most one live appointment
// per date and effective time.
const slotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_slot
	ON appointments (date, effective_time)
	WHERE execution_status <> 'cancelled'
`

func NewDB(cfg *config.Config, log *logrus.Logger) *gorm.DB {
	db, err := Open(cfg.DBUrl, logger.Warn)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}

	if err := Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate")
	}

	return db
}

// Open accepts a postgres DSN or "sqlite:<path>".
func Open(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	}

	var dialector gorm.Dialector
	isSQLite := strings.HasPrefix(dsn, sqlitePrefix)
	if isSQLite {
		dialector = sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix))
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if isSQLite {
		// one writer; also keeps an in-memory database alive and shared
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Pet{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	return db.Exec(slotIndex).Error
}
