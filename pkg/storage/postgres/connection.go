package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mckayn10/ai-chat-app/pkg/contacts"
	"github.com/mckayn10/ai-chat-app/pkg/resilience"
	"github.com/mckayn10/ai-chat-app/pkg/users"
)

// NewConnection opens a PostgreSQL connection through GORM. The initial
// dial is retried a few times so the server survives a database that is
// still starting up.
func NewConnection(dsn string, log *slog.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	retry := resilience.NewRetryPolicy(3, time.Second)
	err := retry.Do(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if openErr != nil {
			log.Warn("postgres_connect_retry", "error", openErr)
		}
		return openErr
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)

	log.Info("postgres_connected")
	return db, nil
}

// Migrate creates the contacts and users tables when missing.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&users.User{}, &contacts.Contact{})
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
