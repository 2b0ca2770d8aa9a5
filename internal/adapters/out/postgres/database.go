package postgres

import (
	"fmt"

	"travelagency/internal/adapters/out/postgres/orderrepo"
	"travelagency/internal/adapters/out/postgres/outboxrepo"
	"travelagency/internal/adapters/out/postgres/userrepo"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL. Unique violations are translated to
// gorm.ErrDuplicatedKey, which the repositories map to AlreadyExists errors.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the users, orders and order_events tables with
// their unique indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&outboxrepo.EventDTO{},
	)
}

// DSN builds a key/value connection string.
func DSN(host, port, user, password, name, sslMode string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, name, sslMode,
	)
}
