package infra

import (
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {
	dsn := os.Getenv("POSTGRES_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("error migrating database schema")
	}

	return db
}

// AutoMigrate keeps the schema in step with the model structs. Order
// matters: users reference plans, bills and products reference users.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&db_models.Plan{},
		&db_models.User{},
		&db_models.Product{},
		&db_models.Bill{},
	)
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error().Err(err).Msg("error getting database instance")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("error closing database connection")
	}
}
