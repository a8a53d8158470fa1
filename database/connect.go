package database

import (
	"flight_desk/config"
	"flight_desk/model"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectDB(log zerolog.Logger) {
	var err error
	port := config.Int("DB_PORT", 5432)

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.String("DB_HOST", "localhost"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.String("DB_NAME", "flight_desk"))
	gormLog := logger.Default.LogMode(logger.Warn)
	if config.Config("APP_ENV") == "dev" {
		gormLog = logger.Default.LogMode(logger.Info)
	}
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	log.Info().Msg("connection opened to database")

	if err := DB.AutoMigrate(
		&model.Passenger{},
		&model.Airplane{},
		&model.Flight{},
		&model.Ticket{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	log.Info().Msg("database migrated")

	SeedData(DB, log)
}
