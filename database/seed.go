package database

import (
	"flight_desk/model"
	"flight_desk/utils"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func parseDate(dateStr string) utils.Date {
	t, _ := time.Parse(utils.DateLayout, dateStr)
	return utils.Date{Time: t}
}

// SeedData inserts the sample catalog once; existing rows are left alone.
func SeedData(db *gorm.DB, log zerolog.Logger) {
	passengers := []model.Passenger{
		{Name: "Ana Restrepo"},
		{Name: "Luis Gomez"},
		{Name: "Camila Duarte"},
	}
	for _, passenger := range passengers {
		if err := db.Where(model.Passenger{Name: passenger.Name}).FirstOrCreate(&passenger).Error; err != nil {
			log.Error().Err(err).Str("name", passenger.Name).Msg("failed to seed passenger")
		}
	}

	airplanes := []model.Airplane{
		{Airline: "Avianca", Description: "Airbus A320", Amount: 180},
		{Airline: "LATAM", Description: "Boeing 787", Amount: 250},
		{Airline: "Satena", Description: "ATR 72", Amount: 68},
	}
	for _, airplane := range airplanes {
		if err := db.Where(model.Airplane{Airline: airplane.Airline, Description: airplane.Description}).FirstOrCreate(&airplane).Error; err != nil {
			log.Error().Err(err).Str("airline", airplane.Airline).Msg("failed to seed airplane")
		}
	}

	flights := []model.Flight{
		{DateOut: parseDate("2025-01-15"), CityFrom: "Bogota", CityOut: "Medellin", Description: "Morning shuttle"},
		{DateOut: parseDate("2025-01-15"), CityFrom: "Medellin", CityOut: "Cartagena", Description: "Coastal"},
		{DateOut: parseDate("2025-01-16"), CityFrom: "Cali", CityOut: "Bogota", Description: "Night shuttle"},
	}
	for _, flight := range flights {
		if err := db.Where(model.Flight{Description: flight.Description}).FirstOrCreate(&flight).Error; err != nil {
			log.Error().Err(err).Str("flight", flight.Description).Msg("failed to seed flight")
		}
	}
}
