package model

import "flight_desk/utils"

type Flight struct {
	DTO
	DateOut     utils.Date `gorm:"type:date;not null" json:"date_out"`
	CityFrom    string     `gorm:"size:120;not null" json:"city_from"`
	CityOut     string     `gorm:"size:120;not null" json:"city_out"`
	Description string     `gorm:"size:255;not null" json:"description"`
}

type FlightInput struct {
	ID          uint   `json:"id"`
	DateOut     string `json:"date_out" validate:"required,datetime=2006-01-02"`
	CityFrom    string `json:"city_from" validate:"required,max=120"`
	CityOut     string `json:"city_out" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=255"`
}
