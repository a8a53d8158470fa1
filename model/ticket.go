package model

type Ticket struct {
	DTO
	Value      float64 `gorm:"not null" json:"value"`
	IvaTicket  float64 `gorm:"not null" json:"ivaTiquete"`
	Discount   float64 `gorm:"not null;default:0" json:"discount"`
	TicketCode string  `gorm:"size:36;uniqueIndex" json:"ticketCode"`

	PassengerID uint `gorm:"not null" json:"passengerId"`
	AirplaneID  uint `gorm:"not null" json:"airplaneId"`
	FlightID    uint `gorm:"not null" json:"flightId"`

	Passenger Passenger `gorm:"foreignKey:PassengerID" json:"passenger"`
	Airplane  Airplane  `gorm:"foreignKey:AirplaneID" json:"airplane"`
	Flight    Flight    `gorm:"foreignKey:FlightID" json:"flight"`
}

type TicketInput struct {
	ID          uint    `json:"id"`
	Value       float64 `json:"value" validate:"required,gt=0"`
	IvaTicket   float64 `json:"ivaTiquete" validate:"gte=0"`
	Discount    float64 `json:"discount" validate:"gte=0"`
	PassengerID uint    `json:"passengerId" validate:"required"`
	AirplaneID  uint    `json:"airplaneId" validate:"required"`
	FlightID    uint    `json:"flightId" validate:"required"`
}
