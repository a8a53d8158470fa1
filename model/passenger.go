package model

type Passenger struct {
	DTO
	Name string `gorm:"size:120;not null" json:"name"`
}

type PassengerInput struct {
	ID   uint   `json:"id"`
	Name string `json:"name" validate:"required,max=120"`
}
