package model

type Airplane struct {
	DTO
	Airline     string `gorm:"size:120;not null" json:"airline"`
	Description string `gorm:"size:255;not null" json:"description"`
	Amount      int    `gorm:"not null" json:"amount"`
}

type AirplaneInput struct {
	ID          uint   `json:"id"`
	Airline     string `json:"airline" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=255"`
	Amount      int    `json:"amount" validate:"required,gt=0"`
}
