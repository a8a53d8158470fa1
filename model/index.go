package model

import (
	"time"

	"gorm.io/gorm"
)

type DTO struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type ResponseCustom struct {
	Rows       any   `json:"rows"`
	TotalCount int64 `json:"totalCount"`
}
