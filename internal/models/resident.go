package models

import (
	"time"
)

type Resident struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	FullName            string    `json:"fullName" gorm:"not null"`
	NeedsWalkingSupport bool      `json:"needsWalkingSupport" gorm:"not null;default:false"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (Resident) TableName() string {
	return "residents"
}
