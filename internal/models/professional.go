package models

import (
	"time"
)

type ProfessionalStatus string

const (
	ProfessionalActive   ProfessionalStatus = "ACTIVE"
	ProfessionalInactive ProfessionalStatus = "INACTIVE"
)

// Professional is a staff member that can receive push notifications.
// PushEndpoint points at the endpoint of their Subscription, if any; it is a
// lookup reference, not ownership.
type Professional struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	Code         string             `json:"code" gorm:"uniqueIndex;not null"`
	Name         string             `json:"name" gorm:"not null"`
	Schedule     string             `json:"schedule"`
	Status       ProfessionalStatus `json:"status" gorm:"not null;default:'ACTIVE'"`
	PushEndpoint *string            `json:"pushEndpoint"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

func (Professional) TableName() string {
	return "professionals"
}
