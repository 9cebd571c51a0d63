package models

import (
	"time"
)

type IncidentState string

const (
	StatePending  IncidentState = "PENDING"
	StateAttended IncidentState = "ATTENDED"
)

// Injury levels recorded on an incident.
const (
	InjuryMild     = 1
	InjuryModerate = 2
	InjurySevere   = 3
)

// Sentinel values used when a detection event arrives without details.
const (
	DefaultLocation     = "Unspecified location"
	DefaultResidentName = "Unregistered"
)

// Intervention records who attended an incident and when. All fields are
// populated together when the incident transitions to ATTENDED.
type Intervention struct {
	ReceivedAt *time.Time `json:"receivedAt"`
	AttendedAt *time.Time `json:"attendedAt"`
	AttendedBy string     `json:"attendedBy"`
}

type Incident struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Location     string        `json:"location" gorm:"not null"`
	OccurredAt   time.Time     `json:"occurredAt" gorm:"not null"`
	ResidentName string        `json:"residentName" gorm:"not null"`
	Detail       string        `json:"detail" gorm:"type:text"`
	State        IncidentState `json:"state" gorm:"not null;default:'PENDING'"`
	IsFall       bool          `json:"isFall" gorm:"not null;default:false"`
	InjuryLevel  int           `json:"injuryLevel" gorm:"not null;default:1"`
	Intervention Intervention  `json:"intervention" gorm:"embedded;embeddedPrefix:intervention_"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (Incident) TableName() string {
	return "incidents"
}
