package models

import (
	"time"
)

// Subscription is a Web Push delivery target. The endpoint URL is the natural
// key; re-subscribing with the same endpoint refreshes the key material.
// P256dh and Auth are opaque to this service and only forwarded to the push
// transport.
type Subscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Endpoint  string    `json:"endpoint" gorm:"uniqueIndex;not null"`
	P256dh    string    `json:"p256dh" gorm:"not null"`
	Auth      string    `json:"auth" gorm:"not null"`
	OwnerCode *string   `json:"ownerCode"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
