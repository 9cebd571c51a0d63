package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleWorker UserRole = "WORKER"
)

// User is a staff account. ShiftStart/ShiftEnd are "HH:MM" clock times; when
// both are set, WORKER accounts may only log in inside that window.
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"not null"`
	Role       UserRole  `json:"role" gorm:"not null;default:'WORKER'"`
	ShiftStart *string   `json:"shiftStart"`
	ShiftEnd   *string   `json:"shiftEnd"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
