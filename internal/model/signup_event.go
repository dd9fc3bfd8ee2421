package model

import "time"

// SignupEvent is the audit row written for every successful registration.
// It is published to the broker at registration time and persisted
// asynchronously by the signup event worker.
type SignupEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Username  string    `gorm:"size:64;not null" json:"username"`
	Email     string    `gorm:"size:128;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
