package models

import "time"

// User is a local snapshot of a Kinde identity, kept in sync by the
// inbound webhook. The ID is the Kinde user id, never generated here.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"index" json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	CreatedAt time.Time `json:"createdAt"`
}
