package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost carries a denormalized author snapshot so posts render
// without a round trip to the identity provider.
type BlogPost struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"not null" json:"content"`
	ImageURL    string    `json:"imageUrl"`
	AuthorID    string    `gorm:"index;not null" json:"authorId"`
	AuthorName  string    `json:"authorName"`
	AuthorImage string    `json:"authorImage"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
