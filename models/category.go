package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Products    []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// SeedDefaultCategories upserts the stock farm-produce categories so a
// fresh database has something to browse. Safe to run on every boot.
func SeedDefaultCategories(db *gorm.DB) error {
	categories := []Category{
		{Name: "Fruits", Description: "Fresh farm-grown fruits", ImageURL: "https://example.com/images/fruits.jpg"},
		{Name: "Vegetables", Description: "Organic and healthy vegetables", ImageURL: "https://example.com/images/vegetables.jpg"},
		{Name: "Dairy", Description: "Milk, cheese, and other dairy products", ImageURL: "https://example.com/images/dairy.jpg"},
		{Name: "Grains", Description: "Maize, rice, wheat and more", ImageURL: "https://example.com/images/grains.jpg"},
		{Name: "Livestock", Description: "Cattle, goats, poultry and others", ImageURL: "https://example.com/images/livestock.jpg"},
	}

	for _, category := range categories {
		if err := db.Where("name = ?", category.Name).
			FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}
	return nil
}
