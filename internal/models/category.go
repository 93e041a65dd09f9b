package models

import "time"

type Category struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Color       string    `gorm:"type:varchar(7);not null;default:'#007bff'" json:"color"`
	Icon        *string   `gorm:"type:varchar(50)" json:"icon"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Todos []Todo `gorm:"foreignKey:CategoryID" json:"todos,omitempty"`
}

// DefaultCategoryColor is applied when a category is created without a color.
const DefaultCategoryColor = "#007bff"
