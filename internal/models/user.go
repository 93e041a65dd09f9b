package models

import "time"

// User is a reference entity: todos may point at a user, and deleting a user
// takes their todos with it. There are no credentials here.
type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Todos []Todo `gorm:"foreignKey:UserID" json:"-"`
}
