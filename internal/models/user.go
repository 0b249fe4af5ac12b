// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account that authors soups and comments.
// Password holds the bcrypt hash and is omitted from default repository projections.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"index;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the table to "user".
func (User) TableName() string {
	return "user"
}
