package models

import (
	"time"
)

// Soup is a short content item posted by a user. It can be starred and commented on.
type Soup struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	// StarCount is only filled when the list projection includes the star subquery.
	StarCount *int64    `gorm:"->;-:migration" json:"star_count,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// TableName pins the table to "soup".
func (Soup) TableName() string {
	return "soup"
}

// CommentType is the tag under which comments on a soup are stored.
func (Soup) CommentType() CommentType {
	return CommentTypeSoup
}
