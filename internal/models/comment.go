package models

import "time"

// CommentType identifies which kind of entity a comment is attached to.
type CommentType string

const (
	CommentTypeSoup CommentType = "soup"
)

// commentTypes lists every commentable kind.
var commentTypes = map[CommentType]struct{}{
	CommentTypeSoup: {},
}

// Valid reports whether t is a registered commentable kind.
func (t CommentType) Valid() bool {
	_, ok := commentTypes[t]
	return ok
}

// Comment is a generic comment. The owning entity is identified by
// (CommentType, CommentTypeID); there is no database-level foreign key on the pair.
type Comment struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CommentType   CommentType `gorm:"type:varchar(32);not null;index:idx_comment_target,priority:1" json:"comment_type"`
	CommentTypeID uint        `gorm:"not null;index:idx_comment_target,priority:2" json:"comment_type_id"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	User          *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content       string      `gorm:"type:text;not null" json:"content"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TableName pins the table to "comment".
func (Comment) TableName() string {
	return "comment"
}
