package models

// UserSoupStar marks a soup as starred by a user.
// The composite primary key allows at most one row per (user, soup) pair.
type UserSoupStar struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	SoupID uint `gorm:"primaryKey;autoIncrement:false;index" json:"soup_id"`
}

func (UserSoupStar) TableName() string {
	return "user_soup_star"
}

// UserCommentStar marks a comment as starred by a user.
type UserCommentStar struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CommentID uint `gorm:"primaryKey;autoIncrement:false;index" json:"comment_id"`
}

func (UserCommentStar) TableName() string {
	return "user_comment_star"
}
