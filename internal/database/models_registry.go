package database

import "soupbox/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Soup{},
		&models.Comment{},
		&models.UserSoupStar{},
		&models.UserCommentStar{},
	}
}
